package parsing

import (
	"regexp"
	"sort"
	"strings"
)

// skillOntology is the fixed category → canonical skill → synonym table.
// Two raw tokens mapping to the same canonical name are deduplicated, so
// "React, ReactJS, react.js" all collapse to a single "react" entry.
var skillOntology = map[string]map[string][]string{
	"frontend": {
		"react":      {"react", "reactjs", "react.js"},
		"javascript": {"javascript", "js"},
		"html":       {"html", "html5"},
		"css":        {"css", "scss", "sass"},
		"tailwind":   {"tailwind", "tailwindcss"},
	},
	"backend": {
		"python":  {"python", "python3"},
		"fastapi": {"fastapi", "fast api"},
		"flask":   {"flask"},
		"nodejs":  {"node", "nodejs", "node.js"},
		"express": {"express", "expressjs"},
		"java":    {"java"},
		"csharp":  {"c#", "csharp", ".net"},
	},
	"ml_ai": {
		"pytorch":      {"pytorch", "torch"},
		"tensorflow":   {"tensorflow", "tf", "keras"},
		"sklearn":      {"scikit-learn", "sklearn"},
		"nlp":          {"nlp", "natural language processing"},
		"cv":           {"computer vision", "opencv", "cv"},
		"transformers": {"transformers", "bert", "gpt", "llm"},
	},
	"data": {
		"sql":           {"sql", "mysql", "postgres", "postgresql"},
		"pandas":        {"pandas"},
		"numpy":         {"numpy"},
		"mongodb":       {"mongo", "mongodb"},
		"elasticsearch": {"elasticsearch", "elastic"},
	},
	"devops": {
		"docker":     {"docker", "dockerfile"},
		"kubernetes": {"kubernetes", "k8s"},
		"aws":        {"aws", "amazon web services", "ec2", "s3"},
	},
}

// rolePatterns maps a role tag to substring patterns that signal it.
var rolePatterns = map[string][]string{
	"frontend":    {"frontend", "front end", "front-end", "ui developer"},
	"backend":     {"backend", "backend engineer", "api developer"},
	"fullstack":   {"fullstack", "full-stack", "full stack"},
	"ml_engineer": {"machine learning", "ml engineer", "data scientist"},
	"devops":      {"devops", "sre", "site reliability"},
}

// skillMatcher is one precompiled synonym lookup entry.
type skillMatcher struct {
	canonical string
	category  string
	pattern   *regexp.Regexp
}

// skillIndex inverts the ontology into a synonym → (canonical, category)
// index with precompiled whole-word patterns, built once at init.
var skillIndex = buildSkillIndex()

func buildSkillIndex() []skillMatcher {
	var index []skillMatcher
	for category, skills := range skillOntology {
		for canonical, synonyms := range skills {
			for _, synonym := range synonyms {
				index = append(index, skillMatcher{
					canonical: canonical,
					category:  category,
					pattern:   compileSynonym(synonym),
				})
			}
		}
	}
	// Deterministic scan order regardless of map iteration.
	sort.Slice(index, func(i, j int) bool {
		if index[i].category != index[j].category {
			return index[i].category < index[j].category
		}
		return index[i].canonical < index[j].canonical
	})
	return index
}

// compileSynonym builds a whole-word pattern for a synonym. The boundaries
// are asymmetric: a dot counts as a token character on the left, so "js"
// does not fire inside "react.js", but not on the right, so sentence
// punctuation after a skill ("... is python.") does not hide it.
func compileSynonym(synonym string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(strings.ToLower(synonym))
	return regexp.MustCompile(`(?:^|[^A-Za-z0-9_.])` + quoted + `(?:$|[^A-Za-z0-9_])`)
}

// ExtractSkills searches every synonym as a case-insensitive whole-word
// match and returns canonical skills grouped by category, sorted within
// each category.
func ExtractSkills(text string) map[string][]string {
	lower := strings.ToLower(text)
	found := make(map[string]map[string]bool)
	for _, m := range skillIndex {
		if !m.pattern.MatchString(lower) {
			continue
		}
		if found[m.category] == nil {
			found[m.category] = make(map[string]bool)
		}
		found[m.category][m.canonical] = true
	}

	result := make(map[string][]string, len(found))
	for category, canonicals := range found {
		skills := make([]string, 0, len(canonicals))
		for skill := range canonicals {
			skills = append(skills, skill)
		}
		sort.Strings(skills)
		result[category] = skills
	}
	return result
}

// FlattenSkills returns the sorted union of all categorized skills.
func FlattenSkills(byCategory map[string][]string) []string {
	seen := make(map[string]bool)
	for _, skills := range byCategory {
		for _, skill := range skills {
			seen[skill] = true
		}
	}
	all := make([]string, 0, len(seen))
	for skill := range seen {
		all = append(all, skill)
	}
	sort.Strings(all)
	return all
}

// ExtractRoles returns the sorted role tags whose patterns appear anywhere
// in the text (case-insensitive substring match).
func ExtractRoles(text string) []string {
	lower := strings.ToLower(text)
	var roles []string
	for role, patterns := range rolePatterns {
		for _, pattern := range patterns {
			if strings.Contains(lower, pattern) {
				roles = append(roles, role)
				break
			}
		}
	}
	sort.Strings(roles)
	return roles
}
