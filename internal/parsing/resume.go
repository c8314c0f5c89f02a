// Package parsing turns extracted resume text into a structured profile
// using pattern and keyword heuristics. Every extractor is a pure function
// of the text: an absent pattern yields a zero value, never an error.
package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/teammate-matcher/internal/extraction"
	"github.com/jonathan/teammate-matcher/internal/types"
)

// minParseableRunes is the minimum amount of extracted text worth parsing.
// Below it the extractor reports a structured failure instead of a profile.
const minParseableRunes = 40

// previewRunes caps the raw-text preview carried on results and errors.
const previewRunes = 500

// maxWorkEntries caps the employer list; "at <Name>" is a noisy pattern and
// later hits are increasingly likely to be false positives.
const maxWorkEntries = 5

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`[+(]?[0-9][0-9\-\s.()]{7,}[0-9]`)
	githubRe   = regexp.MustCompile(`(?i)github\.com/([A-Za-z0-9_-]+)`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/([A-Za-z0-9_-]+)`)

	experienceRe = regexp.MustCompile(`(\d{1,2})\+?\s*(?:years|yrs)\s+(?:of\s+)?experience`)
	nameLineRe   = regexp.MustCompile(`^[A-Za-z .'\-]{2,}$`)
	companyRe    = regexp.MustCompile(`(?:\bat\b|@)\s+([A-Z][A-Za-z0-9 &.\-]{2,50})`)
)

// degreePatterns maps degree-tier regexes to their labels. Each tier present
// anywhere in the text contributes one education record; the heuristics do
// not attempt field-of-study extraction.
var degreePatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)b(?:\.tech|\.?tech|achelor)`), "Bachelor"},
	{regexp.MustCompile(`(?i)m(?:\.tech|\.?tech|aster)`), "Master"},
	{regexp.MustCompile(`(?i)(?:phd|ph\.d\.)`), "PhD"},
}

// achievementKeywords signal competition-related activity.
var achievementKeywords = []string{"hackathon", "devpost", "mlh", "challenge", "competition"}

var (
	firstPlaceRe  = regexp.MustCompile(`(?i)\b(winner|1st|first|champion|gold)\b`)
	secondPlaceRe = regexp.MustCompile(`(?i)\b(runner up|runner-up|2nd|second|silver)\b`)
	thirdPlaceRe  = regexp.MustCompile(`(?i)\b(3rd|third|bronze)\b`)
)

// sectionHeaderWords disqualify a line from being the candidate's name.
var sectionHeaderWords = []string{"skills", "experience", "education", "projects", "summary", "contact"}

// ParseResume extracts text from document bytes and parses it into a
// structured profile. Sub-threshold text yields a *ParseError carrying the
// extraction source, note and a raw-text preview; downstream scoring must
// never run on such input.
func ParseResume(data []byte) (*types.StructuredProfile, error) {
	result := extraction.ExtractText(data)
	return parseText(result.Text, string(result.Source), result.Note)
}

// ParseResumeText parses already-extracted plain text.
func ParseResumeText(text string) (*types.StructuredProfile, error) {
	return parseText(text, "text-input", "")
}

func parseText(raw, source, note string) (*types.StructuredProfile, error) {
	raw = strings.TrimSpace(raw)
	if utf8.RuneCountInString(raw) < minParseableRunes {
		return nil, &ParseError{
			Message:        "no meaningful text to parse",
			RawTextPreview: truncateRunes(raw, previewRunes),
			Source:         source,
			Note:           note,
		}
	}

	skillsByCategory := ExtractSkills(raw)
	profile := &types.StructuredProfile{
		Name:             ExtractName(raw),
		Contact:          ExtractContact(raw),
		SkillsByCategory: skillsByCategory,
		AllSkills:        FlattenSkills(skillsByCategory),
		Roles:            ExtractRoles(raw),
		ExperienceYears:  ExtractExperienceYears(raw),
		Education:        ExtractEducation(raw),
		WorkHistory:      ExtractWorkHistory(raw),
		Achievements:     ExtractAchievements(raw),
		RawTextPreview:   truncateRunes(raw, previewRunes),
		TotalTextLength:  utf8.RuneCountInString(raw),
		ExtractionSource: source,
		ExtractionNote:   note,
	}
	return profile, nil
}

// ExtractContact runs independent regex searches for each contact field;
// the first match wins and unmatched fields stay empty.
func ExtractContact(text string) types.Contact {
	var contact types.Contact
	if m := emailRe.FindString(text); m != "" {
		contact.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		contact.Phone = m
	}
	if m := githubRe.FindString(text); m != "" {
		contact.GitHub = "https://" + m
	}
	if m := linkedinRe.FindString(text); m != "" {
		contact.LinkedIn = "https://" + m
	}
	return contact
}

// ExtractName scans non-empty lines top to bottom and accepts the first one
// that is not a section header, has 2-4 words and contains only letters,
// spaces, apostrophes and hyphens.
func ExtractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if containsAny(lower, sectionHeaderWords) {
			continue
		}
		words := len(strings.Fields(line))
		if words >= 2 && words <= 4 && nameLineRe.MatchString(line) {
			return line
		}
	}
	return ""
}

// ExtractExperienceYears finds "<N>+ years of experience" style phrases and
// returns the maximum N, or 0 when none match.
func ExtractExperienceYears(text string) int {
	matches := experienceRe.FindAllStringSubmatch(strings.ToLower(text), -1)
	years := 0
	for _, m := range matches {
		if n, err := strconv.Atoi(m[1]); err == nil && n > years {
			years = n
		}
	}
	return years
}

// ExtractEducation returns one record per degree tier present in the text.
func ExtractEducation(text string) []types.Education {
	var degrees []types.Education
	for _, dp := range degreePatterns {
		if dp.re.MatchString(text) {
			degrees = append(degrees, types.Education{Degree: dp.label, Field: "Unknown"})
		}
	}
	return degrees
}

// ExtractWorkHistory captures "at/@ <Capitalized phrase>" employer
// candidates, deduplicated case-insensitively in first-seen order and
// capped at maxWorkEntries.
func ExtractWorkHistory(text string) []types.WorkEntry {
	seen := make(map[string]bool)
	var entries []types.WorkEntry
	for _, m := range companyRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, types.WorkEntry{Company: name})
		if len(entries) == maxWorkEntries {
			break
		}
	}
	return entries
}

// ExtractAchievements scans for competition keywords and classifies each hit
// by inspecting a ±120-character window around it for placement keywords.
// The window is sliced from the lowered text the indexes were found in;
// lowercasing can change byte lengths, so indexes into it are not valid
// offsets into the original.
func ExtractAchievements(text string) types.AchievementSignal {
	lower := strings.ToLower(text)
	var signal types.AchievementSignal
	for _, keyword := range achievementKeywords {
		idx := strings.Index(lower, keyword)
		if idx < 0 {
			continue
		}
		start := max(0, idx-120)
		end := min(len(lower), idx+120)
		window := lower[start:end]

		switch {
		case firstPlaceRe.MatchString(window):
			signal.Wins.First++
		case secondPlaceRe.MatchString(window):
			signal.Wins.Second++
		case thirdPlaceRe.MatchString(window):
			signal.Wins.Third++
		default:
			signal.Wins.Participant++
		}
		signal.Total++
	}
	signal.Score = signal.Wins.WeightedScore()
	signal.HasSignal = signal.Total > 0
	return signal
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
