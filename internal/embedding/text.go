// Package embedding renders structured records into descriptive text and
// maps that text to fixed-length semantic vectors.
package embedding

import (
	"fmt"
	"strings"

	"github.com/jonathan/teammate-matcher/internal/types"
)

// Field budgets. Long free-text fields are truncated before inclusion so
// one verbose field cannot dominate the vector, and skill lists are capped
// to bound embedding input size.
const (
	maxBioChars         = 200
	maxDescriptionChars = 300
	maxIdeaChars        = 200
	maxSkillsInText     = 20
	maxInterestsInText  = 5
)

// fieldSeparator joins the synthesized parts in fixed order.
const fieldSeparator = " | "

// Kind selects which synthesis layout applies to a record.
type Kind string

const (
	KindProfile Kind = "profile"
	KindProject Kind = "project"
	KindRequest Kind = "request"
)

// ProfileText renders a candidate profile for embedding. The downstream
// model weights term frequency, so skills are repeated three times and
// roles twice under different phrasings to bias the vector toward them.
func ProfileText(p *types.CandidateProfile) string {
	var parts []string

	if len(p.Roles) > 0 {
		roles := strings.Join(p.Roles, ", ")
		parts = append(parts, "Roles: "+roles, "Position: "+roles)
	}

	if skills := capList(p.Skills, maxSkillsInText); len(skills) > 0 {
		joined := strings.Join(skills, ", ")
		parts = append(parts,
			"Technical Skills: "+joined,
			"Expertise: "+joined,
			"Proficient in: "+joined,
		)
	}

	if p.ExperienceYears > 0 {
		parts = append(parts, fmt.Sprintf("Experience: %d years, %s level",
			p.ExperienceYears, experienceLevel(p.ExperienceYears)))
	}

	if line := achievementLine(p.Achievements); line != "" {
		parts = append(parts, line)
	}

	if p.Bio != "" {
		parts = append(parts, "About: "+truncate(p.Bio, maxBioChars))
	}

	if interests := capList(p.Interests, maxInterestsInText); len(interests) > 0 {
		parts = append(parts, "Interests: "+strings.Join(interests, ", "))
	}

	if len(p.ProjectTypes) > 0 {
		parts = append(parts, "Looking to build: "+strings.Join(p.ProjectTypes, ", "))
	}

	return strings.Join(parts, fieldSeparator)
}

// ProjectText renders a project target for embedding, with required skills
// repeated three times and required roles twice.
func ProjectText(t *types.ProjectTarget) string {
	var parts []string

	if t.Title != "" {
		parts = append(parts, "Project: "+t.Title)
	}
	if t.Description != "" {
		parts = append(parts, "Description: "+truncate(t.Description, maxDescriptionChars))
	}

	if len(t.RequiredRoles) > 0 {
		roles := strings.Join(t.RequiredRoles, ", ")
		parts = append(parts, "Looking for: "+roles, "Need: "+roles)
	}

	if skills := capList(t.RequiredSkills, maxSkillsInText); len(skills) > 0 {
		joined := strings.Join(skills, ", ")
		parts = append(parts,
			"Required skills: "+joined,
			"Tech stack: "+joined,
			"Technologies: "+joined,
		)
	}

	minExp, maxExp := t.MinExperience, t.MaxExperience
	if maxExp <= 0 {
		maxExp = 10
	}
	if minExp > 0 || maxExp < 10 {
		parts = append(parts, fmt.Sprintf("Experience needed: %d-%d years", minExp, maxExp))
	}

	if t.ProjectType != "" {
		parts = append(parts, "Category: "+t.ProjectType)
	}

	return strings.Join(parts, fieldSeparator)
}

// RequestText renders a teammate request for embedding, with the wanted
// skills repeated three times and wanted roles twice.
func RequestText(r *types.TeammateRequest) string {
	var parts []string

	if r.ProjectIdea != "" {
		parts = append(parts, "Building: "+truncate(r.ProjectIdea, maxIdeaChars))
	}

	if len(r.LookingForRoles) > 0 {
		roles := strings.Join(r.LookingForRoles, ", ")
		parts = append(parts, "Looking for: "+roles, "Need teammates with roles: "+roles)
	}

	if len(r.LookingForSkills) > 0 {
		skills := strings.Join(r.LookingForSkills, ", ")
		parts = append(parts,
			"Need skills: "+skills,
			"Required expertise: "+skills,
			"Tech stack: "+skills,
		)
	}

	return strings.Join(parts, fieldSeparator)
}

// experienceLevel buckets years of experience into a level label.
func experienceLevel(years int) string {
	switch {
	case years <= 1:
		return "Junior"
	case years <= 3:
		return "Mid-level"
	case years <= 7:
		return "Senior"
	default:
		return "Expert"
	}
}

// achievementLine phrases the achievement signal, strongest form first.
func achievementLine(a *types.AchievementSignal) string {
	if a == nil || !a.HasSignal {
		return ""
	}
	switch {
	case a.Wins.First > 0:
		return fmt.Sprintf("Hackathon winner with %d wins", a.Wins.First)
	case a.Wins.Second > 0:
		return "Experienced hackathon participant with top placements"
	case a.Total >= 3:
		return "Active hackathon participant"
	default:
		return ""
	}
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
