// Package types defines the core data structures shared across extraction,
// embedding, and matching.
package types

// Contact holds contact details pulled from a resume. Fields that did not
// match any pattern are left empty and omitted from JSON output.
type Contact struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Education is a single detected degree. Field is "Unknown" when the
// heuristics cannot determine a field of study.
type Education struct {
	Degree string `json:"degree"`
	Field  string `json:"field"`
}

// WorkEntry is a single detected employer.
type WorkEntry struct {
	Company string `json:"company"`
}

// WinsBreakdown counts achievement placements per tier.
type WinsBreakdown struct {
	First       int `json:"first"`
	Second      int `json:"second"`
	Third       int `json:"third"`
	Finalist    int `json:"finalist"`
	Participant int `json:"participant"`
}

// AchievementSignal summarizes competition-related activity detected in a
// resume (hackathons, challenges, competitions).
type AchievementSignal struct {
	Total     int           `json:"total"`
	Wins      WinsBreakdown `json:"wins_breakdown"`
	Score     int           `json:"score"`
	HasSignal bool          `json:"has_signal"`
}

// WeightedScore returns the tier-weighted achievement score.
func (w WinsBreakdown) WeightedScore() int {
	return w.First*10 + w.Second*7 + w.Third*5 + w.Finalist*3 + w.Participant
}

// StructuredProfile is the output of resume field extraction. All fields are
// best-effort: an absent pattern yields the zero value, never an error.
type StructuredProfile struct {
	Name             string              `json:"name,omitempty"`
	Contact          Contact             `json:"contact"`
	SkillsByCategory map[string][]string `json:"skills_by_category"`
	AllSkills        []string            `json:"all_skills"`
	Roles            []string            `json:"roles"`
	ExperienceYears  int                 `json:"experience_years"`
	Education        []Education         `json:"education"`
	WorkHistory      []WorkEntry         `json:"work_history"`
	Achievements     AchievementSignal   `json:"achievements"`

	// Extraction provenance
	RawTextPreview   string `json:"raw_text_preview,omitempty"`
	TotalTextLength  int    `json:"total_text_length"`
	ExtractionSource string `json:"extraction_source"`
	ExtractionNote   string `json:"extraction_note,omitempty"`
}

// Candidate flattens a parsed resume into a match subject. Skills are the
// deduplicated union across categories; contact and education details are
// dropped because scoring does not consume them.
func (p *StructuredProfile) Candidate() CandidateProfile {
	achievements := p.Achievements
	return CandidateProfile{
		Name:            p.Name,
		Skills:          append([]string(nil), p.AllSkills...),
		Roles:           append([]string(nil), p.Roles...),
		ExperienceYears: p.ExperienceYears,
		Achievements:    &achievements,
	}
}
