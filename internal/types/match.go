package types

// CandidateProfile is the person side of a match: either a registered user
// or a pseudo-profile derived from a parsed resume. Embedding may be nil if
// it was never computed; scoring substitutes a neutral similarity in that
// case.
type CandidateProfile struct {
	ID              string             `json:"id,omitempty"`
	Name            string             `json:"name,omitempty"`
	Bio             string             `json:"bio,omitempty"`
	Skills          []string           `json:"skills"`
	Roles           []string           `json:"roles"`
	ExperienceYears int                `json:"experience_years"`
	Timezone        string             `json:"timezone,omitempty"`
	Interests       []string           `json:"interests,omitempty"`
	ProjectTypes    []string           `json:"project_types,omitempty"`
	Achievements    *AchievementSignal `json:"achievements,omitempty"`
	Embedding       []float32          `json:"embedding,omitempty"`
}

// ProjectTarget is the target side of a match: a project looking for
// collaborators. MaxExperience <= 0 means "no upper bound stated" and is
// treated as the default ceiling by the scoring engine.
type ProjectTarget struct {
	ID             string    `json:"id,omitempty"`
	Title          string    `json:"title,omitempty"`
	Description    string    `json:"description,omitempty"`
	RequiredSkills []string  `json:"required_skills"`
	RequiredRoles  []string  `json:"required_roles"`
	MinExperience  int       `json:"min_experience"`
	MaxExperience  int       `json:"max_experience"`
	Timezone       string    `json:"timezone,omitempty"`
	ProjectType    string    `json:"project_type,omitempty"`
	Embedding      []float32 `json:"embedding,omitempty"`
}

// TeammateRequest describes what an existing project member is looking for.
type TeammateRequest struct {
	ProjectIdea      string   `json:"project_idea,omitempty"`
	LookingForRoles  []string `json:"looking_for_roles,omitempty"`
	LookingForSkills []string `json:"looking_for_skills,omitempty"`
}

// Target converts a candidate into a match target so that a project (or
// another user) can rank users. The candidate's own skills and roles become
// the "required" side of the comparison; experience bounds are left open.
func (c *CandidateProfile) Target() ProjectTarget {
	return ProjectTarget{
		ID:             c.ID,
		Title:          c.Name,
		Description:    c.Bio,
		RequiredSkills: append([]string(nil), c.Skills...),
		RequiredRoles:  append([]string(nil), c.Roles...),
		Timezone:       c.Timezone,
		Embedding:      c.Embedding,
	}
}

// MatchResult is the scored outcome of comparing one subject against one
// target. It is immutable once produced and owned by the caller.
type MatchResult struct {
	TargetID            string   `json:"target_id"`
	Score               float64  `json:"score"`
	Reasons             []string `json:"reasons"`
	SharedSkills        []string `json:"shared_skills"`
	ComplementarySkills []string `json:"complementary_skills"`
}
