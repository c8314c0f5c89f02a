// Package matching scores match subjects against targets and ranks
// candidate sets. Scoring is deterministic: identical inputs always produce
// identical results, and no state is shared between calls.
package matching

import (
	"fmt"

	"github.com/jonathan/teammate-matcher/internal/types"
)

// Weights are the tunable blend factors for the five sub-scores. They were
// chosen empirically; a higher weight makes that factor more decisive.
type Weights struct {
	SkillOverlap        float64 `json:"skill_overlap" validate:"gte=0,lte=1"`
	EmbeddingSimilarity float64 `json:"embedding_similarity" validate:"gte=0,lte=1"`
	RoleMatch           float64 `json:"role_match" validate:"gte=0,lte=1"`
	ExperienceFit       float64 `json:"experience_fit" validate:"gte=0,lte=1"`
	Availability        float64 `json:"availability" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the standard blend, dominated by direct skill
// overlap with semantic similarity second.
func DefaultWeights() Weights {
	return Weights{
		SkillOverlap:        0.45,
		EmbeddingSimilarity: 0.25,
		RoleMatch:           0.15,
		ExperienceFit:       0.06,
		Availability:        0.04,
	}
}

const (
	// sharedSkillBoost is added per shared skill after the weighted sum so
	// candidates with more exact matches win ties.
	sharedSkillBoost    = 0.02
	maxSharedSkillBoost = 0.12
)

// Engine computes match scores between subjects and targets.
type Engine struct {
	weights Weights
}

// NewEngine creates an engine with the given weights.
func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// NewDefaultEngine creates an engine with DefaultWeights.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultWeights())
}

// Score computes the blended match score between a subject and a target.
// The returned result is immutable and owned by the caller.
func (e *Engine) Score(subject *types.CandidateProfile, target *types.ProjectTarget) (types.MatchResult, error) {
	if subject == nil {
		return types.MatchResult{}, fmt.Errorf("score: subject is nil")
	}
	if target == nil {
		return types.MatchResult{}, fmt.Errorf("score: target is nil")
	}

	skillScore, shared, complementary := skillOverlap(subject.Skills, target.RequiredSkills)
	embScore := embeddingScore(subject.Embedding, target.Embedding)
	roleScore, matchedRoles := roleMatch(subject.Roles, target.RequiredRoles)
	expScore := experienceFit(subject.ExperienceYears, target.MinExperience, target.MaxExperience)
	availScore := availabilityScore(subject.Timezone, target.Timezone)

	score := skillScore*e.weights.SkillOverlap +
		embScore*e.weights.EmbeddingSimilarity +
		roleScore*e.weights.RoleMatch +
		expScore*e.weights.ExperienceFit +
		availScore*e.weights.Availability

	score += min(float64(len(shared))*sharedSkillBoost, maxSharedSkillBoost)
	score = clamp01(score)

	return types.MatchResult{
		TargetID:            target.ID,
		Score:               score,
		Reasons:             buildReasons(shared, len(target.RequiredSkills), matchedRoles, complementary, embScore),
		SharedSkills:        shared,
		ComplementarySkills: complementary,
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
