package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/teammate-matcher/internal/embedding"
	"github.com/jonathan/teammate-matcher/internal/parsing"
)

const (
	// neutralSkillScore applies when the target states no skill
	// requirements: "no requirement" is not "no match".
	neutralSkillScore = 0.5

	// neutralEmbeddingScore applies when either side has no embedding.
	neutralEmbeddingScore = 0.5

	complementaryBonusPerSkill = 0.05
	maxComplementaryBonus      = 0.2

	// defaultMaxExperience is the assumed ceiling when the target states no
	// upper bound.
	defaultMaxExperience = 10
)

// skillOverlap scores how well the subject's skills cover the target's
// required skills. Comparison happens on normalized forms; the returned
// shared list carries the target's literal spellings and the complementary
// list the subject's, both sorted for determinism.
func skillOverlap(subjectSkills, requiredSkills []string) (float64, []string, []string) {
	if len(requiredSkills) == 0 {
		return neutralSkillScore, nil, nil
	}

	subjectByNorm := make(map[string]string, len(subjectSkills))
	for _, s := range subjectSkills {
		if norm := parsing.NormalizeSkill(s); norm != "" {
			subjectByNorm[norm] = s
		}
	}
	requiredByNorm := make(map[string]string, len(requiredSkills))
	for _, s := range requiredSkills {
		if norm := parsing.NormalizeSkill(s); norm != "" {
			requiredByNorm[norm] = s
		}
	}

	var shared, complementary []string
	for norm, literal := range requiredByNorm {
		if _, ok := subjectByNorm[norm]; ok {
			shared = append(shared, literal)
		}
	}
	for norm, literal := range subjectByNorm {
		if _, ok := requiredByNorm[norm]; !ok {
			complementary = append(complementary, literal)
		}
	}
	sort.Strings(shared)
	sort.Strings(complementary)

	overlapRatio := float64(len(shared)) / float64(len(requiredByNorm))
	bonus := min(float64(len(complementary))*complementaryBonusPerSkill, maxComplementaryBonus)
	return min(overlapRatio+bonus, 1.0), shared, complementary
}

// embeddingScore is the cosine similarity of the two embeddings, or a
// neutral value when either side has never been embedded.
func embeddingScore(subject, target []float32) float64 {
	if len(subject) == 0 || len(target) == 0 {
		return neutralEmbeddingScore
	}
	return embedding.CosineSimilarity(subject, target)
}

// roleMatch returns the case-insensitive overlap ratio against required
// roles and the sorted matched role list. No required roles means the
// factor is not applicable and scores full credit, not zero.
func roleMatch(subjectRoles, requiredRoles []string) (float64, []string) {
	if len(requiredRoles) == 0 {
		return 1.0, nil
	}

	subjectSet := make(map[string]bool, len(subjectRoles))
	for _, r := range subjectRoles {
		subjectSet[strings.ToLower(r)] = true
	}
	requiredSet := make(map[string]bool, len(requiredRoles))
	for _, r := range requiredRoles {
		requiredSet[strings.ToLower(r)] = true
	}

	var matched []string
	for role := range requiredSet {
		if subjectSet[role] {
			matched = append(matched, role)
		}
	}
	sort.Strings(matched)
	return float64(len(matched)) / float64(len(requiredSet)), matched
}

// experienceFit scores how the subject's years fall against the target's
// range. Underqualification is penalized more steeply than
// overqualification, with floors at 0.5 and 0.7 respectively.
func experienceFit(years, minExp, maxExp int) float64 {
	if maxExp <= 0 {
		maxExp = defaultMaxExperience
	}
	if years < minExp {
		gap := float64(minExp - years)
		return max(0.5, 1.0-gap*0.15)
	}
	if years > maxExp {
		gap := float64(years - maxExp)
		return max(0.7, 1.0-gap*0.05)
	}
	return 1.0
}

// availabilityScore compares timezones. An unknown timezone on either side
// is treated as non-blocking.
func availabilityScore(subjectTZ, targetTZ string) float64 {
	if subjectTZ == "" || targetTZ == "" {
		return 1.0
	}
	if subjectTZ == targetTZ {
		return 1.0
	}
	return 0.8
}

// buildReasons generates explanation sentences in fixed priority order.
// Each condition appends at most one sentence; absent conditions are
// omitted entirely.
func buildReasons(shared []string, requiredCount int, matchedRoles, complementary []string, embScore float64) []string {
	var reasons []string
	if len(shared) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d/%d required skills matched", len(shared), requiredCount))
	}
	if float64(len(shared)) >= max(1.0, float64(requiredCount)*0.8) {
		reasons = append(reasons, "Strong skill match!")
	}
	if len(matchedRoles) > 0 {
		reasons = append(reasons, "Role fit: "+strings.Join(matchedRoles, ", "))
	}
	if len(complementary) >= 3 {
		reasons = append(reasons, fmt.Sprintf("+%d bonus skills", len(complementary)))
	}
	if embScore > 0.7 {
		reasons = append(reasons, fmt.Sprintf("Profile similarity: %.0f%%", embScore*100))
	}
	return reasons
}
