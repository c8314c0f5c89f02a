package matching

import (
	"log"
	"sort"

	"github.com/jonathan/teammate-matcher/internal/types"
)

// defaultTopK applies when the caller passes a non-positive limit.
const defaultTopK = 20

// Rank scores the subject against every target and returns the top-k
// results ordered by score descending, breaking ties by shared-skill count.
// A failure on one target is logged and that target dropped; the batch
// continues.
func (e *Engine) Rank(subject *types.CandidateProfile, targets []*types.ProjectTarget, topK int) []types.MatchResult {
	results := make([]types.MatchResult, 0, len(targets))
	for _, target := range targets {
		result, err := e.Score(subject, target)
		if err != nil {
			log.Printf("skipping target in ranking: %v", err)
			continue
		}
		results = append(results, result)
	}
	return sortAndTruncate(results, topK)
}

// RankCandidates ranks candidate users against a project. Each result's
// TargetID identifies the candidate, since here the users are the side
// being matched against.
func (e *Engine) RankCandidates(project *types.ProjectTarget, candidates []*types.CandidateProfile, topK int) []types.MatchResult {
	results := make([]types.MatchResult, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil {
			log.Printf("skipping nil candidate in ranking")
			continue
		}
		result, err := e.Score(candidate, project)
		if err != nil {
			log.Printf("skipping candidate %q in ranking: %v", candidate.ID, err)
			continue
		}
		result.TargetID = candidate.ID
		results = append(results, result)
	}
	return sortAndTruncate(results, topK)
}

// sortAndTruncate orders results by score descending, then shared-skill
// count descending. The sort is stable so equal pairs keep encounter order.
func sortAndTruncate(results []types.MatchResult, topK int) []types.MatchResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return len(results[i].SharedSkills) > len(results[j].SharedSkills)
	})
	if topK <= 0 {
		topK = defaultTopK
	}
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}
