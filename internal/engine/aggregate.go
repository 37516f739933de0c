package engine

import (
	"fmt"
	"math"

	"github.com/getlawrence/antiplag/internal/detector"
	"github.com/getlawrence/antiplag/internal/domain"
)

// PickWinner selects the candidate with the highest score. Ties go to the
// id inserted first. A maximum of exactly 0 means no plagiarism: the result
// carries no id.
func PickWinner(scores *detector.Scores) (*domain.CheckResult, error) {
	if scores.Len() == 0 {
		return nil, domain.NewCandidatesError("no candidate scores to compare")
	}

	var (
		winner string
		best   = math.Inf(-1)
		bad    error
	)
	scores.Each(func(id string, score float64) {
		if bad != nil {
			return
		}
		if math.IsNaN(score) {
			bad = domain.NewCandidatesError(fmt.Sprintf("score of candidate %s is not comparable: %v", id, score))
			return
		}
		if score > best {
			best = score
			winner = id
		}
	})
	if bad != nil {
		return nil, bad
	}

	if best == 0 {
		return &domain.CheckResult{Percent: 0}, nil
	}
	return &domain.CheckResult{UUID: &winner, Percent: best}, nil
}
