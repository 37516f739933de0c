// Package detector runs a similarity backend against a reference solution
// and every candidate, producing one normalized score per candidate.
package detector

import (
	"context"

	"github.com/getlawrence/antiplag/internal/domain"
)

// Backend scores candidates against a reference. Exactly two
// implementations exist: LibraryBackend and ToolBackend.
type Backend interface {
	// Name returns a short identifier used in logs
	Name() string
	// Detect returns a score in [0,1] for every candidate, in input order.
	// Any failure aborts the whole call with a *domain.Error.
	Detect(ctx context.Context, refCode string, candidates []domain.Candidate) (*Scores, error)
}

// Scores maps candidate ids to similarity scores and remembers the order in
// which ids were first written. Writing an existing id replaces its value
// in place.
type Scores struct {
	order  []string
	values map[string]float64
}

// NewScores creates an empty score map
func NewScores() *Scores {
	return &Scores{values: make(map[string]float64)}
}

// Set records the score of id.
func (s *Scores) Set(id string, score float64) {
	if _, exists := s.values[id]; !exists {
		s.order = append(s.order, id)
	}
	s.values[id] = score
}

// Get returns the score of id.
func (s *Scores) Get(id string) (float64, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Len returns the number of distinct ids.
func (s *Scores) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Keys returns ids in first-insertion order.
func (s *Scores) Keys() []string {
	return append([]string(nil), s.order...)
}

// Each visits ids in first-insertion order.
func (s *Scores) Each(fn func(id string, score float64)) {
	for _, id := range s.order {
		fn(id, s.values[id])
	}
}
