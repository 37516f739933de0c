package detector

import (
	"context"
	"errors"
	"fmt"

	"github.com/getlawrence/antiplag/internal/detector/parser"
	"github.com/getlawrence/antiplag/internal/domain"
	"github.com/getlawrence/antiplag/internal/logger"
	"github.com/getlawrence/antiplag/internal/similarity"
)

// CompareFunc is the in-process similarity library call.
type CompareFunc func(ctx context.Context, sources []string, opts similarity.Options) ([]similarity.Report, error)

// LibraryBackend compares sources in-process; no files or processes are involved.
type LibraryBackend struct {
	compare CompareFunc
	opts    similarity.Options
	logger  logger.Logger
}

// NewLibraryBackend creates a backend over the similarity package comparing
// whole modules with print calls kept.
func NewLibraryBackend(log logger.Logger) *LibraryBackend {
	return NewLibraryBackendWith(similarity.Detect, log)
}

// NewLibraryBackendWith creates a backend over a custom comparison function
func NewLibraryBackendWith(compare CompareFunc, log logger.Logger) *LibraryBackend {
	return &LibraryBackend{
		compare: compare,
		opts:    similarity.Options{ModuleLevel: true, KeepPrints: true},
		logger:  logger.OrNop(log),
	}
}

func (b *LibraryBackend) Name() string { return "library" }

// Detect scores each candidate with one library call. A syntax error in
// either source aborts the request with a checker error.
func (b *LibraryBackend) Detect(ctx context.Context, refCode string, candidates []domain.Candidate) (*Scores, error) {
	scores := NewScores()
	for _, c := range candidates {
		percent, err := b.score(ctx, refCode, c)
		if err != nil {
			return nil, err
		}
		b.logger.Logf("candidate %s scored %.4f\n", c.UUID, percent)
		scores.Set(c.UUID, percent)
	}
	return scores, nil
}

func (b *LibraryBackend) score(ctx context.Context, refCode string, c domain.Candidate) (float64, error) {
	reports, err := b.compare(ctx, []string{refCode, c.Code}, b.opts)
	if err != nil {
		var syntaxErr *similarity.SyntaxError
		if errors.As(err, &syntaxErr) {
			source := "reference"
			if syntaxErr.Index > 0 {
				source = "candidate " + c.UUID
			}
			return 0, domain.NewCheckerError(
				fmt.Sprintf("%s: invalid syntax at line %d, column %d", source, syntaxErr.Row, syntaxErr.Column),
				err,
			)
		}
		return 0, domain.NewCheckerError(err.Error(), err)
	}

	if len(reports) == 0 || len(reports[0].Diffs) == 0 {
		return 0, domain.NewParsingError(fmt.Sprintf("no diff record for candidate %s", c.UUID))
	}
	return parser.ParseLibraryOutput(reports[0].Diffs[0].String())
}
