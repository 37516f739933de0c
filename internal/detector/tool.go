package detector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getlawrence/antiplag/internal/detector/commander"
	"github.com/getlawrence/antiplag/internal/detector/parser"
	"github.com/getlawrence/antiplag/internal/domain"
	"github.com/getlawrence/antiplag/internal/logger"
	"github.com/getlawrence/antiplag/internal/sandbox"
)

// DefaultTimeout bounds a single detector process.
const DefaultTimeout = 30 * time.Second

// ToolPreset is the external command and fixed flags used for one language.
type ToolPreset struct {
	Command string
	Args    []string
}

// ToolBackend runs an external detector over sandbox files:
//
//	<command> <args...> <reference path> <candidate path>
type ToolBackend struct {
	lang      string
	preset    ToolPreset
	sandbox   *sandbox.Manager
	commander commander.Commander
	timeout   time.Duration
	logger    logger.Logger
}

// NewToolBackend creates a backend for lang. A non-positive timeout falls
// back to DefaultTimeout.
func NewToolBackend(lang string, preset ToolPreset, sb *sandbox.Manager, cmd commander.Commander, timeout time.Duration, log logger.Logger) *ToolBackend {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ToolBackend{
		lang:      lang,
		preset:    preset,
		sandbox:   sb,
		commander: cmd,
		timeout:   timeout,
		logger:    logger.OrNop(log),
	}
}

func (b *ToolBackend) Name() string { return "tool:" + b.preset.Command }

// Detect writes the reference once and every candidate to its own file.
// All files are removed before Detect returns, whatever the outcome.
func (b *ToolBackend) Detect(ctx context.Context, refCode string, candidates []domain.Candidate) (*Scores, error) {
	ref, err := b.sandbox.Create(refCode, b.lang)
	if err != nil {
		return nil, b.sandboxError("reference", err)
	}
	defer b.release(ref)

	scores := NewScores()
	for _, c := range candidates {
		percent, err := b.score(ctx, ref, c)
		if err != nil {
			return nil, err
		}
		b.logger.Logf("candidate %s scored %.4f\n", c.UUID, percent)
		scores.Set(c.UUID, percent)
	}
	return scores, nil
}

func (b *ToolBackend) score(ctx context.Context, ref *sandbox.File, c domain.Candidate) (float64, error) {
	cand, err := b.sandbox.Create(c.Code, b.lang)
	if err != nil {
		return 0, b.sandboxError("candidate "+c.UUID, err)
	}
	defer b.release(cand)

	runCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	args := make([]string, 0, len(b.preset.Args)+2)
	args = append(args, b.preset.Args...)
	args = append(args, ref.Path, cand.Path)

	output, err := b.commander.Run(runCtx, b.preset.Command, args, b.sandbox.Dir())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, domain.NewCheckerError(
				fmt.Sprintf("%s timed out after %s on candidate %s", b.preset.Command, b.timeout, c.UUID), err)
		}
		details := strings.TrimSpace(output)
		if details == "" {
			details = err.Error()
		}
		return 0, domain.NewCheckerError(details, err)
	}
	return parser.ParseToolOutput(output)
}

func (b *ToolBackend) sandboxError(what string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return domain.NewCheckerError(fmt.Sprintf("failed to prepare %s: %v", what, err), err)
}

func (b *ToolBackend) release(f *sandbox.File) {
	if err := b.sandbox.Release(f); err != nil {
		b.logger.Logf("warning: %v\n", err)
	}
}
