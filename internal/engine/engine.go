// Package engine is the entry point of a plagiarism check: it picks the
// backend for the requested language, runs it and aggregates the scores.
package engine

import (
	"context"
	"errors"

	"github.com/getlawrence/antiplag/internal/detector"
	"github.com/getlawrence/antiplag/internal/domain"
	"github.com/getlawrence/antiplag/internal/languages"
	"github.com/getlawrence/antiplag/internal/logger"
)

// Engine performs no file or process I/O itself.
type Engine struct {
	registry *languages.LanguageRegistry
	library  detector.Backend
	tools    map[string]detector.Backend
	logger   logger.Logger
}

// New creates an engine. library serves every library-family language,
// tools holds one backend per tool-family language id.
func New(registry *languages.LanguageRegistry, library detector.Backend, tools map[string]detector.Backend, log logger.Logger) *Engine {
	return &Engine{
		registry: registry,
		library:  library,
		tools:    tools,
		logger:   logger.OrNop(log),
	}
}

// Check scores every candidate against the reference and returns the most
// similar one. Every error returned is a *domain.Error.
func (e *Engine) Check(ctx context.Context, input domain.CheckInput) (*domain.CheckResult, error) {
	backend, err := e.backendFor(input.Lang)
	if err != nil {
		return nil, err
	}

	e.logger.Logf("checking %d candidate(s) with %s backend\n", len(input.Candidates), backend.Name())
	scores, err := backend.Detect(ctx, input.RefCode, input.Candidates)
	if err != nil {
		return nil, classify(err)
	}

	result, err := PickWinner(scores)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) backendFor(lang string) (detector.Backend, error) {
	family, err := e.registry.Classify(lang)
	if err != nil {
		return nil, err
	}

	var backend detector.Backend
	switch family {
	case languages.FamilyLibrary:
		backend = e.library
	case languages.FamilyTool:
		backend = e.tools[lang]
	}
	if backend == nil {
		return nil, domain.NewLanguageError(lang)
	}
	return backend, nil
}

// classify keeps every failure inside the domain error family.
func classify(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return domain.NewCheckerError(err.Error(), err)
}
