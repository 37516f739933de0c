package engine

import (
	"fmt"
	"os"

	"github.com/getlawrence/antiplag/internal/config"
	"github.com/getlawrence/antiplag/internal/detector"
	"github.com/getlawrence/antiplag/internal/detector/commander"
	"github.com/getlawrence/antiplag/internal/languages"
	"github.com/getlawrence/antiplag/internal/logger"
	"github.com/getlawrence/antiplag/internal/sandbox"
)

// FromConfig wires the library backend and one tool backend per configured
// tool-family language. Tool languages without a preset stay unsupported.
func FromConfig(cfg *config.Config, registry *languages.LanguageRegistry, cmd commander.Commander, log logger.Logger) (*Engine, error) {
	log = logger.OrNop(log)

	info, err := os.Stat(cfg.Sandbox.Dir)
	if err != nil {
		return nil, fmt.Errorf("sandbox directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sandbox directory: %s is not a directory", cfg.Sandbox.Dir)
	}
	sb := sandbox.New(cfg.Sandbox.Dir, registry)

	tools := make(map[string]detector.Backend)
	for id, lang := range registry.All() {
		if lang.Family != languages.FamilyTool {
			continue
		}
		tc, ok := cfg.Tools[id]
		if !ok || tc.Command == "" {
			log.Logf("no checker configured for %s\n", id)
			continue
		}
		if _, err := cmd.LookPath(tc.Command); err != nil {
			log.Logf("checker %q for %s not found in PATH\n", tc.Command, id)
		}
		preset := detector.ToolPreset{Command: tc.Command, Args: tc.Args}
		tools[id] = detector.NewToolBackend(id, preset, sb, cmd, cfg.Checker.Timeout.Std(), log)
	}

	return New(registry, detector.NewLibraryBackend(log), tools, log), nil
}
