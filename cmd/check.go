package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/getlawrence/antiplag/internal/detector/commander"
	"github.com/getlawrence/antiplag/internal/domain"
	"github.com/getlawrence/antiplag/internal/engine"
	"github.com/getlawrence/antiplag/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check --ref FILE CANDIDATE...",
	Short: "Find the candidate most similar to a reference solution",
	Long: `Check compares every candidate file against the reference file and
prints the most similar candidate with its similarity in [0, 1].

Candidates are given as paths; the candidate id is the file name unless the
argument has the form ID=PATH. The language is inferred from the reference
file unless --lang is set.

Example usage:
  antiplag check --ref solution.py a.py b.py
  antiplag check --ref Main.java --lang java s1=one/Main.java s2=two/Main.java
  antiplag check --ref ref.cpp -o json *.cpp`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("ref", "r", "", "reference solution file")
	checkCmd.Flags().StringP("lang", "l", "", "language id (python, cpp, java); inferred from --ref when empty")
	_ = checkCmd.MarkFlagRequired("ref")
}

func runCheck(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)
	refPath, _ := cmd.Flags().GetString("ref")
	lang, _ := cmd.Flags().GetString("lang")

	input, err := buildCheckInput(app, refPath, lang, args)
	if err != nil {
		return err
	}
	app.Logger.Logf("Checking %d candidate(s) as %s\n", len(input.Candidates), input.Lang)

	e, err := engine.FromConfig(app.Config, app.Registry, commander.NewReal(), app.Logger)
	if err != nil {
		return err
	}

	// interrupts cancel the check so backends release their sandbox files
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var result *domain.CheckResult
	runErr := ui.RunSpinner(ctx, "Checking candidates...", func(ctx context.Context) error {
		var checkErr error
		result, checkErr = e.Check(ctx, input)
		return checkErr
	})
	if runErr != nil {
		return runErr
	}

	return writeResult(cmd.OutOrStdout(), app.Config.Output.Format, input, result, app.Config.Output.Color && ui.IsInteractive())
}

func buildCheckInput(app *AppConfig, refPath, lang string, args []string) (domain.CheckInput, error) {
	ref, err := os.ReadFile(refPath)
	if err != nil {
		return domain.CheckInput{}, fmt.Errorf("failed to read reference: %w", err)
	}
	if lang == "" {
		lang, err = app.Registry.DetectFile(refPath, ref)
		if err != nil {
			return domain.CheckInput{}, fmt.Errorf("%w; use --lang", err)
		}
	}

	input := domain.CheckInput{Lang: lang, RefCode: string(ref)}
	for _, arg := range args {
		id, path := splitCandidateArg(arg)
		code, err := os.ReadFile(path)
		if err != nil {
			return domain.CheckInput{}, fmt.Errorf("failed to read candidate: %w", err)
		}
		input.Candidates = append(input.Candidates, domain.Candidate{UUID: id, Code: string(code)})
	}
	return input, nil
}

// splitCandidateArg accepts PATH or ID=PATH.
func splitCandidateArg(arg string) (id, path string) {
	if before, after, ok := strings.Cut(arg, "="); ok && before != "" && after != "" {
		return before, after
	}
	return filepath.Base(arg), arg
}

func writeResult(w io.Writer, format string, input domain.CheckInput, result *domain.CheckResult, color bool) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(result)
	default:
		_, err := fmt.Fprint(w, ui.RenderResult(input, result, color))
		return err
	}
}
