package cmd

import (
	"context"
	"fmt"

	"github.com/getlawrence/antiplag/internal/config"
	"github.com/getlawrence/antiplag/internal/languages"
	"github.com/getlawrence/antiplag/internal/logger"
	"github.com/spf13/cobra"
)

// Context key for configuration
const ConfigKey = "config"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "antiplag",
	Short: "Source code plagiarism checker",
	Long: `Antiplag compares candidate submissions against a reference solution
and reports the candidate most similar to it.

Python is compared in-process on normalized syntax trees; C++ and Java are
handed to an external checker (sim_c++, sim_java by default).`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	app := NewAppConfig(nil, languages.DefaultRegistry, nil) // filled in by loadAppConfig
	ctx := context.WithValue(context.Background(), ConfigKey, app)
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().String("config", "", "config file (default .antiplag.yaml in cwd or home)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before the config")
}

func loadAppConfig(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)

	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if format, _ := cmd.Flags().GetString("output"); format != "" {
		cfg.Output.Format = format
	}
	app.Config = cfg

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		app.Logger = &logger.StdoutLogger{}
	} else {
		app.Logger = logger.Nop{}
	}
	return nil
}

func appConfig(cmd *cobra.Command) *AppConfig {
	if app, ok := cmd.Context().Value(ConfigKey).(*AppConfig); ok {
		return app
	}
	// commands executed without Execute, e.g. from tests
	app := NewAppConfig(config.DefaultConfig(), languages.DefaultRegistry, logger.Nop{})
	cmd.SetContext(context.WithValue(cmd.Context(), ConfigKey, app))
	return app
}
