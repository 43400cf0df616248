// Package cli defines Cobra command definitions for the parley CLI.
// This file contains the root command, version flag, and shared helpers.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parley-dev/parley/internal/config"
	"github.com/parley-dev/parley/internal/log"
	"github.com/parley-dev/parley/internal/tui"
	"github.com/parley-dev/parley/internal/tui/app"
)

var (
	urlFlag string
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Terminal chat client for tunnel-exposed dev APIs",
	Long: `Parley is a developer chat interface for quick conversations with a
dev API endpoint (typically exposed through an ngrok-style tunnel).
It keeps a per-session sender ID, retries transient network failures,
and renders the transcript in the terminal.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise.
		if !tui.IsTTY() {
			return cmd.Help()
		}

		cfg := loadConfig()
		logger, err := newLogger()
		if err != nil {
			return err
		}

		tuiApp := app.New(cfg, logger)
		return tui.Run(tuiApp)
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads .parley/config.yaml from the working directory, falling
// back to defaults when the file is missing or invalid.
func loadConfig() *config.Config {
	dir, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.ReadConfig(dir)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// newLogger creates the JSONL event logger in the working directory.
func newLogger() (*log.Logger, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	return log.NewLogger(dir)
}

// resolveURL picks the effective API base URL: --url flag, then the
// PARLEY_API_URL environment variable, then the configured value.
func resolveURL(cfg *config.Config) (string, error) {
	if urlFlag != "" {
		return urlFlag, nil
	}
	if url := cfg.BaseURL(); url != "" {
		return url, nil
	}
	return "", fmt.Errorf("no API URL configured: pass --url, set %s, or run 'parley init --url <url>'", config.EnvBaseURLVar)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "API base URL (overrides config and environment)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(askCmd)
}
