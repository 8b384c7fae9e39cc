// Package cmd implements the CLI commands for lyricpipe using Cobra.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lyricpipe/config"
)

// Global flag variables.
var (
	flagVerbose int
	flagConfig  string
)

// cfg is loaded before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "lyricpipe",
	Short: "Fetch Korean lyrics and their English translations laid out side by side",
	Long: `lyricpipe fetches Korean lyrics and English translations from lyrics sites,
aligns them stanza by stanza, and writes a document that is easy to print.

Usage:
  lyricpipe get <endpoint> [flags]
  lyricpipe search <query> [flags]
  lyricpipe serve`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(flagVerbose)
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "Increase logging verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: <user config dir>/lyric_fetcher/config.toml)")
}

// setupLogging installs a text handler on stderr. Each -v lowers the level
// one step from warn.
func setupLogging(verbosity int) {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// Execute runs the root command. An interrupted run exits cleanly.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(os.Stderr)
			return
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
