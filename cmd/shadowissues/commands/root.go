// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package commands implements the shadowissues command line.
package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Version is the CLI version.
const Version = "1.0.0"

var (
	cfgFile    string
	verbose    bool
	dryRun     bool
	force      bool
	onlyID     int
	noCache    bool
	noTUI      bool
	maxResults int
	writeDelay time.Duration
	githubURL  string
	feedURL    string
)

var rootCmd = &cobra.Command{
	Use:   "shadowissues [flags] SOURCE_PROJECT TARGET_OWNER/REPO",
	Short: "Create GitHub shadow issues for a Google Code project",
	Long: `Create a "shadow issue" on GitHub for every issue of a Google Code project,
so that issue numbers line up between the two trackers.

SOURCE_PROJECT is the Google Code project name, e.g. "python-markdown2";
TARGET_OWNER/REPO is the GitHub repository, e.g. "trentm/python-markdown2".

A shadow issue is only created when the next GitHub issue number equals the
Google Code issue id. Issues that cannot line up are skipped with a warning.`,
	Version: Version,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Arguments are valid from here on; runtime errors are not usage errors.
		cmd.SilenceUsage = true
		return runMigrate(cmd, args[0], args[1])
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: .github/shadowissues.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute and print decisions without writing to GitHub")
	rootCmd.Flags().BoolVar(&force, "force", false, "Create shadow issues even when issue numbers would not match")
	rootCmd.Flags().IntVar(&onlyID, "only", 0, "Migrate only the source issue with this id")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "Do not use the on-disk HTTP response cache")
	rootCmd.Flags().BoolVar(&noTUI, "no-tui", false, "Print plain progress lines instead of the interactive display")
	rootCmd.Flags().IntVar(&maxResults, "max-results", 0, "Source feed page size (default 1000)")
	rootCmd.Flags().DurationVar(&writeDelay, "write-delay", 0, "Minimum delay between GitHub writes (default 1s)")
	rootCmd.Flags().StringVar(&githubURL, "github-url", "", "GitHub API base URL (for GitHub Enterprise)")
	rootCmd.Flags().StringVar(&feedURL, "feed-url", "", "Source feed host (default https://code.google.com)")
}
