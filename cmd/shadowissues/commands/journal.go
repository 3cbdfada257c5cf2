// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/similigh/shadowissues/internal/core/state"
)

var journalRunID string

// journalCmd lists the writes recorded by a previous run.
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the GitHub writes recorded by the last run",
	Long: `Show the shadow issues created and closed by the most recent run, as recorded
in the local cache database. Useful to inspect a run that aborted part way.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runJournal(cmd)
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)

	journalCmd.Flags().StringVar(&journalRunID, "run", "", "Show this run id instead of the last run")
}

func runJournal(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(out)
	if err != nil {
		return err
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, state.DefaultFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	store, err := state.Open(cmd.Context(), path)
	if err != nil {
		return err
	}
	defer store.Close()

	var entries []state.Entry
	if journalRunID != "" {
		entries, err = store.Run(cmd.Context(), journalRunID)
	} else {
		entries, err = store.LastRun(cmd.Context())
	}
	if err != nil {
		return err
	}

	printJournal(out, entries)
	return nil
}

func printJournal(out io.Writer, entries []state.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return
	}

	first := entries[0]
	fmt.Fprintf(out, "Run %s: %s -> %s", first.RunID, first.Source, first.Target)
	if first.Actor != "" {
		fmt.Fprintf(out, " (by %s)", first.Actor)
	}
	fmt.Fprintln(out)

	for _, e := range entries {
		fmt.Fprintf(out, "  %s  %-6s issue %d -> #%d\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Action, e.SourceID, e.TargetNumber)
	}
}
