// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/similigh/shadowissues/internal/core/config"
	"github.com/similigh/shadowissues/internal/core/credentials"
	"github.com/similigh/shadowissues/internal/core/migrate"
	"github.com/similigh/shadowissues/internal/core/state"
	"github.com/similigh/shadowissues/internal/integrations/github"
	"github.com/similigh/shadowissues/internal/integrations/googlecode"
	"github.com/similigh/shadowissues/internal/integrations/httpcache"
	"github.com/similigh/shadowissues/internal/tui"
)

func runMigrate(cmd *cobra.Command, project, repoRef string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	owner, repo, err := github.SplitRepo(repoRef)
	if err != nil {
		return err
	}

	// 1. Load Configuration
	cfg, err := loadConfig(out)
	if err != nil {
		return err
	}
	applyConfigOverrides(cmd, cfg)

	// 2. Resolve credentials once
	creds, err := resolveCredentials(cfg)
	if err != nil {
		if !dryRun {
			return err
		}
		fmt.Fprintf(out, "⚠ Warning: %v; reading GitHub anonymously for the dry run\n", err)
	}
	if verbose && creds.Login != "" {
		fmt.Fprintf(out, "Using GitHub credentials %s\n", creds)
	}

	// 3. Local state: response cache and journal
	var store *state.Store
	if !cfg.Cache.Disabled {
		dir, err := cfg.CacheDir()
		if err != nil {
			return err
		}
		store, err = state.Open(ctx, filepath.Join(dir, state.DefaultFileName))
		if err != nil {
			return err
		}
		defer store.Close()
		if verbose {
			fmt.Fprintf(out, "Using cache database %s\n", store.Path())
		}
	}

	var (
		cache     httpcache.Cache
		respCache *httpcache.SQLiteCache
	)
	if store != nil && !noCache {
		respCache, err = httpcache.NewSQLiteCache(ctx, store.DB())
		if err != nil {
			return err
		}
		cache = respCache
	}
	transport := httpcache.NewTransport(http.DefaultTransport, cache)

	// 4. Gather source issues
	fmt.Fprintf(out, "# Gathering code.google.com/p/%s issues.\n", project)
	reader := googlecode.NewReader(&http.Client{Transport: transport}, cfg.Source.FeedURL, cfg.Source.MaxResults)
	issues, err := reader.Fetch(ctx, project)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Fprintf(out, "No code.google.com/p/%s issues found. Nothing to do.\n", project)
		return nil
	}
	if onlyID != 0 {
		issues, err = selectIssue(issues, onlyID)
		if err != nil {
			return err
		}
	}
	if verbose {
		fmt.Fprintf(out, "Found %d source issue(s)\n", len(issues))
	}

	// 5. Gather target issues
	fmt.Fprintf(out, "# Gathering any github.com/%s issues.\n", repoRef)
	ghClient, err := github.NewClient(ctx, github.Options{
		Token:         creds.Token,
		BaseURL:       cfg.GitHub.BaseURL,
		Transport:     transport,
		WriteInterval: cfg.Writer.Delay,
		UserAgent:     userAgent(creds.Login),
	})
	if err != nil {
		return err
	}
	existing, err := ghClient.ListIssues(ctx, owner, repo)
	if err != nil {
		return err
	}
	snapshot, err := migrate.NewSnapshot(existing)
	if err != nil {
		return fmt.Errorf("failed to read github.com/%s issues: %w", repoRef, err)
	}
	if verbose {
		fmt.Fprintf(out, "Found %d target issue(s); next number is %d\n", snapshot.Len(), snapshot.Next())
	}

	// 6. Wire the engine
	var writer migrate.Writer = &github.RepoWriter{Client: ghClient, Owner: owner, Repo: repo}
	if dryRun {
		writer = migrate.NewDryRunWriter(snapshot)
		fmt.Fprintln(out, "✓ Dry-run mode enabled (no GitHub writes will be performed)")
	}

	var journal *state.JournalReporter
	reporters := multiReporter{}
	if store != nil && !dryRun {
		journal = &state.JournalReporter{
			Store:  store,
			RunID:  state.NewRunID(),
			Source: project,
			Target: repoRef,
			Actor:  creds.Login,
		}
		reporters = append(reporters, journal)
	}

	webURL := cfg.GitHub.WebURL
	newEngine := func(display migrate.Reporter) *migrate.Engine {
		engine := migrate.NewEngine(writer, append(reporters, display))
		engine.Force = force
		engine.ProfileBaseURL = cfg.Source.ProfileBaseURL
		engine.IssueURL = func(number int) string {
			return github.IssueURL(webURL, owner, repo, number)
		}
		return engine
	}

	// 7. Run
	var report migrate.Report
	if useTUI() {
		report, err = runWithTUI(ctx, newEngine, project, issues, snapshot)
	} else {
		if verbose && isCI() {
			fmt.Fprintln(out, "[shadowissues] Running in CI mode (no TUI)")
		}
		report, err = newEngine(&consoleReporter{out: out, verbose: verbose}).Migrate(ctx, issues, snapshot)
	}

	if journal != nil {
		if jerr := journal.Err(); jerr != nil {
			fmt.Fprintf(out, "⚠ Warning: failed to record run journal: %v\n", jerr)
		}
	}
	if respCache != nil {
		if cerr := respCache.Err(); cerr != nil {
			fmt.Fprintf(out, "⚠ Warning: response cache unavailable, fetched without it: %v\n", cerr)
		}
	}
	if err != nil {
		return err
	}

	printSummary(out, report, dryRun)
	return nil
}

// runWithTUI runs the engine on its own goroutine while the TUI consumes
// progress messages. Quitting the TUI cancels the run between issues.
func runWithTUI(ctx context.Context, newEngine func(migrate.Reporter) *migrate.Engine, project string, issues []migrate.SourceIssue, snapshot migrate.Snapshot) (migrate.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ids := make([]int, len(issues))
	for i, issue := range issues {
		ids[i] = issue.ID
	}

	statusChan := make(chan tui.IssueStatusMsg, 16)
	done := make(chan struct{})

	var (
		report migrate.Report
		runErr error
	)
	engine := newEngine(tui.Reporter(statusChan))
	go func() {
		defer close(done)
		defer close(statusChan)
		report, runErr = engine.Migrate(ctx, issues, snapshot)
	}()

	final, err := tea.NewProgram(tui.NewModel(fmt.Sprintf("Shadowing %s issues", project), ids, statusChan)).Run()
	if m, ok := final.(tui.Model); ok && m.Aborted() {
		cancel()
	}
	if err != nil {
		cancel()
	}
	// Keep the engine from blocking on a display that is gone.
	for range statusChan {
	}
	<-done

	if err != nil {
		return report, fmt.Errorf("error running TUI: %w", err)
	}
	return report, runErr
}

// selectIssue keeps only the source issue with the given id.
func selectIssue(issues []migrate.SourceIssue, id int) ([]migrate.SourceIssue, error) {
	for _, issue := range issues {
		if issue.ID == id {
			return []migrate.SourceIssue{issue}, nil
		}
	}
	return nil, fmt.Errorf("source issue %d not found", id)
}

func loadConfig(out io.Writer) (*config.Config, error) {
	actualCfgPath := config.FindConfigPath(cfgFile)
	if cfgFile != "" && actualCfgPath == "" {
		return nil, fmt.Errorf("config file %s not found", cfgFile)
	}
	if actualCfgPath == "" {
		if verbose {
			fmt.Fprintln(out, "No configuration file found. Using defaults and environment variables.")
		}
		return config.Default(), nil
	}

	// Prepare fetcher for inheritance
	fetcher := func(ref string) ([]byte, error) {
		org, repo, branch, path, err := config.ParseExtendsRef(ref)
		if err != nil {
			return nil, err
		}
		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			return nil, fmt.Errorf("GITHUB_TOKEN required to fetch remote config %s", ref)
		}
		ghClient, err := github.NewClient(context.Background(), github.Options{Token: token, BaseURL: githubURL})
		if err != nil {
			return nil, err
		}
		return ghClient.GetFileContent(context.Background(), org, repo, path, branch)
	}

	cfg, err := config.LoadWithInheritance(actualCfgPath, fetcher)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", actualCfgPath, err)
	}
	if verbose {
		fmt.Fprintf(out, "Loaded config from %s\n", actualCfgPath)
	}
	return cfg, nil
}

// applyConfigOverrides applies command line flags on top of the config.
func applyConfigOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("max-results") {
		cfg.Source.MaxResults = maxResults
	}
	if flags.Changed("write-delay") {
		cfg.Writer.Delay = writeDelay
	}
	if flags.Changed("github-url") {
		cfg.GitHub.BaseURL = githubURL
	}
	if flags.Changed("feed-url") {
		cfg.Source.FeedURL = feedURL
	}
}

func resolveCredentials(cfg *config.Config) (credentials.Credentials, error) {
	src := credentials.Sources{
		Getenv:        os.Getenv,
		Config:        cfg.GitHub,
		GitConfigPath: config.DefaultGitConfigPath(),
	}
	if credentials.CanPrompt() {
		src.Prompter = credentials.NewTerminalPrompter()
	}
	creds, err := credentials.Resolve(src)
	if err != nil && errors.Is(err, credentials.ErrNoCredentials) {
		return creds, fmt.Errorf("%w (set GITHUB_USER and GITHUB_TOKEN, or github.user/github.token in ~/.gitconfig)", err)
	}
	return creds, err
}

func userAgent(login string) string {
	if login == "" {
		return "shadowissues/" + Version
	}
	return fmt.Sprintf("shadowissues/%s (%s)", Version, login)
}

func isCI() bool {
	return os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true"
}

func useTUI() bool {
	return !noTUI && !isCI() && term.IsTerminal(int(os.Stdout.Fd()))
}
