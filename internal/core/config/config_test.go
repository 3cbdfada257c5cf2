// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestConfigDefaults verifies that default values are applied correctly.
func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Source.MaxResults != 1000 {
		t.Errorf("Expected MaxResults to be 1000, got %d", cfg.Source.MaxResults)
	}
	if cfg.Source.FeedURL != "https://code.google.com" {
		t.Errorf("Expected FeedURL to be 'https://code.google.com', got %s", cfg.Source.FeedURL)
	}
	if cfg.Writer.Delay != time.Second {
		t.Errorf("Expected Writer.Delay to be 1s, got %s", cfg.Writer.Delay)
	}
	if cfg.GitHub.WebURL != "https://github.com" {
		t.Errorf("Expected GitHub.WebURL to be 'https://github.com', got %s", cfg.GitHub.WebURL)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SHADOW_TEST_TOKEN", "secret-token")

	yamlContent := `
github:
  user: trentm
  token: ${SHADOW_TEST_TOKEN}
source:
  max_results: 500
writer:
  delay: 250ms
cache:
  disabled: true
`
	path := filepath.Join(t.TempDir(), "shadowissues.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GitHub.Token != "secret-token" {
		t.Errorf("Expected token from environment, got '%s'", cfg.GitHub.Token)
	}
	if cfg.Source.MaxResults != 500 {
		t.Errorf("Expected MaxResults 500, got %d", cfg.Source.MaxResults)
	}
	if cfg.Writer.Delay != 250*time.Millisecond {
		t.Errorf("Expected Writer.Delay 250ms, got %s", cfg.Writer.Delay)
	}
	if !cfg.Cache.Disabled {
		t.Error("Expected Cache.Disabled to be true")
	}
	if cfg.Source.FeedURL != DefaultFeedURL {
		t.Errorf("Expected default FeedURL, got '%s'", cfg.Source.FeedURL)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("github: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadWithInheritance(t *testing.T) {
	child := `
extends: org/configs@main
github:
  user: child-user
`
	path := filepath.Join(t.TempDir(), "child.yaml")
	if err := os.WriteFile(path, []byte(child), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var requested string
	fetcher := func(ref string) ([]byte, error) {
		requested = ref
		return []byte("github:\n  user: parent-user\n  base_url: https://ghe.example.com/api/v3/\nsource:\n  max_results: 200\n"), nil
	}

	cfg, err := LoadWithInheritance(path, fetcher)
	if err != nil {
		t.Fatalf("LoadWithInheritance() error: %v", err)
	}
	if requested != "org/configs@main" {
		t.Errorf("Expected fetcher to be called with extends ref, got '%s'", requested)
	}
	if cfg.GitHub.User != "child-user" {
		t.Errorf("Expected child user to win, got '%s'", cfg.GitHub.User)
	}
	if cfg.GitHub.BaseURL != "https://ghe.example.com/api/v3/" {
		t.Errorf("Expected parent base_url to be inherited, got '%s'", cfg.GitHub.BaseURL)
	}
	// The child had defaults applied before merging, so its MaxResults wins.
	if cfg.Source.MaxResults != DefaultMaxResults {
		t.Errorf("Expected MaxResults %d, got %d", DefaultMaxResults, cfg.Source.MaxResults)
	}
}

func TestLoadWithInheritanceFetchError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "child.yaml")
	if err := os.WriteFile(path, []byte("extends: org/configs@main\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	boom := errors.New("boom")
	_, err := LoadWithInheritance(path, func(string) ([]byte, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped fetch error, got %v", err)
	}
}

func TestCacheDir(t *testing.T) {
	cfg := &Config{Cache: CacheConfig{Dir: "/tmp/custom"}}
	dir, err := cfg.CacheDir()
	if err != nil || dir != "/tmp/custom" {
		t.Errorf("CacheDir() = %q, %v; want /tmp/custom", dir, err)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")
	dir, err = (&Config{}).CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, "shadowissues") {
		t.Errorf("CacheDir() = %q, want a shadowissues directory", dir)
	}
}

// TestParseExtendsRef verifies extends reference parsing.
func TestParseExtendsRef(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		wantOrg     string
		wantRepo    string
		wantBranch  string
		wantPath    string
		expectError bool
	}{
		{
			name:       "valid ref with default path",
			ref:        "org/repo@main",
			wantOrg:    "org",
			wantRepo:   "repo",
			wantBranch: "main",
			wantPath:   ".github/shadowissues.yaml",
		},
		{
			name:       "valid ref with custom path",
			ref:        "org/repo@main:custom/path.yaml",
			wantOrg:    "org",
			wantRepo:   "repo",
			wantBranch: "main",
			wantPath:   "custom/path.yaml",
		},
		{
			name:        "invalid ref missing branch",
			ref:         "org/repo",
			expectError: true,
		},
		{
			name:        "invalid ref missing repo",
			ref:         "org@main",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org, repo, branch, path, err := ParseExtendsRef(tt.ref)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for ref %s, got nil", tt.ref)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if org != tt.wantOrg {
				t.Errorf("Expected org %s, got %s", tt.wantOrg, org)
			}
			if repo != tt.wantRepo {
				t.Errorf("Expected repo %s, got %s", tt.wantRepo, repo)
			}
			if branch != tt.wantBranch {
				t.Errorf("Expected branch %s, got %s", tt.wantBranch, branch)
			}
			if path != tt.wantPath {
				t.Errorf("Expected path %s, got %s", tt.wantPath, path)
			}
		})
	}
}
