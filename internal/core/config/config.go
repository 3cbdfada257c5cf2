// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package config handles loading and merging shadowissues configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFeedURL is the source tracker host serving issue feeds.
	DefaultFeedURL = "https://code.google.com"

	// DefaultMaxResults bounds the single source feed page.
	DefaultMaxResults = 1000

	// DefaultProfileBaseURL prefixes site-relative author profile URIs.
	DefaultProfileBaseURL = "http://code.google.com"

	// DefaultWebURL is used to render links to target issues.
	DefaultWebURL = "https://github.com"

	// DefaultWriteDelay is the minimum spacing between two write calls.
	DefaultWriteDelay = time.Second
)

// Config is the root configuration structure.
type Config struct {
	// Extends allows inheriting from a remote config (e.g., "org/repo@branch").
	Extends string `yaml:"extends,omitempty"`

	// GitHub configures the target tracker.
	GitHub GitHubConfig `yaml:"github"`

	// Source configures the source tracker feed.
	Source SourceConfig `yaml:"source"`

	// Writer configures write pacing.
	Writer WriterConfig `yaml:"writer"`

	// Cache configures the on-disk HTTP response cache and run journal.
	Cache CacheConfig `yaml:"cache"`
}

// GitHubConfig holds target tracker connection settings.
type GitHubConfig struct {
	BaseURL string `yaml:"base_url,omitempty"` // API base; empty means api.github.com
	WebURL  string `yaml:"web_url,omitempty"`
	User    string `yaml:"user,omitempty"`
	Token   string `yaml:"token,omitempty"`
}

// SourceConfig holds source feed settings.
type SourceConfig struct {
	FeedURL        string `yaml:"feed_url,omitempty"`
	MaxResults     int    `yaml:"max_results,omitempty"`
	ProfileBaseURL string `yaml:"profile_base_url,omitempty"`
}

// WriterConfig holds write pacing settings.
type WriterConfig struct {
	Delay time.Duration `yaml:"delay,omitempty"`
}

// CacheConfig holds local cache settings.
type CacheConfig struct {
	Dir      string `yaml:"dir,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// Load reads a config file from the given path and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

// LoadWithInheritance loads a config and resolves the 'extends' chain.
// The fetcher function is used to retrieve remote configs.
func LoadWithInheritance(path string, fetcher func(ref string) ([]byte, error)) (*Config, error) {
	child, err := Load(path)
	if err != nil {
		return nil, err
	}

	if child.Extends == "" {
		return child, nil
	}

	parentData, err := fetcher(child.Extends)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parent config '%s': %w", child.Extends, err)
	}

	parent, err := parseRaw(parentData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse parent config: %w", err)
	}

	// Merge: child overrides parent
	merged := mergeConfigs(parent, child)
	merged.applyDefaults()

	return merged, nil
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	candidates := []string{
		".github/shadowissues.yaml",
		".github/shadowissues.yml",
		".shadowissues.yaml",
		".shadowissues.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// CacheDir returns the directory holding the cache database.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user cache directory: %w", err)
	}
	return filepath.Join(base, "shadowissues"), nil
}

// parseRaw expands environment variables and decodes YAML without applying defaults.
func parseRaw(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Source.FeedURL == "" {
		c.Source.FeedURL = DefaultFeedURL
	}
	if c.Source.MaxResults == 0 {
		c.Source.MaxResults = DefaultMaxResults
	}
	if c.Source.ProfileBaseURL == "" {
		c.Source.ProfileBaseURL = DefaultProfileBaseURL
	}
	if c.GitHub.WebURL == "" {
		c.GitHub.WebURL = DefaultWebURL
	}
	if c.Writer.Delay == 0 {
		c.Writer.Delay = DefaultWriteDelay
	}
}

// mergeConfigs merges a child config onto a parent config.
// Non-zero values in child override parent.
func mergeConfigs(parent, child *Config) *Config {
	result := *parent
	result.Extends = ""

	// GitHub: override if any field is set
	if child.GitHub.BaseURL != "" {
		result.GitHub.BaseURL = child.GitHub.BaseURL
	}
	if child.GitHub.WebURL != "" {
		result.GitHub.WebURL = child.GitHub.WebURL
	}
	if child.GitHub.User != "" {
		result.GitHub.User = child.GitHub.User
	}
	if child.GitHub.Token != "" {
		result.GitHub.Token = child.GitHub.Token
	}

	// Source
	if child.Source.FeedURL != "" {
		result.Source.FeedURL = child.Source.FeedURL
	}
	if child.Source.MaxResults != 0 {
		result.Source.MaxResults = child.Source.MaxResults
	}
	if child.Source.ProfileBaseURL != "" {
		result.Source.ProfileBaseURL = child.Source.ProfileBaseURL
	}

	if child.Writer.Delay != 0 {
		result.Writer.Delay = child.Writer.Delay
	}

	if child.Cache.Dir != "" {
		result.Cache.Dir = child.Cache.Dir
	}
	// Disabled: always take the child value so it can override parent true -> false and vice versa
	result.Cache.Disabled = child.Cache.Disabled

	return &result
}

// ParseExtendsRef parses "org/repo@branch" into components.
func ParseExtendsRef(ref string) (org, repo, branch, path string, err error) {
	// Format: org/repo@branch or org/repo@branch:path
	parts := strings.SplitN(ref, "@", 2)
	if len(parts) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo@branch)", ref)
	}

	orgRepo := strings.SplitN(parts[0], "/", 2)
	if len(orgRepo) != 2 || orgRepo[0] == "" || orgRepo[1] == "" {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo)", ref)
	}

	org = orgRepo[0]
	repo = orgRepo[1]

	branchPath := strings.SplitN(parts[1], ":", 2)
	branch = branchPath[0]
	if len(branchPath) == 2 {
		path = branchPath[1]
	} else {
		path = ".github/shadowissues.yaml"
	}

	return org, repo, branch, path, nil
}
