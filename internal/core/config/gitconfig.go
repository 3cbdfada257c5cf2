// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/gcfg"
)

// GitConfig is the part of a git config file read for GitHub credentials.
type GitConfig struct {
	Github struct {
		User  string
		Token string
	}
}

// DefaultGitConfigPath returns ~/.gitconfig.
func DefaultGitConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gitconfig")
}

// LoadGitConfig reads a git config file. A missing file yields an empty config.
func LoadGitConfig(path string) (*GitConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GitConfig{}, nil
		}
		return nil, fmt.Errorf("failed to open git config: %w", err)
	}
	defer f.Close()

	return ParseGitConfig(f)
}

// ParseGitConfig reads the [github] section of a git config file.
// Sections and variables it does not know about are ignored.
func ParseGitConfig(r io.Reader) (*GitConfig, error) {
	var cfg GitConfig
	if err := gcfg.FatalOnly(gcfg.ReadInto(&cfg, r)); err != nil {
		return nil, fmt.Errorf("failed to parse git config: %w", err)
	}
	return &cfg, nil
}
