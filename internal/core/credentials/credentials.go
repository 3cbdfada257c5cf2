// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package credentials resolves the target tracker login and token once per run.
package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/similigh/shadowissues/internal/core/config"
)

// ErrNoCredentials is returned when no login/token pair could be obtained.
var ErrNoCredentials = errors.New("couldn't get github auth info")

// Credentials is a login and API token for the target tracker.
type Credentials struct {
	Login string
	Token string
}

// String masks the token so credentials can be logged safely.
func (c Credentials) String() string {
	if c.Token == "" {
		return c.Login
	}
	return c.Login + ":****"
}

// Complete reports whether both login and token are set.
func (c Credentials) Complete() bool {
	return c.Login != "" && c.Token != ""
}

// Prompter asks the user for missing values.
type Prompter interface {
	Prompt(label string) (string, error)
	PromptSecret(label string) (string, error)
}

// Sources lists where credentials are looked up, in priority order:
// environment, config file, git config, then the prompter.
type Sources struct {
	Getenv        func(string) string
	Config        config.GitHubConfig
	GitConfigPath string
	Prompter      Prompter // nil disables prompting
}

// Resolve fills login and token from the first source that provides each.
func Resolve(src Sources) (Credentials, error) {
	var creds Credentials

	getenv := src.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	creds.Login = getenv("GITHUB_USER")
	creds.Token = getenv("GITHUB_TOKEN")

	if creds.Login == "" {
		creds.Login = src.Config.User
	}
	if creds.Token == "" {
		creds.Token = src.Config.Token
	}

	if !creds.Complete() && src.GitConfigPath != "" {
		gc, err := config.LoadGitConfig(src.GitConfigPath)
		if err != nil {
			return Credentials{}, fmt.Errorf("failed to read %s: %w", src.GitConfigPath, err)
		}
		if creds.Login == "" {
			creds.Login = gc.Github.User
		}
		if creds.Token == "" {
			creds.Token = gc.Github.Token
		}
	}

	if src.Prompter != nil {
		if creds.Login == "" {
			v, err := src.Prompter.Prompt("Github username: ")
			if err != nil {
				return Credentials{}, fmt.Errorf("failed to read username: %w", err)
			}
			creds.Login = strings.TrimSpace(v)
		}
		if creds.Token == "" {
			v, err := src.Prompter.PromptSecret("Github API token (see <https://github.com/settings/tokens>): ")
			if err != nil {
				return Credentials{}, fmt.Errorf("failed to read token: %w", err)
			}
			creds.Token = strings.TrimSpace(v)
		}
	}

	if !creds.Complete() {
		return creds, ErrNoCredentials
	}
	return creds, nil
}

// TerminalPrompter prompts on Out and reads from In. The secret prompt
// disables echo when In is a terminal.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer

	reader *bufio.Reader
}

// NewTerminalPrompter returns a prompter bound to stdin and stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Prompt reads one line.
func (p *TerminalPrompter) Prompt(label string) (string, error) {
	fmt.Fprint(p.Out, label)
	return p.readLine()
}

// PromptSecret reads one line without echo when possible.
func (p *TerminalPrompter) PromptSecret(label string) (string, error) {
	fmt.Fprint(p.Out, label)
	fd := int(p.In.Fd())
	if !term.IsTerminal(fd) {
		return p.readLine()
	}
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(p.Out) // newline after password
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *TerminalPrompter) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// CanPrompt reports whether stdin is an interactive terminal.
func CanPrompt() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
