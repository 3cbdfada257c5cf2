// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package migrate provides the migration engine that replays source tracker
// issues as shadow issues on the target tracker.
package migrate

import (
	"context"
	"time"
)

// State is the open/closed state shared by source and target issues.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// Person identifies an issue author or owner on the source tracker.
type Person struct {
	Name string
	URI  string
}

// SourceIssue is a normalized issue read from the source tracker.
// It is never modified once fetched.
type SourceIssue struct {
	ID         int
	Title      string
	Content    string
	State      State
	Status     string // e.g. "Fixed", "WontFix"; set when closed
	Labels     []string
	Author     Person
	Owner      *Person
	Stars      int
	Published  time.Time
	Updated    time.Time
	ClosedDate *time.Time
	URL        string
}

// IsClosed reports whether the source issue is closed.
func (i SourceIssue) IsClosed() bool {
	return i.State == StateClosed
}

// TargetIssue is an issue that exists on the target tracker.
type TargetIssue struct {
	Number int
	State  State
	Title  string
	URL    string
}

// WriteResult is what the target tracker answered to a write call.
type WriteResult struct {
	StatusCode int
	Issue      TargetIssue
}

// Writer creates and closes issues on the target tracker.
// Create is never idempotent: every call creates a new issue.
// Close on an already closed issue is expected to succeed.
type Writer interface {
	Create(ctx context.Context, title, body string) (WriteResult, error)
	Close(ctx context.Context, number int) (WriteResult, error)
}
