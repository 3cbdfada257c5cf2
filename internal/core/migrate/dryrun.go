// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package migrate

import (
	"context"
	"net/http"
)

// DryRunWriter answers writes the way an append-only target tracker would,
// without contacting it. Next is the number it assigns to the next Create.
type DryRunWriter struct {
	Next int

	// Titles records every created title, in order.
	Titles []string
}

// NewDryRunWriter returns a writer that continues numbering after target.
func NewDryRunWriter(target Snapshot) *DryRunWriter {
	return &DryRunWriter{Next: target.Next()}
}

// Create pretends to create an issue and returns the next number.
func (w *DryRunWriter) Create(_ context.Context, title, _ string) (WriteResult, error) {
	if w.Next <= 0 {
		w.Next = 1
	}
	issue := TargetIssue{Number: w.Next, State: StateOpen, Title: title}
	w.Next++
	w.Titles = append(w.Titles, title)
	return WriteResult{StatusCode: http.StatusCreated, Issue: issue}, nil
}

// Close pretends to close the issue.
func (w *DryRunWriter) Close(_ context.Context, number int) (WriteResult, error) {
	return WriteResult{StatusCode: http.StatusOK, Issue: TargetIssue{Number: number, State: StateClosed}}, nil
}
