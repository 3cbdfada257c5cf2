// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package migrate

import (
	"errors"
	"fmt"
)

// ErrSkipped indicates that an issue was not migrated because the target
// number it would receive does not match its source id.
// This is not an error condition; the run continues with the next issue.
var ErrSkipped = errors.New("target issue number would not match, skipping")

// AlignmentError reports that the target tracker assigned a different number
// than predicted. The run must stop: every later prediction would be wrong.
type AlignmentError struct {
	SourceID int
	Expected int
	Actual   int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("unexpected number for new shadow of source issue %d: expected #%d, got #%d",
		e.SourceID, e.Expected, e.Actual)
}

// WriteError reports a failed create or close call on the target tracker.
type WriteError struct {
	Op         string // "create" or "close"
	SourceID   int
	Number     int // target number for close; zero for create
	StatusCode int // zero when no response was received
	Err        error
}

func (e *WriteError) Error() string {
	msg := fmt.Sprintf("failed to %s shadow issue for source issue %d", e.Op, e.SourceID)
	if e.Number != 0 {
		msg += fmt.Sprintf(" (target #%d)", e.Number)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": unexpected status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
