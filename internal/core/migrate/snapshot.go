// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package migrate

import "fmt"

// Snapshot is an immutable view of the target issues, ordered by ascending
// number with no duplicates.
type Snapshot struct {
	issues []TargetIssue
}

// NewSnapshot builds a snapshot from issues that must already be sorted by
// strictly increasing number.
func NewSnapshot(issues []TargetIssue) (Snapshot, error) {
	for i := range issues {
		if issues[i].Number <= 0 {
			return Snapshot{}, fmt.Errorf("invalid target issue number %d", issues[i].Number)
		}
		if i > 0 && issues[i].Number <= issues[i-1].Number {
			return Snapshot{}, fmt.Errorf("target issues out of order: #%d follows #%d", issues[i].Number, issues[i-1].Number)
		}
	}
	cp := make([]TargetIssue, len(issues))
	copy(cp, issues)
	return Snapshot{issues: cp}, nil
}

// Next returns the number the target tracker is expected to assign to the
// next created issue.
func (s Snapshot) Next() int {
	if len(s.issues) == 0 {
		return 1
	}
	return s.issues[len(s.issues)-1].Number + 1
}

// With returns a new snapshot with issue appended. The receiver is unchanged.
func (s Snapshot) With(issue TargetIssue) (Snapshot, error) {
	if n := len(s.issues); n > 0 && issue.Number <= s.issues[n-1].Number {
		return s, fmt.Errorf("cannot append target issue #%d after #%d", issue.Number, s.issues[n-1].Number)
	}
	if issue.Number <= 0 {
		return s, fmt.Errorf("invalid target issue number %d", issue.Number)
	}
	// Full slice expression forces append to copy, so older snapshots never
	// observe the new element.
	next := append(s.issues[:len(s.issues):len(s.issues)], issue)
	return Snapshot{issues: next}, nil
}

// Len returns the number of target issues.
func (s Snapshot) Len() int {
	return len(s.issues)
}
