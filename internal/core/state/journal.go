// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/similigh/shadowissues/internal/core/migrate"
)

// ActionType defines the kind of write recorded in the journal.
type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionClose  ActionType = "close"
)

// Entry is one write made against the target tracker.
type Entry struct {
	RunID        string
	Source       string // source project
	Target       string // owner/repo
	SourceID     int
	TargetNumber int
	Action       ActionType
	Actor        string
	CreatedAt    time.Time
}

// NewRunID returns a fresh identifier for a migration run.
func NewRunID() string {
	return uuid.NewString()
}

// Record appends an entry to the journal.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal (run_id, source, target, source_id, target_number, action, actor, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Source, e.Target, e.SourceID, e.TargetNumber, string(e.Action), e.Actor,
		e.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record journal entry: %w", err)
	}
	return nil
}

// LastRun returns the entries of the most recent run, oldest first.
// It returns nil, nil when the journal is empty.
func (s *Store) LastRun(ctx context.Context) ([]Entry, error) {
	var runID string
	err := s.db.QueryRowContext(ctx, `SELECT run_id FROM journal ORDER BY id DESC LIMIT 1`).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last run: %w", err)
	}
	return s.Run(ctx, runID)
}

// Run returns the entries recorded under runID, oldest first.
func (s *Store) Run(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, source, target, source_id, target_number, action, actor, created_at
		FROM journal
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			action    string
			createdAt string
		)
		if err := rows.Scan(&e.RunID, &e.Source, &e.Target, &e.SourceID, &e.TargetNumber, &action, &e.Actor, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.Action = ActionType(action)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

// JournalReporter records created and closed events from the migration
// engine. Recording failures do not interrupt the run; the first one is
// kept and returned by Err.
type JournalReporter struct {
	Store  *Store
	RunID  string
	Source string
	Target string
	Actor  string

	mu  sync.Mutex
	err error
}

// Report implements migrate.Reporter.
func (r *JournalReporter) Report(ev migrate.Event) {
	var action ActionType
	switch ev.Kind {
	case migrate.EventCreated:
		action = ActionCreate
	case migrate.EventClosed:
		action = ActionClose
	default:
		return
	}
	if ev.Target == nil {
		return
	}

	err := r.Store.Record(context.Background(), Entry{
		RunID:        r.RunID,
		Source:       r.Source,
		Target:       r.Target,
		SourceID:     ev.SourceID,
		TargetNumber: ev.Target.Number,
		Action:       action,
		Actor:        r.Actor,
	})
	if err != nil {
		r.mu.Lock()
		if r.err == nil {
			r.err = err
		}
		r.mu.Unlock()
	}
}

// Err returns the first recording failure, if any.
func (r *JournalReporter) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
