// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package migrate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// EventKind identifies a progress event emitted by the engine.
type EventKind string

const (
	EventStarted EventKind = "started"
	EventSkipped EventKind = "skipped"
	EventCreated EventKind = "created"
	EventClosed  EventKind = "closed"
	EventFailed  EventKind = "failed"
)

// Event describes progress on a single source issue.
type Event struct {
	Kind      EventKind
	SourceID  int
	SourceURL string
	Expected  int // target number predicted for this issue
	TargetURL string
	Target    *TargetIssue
	Err       error
}

// Reporter receives progress events. Implementations must not block for long;
// the engine waits for Report to return.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(Event)

// Report calls f(ev).
func (f ReporterFunc) Report(ev Event) { f(ev) }

// Outcome is the result of migrating one source issue.
type Outcome struct {
	SourceID int
	Skipped  bool
	Issue    TargetIssue
}

// Report summarizes a migration run.
type Report struct {
	Outcomes []Outcome
	Snapshot Snapshot // target view after the last successful step
	Created  int
	Closed   int
	Skipped  int
}

// Engine replays source issues against a target Writer.
type Engine struct {
	writer   Writer
	reporter Reporter

	// Force bypasses the alignment guard for every issue in Migrate.
	Force bool

	// ProfileBaseURL prefixes site-relative author URIs in shadow bodies.
	ProfileBaseURL string

	// IssueURL renders a link to a target issue for progress events.
	IssueURL func(number int) string
}

// NewEngine creates an engine. A nil reporter discards events.
func NewEngine(writer Writer, reporter Reporter) *Engine {
	if reporter == nil {
		reporter = ReporterFunc(func(Event) {})
	}
	return &Engine{
		writer:         writer,
		reporter:       reporter,
		ProfileBaseURL: DefaultProfileBaseURL,
	}
}

// Migrate processes source issues in order, one at a time. Each successful
// creation is folded into the snapshot read by the next iteration.
// Skipped issues do not stop the run; any other error does.
func (e *Engine) Migrate(ctx context.Context, source []SourceIssue, target Snapshot) (Report, error) {
	report := Report{Snapshot: target}

	for _, issue := range source {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		created, err := e.MigrateOne(ctx, issue, report.Snapshot, e.Force)
		if errors.Is(err, ErrSkipped) {
			report.Skipped++
			report.Outcomes = append(report.Outcomes, Outcome{SourceID: issue.ID, Skipped: true})
			continue
		}
		if err != nil {
			return report, err
		}

		next, err := report.Snapshot.With(created)
		if err != nil {
			return report, fmt.Errorf("failed to record shadow of source issue %d: %w", issue.ID, err)
		}
		report.Snapshot = next
		report.Created++
		if created.State == StateClosed {
			report.Closed++
		}
		report.Outcomes = append(report.Outcomes, Outcome{SourceID: issue.ID, Issue: created})
	}

	return report, nil
}

// MigrateOne creates the shadow issue for issue if the target tracker's next
// number equals the source id (or force is set), then closes it when the
// source issue is closed. It returns ErrSkipped without calling the writer
// when the guard rejects the issue.
func (e *Engine) MigrateOne(ctx context.Context, issue SourceIssue, target Snapshot, force bool) (TargetIssue, error) {
	next := target.Next()
	ev := Event{
		SourceID:  issue.ID,
		SourceURL: issue.URL,
		Expected:  next,
		TargetURL: e.issueURL(next),
	}

	ev.Kind = EventStarted
	e.reporter.Report(ev)

	if !force && issue.ID != next {
		ev.Kind = EventSkipped
		ev.Err = ErrSkipped
		e.reporter.Report(ev)
		return TargetIssue{}, ErrSkipped
	}

	created, err := e.create(ctx, issue, next)
	var misaligned *AlignmentError
	if err == nil || errors.As(err, &misaligned) {
		// A misnumbered issue still exists on the target.
		ev.Kind = EventCreated
		ev.Target = &created
		e.reporter.Report(ev)
	}
	if err != nil {
		ev.Kind = EventFailed
		ev.Err = err
		e.reporter.Report(ev)
		return TargetIssue{}, err
	}

	if !issue.IsClosed() {
		return created, nil
	}

	closed, err := e.close(ctx, issue, created.Number)
	if err != nil {
		ev.Kind = EventFailed
		ev.Err = err
		e.reporter.Report(ev)
		return TargetIssue{}, err
	}
	ev.Kind = EventClosed
	ev.Target = &closed
	e.reporter.Report(ev)

	return closed, nil
}

// create returns the issue the tracker made alongside an *AlignmentError.
func (e *Engine) create(ctx context.Context, issue SourceIssue, next int) (TargetIssue, error) {
	title := ShadowTitle(issue)
	body := ShadowBody(issue, e.ProfileBaseURL)

	res, err := e.writer.Create(ctx, title, body)
	if err != nil {
		return TargetIssue{}, &WriteError{Op: "create", SourceID: issue.ID, StatusCode: res.StatusCode, Err: err}
	}
	if res.StatusCode != http.StatusCreated {
		return TargetIssue{}, &WriteError{Op: "create", SourceID: issue.ID, StatusCode: res.StatusCode}
	}
	created := res.Issue
	if created.State == "" {
		created.State = StateOpen
	}
	if created.Number != next {
		return created, &AlignmentError{SourceID: issue.ID, Expected: next, Actual: created.Number}
	}
	return created, nil
}

func (e *Engine) close(ctx context.Context, issue SourceIssue, number int) (TargetIssue, error) {
	res, err := e.writer.Close(ctx, number)
	if err != nil {
		return TargetIssue{}, &WriteError{Op: "close", SourceID: issue.ID, Number: number, StatusCode: res.StatusCode, Err: err}
	}
	if res.StatusCode != http.StatusOK {
		return TargetIssue{}, &WriteError{Op: "close", SourceID: issue.ID, Number: number, StatusCode: res.StatusCode}
	}

	// The server's answer replaces the working record; only the number is
	// pinned to the one create returned.
	closed := res.Issue
	closed.Number = number
	if closed.State == "" {
		closed.State = StateClosed
	}
	return closed, nil
}

func (e *Engine) issueURL(number int) string {
	if e.IssueURL == nil {
		return ""
	}
	return e.IssueURL(number)
}
