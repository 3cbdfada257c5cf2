// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/similigh/shadowissues/internal/core/migrate"
)

func TestModelTracksIssueStatus(t *testing.T) {
	ch := make(chan IssueStatusMsg)
	m := NewModel("Migrating proj", []int{1, 2, 3}, ch)

	var model tea.Model = m
	for _, msg := range []IssueStatusMsg{
		{ID: 1, Status: "created"},
		{ID: 2, Status: "skipped", Message: "target issue number would be 2, skipping"},
		{ID: 3, Status: "closed"},
	} {
		model, _ = model.Update(msg)
	}

	got := model.(Model)
	counts := got.Counts()
	if counts["created"] != 1 || counts["skipped"] != 1 || counts["closed"] != 1 {
		t.Errorf("Counts() = %v", counts)
	}
	if got.current != 2 {
		t.Errorf("current = %d, want 2", got.current)
	}

	view := got.View()
	for _, want := range []string{"Migrating proj", "issue 2 (skipped)", "3/3 processed, 1 skipped", "would be 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModelRecordsError(t *testing.T) {
	m := NewModel("x", []int{7}, nil)
	model, _ := m.Update(IssueStatusMsg{ID: 7, Status: "error", Message: "boom"})

	if err := model.(Model).Err(); err == nil || !strings.Contains(err.Error(), "issue 7 failed") {
		t.Errorf("Err() = %v, want issue 7 failure", err)
	}
}

func TestModelQuitMarksAborted(t *testing.T) {
	m := NewModel("x", []int{1}, nil)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !model.(Model).Aborted() {
		t.Error("Aborted() = false after q")
	}
	if model.View() != "" {
		t.Error("View() should be empty once quitting")
	}
}

func TestReporterTranslatesEvents(t *testing.T) {
	ch := make(chan IssueStatusMsg, 4)
	r := Reporter(ch)

	created := migrate.TargetIssue{Number: 3, URL: "https://github.com/o/r/issues/3"}
	r.Report(migrate.Event{Kind: migrate.EventStarted, SourceID: 3, Expected: 3})
	r.Report(migrate.Event{Kind: migrate.EventCreated, SourceID: 3, Target: &created})
	r.Report(migrate.Event{Kind: migrate.EventSkipped, SourceID: 5, Expected: 4})
	r.Report(migrate.Event{Kind: migrate.EventFailed, SourceID: 6, Err: errors.New("write failed")})
	close(ch)

	var got []IssueStatusMsg
	for msg := range ch {
		got = append(got, msg)
	}
	if len(got) != 4 {
		t.Fatalf("got %d messages, want 4", len(got))
	}
	if got[1].Status != "created" || !strings.Contains(got[1].Message, "issues/3") {
		t.Errorf("created message = %+v", got[1])
	}
	if got[2].Status != "skipped" || !strings.Contains(got[2].Message, "would be 4") {
		t.Errorf("skipped message = %+v", got[2])
	}
	if got[3].Status != "error" || got[3].Message != "write failed" {
		t.Errorf("failed message = %+v", got[3])
	}
}
