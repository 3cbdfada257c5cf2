// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"fmt"
	"io"

	"github.com/similigh/shadowissues/internal/core/migrate"
)

// consoleReporter prints one block of progress lines per source issue.
type consoleReporter struct {
	out     io.Writer
	verbose bool
}

func (r *consoleReporter) Report(ev migrate.Event) {
	switch ev.Kind {
	case migrate.EventStarted:
		fmt.Fprintf(r.out, "Migrating issue %d.\n", ev.SourceID)
		fmt.Fprintf(r.out, "     from: %s\n", ev.SourceURL)
		fmt.Fprintf(r.out, "       to: %s\n", ev.TargetURL)
	case migrate.EventSkipped:
		fmt.Fprintf(r.out, "  ⚠ Warning: target issue number would be %d, not %d; skipping\n", ev.Expected, ev.SourceID)
	case migrate.EventCreated:
		if r.verbose {
			fmt.Fprintf(r.out, "  ✓ Created %s\n", targetLabel(ev))
		}
	case migrate.EventClosed:
		if r.verbose {
			fmt.Fprintf(r.out, "  ✓ Closed %s\n", targetLabel(ev))
		}
	case migrate.EventFailed:
		fmt.Fprintf(r.out, "  ❌ %v\n", ev.Err)
	}
}

func targetLabel(ev migrate.Event) string {
	if ev.Target == nil {
		return fmt.Sprintf("#%d", ev.Expected)
	}
	if ev.Target.URL != "" {
		return ev.Target.URL
	}
	return fmt.Sprintf("#%d", ev.Target.Number)
}

// multiReporter fans events out to several reporters in order.
type multiReporter []migrate.Reporter

func (m multiReporter) Report(ev migrate.Event) {
	for _, r := range m {
		r.Report(ev)
	}
}

// printSummary writes the end-of-run counts.
func printSummary(out io.Writer, report migrate.Report, dry bool) {
	verb := "Created"
	if dry {
		verb = "Would create"
	}
	fmt.Fprintf(out, "✓ %s %d shadow issue(s) (%d closed), skipped %d.\n",
		verb, report.Created, report.Closed, report.Skipped)
}
