package handlers

import (
	"testing"

	"github.com/xolan/billable/internal/filter"
	"github.com/xolan/billable/internal/timeutil"
)

func TestSearch(t *testing.T) {
	env := setupTestDeps(t)
	logSampleDay(t, env)
	CreateEntry(env.deps, "triage followup @ops 13:00-13:30", "yesterday")
	env.reset()

	Search(env.deps, "TRIAGE", timeutil.RangeFlags{}, nil)
	if env.exitCode != 0 {
		t.Fatalf("unexpected exit %d: %s", env.exitCode, env.stderr.String())
	}

	out := env.stdout.String()
	assertContains(t, out, "Search results for 'TRIAGE' (2 results):")
	// results spanning days show the date
	assertContains(t, out, "2024-03-14 13:00-13:30  triage followup [@ops]")
	assertContains(t, out, "2024-03-15 09:03-09:14  triage [@support]")
	assertNotContains(t, out, "deploy")
	assertContains(t, out, "Total: 41m")
}

func TestSearch_WithRangeAndPhase(t *testing.T) {
	env := setupTestDeps(t)
	logSampleDay(t, env)
	CreateEntry(env.deps, "triage followup @ops 13:00-13:30", "yesterday")
	env.reset()

	Search(env.deps, "triage", timeutil.RangeFlags{Date: "yesterday"}, filter.NewFilter("", "ops", ""))

	out := env.stdout.String()
	assertContains(t, out, "(1 result)")
	assertNotContains(t, out, "09:03")
}

func TestSearch_NoResults(t *testing.T) {
	env := setupTestDeps(t)
	logSampleDay(t, env)

	Search(env.deps, "meeting", timeutil.RangeFlags{}, nil)
	assertContains(t, env.stdout.String(), "No entries found matching 'meeting'")
}
