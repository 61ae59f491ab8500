package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func logSampleDay(t *testing.T, env *testEnv) {
	t.Helper()
	env.mustExecute(t, "triage", "@support", "09:03-09:14")
	env.mustExecute(t, "review", "#dev", "11:02-11:40")
}

func TestReconcile(t *testing.T) {
	env := setupCmdTest(t)
	logSampleDay(t, env)

	out := env.mustExecute(t, "reconcile")
	assertContains(t, out, "09:00-09:15  rounded ")
	assertContains(t, out, "09:15-09:30  minimum ")
	assertContains(t, out, "11:00-11:40  rounded ")
	assertContains(t, out, "(no case)")

	out = env.mustExecute(t, "reconcile", "--phase", "support")
	if strings.Contains(out, "review") {
		t.Errorf("expected the phase filter to drop review, got:\n%s", out)
	}

	out = env.mustExecute(t, "reconcile", "--date", "yesterday")
	assertContains(t, out, "Nothing to bill for Thu, Mar 14, 2024")
}

func TestStats(t *testing.T) {
	env := setupCmdTest(t)
	logSampleDay(t, env)

	out := env.mustExecute(t, "stats")
	assertContains(t, out, "Statistics for Mar 11 - Mar 17, 2024:")
	assertContains(t, out, "Logged time:     49m")

	out = env.mustExecute(t, "stats", "--last", "1")
	assertContains(t, out, "Statistics for Fri, Mar 15, 2024:")
}

func TestExport(t *testing.T) {
	env := setupCmdTest(t)
	logSampleDay(t, env)

	out := env.mustExecute(t, "export", "csv")
	assertContains(t, out, "2024-03-15,09:15,09:30,15,acme-support,support,,minimum-billable-time,")

	output := filepath.Join(t.TempDir(), "hours.json")
	out = env.mustExecute(t, "export", "json", "-o", output)
	assertContains(t, out, "Exported 3 records")
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected %s to exist: %v", output, err)
	}

	out = env.mustExecute(t, "export", "ledger")
	assertContains(t, out, "Run: ")
	assertContains(t, out, "1 unconfirmed day: 2024-03-15")

	if err := env.execute(t, "export"); err == nil {
		t.Error("expected an argument error without a format")
	}
}

func TestSearch(t *testing.T) {
	env := setupCmdTest(t)
	logSampleDay(t, env)

	out := env.mustExecute(t, "search", "TRI")
	assertContains(t, out, "Search results for 'TRI' (1 result):")

	out = env.mustExecute(t, "search", "review", "--worktype", "dev", "--date", "yesterday")
	assertContains(t, out, "No entries found matching 'review'")
}
