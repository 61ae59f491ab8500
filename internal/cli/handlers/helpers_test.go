package handlers

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/billable/internal/catalog"
	"github.com/xolan/billable/internal/cli"
	"github.com/xolan/billable/internal/config"
	"github.com/xolan/billable/internal/service"
)

const testCatalog = `
customers:
  - id: acme
    name: Acme Corp
  - id: globex
cases:
  - id: acme-support
    customer: acme
    min_billable_minutes: 30
  - id: globex-ops
    customer: globex
phases:
  - id: support
    case: acme-support
    active: true
  - id: legacy
    case: acme-support
    active: false
  - id: ops
    case: globex-ops
    active: true
worktypes:
  - id: dev
    active: true
  - id: travel
    active: false
`

// testNow is the fixed clock of the handlers: 2024-03-15 18:00 UTC
var testNow = time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

type testEnv struct {
	deps     *cli.Deps
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode int
	paths    service.Paths
}

func setupTestDeps(t *testing.T) *testEnv {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("failed to parse test catalog: %v", err)
	}
	return setupTestDepsWithCatalog(t, cat)
}

func setupTestDepsWithCatalog(t *testing.T, cat *catalog.Catalog) *testEnv {
	t.Helper()
	dir := t.TempDir()
	paths := service.Paths{
		Storage: filepath.Join(dir, "entries.jsonl"),
		Timer:   filepath.Join(dir, "timer.json"),
		Config:  filepath.Join(dir, "config.toml"),
		Catalog: filepath.Join(dir, "catalog.yaml"),
		Ledger:  filepath.Join(dir, "ledger.db"),
	}
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"

	services := service.NewServicesWithPaths(paths, cfg, cat, nil)
	t.Cleanup(func() { _ = services.Close() })

	env := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		paths:  paths,
	}
	env.deps = &cli.Deps{
		Stdout:   env.stdout,
		Stderr:   env.stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { env.exitCode = code },
		Now:      func() time.Time { return testNow },
		Services: services,
		Styles:   cli.NewStyles(env.stdout),
	}
	return env
}

// reset clears captured output between steps of a test
func (e *testEnv) reset() {
	e.stdout.Reset()
	e.stderr.Reset()
	e.exitCode = 0
}

// mustLog logs an entry on the test day and fails on any error output
func (e *testEnv) mustLog(t *testing.T, input string) {
	t.Helper()
	CreateEntry(e.deps, input, "")
	if e.exitCode != 0 {
		t.Fatalf("CreateEntry(%q) exited %d: %s", input, e.exitCode, e.stderr.String())
	}
	e.reset()
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Errorf("expected output to contain %q, got:\n%s", want, output)
	}
}

func assertNotContains(t *testing.T, output, unwanted string) {
	t.Helper()
	if strings.Contains(output, unwanted) {
		t.Errorf("expected output not to contain %q, got:\n%s", unwanted, output)
	}
}
