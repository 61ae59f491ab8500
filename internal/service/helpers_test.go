package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/xolan/billable/internal/catalog"
	"github.com/xolan/billable/internal/config"
	"github.com/xolan/billable/internal/entry"
)

const testCatalog = `
customers:
  - id: acme
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

// testDay is the day most tests log work on; the clock reads 18:00 on it
var testDay = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

// testClock is a settable clock shared by all services of a test
type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestServices(t *testing.T) (*Services, *testClock) {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("failed to parse test catalog: %v", err)
	}
	return newTestServicesWithCatalog(t, cat)
}

func newTestServicesWithCatalog(t *testing.T, cat *catalog.Catalog) (*Services, *testClock) {
	t.Helper()
	dir := t.TempDir()
	paths := Paths{
		Storage: filepath.Join(dir, "entries.jsonl"),
		Timer:   filepath.Join(dir, "timer.json"),
		Config:  filepath.Join(dir, "config.toml"),
		Catalog: filepath.Join(dir, "catalog.yaml"),
		Ledger:  filepath.Join(dir, "ledger.db"),
	}
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"

	svc := NewServicesWithPaths(paths, cfg, cat, nil)
	t.Cleanup(func() { _ = svc.Close() })

	clock := &testClock{t: testDay.Add(18 * time.Hour)}
	ids := 0
	nextID := func() string {
		ids++
		return fmt.Sprintf("e%d", ids)
	}
	svc.Entry.now = clock.now
	svc.Entry.newID = nextID
	svc.Timer.now = clock.now
	svc.Timer.newID = nextID
	svc.Reconcile.now = clock.now
	svc.Export.now = clock.now

	return svc, clock
}

// mustCreate logs an entry on testDay
func mustCreate(t *testing.T, svc *Services, input string) *entry.Entry {
	t.Helper()
	e, err := svc.Entry.Create(context.Background(), input, testDay)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", input, err)
	}
	return e
}

func clockAt(hour, minute int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}
