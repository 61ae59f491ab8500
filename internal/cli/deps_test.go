package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xolan/billable/internal/config"
	"github.com/xolan/billable/internal/service"
)

func testServices(t *testing.T) *service.Services {
	t.Helper()
	dir := t.TempDir()
	return service.NewServicesWithPaths(service.Paths{
		Storage: filepath.Join(dir, "entries.jsonl"),
		Timer:   filepath.Join(dir, "timer.json"),
		Config:  filepath.Join(dir, "config.toml"),
		Catalog: filepath.Join(dir, "catalog.yaml"),
		Ledger:  filepath.Join(dir, "ledger.db"),
	}, config.DefaultConfig(), nil, nil)
}

func TestNewDeps(t *testing.T) {
	services := testServices(t)

	deps := NewDeps(services)
	if deps == nil {
		t.Fatal("expected non-nil deps")
	}
	if deps.Services != services {
		t.Error("expected services to match")
	}
	if deps.Stdout == nil || deps.Stderr == nil || deps.Stdin == nil {
		t.Error("expected non-nil streams")
	}
	if deps.Exit == nil || deps.Now == nil {
		t.Error("expected non-nil Exit and Now")
	}
}

func TestDeps_Init(t *testing.T) {
	services := testServices(t)
	calls := 0
	deps := DefaultDeps()
	deps.loadServices = func() (*service.Services, error) {
		calls++
		return services, nil
	}

	if err := deps.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := deps.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if calls != 1 || deps.Services != services {
		t.Errorf("expected services to load once, loaded %d times", calls)
	}
	if err := deps.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDeps_InitError(t *testing.T) {
	deps := DefaultDeps()
	wantErr := errors.New("boom")
	deps.loadServices = func() (*service.Services, error) { return nil, wantErr }

	if err := deps.Init(); !errors.Is(err, wantErr) {
		t.Errorf("Init() error = %v, expected %v", err, wantErr)
	}
	if deps.Services != nil {
		t.Error("expected no services after a failed Init")
	}
	if err := deps.Close(); err != nil {
		t.Errorf("Close() without services error = %v", err)
	}
}

func TestSetDeps(t *testing.T) {
	original := GetDeps()
	defer SetDeps(original)

	newDeps := NewDeps(testServices(t))
	SetDeps(newDeps)

	if GetDeps() != newDeps {
		t.Error("expected GetDeps to return the set deps")
	}
}

func TestResetDeps(t *testing.T) {
	original := GetDeps()
	defer SetDeps(original)

	customDeps := NewDeps(testServices(t))
	SetDeps(customDeps)
	ResetDeps()

	current := GetDeps()
	if current == customDeps {
		t.Error("expected ResetDeps to create new deps")
	}
	if current.Services != nil {
		t.Error("expected reset deps to load services lazily")
	}
}
