package service

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCatalogService_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	svc := NewCatalogService(path, nil)

	if !svc.Get().IsEmpty() {
		t.Fatal("expected an empty catalog")
	}
	if err := svc.Reload(); err != nil {
		t.Fatalf("Reload() of a missing file error = %v", err)
	}

	if err := os.WriteFile(path, []byte(testCatalog), 0644); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if _, ok := svc.Get().Phase("support"); !ok {
		t.Error("expected the support phase after reload")
	}

	if err := os.WriteFile(path, []byte("phases:\n  - id: orphan\n    case: nowhere\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reload(); err == nil {
		t.Error("expected an error for a dangling case reference")
	}
	if _, ok := svc.Get().Phase("support"); !ok {
		t.Error("a failed reload should keep the previous catalog")
	}
	if svc.Path() != path {
		t.Errorf("Path() = %q", svc.Path())
	}
}
