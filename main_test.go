package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xolan/billable/internal/osutil"
)

// MockPathProvider for testing config validation failure
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	original := os.Args
	os.Args = append([]string{"billable"}, args...)
	t.Cleanup(func() { os.Args = original })
}

func withTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	osutil.SetProvider(osutil.DirProvider(dir))
	t.Cleanup(osutil.ResetProvider)
	return dir
}

func TestRun_Success(t *testing.T) {
	withTempConfigDir(t)
	withArgs(t, "--version")

	if code := run(); code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRun_ConfigPathFailure(t *testing.T) {
	withArgs(t, "--version")
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) {
			return "", errors.New("permission denied")
		},
	})
	t.Cleanup(osutil.ResetProvider)

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for config path failure, got %d", code)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := withTempConfigDir(t)
	withArgs(t, "--version")

	path := filepath.Join(dir, osutil.AppName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("timezone = \"Mars/Olympus\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for an invalid config, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	withTempConfigDir(t)
	withArgs(t, "--unknownflag")

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	withTempConfigDir(t)
	withArgs(t, "--version")

	originalExit := exitFunc
	defer func() { exitFunc = originalExit }()

	capturedCode := -1
	exitFunc = func(code int) {
		capturedCode = code
	}

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
