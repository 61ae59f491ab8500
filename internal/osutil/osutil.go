// Package osutil resolves where billable keeps its files. The OS calls sit
// behind PathProvider so tests can point them at a temp dir or make them fail.
package osutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the directory under the user config dir
const AppName = "billable"

// PathProvider abstracts OS-level operations for path resolution
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
}

// DefaultPathProvider uses real OS functions.
type DefaultPathProvider struct{}

// UserConfigDir returns the default root directory for user-specific configuration data.
func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// DirProvider roots all paths at a fixed directory
type DirProvider string

func (d DirProvider) UserConfigDir() (string, error) {
	return string(d), nil
}

func (d DirProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Provider is the package-level path provider instance.
// In production, this is DefaultPathProvider. Tests can replace it.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

// AppDir returns the billable directory, creating it if needed
func AppDir() (string, error) {
	configDir, err := Provider.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}

	dir := filepath.Join(configDir, AppName)
	if err := Provider.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, nil
}

// AppPath returns the path of name inside AppDir
func AppPath(name string) (string, error) {
	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ResolvePath returns path unchanged when absolute, otherwise relative to AppDir.
// An empty path resolves to fallback inside AppDir.
func ResolvePath(path, fallback string) (string, error) {
	if path == "" {
		return AppPath(fallback)
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	return AppPath(path)
}
