package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/billable/internal/config"
)

func newConfigService(t *testing.T) (*ConfigService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	return NewConfigService(path, config.DefaultConfig()), path
}

func TestConfigService_Exists(t *testing.T) {
	svc, path := newConfigService(t)

	if svc.Exists() {
		t.Error("Exists() = true before the file is written")
	}
	if err := os.WriteFile(path, []byte("# empty\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !svc.Exists() {
		t.Error("Exists() = false after the file is written")
	}
	if svc.GetPath() != path {
		t.Errorf("GetPath() = %q, expected %q", svc.GetPath(), path)
	}
}

func TestConfigService_Set(t *testing.T) {
	svc, path := newConfigService(t)

	cfg, err := svc.Set("timezone", " Europe/Oslo ")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Timezone != "Europe/Oslo" || svc.Get().Timezone != "Europe/Oslo" {
		t.Errorf("timezone = %q / %q, expected Europe/Oslo", cfg.Timezone, svc.Get().Timezone)
	}

	if _, err := svc.Set("LOG_FORMAT", "JSON"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != svc.Get() {
		t.Errorf("Load() = %+v, expected %+v", loaded, svc.Get())
	}
	if loaded.LogFormat != "json" {
		t.Errorf("log_format = %q, expected json", loaded.LogFormat)
	}
}

func TestConfigService_Set_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "colour", "blue"},
		{"invalid week start", "week_start_day", "friday"},
		{"invalid timezone", "timezone", "Mars/Olympus"},
		{"invalid log level", "log_level", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newConfigService(t)
			before := svc.Get()

			if _, err := svc.Set(tt.key, tt.value); err == nil {
				t.Fatal("Set() expected error")
			}
			if svc.Get() != before {
				t.Errorf("config changed to %+v", svc.Get())
			}
			if svc.Exists() {
				t.Error("rejected Set() wrote the config file")
			}
		})
	}
}

func TestConfigService_Set_UnknownKeyError(t *testing.T) {
	svc, _ := newConfigService(t)

	_, err := svc.Set("colour", "blue")
	if !errors.Is(err, config.ErrUnknownKey) {
		t.Errorf("Set() error = %v, expected ErrUnknownKey", err)
	}
}

func TestConfigService_Set_WriteError(t *testing.T) {
	svc := NewConfigService("/nonexistent/dir/config.toml", config.DefaultConfig())

	if _, err := svc.Set("timezone", "UTC"); err == nil {
		t.Error("Set() expected error for an unwritable path")
	}
	if svc.Get().Timezone != "Local" {
		t.Errorf("timezone = %q after failed write", svc.Get().Timezone)
	}
}

func TestConfigService_Init(t *testing.T) {
	svc, path := newConfigService(t)

	if err := svc.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "# catalog_path") {
		t.Errorf("sample config misses catalog_path:\n%s", content)
	}

	if err := svc.Init(); err == nil {
		t.Error("second Init() expected error")
	}

	// The sample is all comments, so it loads as the defaults.
	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != config.DefaultConfig() {
		t.Errorf("Load() = %+v, expected defaults", loaded)
	}
}

func TestConfigService_Init_WriteError(t *testing.T) {
	svc := NewConfigService("/nonexistent/dir/config.toml", config.DefaultConfig())

	if err := svc.Init(); err == nil {
		t.Error("Init() expected error for an unwritable path")
	}
}
