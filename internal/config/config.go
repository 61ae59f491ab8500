package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xolan/billable/internal/logging"
	"github.com/xolan/billable/internal/osutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// DefaultCatalogFile is the catalog location when catalog_path is unset
	DefaultCatalogFile = "catalog.yaml"
	// DefaultLedgerFile is the ledger location when ledger_path is unset
	DefaultLedgerFile = "ledger.db"
)

// Config represents the application configuration
type Config struct {
	// WeekStartDay defines which day starts the week (monday or sunday)
	WeekStartDay string `toml:"week_start_day"`
	// Timezone is the IANA zone days are evaluated in. The 23:55 padding
	// cutoff and day confirmation both follow it.
	Timezone string `toml:"timezone"`
	// CatalogPath points at the synced catalog; relative paths are resolved
	// against the billable config directory
	CatalogPath string `toml:"catalog_path"`
	// LedgerPath points at the sqlite ledger, resolved like CatalogPath
	LedgerPath string `toml:"ledger_path"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log_level"`
	// LogFormat is console or json
	LogFormat string `toml:"log_format"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() Config {
	return Config{
		WeekStartDay: "monday",
		Timezone:     "Local",
		CatalogPath:  "",
		LedgerPath:   "",
		LogLevel:     logging.DefaultLevel,
		LogFormat:    "console",
	}
}

// GetConfigPath returns the path to the config file, creating the
// billable directory if it doesn't exist
func GetConfigPath() (string, error) {
	return osutil.AppPath(ConfigFile)
}

// Load reads the config at path. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, but a missing file yields DefaultConfig
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to access config file: %w", err)
	}
	return Load(path)
}

// Keys lists the config file keys in file order
var Keys = []string{"week_start_day", "timezone", "catalog_path", "ledger_path", "log_level", "log_format"}

// ErrUnknownKey is returned by Set for a key not in Keys
var ErrUnknownKey = errors.New("unknown config key")

// Set assigns value to the field stored under key. The result is not
// validated.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "week_start_day":
		c.WeekStartDay = value
	case "timezone":
		c.Timezone = value
	case "catalog_path":
		c.CatalogPath = value
	case "ledger_path":
		c.LedgerPath = value
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	default:
		return fmt.Errorf("%w %q (known keys: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
	}
	return nil
}

// Get returns the value stored under key
func (c Config) Get(key string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "week_start_day":
		return c.WeekStartDay, nil
	case "timezone":
		return c.Timezone, nil
	case "catalog_path":
		return c.CatalogPath, nil
	case "ledger_path":
		return c.LedgerPath, nil
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	}
	return "", fmt.Errorf("%w %q (known keys: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
}

// Save writes cfg to path as TOML
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	buf.WriteString("# billable configuration file\n# Written by 'billable config --set'.\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Normalize lower-cases and trims the enumerated values in place
func (c *Config) Normalize() {
	c.WeekStartDay = strings.ToLower(strings.TrimSpace(c.WeekStartDay))
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.CatalogPath = strings.TrimSpace(c.CatalogPath)
	c.LedgerPath = strings.TrimSpace(c.LedgerPath)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// Validate checks the values; call Normalize first
func (c Config) Validate() error {
	if c.WeekStartDay != "monday" && c.WeekStartDay != "sunday" {
		return fmt.Errorf("invalid week_start_day %q: must be \"monday\" or \"sunday\"", c.WeekStartDay)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if c.LogFormat != "" && c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format %q: must be \"console\" or \"json\"", c.LogFormat)
	}
	return nil
}

// Location resolves the configured timezone. Empty and "Local" mean the
// system zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// WeekStart returns the configured first day of the week
func (c Config) WeekStart() time.Weekday {
	if c.WeekStartDay == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// CatalogFile resolves the catalog location
func (c Config) CatalogFile() (string, error) {
	return osutil.ResolvePath(c.CatalogPath, DefaultCatalogFile)
}

// LedgerFile resolves the ledger location
func (c Config) LedgerFile() (string, error) {
	return osutil.ResolvePath(c.LedgerPath, DefaultLedgerFile)
}

// Logging returns the logger settings
func (c Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Format: c.LogFormat}
}

// GenerateSampleConfig returns a commented config file documenting every key
func GenerateSampleConfig() string {
	return `# billable configuration file
# Uncomment and edit the values you want to change.

# First day of the week for --week ranges: "monday" or "sunday"
# week_start_day = "monday"

# Timezone days are evaluated in (IANA name or "Local").
# Minimum billing padding never runs past 23:55 in this zone.
# Examples: "Local", "Europe/Copenhagen", "America/New_York", "Asia/Tokyo"
# timezone = "Local"

# Catalog of customers, cases, phases and worktypes synced from the
# project management system. Relative paths live in the config directory.
# catalog_path = "catalog.yaml"

# Ledger of confirmed days and exported records (sqlite)
# ledger_path = "ledger.db"

# Diagnostics on stderr: log_level is debug, info, warn or error;
# log_format is "console" or "json"
# log_level = "warn"
# log_format = "console"
`
}
