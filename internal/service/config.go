package service

import (
	"fmt"
	"os"

	"github.com/xolan/billable/internal/config"
)

// ConfigService exposes the loaded configuration and edits the config file
type ConfigService struct {
	configPath string
	config     config.Config
}

// NewConfigService creates a new ConfigService
func NewConfigService(configPath string, cfg config.Config) *ConfigService {
	return &ConfigService{
		configPath: configPath,
		config:     cfg,
	}
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	return s.config
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.configPath
}

// Exists checks if the config file exists
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Set changes one key and rewrites the config file. The catalog, ledger
// and logger opened by this process keep their old settings.
func (s *ConfigService) Set(key, value string) (config.Config, error) {
	cfg := s.config
	if err := cfg.Set(key, value); err != nil {
		return s.config, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return s.config, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.Save(s.configPath, cfg); err != nil {
		return s.config, err
	}
	s.config = cfg
	return cfg, nil
}

// Init creates a sample config file
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.configPath)
	}

	if err := os.WriteFile(s.configPath, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
