package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// defaultCatalogTTLMinutes is used when the config does not set a TTL for
// the discovery cache.
const defaultCatalogTTLMinutes = 10

// Config represents the application configuration
type Config struct {
	// ManifestSheetID is the spreadsheet holding the booking manifests.
	ManifestSheetID string `yaml:"manifestSheetID" validate:"required"`
	// ManifestTab is the default worksheet tab to allocate into; commands
	// may override it per call.
	ManifestTab string `yaml:"manifestTab" validate:"required"`
	// CatalogTTLMinutes bounds how long discovery results (tab titles,
	// package listings) are cached. Zero disables caching.
	CatalogTTLMinutes *int `yaml:"catalogTTLMinutes,omitempty" validate:"omitempty,min=0"`
	// DefaultManager is written into the manager column when a booking
	// does not name one.
	DefaultManager string `yaml:"defaultManager,omitempty"`
	// DefaultMeal is the meal code used when a booking does not set one.
	DefaultMeal string `yaml:"defaultMeal,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// CatalogTTLMinutesOrDefault returns the configured discovery cache TTL,
// falling back to the default when unset.
func (c *Config) CatalogTTLMinutesOrDefault() int {
	if c.CatalogTTLMinutes == nil {
		return defaultCatalogTTLMinutes
	}
	return *c.CatalogTTLMinutes
}

// Load loads and validates the configuration from rooming_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// findConfigFile searches for rooming_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "rooming_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
