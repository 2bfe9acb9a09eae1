package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how commands render their results.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// Config holds all configuration for specfacts
type Config struct {
	// CacheDir is where the extract cache file lives
	CacheDir string `yaml:"cache_dir" env:"SPECFACTS_CACHE_DIR"`

	// CacheMaxEntries bounds the extract cache (0 = unlimited)
	CacheMaxEntries int `yaml:"cache_max_entries" env:"SPECFACTS_CACHE_MAX_ENTRIES"`

	// Jobs is the number of concurrent workers in batch runs
	Jobs int `yaml:"jobs" env:"SPECFACTS_JOBS"`

	// OutputFormat is the default output format (json or text)
	OutputFormat OutputFormat `yaml:"output_format" env:"SPECFACTS_OUTPUT_FORMAT"`

	// Logging
	Verbose bool `yaml:"verbose" env:"SPECFACTS_VERBOSE"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CacheDir:        defaultCacheDir(),
		CacheMaxEntries: 1000,
		Jobs:            4,
		OutputFormat:    FormatJSON,
		Verbose:         false,
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".specfacts/cache"
	}
	return filepath.Join(home, ".specfacts", "cache")
}

// globalConfigFilePath returns the global config file path (~/.specfacts/config.yaml)
func globalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".specfacts/config.yaml"
	}
	return filepath.Join(home, ".specfacts", "config.yaml")
}

// projectConfigFilePath returns the project-level config file path (./.specfacts/config.yaml)
func projectConfigFilePath() string {
	return ".specfacts/config.yaml"
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.specfacts/config.yaml)
// 3. Global config (~/.specfacts/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	globalConfigPath := globalConfigFilePath()
	if data, err := os.ReadFile(globalConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", globalConfigPath, err)
		}
	}

	projectConfigPath := projectConfigFilePath()
	if data, err := os.ReadFile(projectConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", projectConfigPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file path.
// It creates parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// ProjectConfigPath returns the path Save should use for a project-level
// config file.
func ProjectConfigPath() string {
	return projectConfigFilePath()
}

// GlobalConfigPath returns the path Save should use for the global config
// file.
func GlobalConfigPath() string {
	return globalConfigFilePath()
}

// applyEnvOverrides applies environment variable overrides to the config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SPECFACTS_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("SPECFACTS_CACHE_MAX_ENTRIES"); v != "" {
		if i := parseInt(v); i > 0 {
			cfg.CacheMaxEntries = i
		}
	}
	if v := os.Getenv("SPECFACTS_JOBS"); v != "" {
		if i := parseInt(v); i > 0 {
			cfg.Jobs = i
		}
	}
	if v := os.Getenv("SPECFACTS_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}
	if v := os.Getenv("SPECFACTS_VERBOSE"); v != "" {
		cfg.Verbose = v == "true" || v == "1" || v == "yes"
	}
}

// Validate checks that the configuration has valid required fields
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case FormatJSON, FormatText:
		// Valid
	default:
		return fmt.Errorf("invalid output_format: %s (must be 'json' or 'text')", c.OutputFormat)
	}

	if c.CacheDir == "" {
		return fmt.Errorf("cache_dir must not be empty")
	}
	if c.CacheMaxEntries < 0 {
		return fmt.Errorf("cache_max_entries must be non-negative")
	}
	if c.Jobs <= 0 {
		return fmt.Errorf("jobs must be positive")
	}

	return nil
}

// CacheFile returns the path of the on-disk extract cache.
func (c *Config) CacheFile() string {
	return filepath.Join(c.CacheDir, "extracts.msgpack")
}

// parseInt attempts to parse a string as int
func parseInt(s string) int {
	var i int
	if _, err := fmt.Sscanf(s, "%d", &i); err != nil {
		return 0
	}
	return i
}
