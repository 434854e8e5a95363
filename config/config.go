// Package config provides configuration loading and management for
// semshapes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete semshapes configuration.
type Config struct {
	Shapes     ShapesConfig     `yaml:"shapes"`
	Index      IndexConfig      `yaml:"index"`
	Validation ValidationConfig `yaml:"validation"`
	NATS       NATSConfig       `yaml:"nats"`
}

// ShapesConfig locates the shape-definition files.
type ShapesConfig struct {
	// Paths are glob patterns of shape YAML files.
	Paths []string `yaml:"paths"`
}

// IndexConfig configures the source extractors.
type IndexConfig struct {
	// Paths are directory glob patterns to index.
	Paths []string `yaml:"paths"`
	// RepoRoot is the repository root (auto-detected from git if empty).
	RepoRoot string `yaml:"repo_root"`
}

// ValidationConfig tunes a validation run.
type ValidationConfig struct {
	// Workers is the fan-out width across (focus node, shape) pairs.
	Workers int `yaml:"workers"`
	// QueryTimeout bounds each query constraint's execution.
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

// NATSConfig configures report publishing.
type NATSConfig struct {
	// URL is the NATS server URL (empty disables publishing).
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Shapes: ShapesConfig{
			Paths: []string{"shapes/**/*.yaml"},
		},
		Index: IndexConfig{
			Paths:    []string{"."},
			RepoRoot: "", // Auto-detect
		},
		Validation: ValidationConfig{
			Workers:      1,
			QueryTimeout: 5 * time.Second,
		},
		NATS: NATSConfig{
			URL: "",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Shapes.Paths) == 0 {
		return fmt.Errorf("shapes.paths is required")
	}
	if c.Validation.Workers < 1 {
		return fmt.Errorf("validation.workers must be at least 1")
	}
	if c.Validation.QueryTimeout <= 0 {
		return fmt.Errorf("validation.query_timeout must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, layered over the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one; non-zero values in other
// take precedence.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if len(other.Shapes.Paths) > 0 {
		c.Shapes.Paths = other.Shapes.Paths
	}

	if len(other.Index.Paths) > 0 {
		c.Index.Paths = other.Index.Paths
	}
	if other.Index.RepoRoot != "" {
		c.Index.RepoRoot = other.Index.RepoRoot
	}

	if other.Validation.Workers != 0 {
		c.Validation.Workers = other.Validation.Workers
	}
	if other.Validation.QueryTimeout != 0 {
		c.Validation.QueryTimeout = other.Validation.QueryTimeout
	}

	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
}
