// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for podump.
//
// Configuration is loaded from a single file specified by:
//   - PODUMP_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures deterministic,
// auditable configuration with no hidden overrides.
//
// The config file may contain environment-specific sections (development,
// staging, production) that override base values when the environment matches.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for podump.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Capture configures capture recording and replay storage.
	Capture CaptureConfig `yaml:"capture"`

	// Types configures the global type table used to interpret PODs.
	Types TypesConfig `yaml:"types"`

	// Inspect configures the TUI browser and catalog docs renderer.
	Inspect InspectConfig `yaml:"inspect"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Capture *CaptureConfig `yaml:"capture,omitempty"`
	Types   *TypesConfig   `yaml:"types,omitempty"`
	Inspect *InspectConfig `yaml:"inspect,omitempty"`
}

// CaptureConfig configures where recorded capture files live and how
// they are stored.
type CaptureConfig struct {
	// Dir is the base directory captures are written to and replayed from.
	Dir string `yaml:"dir"`

	// IndexFile is the sqlite index of recorded captures under Dir.
	// Default: index.sqlite
	IndexFile string `yaml:"index_file"`

	// Compression selects the frame compressor: "zstd", "lz4", or "none".
	// Default: lz4
	Compression string `yaml:"compression"`

	// EncryptionRecipient is an age recipient string. When set, capture
	// files are encrypted at rest to this recipient.
	// Default: "" (no encryption)
	EncryptionRecipient string `yaml:"encryption_recipient"`

	// RequireEncryption fails capture creation when EncryptionRecipient
	// is unset, instead of writing plaintext.
	// Default: false (development), true (production)
	RequireEncryption bool `yaml:"require_encryption"`
}

// TypesConfig configures the global type table used to translate and
// interpret POD object/property/format types.
type TypesConfig struct {
	// TableFile is the path to a YAML file listing well-known type
	// names in index order. Default: embedded built-in table.
	TableFile string `yaml:"table_file"`

	// Revision is a free-form label recorded alongside the table's
	// fingerprint, so an operator can tell which build produced it.
	Revision string `yaml:"revision"`
}

// InspectConfig configures the interactive TUI browser and the
// generated catalog documentation.
type InspectConfig struct {
	// Theme selects the lipgloss/chroma color theme.
	// Default: dark
	Theme string `yaml:"theme"`

	// MaxTreeDepth limits how deep the TUI tree view expands
	// automatically before requiring the user to drill in.
	// Default: 6
	MaxTreeDepth int `yaml:"max_tree_depth"`

	// CatalogDir is where `podump docs` writes the rendered catalog.
	CatalogDir string `yaml:"catalog_dir"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
// They exist primarily to ensure all fields have sensible zero-values,
// not as a fallback - the config file is required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "podump")

	return &Config{
		Environment: Development,
		Capture: CaptureConfig{
			Dir:               filepath.Join(defaultRoot, "captures"),
			IndexFile:         "index.sqlite",
			Compression:       "lz4",
			RequireEncryption: false,
		},
		Types: TypesConfig{
			TableFile: "",
			Revision:  "built-in",
		},
		Inspect: InspectConfig{
			Theme:        "dark",
			MaxTreeDepth: 6,
			CatalogDir:   filepath.Join(defaultRoot, "catalog"),
		},
	}
}

// Load loads configuration from the PODUMP_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit path.
// There are no fallbacks or defaults - if PODUMP_CONFIG is not set, this fails.
// This ensures deterministic, auditable configuration with no hidden overrides.
func Load() (*Config, error) {
	configPath := os.Getenv("PODUMP_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("PODUMP_CONFIG environment variable not set; " +
			"set it to the path of your podump.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables do not
// override config values - this ensures deterministic, auditable configuration.
// The only expansion performed is ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	// Apply environment-specific overrides (development/staging/production sections in the file).
	cfg.applyEnvironmentOverrides()

	// Expand ${HOME} and similar variables in paths for portability.
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		// Production defaults: capture files must be encrypted, whether
		// or not the file carries a production section.
		production := ConfigOverrides{}
		if c.Production != nil {
			production = *c.Production
		}
		capture := CaptureConfig{}
		if production.Capture != nil {
			capture = *production.Capture
		}
		capture.RequireEncryption = true
		production.Capture = &capture
		overrides = &production
	}

	if overrides == nil {
		return
	}

	if overrides.Capture != nil {
		if overrides.Capture.Dir != "" {
			c.Capture.Dir = overrides.Capture.Dir
		}
		if overrides.Capture.IndexFile != "" {
			c.Capture.IndexFile = overrides.Capture.IndexFile
		}
		if overrides.Capture.Compression != "" {
			c.Capture.Compression = overrides.Capture.Compression
		}
		if overrides.Capture.EncryptionRecipient != "" {
			c.Capture.EncryptionRecipient = overrides.Capture.EncryptionRecipient
		}
		// RequireEncryption is a bool, so we always apply it from overrides.
		c.Capture.RequireEncryption = overrides.Capture.RequireEncryption
	}

	if overrides.Types != nil {
		if overrides.Types.TableFile != "" {
			c.Types.TableFile = overrides.Types.TableFile
		}
		if overrides.Types.Revision != "" {
			c.Types.Revision = overrides.Types.Revision
		}
	}

	if overrides.Inspect != nil {
		if overrides.Inspect.Theme != "" {
			c.Inspect.Theme = overrides.Inspect.Theme
		}
		if overrides.Inspect.MaxTreeDepth != 0 {
			c.Inspect.MaxTreeDepth = overrides.Inspect.MaxTreeDepth
		}
		if overrides.Inspect.CatalogDir != "" {
			c.Inspect.CatalogDir = overrides.Inspect.CatalogDir
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"PODUMP_ROOT": c.Capture.Dir,
		"HOME":        os.Getenv("HOME"),
	}

	c.Capture.Dir = expandVars(c.Capture.Dir, vars)
	c.Types.TableFile = expandVars(c.Types.TableFile, vars)
	c.Inspect.CatalogDir = expandVars(c.Inspect.CatalogDir, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Capture.Dir == "" {
		errs = append(errs, fmt.Errorf("capture.dir is required"))
	}

	compressionValues := []string{"zstd", "lz4", "none"}
	if !contains(compressionValues, c.Capture.Compression) {
		errs = append(errs, fmt.Errorf("capture.compression must be one of: %v", compressionValues))
	}

	if c.Capture.RequireEncryption && c.Capture.EncryptionRecipient == "" {
		errs = append(errs, fmt.Errorf("capture.require_encryption is set but capture.encryption_recipient is empty"))
	}

	if c.Inspect.MaxTreeDepth <= 0 {
		errs = append(errs, fmt.Errorf("inspect.max_tree_depth must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates all configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	paths := []string{c.Capture.Dir, c.Inspect.CatalogDir}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}

	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// IndexPath returns the full path to the sqlite capture index.
func (c *Config) IndexPath() string {
	return filepath.Join(c.Capture.Dir, c.Capture.IndexFile)
}
