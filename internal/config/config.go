// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"sanctions-normalizer/internal/paths"
	"sanctions-normalizer/internal/recordid"
)

// Formats lists the accepted output formats.
var Formats = []string{"json", "yaml", "csv", "text"}

// MaxWorkers caps the configured worker count.
const MaxWorkers = 64

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format          string   `yaml:"format"`
		Verbose         bool     `yaml:"verbose"`
		Debug           bool     `yaml:"debug"`
		NoColor         bool     `yaml:"no_color"`
		Recursive       bool     `yaml:"recursive"`
		Quiet           bool     `yaml:"quiet"`
		Workers         int      `yaml:"workers"`
		ExcludePatterns []string `yaml:"exclude_patterns"`
	} `yaml:"defaults"`

	// Record extraction settings
	Extraction Extraction `yaml:"extraction"`

	// Profiles for different normalization runs
	Profiles map[string]Profile `yaml:"profiles"`
}

// Extraction controls what the record assembler emits.
type Extraction struct {
	IDFields         []string `yaml:"id_fields"`
	IncludeRawFields bool     `yaml:"include_raw_fields"`
	IncludeDiscarded bool     `yaml:"include_discarded"`
}

// Profile represents a named set of overrides for the defaults
type Profile struct {
	Description     string      `yaml:"description"`
	Format          string      `yaml:"format"`
	Verbose         bool        `yaml:"verbose"`
	Debug           bool        `yaml:"debug"`
	NoColor         bool        `yaml:"no_color"`
	Recursive       bool        `yaml:"recursive"`
	Workers         int         `yaml:"workers"`
	ExcludePatterns []string    `yaml:"exclude_patterns"`
	Extraction      *Extraction `yaml:"extraction,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	config.Defaults.Format = "json"
	config.Defaults.Workers = 4
	config.Extraction.IDFields = append([]string(nil), recordid.DefaultIDFields...)

	config.Profiles["audit"] = Profile{
		Description: "Keeps every source field and every discarded candidate for review",
		Format:      "yaml",
		Extraction: &Extraction{
			IncludeRawFields: true,
			IncludeDiscarded: true,
		},
	}

	return config
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}
	if len(config.Extraction.IDFields) == 0 {
		config.Extraction.IDFields = append([]string(nil), recordid.DefaultIDFields...)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return Default()
	}
	return cfg
}

// FindConfigFile looks for a configuration file in standard locations:
// the working directory, then the user configuration directory.
func FindConfigFile() string {
	for _, name := range []string{
		"sanctions-normalizer.yaml", "sanctions-normalizer.yml",
		".sanctions-normalizer.yaml", ".sanctions-normalizer.yml",
	} {
		if fileExists(name) {
			return name
		}
	}

	if standard := paths.GetConfigFile(); fileExists(standard) {
		return standard
	}

	// The env override hides the XDG directory from GetConfigDir.
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate := filepath.Join(xdg, "sanctions-normalizer", "config.yaml")
		if fileExists(candidate) {
			return candidate
		}
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ValidateConfig checks formats and worker counts in the defaults and in
// every profile.
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration is nil")
	}

	if err := validateFormat(config.Defaults.Format); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if err := validateWorkers(config.Defaults.Workers); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if err := validatePatterns(config.Defaults.ExcludePatterns); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	for _, name := range config.ListProfiles() {
		profile := config.Profiles[name]
		if profile.Format != "" {
			if err := validateFormat(profile.Format); err != nil {
				return fmt.Errorf("profile %q: %w", name, err)
			}
		}
		if profile.Workers != 0 {
			if err := validateWorkers(profile.Workers); err != nil {
				return fmt.Errorf("profile %q: %w", name, err)
			}
		}
		if err := validatePatterns(profile.ExcludePatterns); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}

	return nil
}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	return validateFormat(format) == nil
}

func validateFormat(format string) error {
	for _, f := range Formats {
		if strings.EqualFold(format, f) {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q (expected one of %s)", format, strings.Join(Formats, ", "))
}

func validateWorkers(n int) error {
	if n < 1 || n > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d, got %d", MaxWorkers, n)
	}
	return nil
}

func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
	}
	return nil
}

// ListProfiles returns the available profile names in alphabetical order
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}
