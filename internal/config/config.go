// Package config loads sift configuration from .sift.yaml files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/siftcss/pkg/extract"
)

// DefaultConfigFile is the config file name looked up in the working directory.
const DefaultConfigFile = ".sift.yaml"

// Config represents sift configuration options
type Config struct {
	// Extensions is the list of file extensions to scan (e.g. ".html", ".vue")
	Extensions []string `yaml:"extensions"`

	// ExcludeDirs lists directory names skipped while collecting files
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// IO selects the read strategy: "sequential" or "parallel"
	IO string `yaml:"io"`

	// Parsing selects the scan strategy: "sequential" or "parallel"
	Parsing string `yaml:"parsing"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Debounce is the delay for coalescing rapid writes in watch mode
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Extensions: []string{
			".html", ".htm", ".vue", ".svelte", ".astro",
			".js", ".jsx", ".ts", ".tsx", ".mdx", ".md",
			".php", ".erb", ".twig", ".heex", ".templ",
		},
		ExcludeDirs: []string{"node_modules", "vendor", "dist", "build"},
		IO:          "parallel",
		Parsing:     "parallel",
		LogLevel:    "info",
		Debounce:    100 * time.Millisecond,
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Use a temporary struct to handle duration parsing
	type yamlConfig struct {
		Extensions  []string `yaml:"extensions"`
		ExcludeDirs []string `yaml:"exclude_dirs"`
		IO          string   `yaml:"io"`
		Parsing     string   `yaml:"parsing"`
		LogLevel    string   `yaml:"log_level"`
		Debounce    string   `yaml:"debounce"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if len(yamlCfg.Extensions) > 0 {
		cfg.Extensions = yamlCfg.Extensions
	}
	if len(yamlCfg.ExcludeDirs) > 0 {
		cfg.ExcludeDirs = yamlCfg.ExcludeDirs
	}
	if yamlCfg.IO != "" {
		cfg.IO = yamlCfg.IO
	}
	if yamlCfg.Parsing != "" {
		cfg.Parsing = yamlCfg.Parsing
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Debounce != "" {
		debounce, err := time.ParseDuration(yamlCfg.Debounce)
		if err != nil {
			return nil, fmt.Errorf("invalid debounce format %q: %w", yamlCfg.Debounce, err)
		}
		cfg.Debounce = debounce
	}

	if _, err := cfg.Strategy(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Strategy converts the configured axis names into an execution strategy.
// Unknown axis names are a configuration error.
func (c *Config) Strategy() (extract.Strategy, error) {
	var s extract.Strategy

	switch c.IO {
	case "sequential":
		s.IO = extract.IOSequential
	case "parallel", "":
		s.IO = extract.IOParallel
	default:
		return extract.Strategy{}, fmt.Errorf("invalid io strategy %q (want sequential or parallel)", c.IO)
	}

	switch c.Parsing {
	case "sequential":
		s.Parsing = extract.ParsingSequential
	case "parallel", "":
		s.Parsing = extract.ParsingParallel
	default:
		return extract.Strategy{}, fmt.Errorf("invalid parsing strategy %q (want sequential or parallel)", c.Parsing)
	}

	return s, nil
}
