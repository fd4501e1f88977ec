package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonlens/internal/errors"
)

// Config represents the complete configuration for jsonlens
type Config struct {
	Output OutputConfig `yaml:"output"`
	Report ReportConfig `yaml:"report"`
}

// OutputConfig controls how the report is rendered
type OutputConfig struct {
	Pretty bool   `yaml:"pretty"`
	Indent int    `yaml:"indent"`
	Color  string `yaml:"color"` // auto, always or never
}

// ReportConfig controls report content options
type ReportConfig struct {
	AbsolutePaths bool `yaml:"absolute_paths"`
}

// Color modes accepted by OutputConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Pretty: true,
			Indent: 2,
			Color:  ColorAuto,
		},
		Report: ReportConfig{
			AbsolutePaths: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults so omitted keys keep their default values.
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.NewConfigError(
			fmt.Sprintf("invalid color mode '%s' (want auto, always or never)", c.Output.Color),
			nil,
		)
	}
	if c.Output.Indent < 0 {
		return errors.NewConfigError("output.indent must not be negative", nil)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonlens.yml", ".jsonlens.yaml", "jsonlens.yml", "jsonlens.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Load resolves the effective configuration: explicit path if given,
// otherwise a discovered config file, otherwise defaults.
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadConfig(explicitPath)
	}
	if found := FindConfigFile(); found != "" {
		return LoadConfig(found)
	}
	return NewConfig(), nil
}
