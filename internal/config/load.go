package config

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the default path to look for the configuration file.
const DefaultConfigPath = "circprog.yaml"

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	return LoadFS(afero.NewOsFs(), path)
}

// LoadDefault loads configuration from the default path (circprog.yaml).
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath)
}

// LoadFS reads a YAML option map from path on fs and builds a configuration
// from it. Keys in the file are the option names accepted by FromOptions.
func LoadFS(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	opts := map[string]any{}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateOptions(opts); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg, err := FromOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}
