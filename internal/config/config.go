// Package config loads optional per-project audit settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is looked up in the manifest root directory.
const FileName = ".audit.yaml"

// Config holds project-level defaults. Command-line flags override it.
type Config struct {
	// Registry overrides the npm registry base URL.
	Registry string `yaml:"registry"`

	// Workspaces lists the workspaces to audit, e.g. ["backend/", "frontend/"].
	Workspaces []string `yaml:"workspaces"`

	// Since is the default staleness threshold in years.
	Since int `yaml:"since"`

	Output struct {
		Format string `yaml:"format"` // text or json
	} `yaml:"output"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Since: 4}
	cfg.Output.Format = "text"
	return cfg
}

// Load reads root/.audit.yaml if it exists, falling back to defaults.
func Load(root string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
