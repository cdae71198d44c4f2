package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// defaultIncludes are the glob patterns used when neither flags nor the
// project config specify any.
var defaultIncludes = []string{"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx"}

// defaultExcludes keep dependency and build output trees out of extraction.
var defaultExcludes = []string{"**/node_modules/**", "**/dist/**", "**/.git/**"}

// ProjectConfig holds the contents of .tsmeta/config.yaml.
type ProjectConfig struct {
	Version   string   `yaml:"version"`
	Include   []string `yaml:"include"`
	Exclude   []string `yaml:"exclude"`
	CacheSize int      `yaml:"cache_size"`
	LogLevel  string   `yaml:"log_level"`
	LogFormat string   `yaml:"log_format"`
	MCPLog    string   `yaml:"mcp_log"`
}

// loadProjectConfig reads .tsmeta/config.yaml from the current directory.
// Returns nil (no error) if the file does not exist.
func loadProjectConfig() (*ProjectConfig, error) {
	data, err := os.ReadFile(".tsmeta/config.yaml")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveIncludes returns the globs to extract, applying the fallback chain:
//  1. Explicit command-line globs
//  2. include patterns from .tsmeta/config.yaml
//  3. Built-in defaults
func resolveIncludes(cliGlobs []string, cfg *ProjectConfig) []string {
	if len(cliGlobs) > 0 {
		return cliGlobs
	}
	if cfg != nil && len(cfg.Include) > 0 {
		return cfg.Include
	}
	return defaultIncludes
}

func resolveExcludes(cfg *ProjectConfig) []string {
	if cfg != nil && len(cfg.Exclude) > 0 {
		return cfg.Exclude
	}
	return defaultExcludes
}
