package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig_Missing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".tsmeta"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tsmeta", "config.yaml"), []byte(`
version: "1"
include:
  - "src/**/*.ts"
exclude:
  - "**/generated/**"
cache_size: 64
log_level: debug
mcp_log: .tsmeta/tools.jsonl
`), 0644))
	t.Chdir(dir)

	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"src/**/*.ts"}, cfg.Include)
	assert.Equal(t, []string{"**/generated/**"}, cfg.Exclude)
	assert.Equal(t, 64, cfg.CacheSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ".tsmeta/tools.jsonl", cfg.MCPLog)
}

func TestResolveIncludes(t *testing.T) {
	cfg := &ProjectConfig{Include: []string{"lib/**/*.ts"}}

	assert.Equal(t, []string{"a.ts"}, resolveIncludes([]string{"a.ts"}, cfg),
		"command-line globs win")
	assert.Equal(t, []string{"lib/**/*.ts"}, resolveIncludes(nil, cfg),
		"config include is next")
	assert.Equal(t, defaultIncludes, resolveIncludes(nil, nil),
		"defaults when nothing is configured")
	assert.Equal(t, defaultIncludes, resolveIncludes(nil, &ProjectConfig{}),
		"defaults when config has no includes")
}

func TestResolveExcludes(t *testing.T) {
	assert.Equal(t, defaultExcludes, resolveExcludes(nil))
	assert.Equal(t, []string{"**/gen/**"}, resolveExcludes(&ProjectConfig{Exclude: []string{"**/gen/**"}}))
}
