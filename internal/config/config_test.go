package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFallsBackToDefaultsWithoutConfigFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "8k", cfg.DefaultBudget)
	assert.True(t, cfg.Fast)
	assert.Equal(t, 30, cfg.CacheTTLDays)
	assert.Equal(t, "markdown", cfg.Format)
	assert.True(t, cfg.FollowImports)
	assert.Equal(t, 1, cfg.ImportDepth)
	assert.False(t, cfg.Rerank.Enabled)
	assert.Equal(t, 20, cfg.Rerank.TopK)
}

func TestLoadMergesRepoConfigOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".lmfetch.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_budget = \"16k\"\nfast = false\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "16k", cfg.DefaultBudget)
	assert.False(t, cfg.Fast)
}

func TestValidateRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".lmfetch.toml")
	require.NoError(t, os.WriteFile(path, []byte("not_a_real_key = 1\n"), 0o644))

	err := Validate(path)
	assert.Error(t, err)
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".lmfetch.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_budget = \"8k\"\nfast = true\n"), 0o644))

	assert.NoError(t, Validate(path))
}
