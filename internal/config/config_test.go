package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Data.Dir = "/srv/fi"
	cfg.Goal.TargetPct = 70
	cfg.Metrics.LatestMode = LatestModeDate
	require.NoError(t, Save(cfg))
	require.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/fi", got.Data.Dir)
	assert.InDelta(t, 70.0, got.Goal.TargetPct, 1e-9)
	assert.Equal(t, 2027, got.Goal.TargetYear)
	assert.Equal(t, LatestModeDate, got.Metrics.LatestMode)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fidash"), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[goal]\ntarget_pct = 55.0\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 55.0, cfg.Goal.TargetPct, 1e-9)
	assert.Equal(t, 2027, cfg.Goal.TargetYear)
	assert.Equal(t, LatestModeMax, cfg.Metrics.LatestMode)
	assert.Equal(t, "flexoki-dark", cfg.Appearance.Theme)
}

func TestLoad_RejectsUnknownLatestMode(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fidash"), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[metrics]\nlatest_mode = \"newest\"\n"), 0o600))

	_, err := Load()
	assert.ErrorContains(t, err, "latest_mode")
}

func TestGetDataDir_EnvWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.Dir = "/from/config"

	t.Setenv("FIDASH_DATA_DIR", "")
	assert.Equal(t, "/from/config", GetDataDir(cfg))

	t.Setenv("FIDASH_DATA_DIR", "/from/env")
	assert.Equal(t, "/from/env", GetDataDir(cfg))
}
