package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dqscore/dqscore/internal/scoring"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	// Point the search at an empty directory so no config file is found.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Server, cfg.Server)
	assert.Nil(t, cfg.EngineWeights())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
weights:
  completeness: 0.4
  validity: 0.6
max_rows: 5000
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.MaxRows)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host) // default survives partial file

	weights := cfg.EngineWeights()
	require.NotNil(t, weights)
	assert.Equal(t, scoring.Weights{"completeness": 0.4, "validity": 0.6}, weights)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.MaxRows = 123
	cfg.Weights = map[string]float64{"completeness": 1}

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxRows, loaded.MaxRows)
	assert.Equal(t, cfg.Weights, loaded.Weights)
	assert.Equal(t, cfg.Server, loaded.Server)
}
