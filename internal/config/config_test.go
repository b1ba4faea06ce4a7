package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultYAMLMatchesDefault(t *testing.T) {
	cfg, err := Parse([]byte(DefaultYAML()))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, Default().Validate())
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("load_ceiling: 0.5\nweights:\n  bloom: 0.3\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.LoadCeiling, 1e-9)
	assert.InDelta(t, 0.3, cfg.Weights.Bloom, 1e-9)
	assert.Equal(t, 3, cfg.ReviewWindow)
	assert.InDelta(t, 0.2, cfg.Weights.Difficulty, 1e-9)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("load_cieling: 0.5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load_cieling")
}

func TestValidateRejectsCheckpointBoundsInversion(t *testing.T) {
	cfg := Default()
	cfg.CheckpointMin = 6
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "checkpoint_min must not exceed checkpoint_max")
}

func TestValidateReportsNestedWeightKeys(t *testing.T) {
	cfg := Default()
	cfg.Weights.Bloom = -1
	cfg.ReviewWindow = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights.bloom must be at least 0")
	assert.Contains(t, err.Error(), "review_window must be at least 1")
}

func TestValidateRejectsResetLoadAboveCeiling(t *testing.T) {
	cfg := Default()
	cfg.ReviewResetLoad = 0.9
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "review_reset_load must be below load_ceiling")
}

func TestApplyOverrides(t *testing.T) {
	cfg, err := Default().ApplyOverrides(map[string]string{
		"load_ceiling":   "0.9",
		"checkpoint_max": "8",
		"weights.base":   "0.1",
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, cfg.LoadCeiling, 1e-9)
	assert.Equal(t, 8, cfg.CheckpointMax)
	assert.InDelta(t, 0.1, cfg.Weights.Base, 1e-9)

	_, err = Default().ApplyOverrides(map[string]string{"nope": "1"})
	assert.ErrorContains(t, err, "unknown override key")

	_, err = Default().ApplyOverrides(map[string]string{"review_window": "three"})
	assert.ErrorContains(t, err, "override review_window")

	_, err = Default().ApplyOverrides(map[string]string{"checkpoint_min": "9"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("review_window: 4\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ReviewWindow)

	_, err = Load(dir)
	assert.ErrorContains(t, err, "is a directory")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestKeysAreSorted(t *testing.T) {
	keys := Keys()
	require.NotEmpty(t, keys)
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "weights.prerequisites")
}
