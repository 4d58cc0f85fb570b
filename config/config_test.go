package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/ycurve/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.DefaultConfig.Validate())
	assert.Equal(t, 1e-8, config.DefaultConfig.MinDiscountFactor)
	assert.Equal(t, 1.2, config.DefaultConfig.MaxDiscountFactor)
}

func TestDecode_OverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Decode(strings.NewReader("maxPasses: 5\nconvergenceTolerance: 1e-12\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxPasses)
	assert.Equal(t, 1e-12, cfg.ConvergenceTolerance)
	assert.Equal(t, config.DefaultConfig.MaxIterations, cfg.MaxIterations)

	cfg, err = config.Decode(strings.NewReader(`{"maxIterations": 250}`))
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.MaxIterations)

	cfg, err = config.Decode(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig, cfg)
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()

	_, err := config.Decode(strings.NewReader("minDiscountFactor: 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MinDiscountFactor")

	_, err = config.Decode(strings.NewReader("maxIterations: 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxIterations")

	_, err = config.Decode(strings.NewReader("maxPasses: [1, 2]\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("passTolerance: 1e-9\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-9, cfg.PassTolerance)

	_, err = config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
