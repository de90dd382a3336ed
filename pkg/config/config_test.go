package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battwatch.xyz/battery-health-service/pkg/common"
	_ "battwatch.xyz/battery-health-service/pkg/testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv(common.EnvKeyBHSConfigPath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Simulator.TickInterval)
	assert.False(t, cfg.Simulator.DemoJumps, "demo jumps are opt-in")
	assert.Equal(t, 0.7, cfg.Simulator.HealthDropChance)
	assert.Equal(t, 10*time.Second, cfg.Poller.Interval)
	assert.Equal(t, 90, cfg.Maintenance.HistoryRetentionDays)

	opts := cfg.SimulatorOptions()
	assert.Equal(t, cfg.Simulator.TickInterval, opts.TickInterval)
	assert.Equal(t, cfg.Simulator.MaxSmallDelta, opts.MaxSmallDelta)
}

func TestLoadEnvOverride(t *testing.T) {
	os.Unsetenv(common.EnvKeyBHSConfigPath)
	t.Setenv("BHS_SIM_TICK_INTERVAL", "500ms")
	t.Setenv("BHS_SIM_DEMO_JUMPS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.Simulator.TickInterval)
	assert.True(t, cfg.Simulator.DemoJumps)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bhs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
simulator:
  tick_interval: 1s
  max_small_delta: 2.5
maintenance:
  history_retention_days: 7
`), 0o644))

	t.Setenv(common.EnvKeyBHSConfigPath, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Simulator.TickInterval)
	assert.Equal(t, 2.5, cfg.Simulator.MaxSmallDelta)
	assert.Equal(t, 7, cfg.Maintenance.HistoryRetentionDays)
	// untouched keys keep their defaults
	assert.Equal(t, 0.7, cfg.Simulator.HealthDropChance)
}

func TestLoadMissingConfigFileFails(t *testing.T) {
	t.Setenv(common.EnvKeyBHSConfigPath, "/nonexistent/bhs.yaml")

	_, err := Load()
	assert.Error(t, err)
}
