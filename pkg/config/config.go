package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"battwatch.xyz/battery-health-service/pkg/common"
	"battwatch.xyz/battery-health-service/pkg/sim"
)

type SimulatorConfig struct {
	TickInterval      time.Duration `mapstructure:"tick_interval"`
	BulkInterval      time.Duration `mapstructure:"bulk_interval"`
	DemoJumps         bool          `mapstructure:"demo_jumps"`
	HealthDropChance  float64       `mapstructure:"health_drop_chance"`
	MaxSmallDelta     float64       `mapstructure:"max_small_delta"`
	CycleIncChance    float64       `mapstructure:"cycle_inc_chance"`
	RecommendChance   float64       `mapstructure:"recommend_chance"`
	MinBulkCycleJump  int           `mapstructure:"min_bulk_cycle_jump"`
	MaxBulkCycleJump  int           `mapstructure:"max_bulk_cycle_jump"`
	MaxBulkHealthJump float64       `mapstructure:"max_bulk_health_jump"`
}

type PollerConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	StaleAfter time.Duration `mapstructure:"stale_after"`
}

type MaintenanceConfig struct {
	HistoryRetentionDays int    `mapstructure:"history_retention_days"`
	RunAt                string `mapstructure:"run_at"` // "HH:MM", local time
}

type Config struct {
	Simulator   SimulatorConfig   `mapstructure:"simulator"`
	Poller      PollerConfig      `mapstructure:"poller"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

// Load reads configuration from defaults, an optional yaml file pointed to by
// BHS_CONFIG_PATH, and environment overrides, in increasing precedence.
func Load() (*Config, error) {
	v := viper.New()

	defaults := sim.DefaultOptions()
	v.SetDefault("simulator.tick_interval", defaults.TickInterval)
	v.SetDefault("simulator.bulk_interval", defaults.BulkInterval)
	v.SetDefault("simulator.demo_jumps", defaults.DemoJumps)
	v.SetDefault("simulator.health_drop_chance", defaults.HealthDropChance)
	v.SetDefault("simulator.max_small_delta", defaults.MaxSmallDelta)
	v.SetDefault("simulator.cycle_inc_chance", defaults.CycleIncChance)
	v.SetDefault("simulator.recommend_chance", defaults.RecommendChance)
	v.SetDefault("simulator.min_bulk_cycle_jump", defaults.MinBulkCycleJump)
	v.SetDefault("simulator.max_bulk_cycle_jump", defaults.MaxBulkCycleJump)
	v.SetDefault("simulator.max_bulk_health_jump", defaults.MaxBulkHealthJump)

	v.SetDefault("poller.interval", 10*time.Second)
	v.SetDefault("poller.stale_after", time.Minute)

	v.SetDefault("maintenance.history_retention_days", 90)
	v.SetDefault("maintenance.run_at", "03:00")

	v.BindEnv("simulator.tick_interval", "BHS_SIM_TICK_INTERVAL")
	v.BindEnv("simulator.bulk_interval", "BHS_SIM_BULK_INTERVAL")
	v.BindEnv("simulator.demo_jumps", "BHS_SIM_DEMO_JUMPS")
	v.BindEnv("poller.interval", "BHS_POLLER_INTERVAL")
	v.BindEnv("poller.stale_after", "BHS_POLLER_STALE_AFTER")
	v.BindEnv("maintenance.history_retention_days", "BHS_HISTORY_RETENTION_DAYS")
	v.BindEnv("maintenance.run_at", "BHS_MAINTENANCE_RUN_AT")

	if path := os.Getenv(common.EnvKeyBHSConfigPath); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// SimulatorOptions translates the config into the simulator's option set.
func (c *Config) SimulatorOptions() sim.Options {
	return sim.Options{
		TickInterval:      c.Simulator.TickInterval,
		BulkInterval:      c.Simulator.BulkInterval,
		DemoJumps:         c.Simulator.DemoJumps,
		HealthDropChance:  c.Simulator.HealthDropChance,
		MaxSmallDelta:     c.Simulator.MaxSmallDelta,
		CycleIncChance:    c.Simulator.CycleIncChance,
		RecommendChance:   c.Simulator.RecommendChance,
		MinBulkCycleJump:  c.Simulator.MinBulkCycleJump,
		MaxBulkCycleJump:  c.Simulator.MaxBulkCycleJump,
		MaxBulkHealthJump: c.Simulator.MaxBulkHealthJump,
	}
}
