// Package maintenance runs the daily upkeep jobs: pruning history samples
// past the retention window and recomputing degradation rates from each
// battery's observed history.
package maintenance

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"battwatch.xyz/battery-health-service/pkg/common"
	"battwatch.xyz/battery-health-service/pkg/store"
)

type Options struct {
	// HistoryRetentionDays bounds how long history samples are kept.
	HistoryRetentionDays int
	// RunAt is the daily run time, "HH:MM" local.
	RunAt string
}

type Maintenance struct {
	scheduler *gocron.Scheduler
	store     store.Store
	opts      Options
	now       func() time.Time
}

func New(s store.Store, opts Options) *Maintenance {
	return &Maintenance{
		scheduler: gocron.NewScheduler(time.Local),
		store:     s,
		opts:      opts,
		now:       time.Now,
	}
}

// WithClock swaps the time source. Call before Start.
func (m *Maintenance) WithClock(now func() time.Time) *Maintenance {
	m.now = now
	return m
}

func (m *Maintenance) Start() error {
	if _, err := m.scheduler.Every(1).Day().At(m.opts.RunAt).Do(m.RunOnce); err != nil {
		return fmt.Errorf("failed to schedule maintenance at %s: %w", m.opts.RunAt, err)
	}
	m.scheduler.StartAsync()
	return nil
}

func (m *Maintenance) Stop() {
	m.scheduler.Stop()
}

// RunOnce executes both jobs. Each job's failure is logged without blocking
// the other.
func (m *Maintenance) RunOnce() {
	m.pruneHistory()
	m.recomputeDegradationRates()
}

func (m *Maintenance) pruneHistory() {
	logger := common.GetLoggerWith(
		common.LoggerNameMaintenance,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryRetention),
	)

	cutoff := m.now().AddDate(0, 0, -m.opts.HistoryRetentionDays)
	pruned, err := m.store.PruneHistoryBefore(cutoff)
	if err != nil {
		logger.Warn("History pruning failed", zap.Error(err))
		return
	}

	logger.Info("Pruned history samples",
		zap.Int64("pruned", pruned),
		zap.Time("cutoff", cutoff))
}

// recomputeDegradationRates derives each battery's degradation rate in
// %-points per month from the health drop across its observed history span.
func (m *Maintenance) recomputeDegradationRates() {
	logger := common.GetLoggerWith(
		common.LoggerNameMaintenance,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDegradation),
	)

	batteries, err := m.store.ListBatteries()
	if err != nil {
		logger.Warn("Store unavailable, skipping degradation recompute", zap.Error(err))
		return
	}

	for _, battery := range batteries {
		samples, err := m.store.ListHistory(battery.ID, nil, nil)
		if err != nil {
			logger.Warn("Failed to list history, skipping battery",
				zap.Uint("battery_id", battery.ID), zap.Error(err))
			continue
		}
		if len(samples) < 2 {
			continue
		}

		first, last := samples[0], samples[len(samples)-1]
		span := last.Timestamp.Sub(first.Timestamp)
		if span <= 0 {
			continue
		}

		months := span.Hours() / (24 * 30)
		rate := (first.HealthPercentage - last.HealthPercentage) / months
		if rate < 0 {
			rate = 0 // health recovered over the span; degradation never negative
		}

		if _, err := m.store.UpdateBattery(battery.ID, store.BatteryPatch{
			DegradationRate: &rate,
		}); err != nil {
			logger.Warn("Failed to update degradation rate, skipping battery",
				zap.Uint("battery_id", battery.ID), zap.Error(err))
			continue
		}

		logger.Info("Recomputed degradation rate",
			zap.Uint("battery_id", battery.ID),
			zap.Float64("rate", rate))
	}
}
