package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battwatch.xyz/battery-health-service/pkg/common"
	"battwatch.xyz/battery-health-service/pkg/models"
	"battwatch.xyz/battery-health-service/pkg/store"
	_ "battwatch.xyz/battery-health-service/pkg/testing"
)

func TestRunOncePrunesOldHistory(t *testing.T) {
	common.SetTestLoggerNop()

	memStore := store.NewMemoryStore()
	battery, err := memStore.CreateBattery(&models.BatteryRecord{
		Name: "Pack A", SerialNumber: "SN-A", InitialCapacity: 4000,
		CurrentCapacity: 4000, HealthPercentage: 100,
	})
	require.NoError(t, err)

	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)
	for _, daysAgo := range []int{40, 20, 5, 1} {
		_, err := memStore.AppendHistory(&models.HistorySample{
			BatteryID:        battery.ID,
			Timestamp:        now.AddDate(0, 0, -daysAgo),
			HealthPercentage: 100,
		})
		require.NoError(t, err)
	}

	m := New(memStore, Options{HistoryRetentionDays: 30, RunAt: "03:00"}).
		WithClock(func() time.Time { return now })
	m.RunOnce()

	samples, err := memStore.ListHistory(battery.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, samples, 3, "the 40-day-old sample is pruned")
}

func TestRunOnceRecomputesDegradationRate(t *testing.T) {
	common.SetTestLoggerNop()

	memStore := store.NewMemoryStore()
	battery, err := memStore.CreateBattery(&models.BatteryRecord{
		Name: "Pack A", SerialNumber: "SN-A", InitialCapacity: 4000,
		CurrentCapacity: 3800, HealthPercentage: 95,
	})
	require.NoError(t, err)

	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)
	// 2 points of health lost over 60 days = 1 point per 30-day month
	_, err = memStore.AppendHistory(&models.HistorySample{
		BatteryID: battery.ID, Timestamp: now.AddDate(0, 0, -60), HealthPercentage: 97,
	})
	require.NoError(t, err)
	_, err = memStore.AppendHistory(&models.HistorySample{
		BatteryID: battery.ID, Timestamp: now, HealthPercentage: 95,
	})
	require.NoError(t, err)

	m := New(memStore, Options{HistoryRetentionDays: 365, RunAt: "03:00"}).
		WithClock(func() time.Time { return now })
	m.RunOnce()

	updated, err := memStore.GetBattery(battery.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, updated.DegradationRate, 1e-9)
}

func TestDegradationRateNeverNegative(t *testing.T) {
	common.SetTestLoggerNop()

	memStore := store.NewMemoryStore()
	battery, err := memStore.CreateBattery(&models.BatteryRecord{
		Name: "Pack A", SerialNumber: "SN-A", InitialCapacity: 4000,
		CurrentCapacity: 4000, HealthPercentage: 99,
	})
	require.NoError(t, err)

	now := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)
	// health recovered over the span
	_, err = memStore.AppendHistory(&models.HistorySample{
		BatteryID: battery.ID, Timestamp: now.AddDate(0, 0, -30), HealthPercentage: 97,
	})
	require.NoError(t, err)
	_, err = memStore.AppendHistory(&models.HistorySample{
		BatteryID: battery.ID, Timestamp: now, HealthPercentage: 99,
	})
	require.NoError(t, err)

	m := New(memStore, Options{HistoryRetentionDays: 365, RunAt: "03:00"}).
		WithClock(func() time.Time { return now })
	m.RunOnce()

	updated, err := memStore.GetBattery(battery.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.DegradationRate)
}

func TestSingleSampleSkipped(t *testing.T) {
	common.SetTestLoggerNop()

	memStore := store.NewMemoryStore()
	battery, err := memStore.CreateBattery(&models.BatteryRecord{
		Name: "Pack A", SerialNumber: "SN-A", InitialCapacity: 4000,
		CurrentCapacity: 4000, HealthPercentage: 100, DegradationRate: 0.5,
	})
	require.NoError(t, err)

	_, err = memStore.AppendHistory(&models.HistorySample{
		BatteryID: battery.ID, Timestamp: time.Now(), HealthPercentage: 100,
	})
	require.NoError(t, err)

	m := New(memStore, Options{HistoryRetentionDays: 365, RunAt: "03:00"})
	m.RunOnce()

	updated, err := memStore.GetBattery(battery.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.5, updated.DegradationRate, "too little history to recompute")
}
