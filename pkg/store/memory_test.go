package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battwatch.xyz/battery-health-service/pkg/models"
	_ "battwatch.xyz/battery-health-service/pkg/testing"
)

func strPtr(s string) *string           { return &s }
func intPtr(i int) *int                 { return &i }
func floatPtr(f float64) *float64       { return &f }
func timePtr(t time.Time) *time.Time    { return &t }

func newBattery(name, serial string) *models.BatteryRecord {
	return &models.BatteryRecord{
		Name:              name,
		SerialNumber:      serial,
		InitialCapacity:   4000,
		CurrentCapacity:   4000,
		HealthPercentage:  100,
		ExpectedCycleLife: 800,
		Status:            models.StatusForHealth(100),
		InstallationDate:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		LastUpdated:       time.Now(),
	}
}

func TestMemoryStore_BatteryCRUD(t *testing.T) {
	s := NewMemoryStore()

	first, err := s.CreateBattery(newBattery("Pack A", "SN-A"))
	require.NoError(t, err)
	second, err := s.CreateBattery(newBattery("Pack B", "SN-B"))
	require.NoError(t, err)

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)

	got, err := s.GetBattery(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pack A", got.Name)

	updated, err := s.UpdateBattery(first.ID, BatteryPatch{
		Name:             strPtr("Pack A prime"),
		HealthPercentage: floatPtr(91.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pack A prime", updated.Name)
	assert.Equal(t, 91.5, updated.HealthPercentage)
	// untouched fields survive a partial update
	assert.Equal(t, 4000, updated.InitialCapacity)
	assert.Equal(t, "SN-A", updated.SerialNumber)

	_, err = s.GetBattery(99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateBattery(99, BatteryPatch{Name: strPtr("ghost")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteCascades(t *testing.T) {
	s := NewMemoryStore()

	battery, err := s.CreateBattery(newBattery("Pack A", "SN-A"))
	require.NoError(t, err)
	other, err := s.CreateBattery(newBattery("Pack B", "SN-B"))
	require.NoError(t, err)

	now := time.Now()
	for i := range 3 {
		_, err := s.AppendHistory(&models.HistorySample{
			BatteryID:        battery.ID,
			Timestamp:        now.Add(time.Duration(i) * time.Minute),
			Capacity:         4000 - i,
			HealthPercentage: 100 - float64(i),
		})
		require.NoError(t, err)
	}
	_, err = s.AppendHistory(&models.HistorySample{BatteryID: other.ID, Timestamp: now})
	require.NoError(t, err)

	_, err = s.CreateRecommendation(&models.Recommendation{
		BatteryID: battery.ID,
		Category:  models.CategoryWarning,
		Message:   "check cell balance",
	})
	require.NoError(t, err)

	_, err = s.UpsertUsagePattern(battery.ID, UsagePatternPatch{ChargingFrequency: floatPtr(3)})
	require.NoError(t, err)

	found, err := s.DeleteBattery(battery.ID)
	require.NoError(t, err)
	assert.True(t, found)

	samples, err := s.ListHistory(battery.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, samples)

	recs, err := s.ListRecommendations(battery.ID)
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, err = s.GetUsagePattern(battery.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// the other battery's history is untouched
	otherSamples, err := s.ListHistory(other.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, otherSamples, 1)

	found, err = s.DeleteBattery(battery.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_HistoryOrderingAndRange(t *testing.T) {
	s := NewMemoryStore()

	battery, err := s.CreateBattery(newBattery("Pack A", "SN-A"))
	require.NoError(t, err)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// append out of chronological order
	for _, offset := range []int{2, 0, 1} {
		_, err := s.AppendHistory(&models.HistorySample{
			BatteryID: battery.ID,
			Timestamp: base.Add(time.Duration(offset) * time.Hour),
		})
		require.NoError(t, err)
	}

	samples, err := s.ListHistory(battery.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, samples, 3)
	for i := 1; i < len(samples); i++ {
		assert.False(t, samples[i].Timestamp.Before(samples[i-1].Timestamp))
	}

	bounded, err := s.ListHistory(battery.ID,
		timePtr(base.Add(30*time.Minute)), timePtr(base.Add(90*time.Minute)))
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.Equal(t, base.Add(time.Hour), bounded[0].Timestamp)

	_, err = s.AppendHistory(&models.HistorySample{BatteryID: 42, Timestamp: base})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_PruneHistoryBefore(t *testing.T) {
	s := NewMemoryStore()

	battery, err := s.CreateBattery(newBattery("Pack A", "SN-A"))
	require.NoError(t, err)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		_, err := s.AppendHistory(&models.HistorySample{
			BatteryID: battery.ID,
			Timestamp: base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	pruned, err := s.PruneHistoryBefore(base.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)

	samples, err := s.ListHistory(battery.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, samples, 3)
}

func TestMemoryStore_UsagePatternUpsert(t *testing.T) {
	s := NewMemoryStore()

	battery, err := s.CreateBattery(newBattery("Pack A", "SN-A"))
	require.NoError(t, err)

	created, err := s.UpsertUsagePattern(battery.ID, UsagePatternPatch{
		ChargingFrequency: floatPtr(4),
		DischargeDepth:    floatPtr(60),
	})
	require.NoError(t, err)
	assert.Equal(t, 4.0, created.ChargingFrequency)
	assert.Equal(t, 60.0, created.DischargeDepth)

	// second upsert patches only the given field
	updated, err := s.UpsertUsagePattern(battery.ID, UsagePatternPatch{
		OperatingTemperature: floatPtr(31.5),
	})
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.ChargingFrequency)
	assert.Equal(t, 31.5, updated.OperatingTemperature)

	_, err = s.UpsertUsagePattern(42, UsagePatternPatch{ChargingFrequency: floatPtr(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Recommendations(t *testing.T) {
	s := NewMemoryStore()

	battery, err := s.CreateBattery(newBattery("Pack A", "SN-A"))
	require.NoError(t, err)

	mine, err := s.CreateRecommendation(&models.Recommendation{
		BatteryID: battery.ID,
		Category:  models.CategoryMaintenance,
		Message:   "run a calibration cycle",
	})
	require.NoError(t, err)

	global, err := s.CreateRecommendation(&models.Recommendation{
		BatteryID: models.RecommendationAllBatteries,
		Category:  models.CategoryInfo,
		Message:   "store batteries at 40-60% charge",
	})
	require.NoError(t, err)

	recs, err := s.ListRecommendations(battery.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 2, "battery-specific plus the all-batteries sentinel")

	resolved, err := s.ResolveRecommendation(mine.ID, true)
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)

	// resolved never reverts
	still, err := s.ResolveRecommendation(mine.ID, false)
	require.NoError(t, err)
	assert.True(t, still.Resolved)

	unresolved, err := s.ResolveRecommendation(global.ID, false)
	require.NoError(t, err)
	assert.False(t, unresolved.Resolved)

	_, err = s.ResolveRecommendation(999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}
