// Package store defines the battery record store contract consumed by the
// simulator, the broadcaster and the HTTP layer, with swappable backends
// (gorm-backed and in-memory).
package store

import (
	"errors"
	"time"

	"battwatch.xyz/battery-health-service/pkg/models"
)

// ErrNotFound is returned by any operation addressing a record that does not
// exist. Callers translate it to their own not-found surface (HTTP 404, a
// skipped simulator tick); it never crashes a loop.
var ErrNotFound = errors.New("record not found")

// BatteryPatch is a partial update for a battery record. Nil fields are left
// untouched. InitialCapacity is immutable after creation and deliberately has
// no field here.
type BatteryPatch struct {
	Name              *string
	SerialNumber      *string
	CurrentCapacity   *int
	HealthPercentage  *float64
	CycleCount        *int
	ExpectedCycleLife *int
	Status            *models.BatteryStatus
	InstallationDate  *time.Time
	LastUpdated       *time.Time
	DegradationRate   *float64
}

// UsagePatternPatch is the upsert payload for a battery's usage pattern.
type UsagePatternPatch struct {
	ChargingFrequency    *float64
	DischargeDepth       *float64
	ChargeDuration       *float64
	OperatingTemperature *float64
}

type Store interface {
	ListBatteries() ([]models.BatteryRecord, error)
	GetBattery(id uint) (*models.BatteryRecord, error)
	CreateBattery(input *models.BatteryRecord) (*models.BatteryRecord, error)
	UpdateBattery(id uint, patch BatteryPatch) (*models.BatteryRecord, error)
	// DeleteBattery removes the battery and cascades to its history samples,
	// recommendations and usage pattern. Reports whether the battery existed.
	DeleteBattery(id uint) (bool, error)

	AppendHistory(sample *models.HistorySample) (*models.HistorySample, error)
	// ListHistory returns samples for a battery ascending by timestamp,
	// optionally bounded by [startDate, endDate].
	ListHistory(batteryID uint, startDate, endDate *time.Time) ([]models.HistorySample, error)
	// PruneHistoryBefore deletes samples older than cutoff across all
	// batteries and reports how many were removed.
	PruneHistoryBefore(cutoff time.Time) (int64, error)

	UpsertUsagePattern(batteryID uint, patch UsagePatternPatch) (*models.UsagePattern, error)
	GetUsagePattern(batteryID uint) (*models.UsagePattern, error)

	// ListRecommendations returns recommendations addressed to the battery,
	// including the batteryID-0 "all batteries" entries.
	ListRecommendations(batteryID uint) ([]models.Recommendation, error)
	CreateRecommendation(input *models.Recommendation) (*models.Recommendation, error)
	// ResolveRecommendation transitions the resolved flag. The flag is
	// one-way: once true it never reverts, so resolved=false on an already
	// resolved entry is a no-op.
	ResolveRecommendation(id uint, resolved bool) (*models.Recommendation, error)
}
