package store

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"battwatch.xyz/battery-health-service/pkg/common"
	"battwatch.xyz/battery-health-service/pkg/db"
	"battwatch.xyz/battery-health-service/pkg/models"
)

// GormStore is the persistent Store backed by pkg/db (sqlite or postgres,
// whichever dialector the process was started with).
type GormStore struct {
	Db db.DB
}

func NewGormStore(dbInstance *db.DB) *GormStore {
	return &GormStore{Db: *dbInstance}
}

func (g *GormStore) ListBatteries() ([]models.BatteryRecord, error) {
	var batteries []models.BatteryRecord
	err := g.Db.Conn.Order("id asc").Find(&batteries).Error
	return batteries, err
}

func (g *GormStore) GetBattery(id uint) (*models.BatteryRecord, error) {
	var battery models.BatteryRecord
	if err := g.Db.Conn.First(&battery, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &battery, nil
}

func (g *GormStore) CreateBattery(input *models.BatteryRecord) (*models.BatteryRecord, error) {
	battery := *input
	battery.ID = 0 // let the database assign the next id
	if err := g.Db.Conn.Create(&battery).Error; err != nil {
		return nil, err
	}
	return &battery, nil
}

func (g *GormStore) UpdateBattery(id uint, patch BatteryPatch) (*models.BatteryRecord, error) {
	battery, err := g.GetBattery(id)
	if err != nil {
		return nil, err
	}

	applyBatteryPatch(battery, patch)

	if err := g.Db.Conn.Save(battery).Error; err != nil {
		return nil, err
	}
	return battery, nil
}

func (g *GormStore) DeleteBattery(id uint) (bool, error) {
	logger := common.GetLoggerWith(common.LoggerNameStore)

	if _, err := g.GetBattery(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	err := g.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("battery_id = ?", id).Delete(&models.HistorySample{}).Error; err != nil {
			return err
		}
		if err := tx.Where("battery_id = ?", id).Delete(&models.Recommendation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("battery_id = ?", id).Delete(&models.UsagePattern{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BatteryRecord{}, id).Error
	})
	if err != nil {
		return false, err
	}

	logger.Info("Deleted battery with cascade", zap.Uint("battery_id", id))
	return true, nil
}

func (g *GormStore) AppendHistory(sample *models.HistorySample) (*models.HistorySample, error) {
	saved := *sample
	saved.ID = 0
	if err := g.Db.Conn.Create(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (g *GormStore) ListHistory(batteryID uint, startDate, endDate *time.Time) ([]models.HistorySample, error) {
	query := g.Db.Conn.Where("battery_id = ?", batteryID)
	if startDate != nil {
		query = query.Where("timestamp >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("timestamp <= ?", *endDate)
	}

	var samples []models.HistorySample
	err := query.Order("timestamp asc").Find(&samples).Error
	return samples, err
}

func (g *GormStore) PruneHistoryBefore(cutoff time.Time) (int64, error) {
	result := g.Db.Conn.Where("timestamp < ?", cutoff).Delete(&models.HistorySample{})
	return result.RowsAffected, result.Error
}

func (g *GormStore) UpsertUsagePattern(batteryID uint, patch UsagePatternPatch) (*models.UsagePattern, error) {
	if _, err := g.GetBattery(batteryID); err != nil {
		return nil, err
	}

	var pattern models.UsagePattern
	err := g.Db.Conn.First(&pattern, "battery_id = ?", batteryID).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		pattern = models.UsagePattern{BatteryID: batteryID}
	}

	applyUsagePatch(&pattern, patch)
	pattern.LastUpdated = time.Now()

	if err := g.Db.Conn.Save(&pattern).Error; err != nil {
		return nil, err
	}
	return &pattern, nil
}

func (g *GormStore) GetUsagePattern(batteryID uint) (*models.UsagePattern, error) {
	var pattern models.UsagePattern
	if err := g.Db.Conn.First(&pattern, "battery_id = ?", batteryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pattern, nil
}

func (g *GormStore) ListRecommendations(batteryID uint) ([]models.Recommendation, error) {
	var recommendations []models.Recommendation
	err := g.Db.Conn.
		Where("battery_id = ? OR battery_id = ?", batteryID, models.RecommendationAllBatteries).
		Order("created_at desc").
		Find(&recommendations).Error
	return recommendations, err
}

func (g *GormStore) CreateRecommendation(input *models.Recommendation) (*models.Recommendation, error) {
	saved := *input
	saved.ID = 0
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now()
	}
	if err := g.Db.Conn.Create(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (g *GormStore) ResolveRecommendation(id uint, resolved bool) (*models.Recommendation, error) {
	var recommendation models.Recommendation
	if err := g.Db.Conn.First(&recommendation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// resolved is one-way: true sticks, false never reverts it.
	if resolved && !recommendation.Resolved {
		recommendation.Resolved = true
		if err := g.Db.Conn.Save(&recommendation).Error; err != nil {
			return nil, err
		}
	}
	return &recommendation, nil
}

func applyBatteryPatch(battery *models.BatteryRecord, patch BatteryPatch) {
	if patch.Name != nil {
		battery.Name = *patch.Name
	}
	if patch.SerialNumber != nil {
		battery.SerialNumber = *patch.SerialNumber
	}
	if patch.CurrentCapacity != nil {
		battery.CurrentCapacity = *patch.CurrentCapacity
	}
	if patch.HealthPercentage != nil {
		battery.HealthPercentage = *patch.HealthPercentage
	}
	if patch.CycleCount != nil {
		battery.CycleCount = *patch.CycleCount
	}
	if patch.ExpectedCycleLife != nil {
		battery.ExpectedCycleLife = *patch.ExpectedCycleLife
	}
	if patch.Status != nil {
		battery.Status = *patch.Status
	}
	if patch.InstallationDate != nil {
		battery.InstallationDate = *patch.InstallationDate
	}
	if patch.LastUpdated != nil {
		battery.LastUpdated = *patch.LastUpdated
	}
	if patch.DegradationRate != nil {
		battery.DegradationRate = *patch.DegradationRate
	}
}

func applyUsagePatch(pattern *models.UsagePattern, patch UsagePatternPatch) {
	if patch.ChargingFrequency != nil {
		pattern.ChargingFrequency = *patch.ChargingFrequency
	}
	if patch.DischargeDepth != nil {
		pattern.DischargeDepth = *patch.DischargeDepth
	}
	if patch.ChargeDuration != nil {
		pattern.ChargeDuration = *patch.ChargeDuration
	}
	if patch.OperatingTemperature != nil {
		pattern.OperatingTemperature = *patch.OperatingTemperature
	}
}
