package models

import "time"

type BatteryStatus string

const (
	StatusExcellent BatteryStatus = "Excellent"
	StatusGood      BatteryStatus = "Good"
	StatusFair      BatteryStatus = "Fair"
	StatusPoor      BatteryStatus = "Poor"
)

// StatusForHealth is the single source of truth for deriving a battery's
// status from its health percentage. Every path that stores or serves a
// status goes through here.
func StatusForHealth(health float64) BatteryStatus {
	switch {
	case health >= 90:
		return StatusExcellent
	case health >= 80:
		return StatusGood
	case health >= 70:
		return StatusFair
	default:
		return StatusPoor
	}
}

type RecommendationCategory string

const (
	CategoryInfo        RecommendationCategory = "info"
	CategorySuccess     RecommendationCategory = "success"
	CategoryWarning     RecommendationCategory = "warning"
	CategoryError       RecommendationCategory = "error"
	CategoryMaintenance RecommendationCategory = "Maintenance"
	CategoryReplacement RecommendationCategory = "Replacement"
	CategoryUsage       RecommendationCategory = "Usage"
)

// RecommendationAllBatteries is the reserved battery id meaning a
// recommendation applies to every battery.
const RecommendationAllBatteries uint = 0

type BatteryRecord struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `json:"name"`
	SerialNumber      string    `gorm:"uniqueIndex" json:"serialNumber"`
	InitialCapacity   int       `json:"initialCapacity"` // mAh, immutable after creation
	CurrentCapacity   int       `json:"currentCapacity"` // mAh, 0 <= current <= initial
	HealthPercentage  float64   `json:"healthPercentage"`
	CycleCount        int       `json:"cycleCount"`
	ExpectedCycleLife int       `json:"expectedCycleLife"`
	Status            BatteryStatus `gorm:"type:varchar(20)" json:"status"`
	InstallationDate  time.Time `json:"installationDate"`
	LastUpdated       time.Time `json:"lastUpdated"`
	DegradationRate   float64   `json:"degradationRate"` // %-points per month

	History []HistorySample `gorm:"foreignKey:BatteryID;constraint:OnDelete:CASCADE" json:"-"`
}

type HistorySample struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	BatteryID        uint      `gorm:"index;not null" json:"batteryId"`
	Timestamp        time.Time `json:"timestamp"`
	Capacity         int       `json:"capacity"`
	HealthPercentage float64   `json:"healthPercentage"`
	CycleCount       int       `json:"cycleCount"`
}

type UsagePattern struct {
	BatteryID            uint      `gorm:"primaryKey" json:"batteryId"`
	ChargingFrequency    float64   `json:"chargingFrequency"` // charges per week
	DischargeDepth       float64   `json:"dischargeDepth"`    // average depth of discharge, percent
	ChargeDuration       float64   `json:"chargeDuration"`    // hours
	OperatingTemperature float64   `json:"operatingTemperature"` // celsius
	LastUpdated          time.Time `json:"lastUpdated"`
}

type Recommendation struct {
	ID        uint                   `gorm:"primaryKey" json:"id"`
	// BatteryID 0 is the reserved "applies to all batteries" sentinel, so no
	// foreign key constraint here; cascade on battery delete is handled by
	// the store.
	BatteryID uint `gorm:"index" json:"batteryId"`
	Category  RecommendationCategory `gorm:"type:varchar(20)" json:"category"`
	Message   string                 `json:"message"`
	CreatedAt time.Time              `json:"createdAt"`
	Resolved  bool                   `gorm:"default:false" json:"resolved"`
}
