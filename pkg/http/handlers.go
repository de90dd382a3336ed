package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"battwatch.xyz/battery-health-service/pkg/common"
	"battwatch.xyz/battery-health-service/pkg/models"
	"battwatch.xyz/battery-health-service/pkg/store"
	"battwatch.xyz/battery-health-service/pkg/stream"
)

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// withDerivedStatus enforces the single source of truth for status: whatever
// is stored, responses always carry the threshold function of health.
func withDerivedStatus(battery models.BatteryRecord) models.BatteryRecord {
	battery.Status = models.StatusForHealth(battery.HealthPercentage)
	return battery
}

func (rs *RestfulServer) ListBatteries(c *gin.Context) {
	batteries, err := rs.Store.ListBatteries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, common.Mapper(batteries, withDerivedStatus))
}

func (rs *RestfulServer) GetBattery(c *gin.Context) {
	id, ok := parseIDParam(c, "battery_id")
	if !ok {
		return
	}

	battery, err := rs.Store.GetBattery(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "battery not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, withDerivedStatus(*battery))
}

type CreateBatteryRequest struct {
	Name              string    `json:"name"`
	SerialNumber      string    `json:"serialNumber"`
	InitialCapacity   int       `json:"initialCapacity"`
	ExpectedCycleLife int       `json:"expectedCycleLife"`
	InstallationDate  time.Time `json:"installationDate"`
}

var createBatterySchema = z.Struct(z.Shape{
	"Name":            z.String().Min(1).Required(),
	"InitialCapacity": z.Int().Required(),
})

func (rs *RestfulServer) CreateBattery(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req CreateBatteryRequest
	if err := createBatterySchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if req.InitialCapacity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "initialCapacity must be positive"})
		return
	}
	if req.ExpectedCycleLife <= 0 {
		req.ExpectedCycleLife = 500
	}
	if req.SerialNumber == "" {
		req.SerialNumber = "BAT-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if req.InstallationDate.IsZero() {
		req.InstallationDate = time.Now()
	}

	battery, err := rs.Store.CreateBattery(&models.BatteryRecord{
		Name:              req.Name,
		SerialNumber:      req.SerialNumber,
		InitialCapacity:   req.InitialCapacity,
		CurrentCapacity:   req.InitialCapacity,
		HealthPercentage:  100,
		ExpectedCycleLife: req.ExpectedCycleLife,
		Status:            models.StatusForHealth(100),
		InstallationDate:  req.InstallationDate,
		LastUpdated:       time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rs.Broadcaster.Publish(stream.NewRecordCreatedEvent(*battery))

	c.JSON(http.StatusCreated, withDerivedStatus(*battery))
}

type UpdateBatteryRequest struct {
	Name             *string  `json:"name"`
	CurrentCapacity  *int     `json:"currentCapacity"`
	HealthPercentage *float64 `json:"healthPercentage"`
	CycleCount       *int     `json:"cycleCount"`
	DegradationRate  *float64 `json:"degradationRate"`
}

func (rs *RestfulServer) UpdateBattery(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	id, ok := parseIDParam(c, "battery_id")
	if !ok {
		return
	}

	var req UpdateBatteryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := rs.Store.GetBattery(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "battery not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	health := existing.HealthPercentage
	if req.HealthPercentage != nil {
		health = *req.HealthPercentage
		if health < 0 || health > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "healthPercentage must be within [0,100]"})
			return
		}
	}

	capacity := existing.CurrentCapacity
	switch {
	case req.CurrentCapacity != nil:
		capacity = *req.CurrentCapacity
		if capacity < 0 || capacity > existing.InitialCapacity {
			c.JSON(http.StatusBadRequest, gin.H{"error": "currentCapacity must be within [0,initialCapacity]"})
			return
		}
	case req.HealthPercentage != nil:
		// health edits keep capacity consistent with the new health
		capacity = int(math.Round(float64(existing.InitialCapacity) * health / 100))
	}

	if req.CycleCount != nil && *req.CycleCount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cycleCount must be non-negative"})
		return
	}
	if req.DegradationRate != nil && *req.DegradationRate < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "degradationRate must be non-negative"})
		return
	}

	status := models.StatusForHealth(health)
	now := time.Now()
	battery, err := rs.Store.UpdateBattery(id, store.BatteryPatch{
		Name:             req.Name,
		HealthPercentage: &health,
		CurrentCapacity:  &capacity,
		CycleCount:       req.CycleCount,
		DegradationRate:  req.DegradationRate,
		Status:           &status,
		LastUpdated:      &now,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "battery not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rs.Broadcaster.Publish(stream.NewRecordUpdatedEvent(*battery, nil))

	c.JSON(http.StatusOK, withDerivedStatus(*battery))
}

func (rs *RestfulServer) DeleteBattery(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	id, ok := parseIDParam(c, "battery_id")
	if !ok {
		return
	}

	found, err := rs.Store.DeleteBattery(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "battery not found"})
		return
	}

	// no delete event kind on the wire; subscribers converge on the next
	// snapshot or poll
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (rs *RestfulServer) ListHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "battery_id")
	if !ok {
		return
	}

	var startDate, endDate *time.Time
	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		startDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		endDate = &t
	}

	samples, err := rs.Store.ListHistory(id, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if samples == nil {
		samples = []models.HistorySample{}
	}

	c.JSON(http.StatusOK, samples)
}

type AppendHistoryRequest struct {
	Timestamp        time.Time `json:"timestamp"`
	Capacity         int       `json:"capacity"`
	HealthPercentage float64   `json:"healthPercentage"`
	CycleCount       int       `json:"cycleCount"`
}

var appendHistorySchema = z.Struct(z.Shape{
	"Capacity":         z.Int().Required(),
	"HealthPercentage": z.Float64().Required(),
})

func (rs *RestfulServer) AppendHistory(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	id, ok := parseIDParam(c, "battery_id")
	if !ok {
		return
	}

	var req AppendHistoryRequest
	if err := appendHistorySchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}

	sample, err := rs.Store.AppendHistory(&models.HistorySample{
		BatteryID:        id,
		Timestamp:        req.Timestamp,
		Capacity:         req.Capacity,
		HealthPercentage: req.HealthPercentage,
		CycleCount:       req.CycleCount,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "battery not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sample)
}

func (rs *RestfulServer) GetUsagePattern(c *gin.Context) {
	id, ok := parseIDParam(c, "battery_id")
	if !ok {
		return
	}

	pattern, err := rs.Store.GetUsagePattern(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "usage pattern not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pattern)
}

type UpsertUsagePatternRequest struct {
	ChargingFrequency    *float64 `json:"chargingFrequency"`
	DischargeDepth       *float64 `json:"dischargeDepth"`
	ChargeDuration       *float64 `json:"chargeDuration"`
	OperatingTemperature *float64 `json:"operatingTemperature"`
}

func (rs *RestfulServer) UpsertUsagePattern(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	id, ok := parseIDParam(c, "battery_id")
	if !ok {
		return
	}

	var req UpsertUsagePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pattern, err := rs.Store.UpsertUsagePattern(id, store.UsagePatternPatch{
		ChargingFrequency:    req.ChargingFrequency,
		DischargeDepth:       req.DischargeDepth,
		ChargeDuration:       req.ChargeDuration,
		OperatingTemperature: req.OperatingTemperature,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "battery not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pattern)
}

func (rs *RestfulServer) ListRecommendations(c *gin.Context) {
	id, ok := parseIDParam(c, "battery_id")
	if !ok {
		return
	}

	recommendations, err := rs.Store.ListRecommendations(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if recommendations == nil {
		recommendations = []models.Recommendation{}
	}

	c.JSON(http.StatusOK, recommendations)
}

type CreateRecommendationRequest struct {
	BatteryID uint   `json:"batteryId"`
	Category  string `json:"category"`
	Message   string `json:"message"`
}

var createRecommendationSchema = z.Struct(z.Shape{
	"Category": z.String().Min(1).Required(),
	"Message":  z.String().Min(1).Required(),
})

func (rs *RestfulServer) CreateRecommendation(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req CreateRecommendationRequest
	if err := createRecommendationSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	// batteryId 0 is the "all batteries" sentinel; anything else must exist
	if req.BatteryID != models.RecommendationAllBatteries {
		if _, err := rs.Store.GetBattery(req.BatteryID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "battery not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	recommendation, err := rs.Store.CreateRecommendation(&models.Recommendation{
		BatteryID: req.BatteryID,
		Category:  models.RecommendationCategory(req.Category),
		Message:   req.Message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, recommendation)
}

type ResolveRecommendationRequest struct {
	Resolved *bool `json:"resolved"`
}

func (rs *RestfulServer) ResolveRecommendation(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	id, ok := parseIDParam(c, "recommendation_id")
	if !ok {
		return
	}

	var req ResolveRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resolved := true
	if req.Resolved != nil {
		resolved = *req.Resolved
	}

	recommendation, err := rs.Store.ResolveRecommendation(id, resolved)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, recommendation)
}

type LimiterRequest struct {
	Client string  `json:"client"`
	Rate   float64 `json:"rate"`
	Burst  int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Client": z.String().Min(1).Required(),
	"Rate":   z.Float64().Required(),
	"Burst":  z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(req.Client, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}
