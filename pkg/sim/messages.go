package sim

import (
	"fmt"

	"battwatch.xyz/battery-health-service/pkg/models"
)

type messageTemplate struct {
	category models.RecommendationCategory
	format   string // substitutes battery name and health percentage
}

// Template library for simulator-generated recommendations, banded by the
// battery's health after the perturbation.
var (
	poorHealthTemplates = []messageTemplate{
		{models.CategoryReplacement, "Battery %s is down to %.1f%% health. Plan a replacement soon."},
		{models.CategoryError, "Battery %s health dropped to %.1f%%. It no longer holds a reliable charge."},
	}
	fairHealthTemplates = []messageTemplate{
		{models.CategoryMaintenance, "Battery %s is at %.1f%% health. Run a full calibration cycle."},
		{models.CategoryWarning, "Battery %s slipped to %.1f%% health. Check cell balance at next service."},
	}
	goodHealthTemplates = []messageTemplate{
		{models.CategoryUsage, "Battery %s is holding at %.1f%% health. Keeping charge between 20%% and 80%% slows wear."},
		{models.CategoryInfo, "Battery %s reports %.1f%% health. No action needed."},
	}
)

func (s *Simulator) recommendationFor(battery *models.BatteryRecord) *models.Recommendation {
	var pool []messageTemplate
	switch {
	case battery.HealthPercentage < 70:
		pool = poorHealthTemplates
	case battery.HealthPercentage < 85:
		pool = fairHealthTemplates
	default:
		pool = goodHealthTemplates
	}

	tmpl := pool[s.rnd.Intn(len(pool))]
	return &models.Recommendation{
		BatteryID: battery.ID,
		Category:  tmpl.category,
		Message:   fmt.Sprintf(tmpl.format, battery.Name, battery.HealthPercentage),
		CreatedAt: s.now(),
	}
}
