package store

import (
	"sort"
	"sync"
	"time"

	"battwatch.xyz/battery-health-service/pkg/models"
)

// MemoryStore is the in-memory Store fake. Identity assignment and cascade
// semantics mirror GormStore so tests against one hold for the other.
type MemoryStore struct {
	mu sync.Mutex

	batteries []models.BatteryRecord
	history   []models.HistorySample
	usage     map[uint]models.UsagePattern
	recs      []models.Recommendation

	nextBatteryID uint
	nextSampleID  uint
	nextRecID     uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		usage:         make(map[uint]models.UsagePattern),
		nextBatteryID: 1,
		nextSampleID:  1,
		nextRecID:     1,
	}
}

func (m *MemoryStore) ListBatteries() ([]models.BatteryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.BatteryRecord, len(m.batteries))
	copy(out, m.batteries)
	return out, nil
}

func (m *MemoryStore) GetBattery(id uint) (*models.BatteryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(id); i >= 0 {
		battery := m.batteries[i]
		return &battery, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateBattery(input *models.BatteryRecord) (*models.BatteryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	battery := *input
	battery.ID = m.nextBatteryID
	m.nextBatteryID++
	m.batteries = append(m.batteries, battery)

	out := battery
	return &out, nil
}

func (m *MemoryStore) UpdateBattery(id uint, patch BatteryPatch) (*models.BatteryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	applyBatteryPatch(&m.batteries[i], patch)

	battery := m.batteries[i]
	return &battery, nil
}

func (m *MemoryStore) DeleteBattery(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false, nil
	}

	m.batteries = append(m.batteries[:i], m.batteries[i+1:]...)

	kept := m.history[:0]
	for _, sample := range m.history {
		if sample.BatteryID != id {
			kept = append(kept, sample)
		}
	}
	m.history = kept

	keptRecs := m.recs[:0]
	for _, rec := range m.recs {
		if rec.BatteryID != id {
			keptRecs = append(keptRecs, rec)
		}
	}
	m.recs = keptRecs

	delete(m.usage, id)
	return true, nil
}

func (m *MemoryStore) AppendHistory(sample *models.HistorySample) (*models.HistorySample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(sample.BatteryID) < 0 {
		return nil, ErrNotFound
	}

	saved := *sample
	saved.ID = m.nextSampleID
	m.nextSampleID++
	m.history = append(m.history, saved)

	out := saved
	return &out, nil
}

func (m *MemoryStore) ListHistory(batteryID uint, startDate, endDate *time.Time) ([]models.HistorySample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var samples []models.HistorySample
	for _, sample := range m.history {
		if sample.BatteryID != batteryID {
			continue
		}
		if startDate != nil && sample.Timestamp.Before(*startDate) {
			continue
		}
		if endDate != nil && sample.Timestamp.After(*endDate) {
			continue
		}
		samples = append(samples, sample)
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Timestamp.Before(samples[j].Timestamp)
	})
	return samples, nil
}

func (m *MemoryStore) PruneHistoryBefore(cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var pruned int64
	kept := m.history[:0]
	for _, sample := range m.history {
		if sample.Timestamp.Before(cutoff) {
			pruned++
			continue
		}
		kept = append(kept, sample)
	}
	m.history = kept
	return pruned, nil
}

func (m *MemoryStore) UpsertUsagePattern(batteryID uint, patch UsagePatternPatch) (*models.UsagePattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(batteryID) < 0 {
		return nil, ErrNotFound
	}

	pattern, ok := m.usage[batteryID]
	if !ok {
		pattern = models.UsagePattern{BatteryID: batteryID}
	}

	applyUsagePatch(&pattern, patch)
	pattern.LastUpdated = time.Now()
	m.usage[batteryID] = pattern

	out := pattern
	return &out, nil
}

func (m *MemoryStore) GetUsagePattern(batteryID uint) (*models.UsagePattern, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pattern, ok := m.usage[batteryID]
	if !ok {
		return nil, ErrNotFound
	}

	out := pattern
	return &out, nil
}

func (m *MemoryStore) ListRecommendations(batteryID uint) ([]models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var recommendations []models.Recommendation
	for _, rec := range m.recs {
		if rec.BatteryID == batteryID || rec.BatteryID == models.RecommendationAllBatteries {
			recommendations = append(recommendations, rec)
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].CreatedAt.After(recommendations[j].CreatedAt)
	})
	return recommendations, nil
}

func (m *MemoryStore) CreateRecommendation(input *models.Recommendation) (*models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved := *input
	saved.ID = m.nextRecID
	m.nextRecID++
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now()
	}
	m.recs = append(m.recs, saved)

	out := saved
	return &out, nil
}

func (m *MemoryStore) ResolveRecommendation(id uint, resolved bool) (*models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.recs {
		if m.recs[i].ID != id {
			continue
		}
		// one-way flag: false never reverts an already resolved entry
		if resolved && !m.recs[i].Resolved {
			m.recs[i].Resolved = true
		}
		rec := m.recs[i]
		return &rec, nil
	}
	return nil, ErrNotFound
}

// indexOf assumes m.mu is held.
func (m *MemoryStore) indexOf(id uint) int {
	for i := range m.batteries {
		if m.batteries[i].ID == id {
			return i
		}
	}
	return -1
}
