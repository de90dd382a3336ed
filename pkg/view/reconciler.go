// Package view maintains the consumer-side cache of battery records: a pure
// merge of broadcaster events plus a polling fallback that re-syncs from the
// store when the live feed goes quiet.
package view

import (
	"sync"

	"battwatch.xyz/battery-health-service/pkg/models"
	"battwatch.xyz/battery-health-service/pkg/stream"
)

// Cache is a locally reconciled collection of battery records keyed by id,
// preserving insertion order, with per-battery history lists. Apply is a
// deterministic merge with no side effects of its own; reads are safe while
// another goroutine applies events.
type Cache struct {
	mu      sync.RWMutex
	records []models.BatteryRecord
	index   map[uint]int
	history map[uint][]models.HistorySample
}

func NewCache() *Cache {
	return &Cache{
		index:   make(map[uint]int),
		history: make(map[uint][]models.HistorySample),
	}
}

// Apply merges one event into the cache. Events arriving out of order are
// absorbed with upsert semantics: an update for an unknown id appends, a
// create for a known id is ignored.
func (c *Cache) Apply(event stream.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Type {
	case stream.EventSnapshot:
		c.replaceAll(event.Snapshot)
	case stream.EventRecordUpdated:
		if event.Update == nil {
			return
		}
		c.upsert(event.Update.Battery)
		if event.Update.History != nil {
			batteryID := event.Update.Battery.ID
			c.history[batteryID] = append(c.history[batteryID], *event.Update.History)
		}
	case stream.EventRecordCreated:
		if event.Created == nil {
			return
		}
		if _, exists := c.index[event.Created.ID]; exists {
			return // duplicate delivery guard
		}
		c.append(*event.Created)
	}
}

// Records returns the cached collection in order.
func (c *Cache) Records() []models.BatteryRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.BatteryRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Get returns the cached record for an id.
func (c *Cache) Get(id uint) (models.BatteryRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return models.BatteryRecord{}, false
	}
	return c.records[i], true
}

// History returns the accumulated history samples for a battery, oldest
// first.
func (c *Cache) History(batteryID uint) []models.HistorySample {
	c.mu.RLock()
	defer c.mu.RUnlock()

	samples := c.history[batteryID]
	out := make([]models.HistorySample, len(samples))
	copy(out, samples)
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// replaceAll assumes c.mu is held.
func (c *Cache) replaceAll(records []models.BatteryRecord) {
	c.records = make([]models.BatteryRecord, len(records))
	copy(c.records, records)

	c.index = make(map[uint]int, len(records))
	for i := range c.records {
		c.index[c.records[i].ID] = i
	}

	// drop history for batteries no longer in the collection; updates only
	// ever append history, never replace it
	for batteryID := range c.history {
		if _, ok := c.index[batteryID]; !ok {
			delete(c.history, batteryID)
		}
	}
}

// upsert assumes c.mu is held. Replaces in place to preserve order, appends
// when unknown.
func (c *Cache) upsert(battery models.BatteryRecord) {
	if i, ok := c.index[battery.ID]; ok {
		c.records[i] = battery
		return
	}
	c.append(battery)
}

// append assumes c.mu is held.
func (c *Cache) append(battery models.BatteryRecord) {
	c.index[battery.ID] = len(c.records)
	c.records = append(c.records, battery)
}
