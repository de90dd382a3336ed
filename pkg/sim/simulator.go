// Package sim emulates ongoing battery hardware drift without real sensors.
// A short-cadence tick nudges one battery at a time; an optional long-cadence
// bulk tick applies large synthetic jumps to every battery so demos look
// dramatic. Neither path is a physical battery model.
package sim

import (
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"battwatch.xyz/battery-health-service/pkg/common"
	"battwatch.xyz/battery-health-service/pkg/models"
	"battwatch.xyz/battery-health-service/pkg/store"
	"battwatch.xyz/battery-health-service/pkg/stream"
)

type Options struct {
	// TickInterval is the per-record small-perturbation cadence.
	TickInterval time.Duration
	// BulkInterval is the cadence of the demo bulk jump. Only used when
	// DemoJumps is set.
	BulkInterval time.Duration
	// DemoJumps enables the bulk "dramatic jump" tick. Off by default; the
	// jumps are demo theater, not battery physics.
	DemoJumps bool

	// HealthDropChance is the probability a small perturbation decreases
	// health; the remainder is small "recovery noise" upward drift.
	HealthDropChance float64
	// MaxSmallDelta bounds the magnitude of a small health perturbation, in
	// percentage points.
	MaxSmallDelta float64
	// CycleIncChance is the probability a small perturbation adds one cycle.
	CycleIncChance float64
	// RecommendChance is the probability a perturbation files a templated
	// recommendation.
	RecommendChance float64

	// Bulk jump bands (demo mode only).
	MinBulkCycleJump  int
	MaxBulkCycleJump  int
	MaxBulkHealthJump float64
}

func DefaultOptions() Options {
	return Options{
		TickInterval:      3 * time.Second,
		BulkInterval:      30 * time.Second,
		DemoJumps:         false,
		HealthDropChance:  0.7,
		MaxSmallDelta:     0.5,
		CycleIncChance:    0.3,
		RecommendChance:   0.05,
		MinBulkCycleJump:  1000,
		MaxBulkCycleJump:  4000,
		MaxBulkHealthJump: 15,
	}
}

// Simulator owns its two tickers; nothing lives at package scope. Start and
// Stop bound its lifecycle, and a stopped simulator can be started again.
type Simulator struct {
	store       store.Store
	broadcaster *stream.Broadcaster
	opts        Options

	rnd Rand
	now func() time.Time

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

func New(s store.Store, b *stream.Broadcaster, opts Options) *Simulator {
	return &Simulator{
		store:       s,
		broadcaster: b,
		opts:        opts,
		rnd:         NewTimeSeededRand(),
		now:         time.Now,
	}
}

// WithRand swaps the random source. Call before Start.
func (s *Simulator) WithRand(rnd Rand) *Simulator {
	s.rnd = rnd
	return s
}

// WithClock swaps the time source. Call before Start.
func (s *Simulator) WithClock(now func() time.Time) *Simulator {
	s.now = now
	return s
}

func (s *Simulator) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("simulator already running")
	}

	s.stop = make(chan struct{})
	s.running = true

	s.wg.Add(1)
	go s.runTicker(s.opts.TickInterval, s.TickOne)

	if s.opts.DemoJumps {
		s.wg.Add(1)
		go s.runTicker(s.opts.BulkInterval, s.TickAll)
	}

	return nil
}

// Stop cancels both cadences and waits for any in-flight tick to finish its
// store writes. No further ticks fire after Stop returns.
func (s *Simulator) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Simulator) runTicker(interval time.Duration, tick func()) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			tick()
		}
	}
}

// TickOne applies a small perturbation to one battery chosen uniformly at
// random. Any error is logged and the tick skipped; the cadence continues.
func (s *Simulator) TickOne() {
	logger := common.GetLoggerWith(
		common.LoggerNameSimulator,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryTick),
	)

	batteries, err := s.store.ListBatteries()
	if err != nil {
		logger.Warn("Store unavailable, skipping tick", zap.Error(err))
		return
	}
	if len(batteries) == 0 {
		return
	}

	battery := batteries[s.rnd.Intn(len(batteries))]

	delta := s.rnd.Float64() * s.opts.MaxSmallDelta
	if s.rnd.Float64() < s.opts.HealthDropChance {
		delta = -delta
	}
	health := clampHealth(battery.HealthPercentage + delta)

	cycles := battery.CycleCount
	if s.rnd.Float64() < s.opts.CycleIncChance {
		cycles++
	}

	if err := s.applyPerturbation(&battery, health, cycles); err != nil {
		logger.Warn("Failed to perturb battery, skipping tick",
			zap.Uint("battery_id", battery.ID), zap.Error(err))
	}
}

// TickAll applies the bulk demo jump to every battery: a large cycle-count
// jump in either direction (adding instead when subtraction would go
// negative) and an independent moderate health jump. Purely synthetic.
func (s *Simulator) TickAll() {
	logger := common.GetLoggerWith(
		common.LoggerNameSimulator,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryBulkTick),
	)

	batteries, err := s.store.ListBatteries()
	if err != nil {
		logger.Warn("Store unavailable, skipping bulk tick", zap.Error(err))
		return
	}

	for i := range batteries {
		battery := batteries[i]

		jump := s.opts.MinBulkCycleJump
		if band := s.opts.MaxBulkCycleJump - s.opts.MinBulkCycleJump; band > 0 {
			jump += s.rnd.Intn(band + 1)
		}
		cycles := battery.CycleCount
		if s.rnd.Float64() < 0.5 && cycles >= jump {
			cycles -= jump
		} else {
			cycles += jump
		}

		healthJump := s.rnd.Float64() * s.opts.MaxBulkHealthJump
		if s.rnd.Float64() < 0.5 {
			healthJump = -healthJump
		}
		health := clampHealth(battery.HealthPercentage + healthJump)

		if err := s.applyPerturbation(&battery, health, cycles); err != nil {
			logger.Warn("Failed to perturb battery in bulk tick, continuing",
				zap.Uint("battery_id", battery.ID), zap.Error(err))
		}
	}
}

// applyPerturbation writes the updated record and appends exactly one history
// sample reflecting the post-update values before signaling the broadcaster,
// so subscribers never observe the store and the feed disagreeing.
func (s *Simulator) applyPerturbation(battery *models.BatteryRecord, health float64, cycles int) error {
	now := s.now()

	capacity := int(math.Round(float64(battery.InitialCapacity) * health / 100))
	status := models.StatusForHealth(health)

	updated, err := s.store.UpdateBattery(battery.ID, store.BatteryPatch{
		HealthPercentage: &health,
		CurrentCapacity:  &capacity,
		CycleCount:       &cycles,
		Status:           &status,
		LastUpdated:      &now,
	})
	if err != nil {
		return err
	}

	sample, err := s.store.AppendHistory(&models.HistorySample{
		BatteryID:        updated.ID,
		Timestamp:        now,
		Capacity:         updated.CurrentCapacity,
		HealthPercentage: updated.HealthPercentage,
		CycleCount:       updated.CycleCount,
	})
	if err != nil {
		return err
	}

	if s.rnd.Float64() < s.opts.RecommendChance {
		s.fileRecommendation(updated)
	}

	s.broadcaster.Publish(stream.NewRecordUpdatedEvent(*updated, sample))
	return nil
}

func (s *Simulator) fileRecommendation(battery *models.BatteryRecord) {
	logger := common.GetLoggerWith(
		common.LoggerNameSimulator,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryRecommend),
	)

	rec := s.recommendationFor(battery)
	if _, err := s.store.CreateRecommendation(rec); err != nil {
		logger.Warn("Failed to file recommendation",
			zap.Uint("battery_id", battery.ID), zap.Error(err))
		return
	}

	logger.Info("Filed recommendation",
		zap.Uint("battery_id", battery.ID),
		zap.String("message", rec.Message))
}

func clampHealth(health float64) float64 {
	if health < 0 {
		return 0
	}
	if health > 100 {
		return 100
	}
	return health
}
