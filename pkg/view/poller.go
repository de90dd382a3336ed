package view

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"battwatch.xyz/battery-health-service/pkg/common"
	"battwatch.xyz/battery-health-service/pkg/store"
	"battwatch.xyz/battery-health-service/pkg/stream"
)

// Poller is the redundant consistency mechanism behind the live feed: on a
// fixed short interval it re-lists the store and reconciles through the same
// snapshot merge rule, healing a silently-dead feed connection. It also
// tracks staleness so the presentation layer can show a "data stale"
// indicator instead of erroring.
type Poller struct {
	store      store.Store
	cache      *Cache
	interval   time.Duration
	staleAfter time.Duration
	now        func() time.Time

	mu       sync.Mutex
	lastSync time.Time
	running  bool
	stop     chan struct{}
	wg       sync.WaitGroup
}

func NewPoller(s store.Store, cache *Cache, interval, staleAfter time.Duration) *Poller {
	return &Poller{
		store:      s,
		cache:      cache,
		interval:   interval,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// WithClock swaps the time source. Call before Start.
func (p *Poller) WithClock(now func() time.Time) *Poller {
	p.now = now
	return p
}

func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return fmt.Errorf("poller already running")
	}
	p.running = true
	p.stop = make(chan struct{})

	p.wg.Add(1)
	go p.run()
	return nil
}

func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stop)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.Poll()
		}
	}
}

// Poll fetches the full record list and reconciles it as a snapshot. A
// failed poll leaves the cache untouched and does not refresh the staleness
// marker.
func (p *Poller) Poll() {
	logger := common.GetLoggerWith(
		common.LoggerNameReconciler,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryPoller),
	)

	records, err := p.store.ListBatteries()
	if err != nil {
		logger.Warn("Poll failed, keeping cached view", zap.Error(err))
		return
	}

	p.cache.Apply(stream.NewSnapshotEvent(records))
	p.MarkFresh()
}

// MarkFresh records a successful sync. The live-feed host also calls this
// when events arrive, so either channel keeps the view counted as fresh.
func (p *Poller) MarkFresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSync = p.now()
}

// Stale reports whether neither a poll nor a feed event has refreshed the
// view within the staleness window.
func (p *Poller) Stale() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastSync.IsZero() {
		return true
	}
	return p.now().Sub(p.lastSync) > p.staleAfter
}
