package sim

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the random source the simulator draws from. Injectable so tests
// can supply deterministic sequences.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewTimeSeededRand returns the production random source. Safe for use from
// both simulator tickers.
func NewTimeSeededRand() Rand {
	return &lockedRand{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Intn(n)
}
