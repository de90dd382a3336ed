package stream

import (
	"sync"

	"go.uber.org/zap"

	"battwatch.xyz/battery-health-service/pkg/common"
	"battwatch.xyz/battery-health-service/pkg/store"
)

const defaultSubscriberBuffer = 64

// Subscriber is a registered consumer of the event feed. Events arrive on
// Events() in publish order until the subscriber is unsubscribed or dropped.
type Subscriber struct {
	id uint64
	ch chan Event
}

func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Broadcaster fans typed events out to an open-ended set of subscribers.
// Delivery is at-most-once and fire-and-forget: a subscriber that cannot
// keep up is dropped rather than allowed to block the rest, and a
// reconnecting subscriber self-heals through the snapshot it receives on
// Subscribe.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[uint64]*Subscriber
	nextID      uint64

	store      store.Store
	bufferSize int
}

func NewBroadcaster(s store.Store) *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]*Subscriber),
		store:       s,
		bufferSize:  defaultSubscriberBuffer,
	}
}

// Subscribe registers a new subscriber and immediately queues a full
// snapshot built from the store, so new viewers start consistent.
func (b *Broadcaster) Subscribe() (*Subscriber, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameBroadcaster,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySubscription),
	)

	records, err := b.store.ListBatteries()
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscriber{
		id: b.nextID,
		ch: make(chan Event, b.bufferSize),
	}
	b.subscribers[sub.id] = sub

	// buffer is empty here, the snapshot always fits
	sub.ch <- NewSnapshotEvent(records)

	logger.Info("Subscriber registered",
		zap.Uint64("subscriber_id", sub.id),
		zap.Int("subscriber_count", len(b.subscribers)))
	return sub, nil
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call
// multiple times or with a subscriber that was already dropped.
func (b *Broadcaster) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked(sub)
}

// Publish delivers the event to every registered subscriber in publish
// order. A subscriber whose buffer is full is dropped; the rest still
// receive the event within the same call.
func (b *Broadcaster) Publish(event Event) {
	logger := common.GetLoggerWith(
		common.LoggerNameBroadcaster,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryPublish),
	)

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subscribers {
		select {
		case sub.ch <- event:
		default:
			logger.Warn("Dropping slow subscriber",
				zap.Uint64("subscriber_id", sub.id),
				zap.String("event_type", string(event.Type)))
			b.removeLocked(sub)
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// removeLocked assumes b.mu is held.
func (b *Broadcaster) removeLocked(sub *Subscriber) {
	if _, ok := b.subscribers[sub.id]; !ok {
		return
	}
	delete(b.subscribers, sub.id)
	close(sub.ch)
}
