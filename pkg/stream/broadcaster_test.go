package stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"battwatch.xyz/battery-health-service/pkg/common"
	"battwatch.xyz/battery-health-service/pkg/models"
	"battwatch.xyz/battery-health-service/pkg/store"
	"battwatch.xyz/battery-health-service/pkg/store/mocks"
	_ "battwatch.xyz/battery-health-service/pkg/testing"
)

func seededStore(t *testing.T, names ...string) store.Store {
	t.Helper()
	s := store.NewMemoryStore()
	for _, name := range names {
		_, err := s.CreateBattery(&models.BatteryRecord{
			Name:             name,
			SerialNumber:     "SN-" + name,
			InitialCapacity:  4000,
			CurrentCapacity:  4000,
			HealthPercentage: 100,
			Status:           models.StatusExcellent,
		})
		require.NoError(t, err)
	}
	return s
}

func TestSubscribeDeliversSnapshotFirst(t *testing.T) {
	common.SetTestLoggerNop()

	b := NewBroadcaster(seededStore(t, "a", "b"))

	sub, err := b.Subscribe()
	require.NoError(t, err)
	defer b.Unsubscribe(sub)

	first := <-sub.Events()
	assert.Equal(t, EventSnapshot, first.Type)
	assert.Len(t, first.Snapshot, 2)
}

func TestSubscribeFailsWhenStoreUnreachable(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().ListBatteries().Return(nil, errors.New("store down"))

	b := NewBroadcaster(mockStore)
	_, err := b.Subscribe()
	assert.Error(t, err)
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestPublishOrderPerSubscriber(t *testing.T) {
	common.SetTestLoggerNop()

	memStore := seededStore(t, "a")
	b := NewBroadcaster(memStore)

	sub, err := b.Subscribe()
	require.NoError(t, err)
	defer b.Unsubscribe(sub)

	<-sub.Events() // drain initial snapshot

	for i := range 5 {
		b.Publish(NewRecordUpdatedEvent(models.BatteryRecord{
			ID:         1,
			CycleCount: i,
		}, nil))
	}

	for i := range 5 {
		event := <-sub.Events()
		require.Equal(t, EventRecordUpdated, event.Type)
		assert.Equal(t, i, event.Update.Battery.CycleCount)
	}
}

func TestSlowSubscriberDroppedOthersStillServed(t *testing.T) {
	common.SetTestLoggerNop()

	b := NewBroadcaster(seededStore(t, "a"))
	b.bufferSize = 1

	slow, err := b.Subscribe()
	require.NoError(t, err)
	healthy, err := b.Subscribe()
	require.NoError(t, err)
	defer b.Unsubscribe(healthy)

	<-healthy.Events() // drain snapshot; slow never reads, its buffer holds the snapshot

	// slow's buffer is full, so this publish drops it
	b.Publish(NewRecordCreatedEvent(models.BatteryRecord{ID: 7, Name: "new"}))

	assert.Equal(t, 1, b.SubscriberCount())

	event := <-healthy.Events()
	assert.Equal(t, EventRecordCreated, event.Type)
	assert.Equal(t, uint(7), event.Created.ID)

	// slow's channel was closed after draining its backlog
	<-slow.Events()
	_, open := <-slow.Events()
	assert.False(t, open)
}

func TestUnsubscribeIdempotent(t *testing.T) {
	common.SetTestLoggerNop()

	b := NewBroadcaster(seededStore(t, "a"))

	sub, err := b.Subscribe()
	require.NoError(t, err)

	b.Unsubscribe(sub)
	b.Unsubscribe(sub) // second call is a no-op
	b.Unsubscribe(nil)

	assert.Equal(t, 0, b.SubscriberCount())

	// publishing with no subscribers must not panic
	b.Publish(NewRecordCreatedEvent(models.BatteryRecord{ID: 1}))
}
