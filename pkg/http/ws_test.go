package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "battwatch.xyz/battery-health-service/pkg/testing"

	"battwatch.xyz/battery-health-service/pkg/common"
	"battwatch.xyz/battery-health-service/pkg/models"
	"battwatch.xyz/battery-health-service/pkg/store"
	"battwatch.xyz/battery-health-service/pkg/stream"
)

func dialStream(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) stream.Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event stream.Event
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestStreamSnapshotFirst(t *testing.T) {
	common.SetTestLoggerNop()

	memStore := store.NewMemoryStore()
	battery, err := memStore.CreateBattery(&models.BatteryRecord{
		Name:             "seeded",
		SerialNumber:     "BAT-WS-1",
		InitialCapacity:  4000,
		CurrentCapacity:  4000,
		HealthPercentage: 100,
		Status:           models.StatusExcellent,
	})
	require.NoError(t, err)

	broadcaster := stream.NewBroadcaster(memStore)
	rs := &RestfulServer{
		Server:      gin.Default(),
		Store:       memStore,
		Broadcaster: broadcaster,
	}
	rs.Setup()

	server := httptest.NewServer(rs.Server)
	defer server.Close()

	conn := dialStream(t, server)
	defer conn.Close()

	event := readEvent(t, conn)
	require.Equal(t, stream.EventSnapshot, event.Type)
	require.Len(t, event.Snapshot, 1)
	assert.Equal(t, battery.ID, event.Snapshot[0].ID)
}

func TestStreamReceivesPublishedEvents(t *testing.T) {
	common.SetTestLoggerNop()

	memStore := store.NewMemoryStore()
	broadcaster := stream.NewBroadcaster(memStore)
	rs := &RestfulServer{
		Server:      gin.Default(),
		Store:       memStore,
		Broadcaster: broadcaster,
	}
	rs.Setup()

	server := httptest.NewServer(rs.Server)
	defer server.Close()

	conn := dialStream(t, server)
	defer conn.Close()

	// snapshot arrives first, empty store or not
	event := readEvent(t, conn)
	require.Equal(t, stream.EventSnapshot, event.Type)
	assert.Empty(t, event.Snapshot)

	created, err := memStore.CreateBattery(&models.BatteryRecord{
		Name:             "live",
		SerialNumber:     "BAT-WS-2",
		InitialCapacity:  3000,
		CurrentCapacity:  3000,
		HealthPercentage: 100,
		Status:           models.StatusExcellent,
	})
	require.NoError(t, err)
	broadcaster.Publish(stream.NewRecordCreatedEvent(*created))

	event = readEvent(t, conn)
	require.Equal(t, stream.EventRecordCreated, event.Type)
	require.NotNil(t, event.Created)
	assert.Equal(t, created.ID, event.Created.ID)
	assert.Equal(t, "live", event.Created.Name)
}

func TestStreamUnsubscribesOnDisconnect(t *testing.T) {
	common.SetTestLoggerNop()

	memStore := store.NewMemoryStore()
	broadcaster := stream.NewBroadcaster(memStore)
	rs := &RestfulServer{
		Server:      gin.Default(),
		Store:       memStore,
		Broadcaster: broadcaster,
	}
	rs.Setup()

	server := httptest.NewServer(rs.Server)
	defer server.Close()

	conn := dialStream(t, server)
	readEvent(t, conn) // drain the snapshot

	assert.Eventually(t, func() bool {
		return broadcaster.SubscriberCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	assert.Eventually(t, func() bool {
		return broadcaster.SubscriberCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
