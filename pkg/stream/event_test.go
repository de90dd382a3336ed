package stream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battwatch.xyz/battery-health-service/pkg/models"
)

func TestEventWireShape(t *testing.T) {
	battery := models.BatteryRecord{ID: 3, Name: "Pack C", HealthPercentage: 82.5}
	sample := &models.HistorySample{ID: 9, BatteryID: 3, HealthPercentage: 82.5}

	raw, err := json.Marshal(NewRecordUpdatedEvent(battery, sample))
	require.NoError(t, err)

	var wire map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &wire))
	assert.JSONEq(t, `"record_updated"`, string(wire["type"]))

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, EventRecordUpdated, decoded.Type)
	require.NotNil(t, decoded.Update)
	assert.Equal(t, battery.ID, decoded.Update.Battery.ID)
	require.NotNil(t, decoded.Update.History)
	assert.Equal(t, sample.ID, decoded.Update.History.ID)
}

func TestSnapshotEventRoundTrip(t *testing.T) {
	raw, err := json.Marshal(NewSnapshotEvent([]models.BatteryRecord{
		{ID: 1, Name: "a"}, {ID: 2, Name: "b"},
	}))
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, EventSnapshot, decoded.Type)
	assert.Len(t, decoded.Snapshot, 2)
}

func TestEmptySnapshotMarshalsAsArray(t *testing.T) {
	raw, err := json.Marshal(NewSnapshotEvent(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"snapshot","data":[]}`, string(raw))
}

func TestUnknownEventTypeRejected(t *testing.T) {
	var decoded Event
	err := json.Unmarshal([]byte(`{"type":"mystery","data":{}}`), &decoded)
	assert.Error(t, err)

	_, err = json.Marshal(Event{Type: "mystery"})
	assert.Error(t, err)
}
