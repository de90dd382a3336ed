package stream

import (
	"encoding/json"
	"fmt"

	"battwatch.xyz/battery-health-service/pkg/models"
)

type EventType string

const (
	EventSnapshot      EventType = "snapshot"
	EventRecordUpdated EventType = "record_updated"
	EventRecordCreated EventType = "record_created"
)

// RecordUpdate is the record_updated payload: the battery after the write,
// plus the history sample appended by the same mutation when there was one.
type RecordUpdate struct {
	Battery models.BatteryRecord  `json:"battery"`
	History *models.HistorySample `json:"history,omitempty"`
}

// Event is the tagged union flowing from publishers to subscribers. Exactly
// one payload field is set, selected by Type.
type Event struct {
	Type     EventType
	Snapshot []models.BatteryRecord
	Update   *RecordUpdate
	Created  *models.BatteryRecord
}

func NewSnapshotEvent(records []models.BatteryRecord) Event {
	return Event{Type: EventSnapshot, Snapshot: records}
}

func NewRecordUpdatedEvent(battery models.BatteryRecord, history *models.HistorySample) Event {
	return Event{Type: EventRecordUpdated, Update: &RecordUpdate{Battery: battery, History: history}}
}

func NewRecordCreatedEvent(battery models.BatteryRecord) Event {
	return Event{Type: EventRecordCreated, Created: &battery}
}

type wireEvent struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON produces the wire shape {"type": ..., "data": ...}.
func (e Event) MarshalJSON() ([]byte, error) {
	var data any
	switch e.Type {
	case EventSnapshot:
		records := e.Snapshot
		if records == nil {
			records = []models.BatteryRecord{}
		}
		data = records
	case EventRecordUpdated:
		data = e.Update
	case EventRecordCreated:
		data = e.Created
	default:
		return nil, fmt.Errorf("unknown event type: %q", e.Type)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireEvent{Type: e.Type, Data: raw})
}

func (e *Event) UnmarshalJSON(b []byte) error {
	var wire wireEvent
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	switch wire.Type {
	case EventSnapshot:
		var records []models.BatteryRecord
		if err := json.Unmarshal(wire.Data, &records); err != nil {
			return err
		}
		*e = NewSnapshotEvent(records)
	case EventRecordUpdated:
		var update RecordUpdate
		if err := json.Unmarshal(wire.Data, &update); err != nil {
			return err
		}
		*e = Event{Type: EventRecordUpdated, Update: &update}
	case EventRecordCreated:
		var battery models.BatteryRecord
		if err := json.Unmarshal(wire.Data, &battery); err != nil {
			return err
		}
		*e = NewRecordCreatedEvent(battery)
	default:
		return fmt.Errorf("unknown event type: %q", wire.Type)
	}
	return nil
}
