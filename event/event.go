// Package event defines the structured event the matcher evaluates, and
// its projection into the tagged value model.
package event

import (
	"encoding/json"

	"github.com/corvidsec/matchengine/value"
)

// Event is the input the matcher processes. The engine never mutates it.
type Event struct {
	Type      string      `json:"type"`
	CreatedMs int64       `json:"created_ms"`
	Payload   value.Value `json:"payload"` // must be a Map-shaped Value
}

// New builds an Event from a decoded JSON payload map.
func New(eventType string, createdMs int64, payload map[string]any) Event {
	return Event{Type: eventType, CreatedMs: createdMs, Payload: value.FromAny(payload)}
}

// AsValue projects the event onto the value model: the whole event is
// itself addressable as a Map with synthetic keys "type", "created_ms" and
// "payload".
func (e Event) AsValue() value.Value {
	return value.Map(map[string]value.Value{
		"type":       value.String(e.Type),
		"created_ms": value.Int(e.CreatedMs),
		"payload":    e.Payload,
	})
}

// dto is the wire shape accepted from collectors and the transport layer.
type dto struct {
	Type      string         `json:"type"`
	CreatedMs int64          `json:"created_ms"`
	Payload   map[string]any `json:"payload"`
}

// DecodeJSON parses a wire-format event, as sent by a collector.
func DecodeJSON(b []byte) (Event, error) {
	var d dto
	if err := json.Unmarshal(b, &d); err != nil {
		return Event{}, err
	}
	return New(d.Type, d.CreatedMs, d.Payload), nil
}

// EncodeJSON renders the event back to its wire format, the same shape
// DecodeJSON accepts.
func EncodeJSON(e Event) ([]byte, error) {
	payload, _ := value.ToAny(e.Payload).(map[string]any)
	return json.Marshal(dto{Type: e.Type, CreatedMs: e.CreatedMs, Payload: payload})
}
