package events

import (
	"encoding/json"
	"time"
)

// Event types published by the engine.
const (
	TypeJobCreated   = "job_created"
	TypeRunCompleted = "run_completed"
	TypePing         = "ping"
)

// Event is the envelope every subscriber receives.
type Event struct {
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

// New builds an event envelope stamped with the current time. Payloads
// that fail to marshal degrade to an envelope without data.
func New(typ string, data any) Event {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}
	return Event{Type: typ, At: time.Now().UTC(), Data: raw}
}

// Encode serializes the envelope for the SSE wire.
func (e Event) Encode() string {
	b, _ := json.Marshal(e)
	return string(b)
}
