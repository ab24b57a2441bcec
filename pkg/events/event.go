package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TURN_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewTurnCompletedEvent records one finished counseling turn for the audit
// trail.
func NewTurnCompletedEvent(sessionID, gene, category string, trust, certainty float64, sources []string) Event {
	return BaseEvent{
		Type: "TURN_COMPLETED",
		Data: map[string]interface{}{
			"session_id": sessionID,
			"gene":       gene,
			"category":   category,
			"trust":      trust,
			"certainty":  certainty,
			"sources":    sources,
		},
		OccurredAt: time.Now(),
	}
}
