package entity

import "time"

// Kinds of EventChange.
const (
	EventCreated = "event.created"
	EventUpdated = "event.updated"
	EventDeleted = "event.deleted"
)

// EventChange is the notification emitted after an event is mutated.
// Event is nil for deletions.
type EventChange struct {
	Type       string    `json:"type"`
	EventID    int64     `json:"event_id"`
	Event      *Event    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
}
