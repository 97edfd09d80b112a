package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/capture-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubmissionRecorded EventType = "submission_recorded"
	EventMirrorFailed       EventType = "mirror_failed"
	EventModeChanged        EventType = "mode_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// SubmissionRecordedPayload payload.
type SubmissionRecordedPayload struct {
	Kind     domain.SubmissionKind `json:"kind"`
	ID       int64                 `json:"id"`
	ClientIP string                `json:"client_ip"`
}

// MirrorFailedPayload payload.
type MirrorFailedPayload struct {
	Kind  domain.SubmissionKind `json:"kind"`
	ID    int64                 `json:"id"`
	Path  string                `json:"path"`
	Error string                `json:"error"`
}

// ModeChangedPayload payload.
type ModeChangedPayload struct {
	OldMode domain.Mode `json:"old_mode"`
	NewMode domain.Mode `json:"new_mode"`
}
