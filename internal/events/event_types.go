package events

import (
	"time"

	"github.com/spec-kit/nexushub/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRecordCreated  EventType = "board.record_created"
	EventStatusChanged  EventType = "board.status_changed"
	EventRecordUpdated  EventType = "board.record_updated"
	EventRecordDeleted  EventType = "board.record_deleted"
	EventSessionStarted EventType = "session.started"
	EventSessionEnded   EventType = "session.ended"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

// ActorFromIdentity copies the fields of an identity relevant to auditing.
func ActorFromIdentity(identity domain.Identity) Actor {
	return Actor{ID: identity.ID, Name: identity.Name, Role: identity.Role}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Board     string      `json:"board,omitempty"`
	RecordID  string      `json:"record_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MutationPayload describes a board mutation.
type MutationPayload struct {
	Action    domain.Action `json:"action"`
	OldStatus string        `json:"old_status,omitempty"`
	NewStatus string        `json:"new_status,omitempty"`
}

// SessionPayload describes a session lifecycle change.
type SessionPayload struct {
	SessionID string `json:"session_id"`
}
