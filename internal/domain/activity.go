package domain

import "time"

// ActivityEntry is an immutable audit record of a board mutation.
type ActivityEntry struct {
	ID        string
	Board     string
	Action    string
	RecordID  string
	ActorID   string
	ActorName string
	Payload   map[string]any
	CreatedAt time.Time
}
