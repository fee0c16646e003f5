package domain

import "time"

// Presence is an employee's availability.
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceBreak   Presence = "break"
	PresenceOffline Presence = "offline"
)

// Presences lists the accepted presence values.
func Presences() []Presence {
	return []Presence{PresenceOnline, PresenceBreak, PresenceOffline}
}

func (p Presence) Valid() bool {
	for _, candidate := range Presences() {
		if p == candidate {
			return true
		}
	}
	return false
}

// Employee is a colleague listed in the directory.
type Employee struct {
	ID        string
	Name      string
	RoleLabel string
	Email     string
	Presence  Presence
	AvatarURL string
}

// EmployeeDraft is the creation form of the employee directory.
type EmployeeDraft struct {
	Name      string
	RoleLabel string
	Email     string
}

// ChatMessage is one line of an ephemeral chat with an employee.
type ChatMessage struct {
	ID         string
	SenderID   string
	ReceiverID string
	Text       string
	Timestamp  time.Time
}
