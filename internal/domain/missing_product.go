package domain

import "time"

// MissingStatus tracks the search for a missing product.
type MissingStatus string

const (
	MissingSearching MissingStatus = "searching"
	MissingFound     MissingStatus = "found"
	MissingLost      MissingStatus = "lost"
)

// MissingStatuses lists the accepted statuses.
func MissingStatuses() []MissingStatus {
	return []MissingStatus{MissingSearching, MissingFound, MissingLost}
}

func (s MissingStatus) Valid() bool {
	for _, candidate := range MissingStatuses() {
		if s == candidate {
			return true
		}
	}
	return false
}

// MissingProduct is stock that is not where the inventory says it is.
type MissingProduct struct {
	ID               string
	ProductName      string
	ExpectedLocation string
	Status           MissingStatus
	Notes            string
	CreatedAt        time.Time
	ReportedBy       string
}

// MissingDraft is the creation form of the missing products board.
type MissingDraft struct {
	ProductName      string
	ExpectedLocation string
	Status           MissingStatus
	Notes            string
}
