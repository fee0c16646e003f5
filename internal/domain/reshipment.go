package domain

import "time"

// ReshipmentStatus tracks an order being sent again.
type ReshipmentStatus string

const (
	ReshipmentProcessing ReshipmentStatus = "processing"
	ReshipmentReady      ReshipmentStatus = "ready"
	ReshipmentResent     ReshipmentStatus = "resent"
)

// ReshipmentStatuses lists the accepted statuses.
func ReshipmentStatuses() []ReshipmentStatus {
	return []ReshipmentStatus{ReshipmentProcessing, ReshipmentReady, ReshipmentResent}
}

func (s ReshipmentStatus) Valid() bool {
	for _, candidate := range ReshipmentStatuses() {
		if s == candidate {
			return true
		}
	}
	return false
}

// Reshipment is an order sent to the customer a second time.
type Reshipment struct {
	ID               string
	CustomerName     string
	OriginalOrderRef string
	Reason           string
	TrackingNumber   string
	Status           ReshipmentStatus
	CreatedAt        time.Time
	AuthorName       string
}

// ReshipmentDraft is the creation form of the reshipments board.
type ReshipmentDraft struct {
	CustomerName     string
	OriginalOrderRef string
	Reason           string
	TrackingNumber   string
	Status           ReshipmentStatus
}
