package domain

import "time"

// ReturnStatus tracks a customer return.
type ReturnStatus string

const (
	ReturnRequested ReturnStatus = "requested"
	ReturnReceived  ReturnStatus = "received"
	ReturnRefunded  ReturnStatus = "refunded"
	ReturnRejected  ReturnStatus = "rejected"
)

// ReturnStatuses lists the accepted statuses.
func ReturnStatuses() []ReturnStatus {
	return []ReturnStatus{ReturnRequested, ReturnReceived, ReturnRefunded, ReturnRejected}
}

func (s ReturnStatus) Valid() bool {
	for _, candidate := range ReturnStatuses() {
		if s == candidate {
			return true
		}
	}
	return false
}

// ReturnItem is a product returned by a customer.
type ReturnItem struct {
	ID           string
	CustomerName string
	OrderNumber  string
	Reason       string
	Status       ReturnStatus
	CreatedAt    time.Time
	AuthorName   string
}

// ReturnDraft is the creation form of the returns board.
type ReturnDraft struct {
	CustomerName string
	OrderNumber  string
	Reason       string
	Status       ReturnStatus
}
