package domain

import "time"

// ExchangeStatus tracks an exchange shipment.
type ExchangeStatus string

const (
	ExchangePending   ExchangeStatus = "pending"
	ExchangeShipped   ExchangeStatus = "shipped"
	ExchangeDelivered ExchangeStatus = "delivered"
)

// ExchangeStatuses lists the accepted statuses.
func ExchangeStatuses() []ExchangeStatus {
	return []ExchangeStatus{ExchangePending, ExchangeShipped, ExchangeDelivered}
}

func (s ExchangeStatus) Valid() bool {
	for _, candidate := range ExchangeStatuses() {
		if s == candidate {
			return true
		}
	}
	return false
}

// Exchange is an item swap shipped to a customer.
type Exchange struct {
	ID             string
	CustomerName   string
	Items          string
	TrackingNumber string
	Status         ExchangeStatus
	Notes          string
	CreatedAt      time.Time
	AuthorName     string
}

// ExchangeDraft is the creation form of the exchange board.
type ExchangeDraft struct {
	CustomerName   string
	Items          string
	TrackingNumber string
	Status         ExchangeStatus
	Notes          string
}
