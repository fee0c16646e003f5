package dto

import (
	"time"

	"github.com/spec-kit/nexushub/internal/domain"
)

// CriteriaResponse echoes the active filters of a board.
type CriteriaResponse struct {
	Search string `json:"q"`
	Status string `json:"status"`
	Day    string `json:"date"`
}

// StatusRequest payload.
type StatusRequest struct {
	Status string `json:"status"`
}

// AssistTextRequest carries free text for an assist operation.
type AssistTextRequest struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

// BulletinMessageResponse record.
type BulletinMessageResponse struct {
	ID         string                  `json:"id"`
	Title      string                  `json:"title"`
	Content    string                  `json:"content"`
	Category   domain.BulletinCategory `json:"category"`
	IsPinned   bool                    `json:"is_pinned"`
	AuthorID   string                  `json:"author_id"`
	AuthorName string                  `json:"author_name"`
	CreatedAt  time.Time               `json:"created_at"`
}

// BulletinDraftPayload form.
type BulletinDraftPayload struct {
	Title    string                  `json:"title"`
	Content  string                  `json:"content"`
	Category domain.BulletinCategory `json:"category"`
	IsPinned bool                    `json:"is_pinned"`
	Topic    string                  `json:"topic"`
}

// CalendarEventResponse record.
type CalendarEventResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Start       time.Time         `json:"start"`
	End         time.Time         `json:"end"`
	OwnerID     string            `json:"owner_id"`
	OwnerName   string            `json:"owner_name"`
	Color       domain.EventColor `json:"color"`
}

// CalendarDraftPayload form. Date is YYYY-MM-DD, times are HH:mm.
type CalendarDraftPayload struct {
	Title       string            `json:"title"`
	Date        string            `json:"date"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Description string            `json:"description"`
	Color       domain.EventColor `json:"color"`
}

// SlotRequest selects a week grid cell.
type SlotRequest struct {
	Date string `json:"date"`
	Hour int    `json:"hour"`
}

// WeekCellResponse is one hour slot.
type WeekCellResponse struct {
	Hour   int                     `json:"hour"`
	Events []CalendarEventResponse `json:"events"`
}

// WeekDayResponse is one grid column.
type WeekDayResponse struct {
	Date  string             `json:"date"`
	Today bool               `json:"today"`
	Cells []WeekCellResponse `json:"cells"`
}

// WeekResponse is the calendar week grid.
type WeekResponse struct {
	Offset int               `json:"offset"`
	Start  string            `json:"start"`
	End    string            `json:"end"`
	Hours  []int             `json:"hours"`
	Days   []WeekDayResponse `json:"days"`
}

// ExchangeResponse record.
type ExchangeResponse struct {
	ID             string                `json:"id"`
	CustomerName   string                `json:"customer_name"`
	Items          string                `json:"items"`
	TrackingNumber string                `json:"tracking_number"`
	Status         domain.ExchangeStatus `json:"status"`
	Notes          string                `json:"notes"`
	CreatedAt      time.Time             `json:"created_at"`
	AuthorName     string                `json:"author_name"`
}

// ExchangeDraftPayload form.
type ExchangeDraftPayload struct {
	CustomerName   string                `json:"customer_name"`
	Items          string                `json:"items"`
	TrackingNumber string                `json:"tracking_number"`
	Status         domain.ExchangeStatus `json:"status"`
	Notes          string                `json:"notes"`
}

// ReturnResponse record.
type ReturnResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"customer_name"`
	OrderNumber  string              `json:"order_number"`
	Reason       string              `json:"reason"`
	Status       domain.ReturnStatus `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	AuthorName   string              `json:"author_name"`
}

// ReturnDraftPayload form.
type ReturnDraftPayload struct {
	CustomerName string              `json:"customer_name"`
	OrderNumber  string              `json:"order_number"`
	Reason       string              `json:"reason"`
	Status       domain.ReturnStatus `json:"status"`
}

// ReshipmentResponse record.
type ReshipmentResponse struct {
	ID               string                  `json:"id"`
	CustomerName     string                  `json:"customer_name"`
	OriginalOrderRef string                  `json:"original_order_ref"`
	Reason           string                  `json:"reason"`
	TrackingNumber   string                  `json:"tracking_number"`
	Status           domain.ReshipmentStatus `json:"status"`
	CreatedAt        time.Time               `json:"created_at"`
	AuthorName       string                  `json:"author_name"`
}

// ReshipmentDraftPayload form.
type ReshipmentDraftPayload struct {
	CustomerName     string                  `json:"customer_name"`
	OriginalOrderRef string                  `json:"original_order_ref"`
	Reason           string                  `json:"reason"`
	TrackingNumber   string                  `json:"tracking_number"`
	Status           domain.ReshipmentStatus `json:"status"`
}

// MissingProductResponse record.
type MissingProductResponse struct {
	ID               string               `json:"id"`
	ProductName      string               `json:"product_name"`
	ExpectedLocation string               `json:"expected_location"`
	Status           domain.MissingStatus `json:"status"`
	Notes            string               `json:"notes"`
	CreatedAt        time.Time            `json:"created_at"`
	ReportedBy       string               `json:"reported_by"`
}

// MissingDraftPayload form.
type MissingDraftPayload struct {
	ProductName      string               `json:"product_name"`
	ExpectedLocation string               `json:"expected_location"`
	Status           domain.MissingStatus `json:"status"`
	Notes            string               `json:"notes"`
}

// EmployeeResponse record.
type EmployeeResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	RoleLabel string          `json:"role_label"`
	Email     string          `json:"email"`
	Presence  domain.Presence `json:"presence"`
	AvatarURL string          `json:"avatar"`
}

// EmployeeDraftPayload form.
type EmployeeDraftPayload struct {
	Name      string `json:"name"`
	RoleLabel string `json:"role_label"`
	Email     string `json:"email"`
}
