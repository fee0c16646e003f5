package service

import (
	"time"

	"github.com/spec-kit/nexushub/internal/domain"
)

const seedAdminID = "admin1"

// fixtures is the seed data every new workspace starts from.
type fixtures struct {
	bulletin    []domain.BulletinMessage
	calendar    []domain.CalendarEvent
	exchanges   []domain.Exchange
	returns     []domain.ReturnItem
	reshipments []domain.Reshipment
	missing     []domain.MissingProduct
	employees   []domain.Employee
}

func seedFixtures(now time.Time, loc *time.Location) fixtures {
	local := now.In(loc)
	meetingStart := time.Date(local.Year(), local.Month(), local.Day(), 10, 0, 0, 0, loc)

	return fixtures{
		bulletin: []domain.BulletinMessage{
			{
				ID:         "b1",
				Title:      "Welcome to the new NexusHub",
				Content:    "This is the new space for company communications. Keep an eye on the board for news and updates.",
				Category:   domain.CategoryNotice,
				IsPinned:   true,
				AuthorID:   seedAdminID,
				AuthorName: "System Admin",
				CreatedAt:  now,
			},
			{
				ID:         "b2",
				Title:      "Server maintenance Saturday",
				Content:    "Saturday night the servers will be offline from 22:00 to 02:00 for scheduled maintenance.",
				Category:   domain.CategoryWarning,
				AuthorID:   seedAdminID,
				AuthorName: "System Admin",
				CreatedAt:  now.Add(-24 * time.Hour),
			},
		},
		calendar: []domain.CalendarEvent{
			{
				ID:          "c1",
				Title:       "Logistics meeting",
				Description: "Weekly review of shipments and returns.",
				Start:       meetingStart,
				End:         meetingStart.Add(time.Hour),
				OwnerID:     seedAdminID,
				OwnerName:   "Admin User",
				Color:       domain.ColorIndigo,
			},
		},
		exchanges: []domain.Exchange{
			{
				ID:           "ex1",
				CustomerName: "Mario Rossi",
				Items:        "Smartphone X1, Blue case",
				Status:       domain.ExchangePending,
				Notes:        "Customer asked for a different color.",
				CreatedAt:    now,
				AuthorName:   "Admin User",
			},
			{
				ID:             "ex2",
				CustomerName:   "Luigi Verdi",
				Items:          "Laptop Pro 14, Bag",
				TrackingNumber: "IT123456789",
				Status:         domain.ExchangeShipped,
				CreatedAt:      now.Add(-time.Hour),
				AuthorName:     "Standard User",
			},
		},
		returns: []domain.ReturnItem{
			{
				ID:           "r1",
				CustomerName: "Giulia Neri",
				OrderNumber:  "ORD-4410",
				Reason:       "Wrong size",
				Status:       domain.ReturnRequested,
				CreatedAt:    now,
				AuthorName:   "Admin User",
			},
			{
				ID:           "r2",
				CustomerName: "Francesco Gallo",
				OrderNumber:  "ORD-3921",
				Reason:       "Damaged on arrival",
				Status:       domain.ReturnRefunded,
				CreatedAt:    now.Add(-48 * time.Hour),
				AuthorName:   "Standard User",
			},
		},
		reshipments: []domain.Reshipment{
			{
				ID:               "rs1",
				CustomerName:     "Elena Bianchi",
				OriginalOrderRef: "ORD-5502",
				Reason:           "Warranty repair",
				Status:           domain.ReshipmentProcessing,
				CreatedAt:        now,
				AuthorName:       "Admin User",
			},
			{
				ID:               "rs2",
				CustomerName:     "Roberto Viola",
				OriginalOrderRef: "ORD-9912",
				Reason:           "Wrong address on first shipment",
				Status:           domain.ReshipmentReady,
				CreatedAt:        now.Add(-12 * time.Hour),
				AuthorName:       "Sara Neri",
			},
		},
		missing: []domain.MissingProduct{
			{
				ID:               "m1",
				ProductName:      "Iphone 15 Pro Max 256GB Black",
				ExpectedLocation: "Sector A, Shelf 3, Level 2",
				Status:           domain.MissingSearching,
				Notes:            "Not found during the morning inventory check.",
				CreatedAt:        now,
				ReportedBy:       "Mario Rossi",
			},
			{
				ID:               "m2",
				ProductName:      "Monitor Dell UltraSharp 27",
				ExpectedLocation: "Returns area, Pallet 4",
				Status:           domain.MissingFound,
				CreatedAt:        now.Add(-24 * time.Hour),
				ReportedBy:       "Paolo Neri",
			},
		},
		employees: []domain.Employee{
			{ID: "e1", Name: "Marco Rossi", RoleLabel: "Warehouse", Email: "marco.r@nexushub.it", Presence: domain.PresenceOnline, AvatarURL: employeeAvatar("e1")},
			{ID: "e2", Name: "Laura Bianchi", RoleLabel: "Logistics", Email: "laura.b@nexushub.it", Presence: domain.PresenceBreak, AvatarURL: employeeAvatar("e2")},
			{ID: "e3", Name: "Giuseppe Verdi", RoleLabel: "Administration", Email: "giuseppe.v@nexushub.it", Presence: domain.PresenceOffline, AvatarURL: employeeAvatar("e3")},
			{ID: "e4", Name: "Sara Neri", RoleLabel: "Customer Care", Email: "sara.n@nexushub.it", Presence: domain.PresenceOnline, AvatarURL: employeeAvatar("e4")},
		},
	}
}
