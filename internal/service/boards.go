package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/nexushub/internal/board"
	"github.com/spec-kit/nexushub/internal/domain"
)

// Board names, also used as route segments and activity log keys.
const (
	BoardBulletin    = "bulletin"
	BoardCalendar    = "calendar"
	BoardExchanges   = "exchanges"
	BoardReturns     = "returns"
	BoardReshipments = "reshipments"
	BoardMissing     = "missing"
	BoardEmployees   = "employees"
)

// BoardNames lists the boards in dashboard tab order.
func BoardNames() []string {
	return []string{BoardBulletin, BoardCalendar, BoardExchanges, BoardReturns, BoardReshipments, BoardMissing, BoardEmployees}
}

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

func bulletinSpec() board.Spec[domain.BulletinMessage, domain.BulletinDraft] {
	return board.Spec[domain.BulletinMessage, domain.BulletinDraft]{
		Name: BoardBulletin,
		ID:   func(m domain.BulletinMessage) string { return m.ID },
		Build: func(d domain.BulletinDraft, meta board.Meta) domain.BulletinMessage {
			category := d.Category
			if !category.Valid() {
				category = domain.CategoryGeneral
			}
			return domain.BulletinMessage{
				ID:         meta.ID,
				Title:      d.Title,
				Content:    d.Content,
				Category:   category,
				IsPinned:   d.IsPinned && domain.CanMutate(meta.Actor, domain.ActionBulletinPin),
				AuthorID:   meta.Actor.ID,
				AuthorName: meta.Actor.Name,
				CreatedAt:  meta.Now,
			}
		},
		EmptyDraft: func(time.Time) domain.BulletinDraft { return domain.EmptyBulletinDraft() },
		Match: func(m domain.BulletinMessage, c board.Criteria) bool {
			return board.ContainsFold(c.Search, m.Title, m.Content) &&
				board.StatusMatches(c.Status, string(m.Category))
		},
		Less: func(a, b domain.BulletinMessage) bool {
			if a.IsPinned != b.IsPinned {
				return a.IsPinned
			}
			return a.CreatedAt.After(b.CreatedAt)
		},
		Prepend:      true,
		CreateAction: domain.ActionBulletinCreate,
		DeleteAction: domain.ActionBulletinDelete,
	}
}

func calendarSpec(loc *time.Location) board.Spec[domain.CalendarEvent, domain.CalendarDraft] {
	return board.Spec[domain.CalendarEvent, domain.CalendarDraft]{
		Name: BoardCalendar,
		ID:   func(e domain.CalendarEvent) string { return e.ID },
		Build: func(d domain.CalendarDraft, meta board.Meta) domain.CalendarEvent {
			start, _ := parseSlot(d.Date, d.StartTime, loc)
			end, _ := parseSlot(d.Date, d.EndTime, loc)
			color := d.Color
			if !color.Valid() {
				color = domain.ColorIndigo
			}
			return domain.CalendarEvent{
				ID:          meta.ID,
				Title:       d.Title,
				Description: d.Description,
				Start:       start,
				End:         end,
				OwnerID:     meta.Actor.ID,
				OwnerName:   meta.Actor.Name,
				Color:       color,
			}
		},
		EmptyDraft: func(now time.Time) domain.CalendarDraft {
			return domain.CalendarDraft{
				Date:      now.In(loc).Format(dateLayout),
				StartTime: "08:00",
				EndTime:   "09:00",
				Color:     domain.ColorIndigo,
			}
		},
		Match: func(e domain.CalendarEvent, c board.Criteria) bool {
			return board.ContainsFold(c.Search, e.Title, e.Description) && board.SameDay(c.Day, e.Start)
		},
		Less:         func(a, b domain.CalendarEvent) bool { return a.Start.Before(b.Start) },
		CreateAction: domain.ActionCalendarCreate,
	}
}

func exchangeSpec() board.Spec[domain.Exchange, domain.ExchangeDraft] {
	return board.Spec[domain.Exchange, domain.ExchangeDraft]{
		Name: BoardExchanges,
		ID:   func(e domain.Exchange) string { return e.ID },
		Build: func(d domain.ExchangeDraft, meta board.Meta) domain.Exchange {
			status := d.Status
			if !status.Valid() {
				status = domain.ExchangePending
			}
			return domain.Exchange{
				ID:             meta.ID,
				CustomerName:   d.CustomerName,
				Items:          d.Items,
				TrackingNumber: d.TrackingNumber,
				Status:         status,
				Notes:          d.Notes,
				CreatedAt:      meta.Now,
				AuthorName:     meta.Actor.Name,
			}
		},
		EmptyDraft: func(time.Time) domain.ExchangeDraft {
			return domain.ExchangeDraft{Status: domain.ExchangePending}
		},
		Match: func(e domain.Exchange, c board.Criteria) bool {
			return board.ContainsFold(c.Search, e.CustomerName, e.Items) &&
				board.StatusMatches(c.Status, string(e.Status)) &&
				board.SameDay(c.Day, e.CreatedAt)
		},
		Prepend:      true,
		CreateAction: domain.ActionExchangeCreate,
		StatusAction: domain.ActionExchangeStatus,
		Status:       func(e domain.Exchange) string { return string(e.Status) },
		SetStatus:    func(e *domain.Exchange, s string) { e.Status = domain.ExchangeStatus(s) },
	}
}

func returnSpec() board.Spec[domain.ReturnItem, domain.ReturnDraft] {
	return board.Spec[domain.ReturnItem, domain.ReturnDraft]{
		Name: BoardReturns,
		ID:   func(r domain.ReturnItem) string { return r.ID },
		Build: func(d domain.ReturnDraft, meta board.Meta) domain.ReturnItem {
			status := d.Status
			if !status.Valid() {
				status = domain.ReturnRequested
			}
			return domain.ReturnItem{
				ID:           meta.ID,
				CustomerName: d.CustomerName,
				OrderNumber:  d.OrderNumber,
				Reason:       d.Reason,
				Status:       status,
				CreatedAt:    meta.Now,
				AuthorName:   meta.Actor.Name,
			}
		},
		EmptyDraft: func(time.Time) domain.ReturnDraft {
			return domain.ReturnDraft{Status: domain.ReturnRequested}
		},
		Match: func(r domain.ReturnItem, c board.Criteria) bool {
			return board.ContainsFold(c.Search, r.CustomerName, r.OrderNumber, r.Reason) &&
				board.StatusMatches(c.Status, string(r.Status)) &&
				board.SameDay(c.Day, r.CreatedAt)
		},
		Prepend:      true,
		CreateAction: domain.ActionReturnCreate,
		StatusAction: domain.ActionReturnStatus,
		DeleteAction: domain.ActionReturnDelete,
		Status:       func(r domain.ReturnItem) string { return string(r.Status) },
		SetStatus:    func(r *domain.ReturnItem, s string) { r.Status = domain.ReturnStatus(s) },
	}
}

func reshipmentSpec() board.Spec[domain.Reshipment, domain.ReshipmentDraft] {
	return board.Spec[domain.Reshipment, domain.ReshipmentDraft]{
		Name: BoardReshipments,
		ID:   func(r domain.Reshipment) string { return r.ID },
		Build: func(d domain.ReshipmentDraft, meta board.Meta) domain.Reshipment {
			status := d.Status
			if !status.Valid() {
				status = domain.ReshipmentProcessing
			}
			return domain.Reshipment{
				ID:               meta.ID,
				CustomerName:     d.CustomerName,
				OriginalOrderRef: d.OriginalOrderRef,
				Reason:           d.Reason,
				TrackingNumber:   d.TrackingNumber,
				Status:           status,
				CreatedAt:        meta.Now,
				AuthorName:       meta.Actor.Name,
			}
		},
		EmptyDraft: func(time.Time) domain.ReshipmentDraft {
			return domain.ReshipmentDraft{Status: domain.ReshipmentProcessing}
		},
		Match: func(r domain.Reshipment, c board.Criteria) bool {
			return board.ContainsFold(c.Search, r.CustomerName, r.OriginalOrderRef, r.Reason) &&
				board.StatusMatches(c.Status, string(r.Status))
		},
		Prepend:      true,
		CreateAction: domain.ActionReshipmentCreate,
		StatusAction: domain.ActionReshipmentStatus,
		Status:       func(r domain.Reshipment) string { return string(r.Status) },
		SetStatus:    func(r *domain.Reshipment, s string) { r.Status = domain.ReshipmentStatus(s) },
	}
}

func missingSpec() board.Spec[domain.MissingProduct, domain.MissingDraft] {
	return board.Spec[domain.MissingProduct, domain.MissingDraft]{
		Name: BoardMissing,
		ID:   func(m domain.MissingProduct) string { return m.ID },
		Build: func(d domain.MissingDraft, meta board.Meta) domain.MissingProduct {
			status := d.Status
			if !status.Valid() {
				status = domain.MissingSearching
			}
			return domain.MissingProduct{
				ID:               meta.ID,
				ProductName:      d.ProductName,
				ExpectedLocation: d.ExpectedLocation,
				Status:           status,
				Notes:            d.Notes,
				CreatedAt:        meta.Now,
				ReportedBy:       meta.Actor.Name,
			}
		},
		EmptyDraft: func(time.Time) domain.MissingDraft {
			return domain.MissingDraft{Status: domain.MissingSearching}
		},
		Match: func(m domain.MissingProduct, c board.Criteria) bool {
			return board.ContainsFold(c.Search, m.ProductName, m.ExpectedLocation, m.Notes) &&
				board.StatusMatches(c.Status, string(m.Status)) &&
				board.SameDay(c.Day, m.CreatedAt)
		},
		Prepend:      true,
		CreateAction: domain.ActionMissingCreate,
		StatusAction: domain.ActionMissingStatus,
		DeleteAction: domain.ActionMissingDelete,
		Status:       func(m domain.MissingProduct) string { return string(m.Status) },
		SetStatus:    func(m *domain.MissingProduct, s string) { m.Status = domain.MissingStatus(s) },
	}
}

func employeeSpec() board.Spec[domain.Employee, domain.EmployeeDraft] {
	return board.Spec[domain.Employee, domain.EmployeeDraft]{
		Name: BoardEmployees,
		ID:   func(e domain.Employee) string { return e.ID },
		Build: func(d domain.EmployeeDraft, meta board.Meta) domain.Employee {
			return domain.Employee{
				ID:        meta.ID,
				Name:      d.Name,
				RoleLabel: d.RoleLabel,
				Email:     d.Email,
				Presence:  domain.PresenceOffline,
				AvatarURL: employeeAvatar(meta.ID),
			}
		},
		Match: func(e domain.Employee, c board.Criteria) bool {
			return board.ContainsFold(c.Search, e.Name, e.RoleLabel) &&
				board.StatusMatches(c.Status, string(e.Presence))
		},
		CreateAction: domain.ActionEmployeeCreate,
	}
}

func employeeAvatar(id string) string {
	return "https://i.pravatar.cc/150?u=" + id
}

// parseSlot combines a YYYY-MM-DD date and an HH:mm clock in loc.
func parseSlot(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return t, nil
}
