package domain

import "time"

// EventColor tags a calendar event for display.
type EventColor string

const (
	ColorIndigo  EventColor = "indigo"
	ColorEmerald EventColor = "emerald"
	ColorAmber   EventColor = "amber"
	ColorRose    EventColor = "rose"
	ColorCyan    EventColor = "cyan"
)

// EventColors lists the accepted color tags.
func EventColors() []EventColor {
	return []EventColor{ColorIndigo, ColorEmerald, ColorAmber, ColorRose, ColorCyan}
}

// Valid reports whether c is a known color tag.
func (c EventColor) Valid() bool {
	for _, candidate := range EventColors() {
		if c == candidate {
			return true
		}
	}
	return false
}

// CalendarEvent is a scheduled slot on the shared calendar.
type CalendarEvent struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	OwnerID     string
	OwnerName   string
	Color       EventColor
}

// CalendarDraft is the creation form of the calendar. Date is YYYY-MM-DD,
// StartTime and EndTime are HH:mm in the calendar's time zone.
type CalendarDraft struct {
	Title       string
	Date        string
	StartTime   string
	EndTime     string
	Description string
	Color       EventColor
}
