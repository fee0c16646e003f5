package board

import (
	"strings"
	"time"
)

// AnyStatus is the status filter value that matches every record.
const AnyStatus = "all"

// dayLayout is the calendar-day format used by day filters.
const dayLayout = "2006-01-02"

// Criteria holds the filter inputs of a board. Empty fields match everything.
type Criteria struct {
	Search string
	Status string
	Day    string
}

// IsEmpty reports whether no filter is active.
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Search) == "" && !c.HasStatus() && strings.TrimSpace(c.Day) == ""
}

// HasStatus reports whether a concrete status filter is set.
func (c Criteria) HasStatus() bool {
	status := strings.TrimSpace(c.Status)
	return status != "" && status != AnyStatus
}

// ContainsFold reports whether any field contains term, ignoring case.
// An empty term matches.
func ContainsFold(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// StatusMatches reports whether value satisfies the status filter.
func StatusMatches(filter, value string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == AnyStatus {
		return true
	}
	return filter == value
}

// SameDay reports whether t falls on day (YYYY-MM-DD, UTC).
func SameDay(day string, t time.Time) bool {
	day = strings.TrimSpace(day)
	if day == "" {
		return true
	}
	return t.UTC().Format(dayLayout) == day
}
