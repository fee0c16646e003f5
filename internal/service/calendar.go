package service

import (
	"fmt"
	"time"

	"github.com/spec-kit/nexushub/internal/assist"
	"github.com/spec-kit/nexushub/internal/domain"
)

// Grid hours of the week view, inclusive.
const (
	FirstGridHour = 8
	LastGridHour  = 18
)

// WeekCell lists the events starting in one hour slot of one day.
type WeekCell struct {
	Hour   int
	Events []domain.CalendarEvent
}

// WeekDay is one column of the week grid.
type WeekDay struct {
	Date  time.Time
	Today bool
	Cells []WeekCell
}

// WeekView is a Monday-start 7-day grid.
type WeekView struct {
	Offset int
	Start  time.Time
	End    time.Time
	Days   []WeekDay
}

// GridHours lists the hours shown by the week grid.
func GridHours() []int {
	hours := make([]int, 0, LastGridHour-FirstGridHour+1)
	for h := FirstGridHour; h <= LastGridHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// BuildWeek lays events out on the week containing now, shifted by offset
// weeks. An event lands in the cell of its start day and start hour; events
// starting outside the grid hours are not shown.
func BuildWeek(events []domain.CalendarEvent, now time.Time, loc *time.Location, offset int) WeekView {
	local := now.In(loc)
	sinceMonday := (int(local.Weekday()) + 6) % 7
	monday := time.Date(local.Year(), local.Month(), local.Day()-sinceMonday+offset*7, 0, 0, 0, 0, loc)
	today := local.Format(dateLayout)

	view := WeekView{
		Offset: offset,
		Start:  monday,
		End:    monday.AddDate(0, 0, 7),
		Days:   make([]WeekDay, 7),
	}
	for i := range view.Days {
		date := monday.AddDate(0, 0, i)
		day := WeekDay{Date: date, Today: date.Format(dateLayout) == today}
		for _, hour := range GridHours() {
			day.Cells = append(day.Cells, WeekCell{Hour: hour})
		}
		view.Days[i] = day
	}

	for _, ev := range events {
		start := ev.Start.In(loc)
		hour := start.Hour()
		if hour < FirstGridHour || hour > LastGridHour {
			continue
		}
		for i := range view.Days {
			if view.Days[i].Date.Format(dateLayout) == start.Format(dateLayout) {
				cell := &view.Days[i].Cells[hour-FirstGridHour]
				cell.Events = append(cell.Events, ev)
				break
			}
		}
	}
	return view
}

// SlotDraft pre-fills a calendar draft for a click on (date, hour).
func SlotDraft(draft domain.CalendarDraft, date time.Time, hour int) domain.CalendarDraft {
	draft.Date = date.Format(dateLayout)
	draft.StartTime = fmt.Sprintf("%02d:00", hour)
	draft.EndTime = fmt.Sprintf("%02d:00", hour+1)
	return draft
}

// ApplyParsedEvent merges a parsed event into the form draft. Absent date and
// times keep the draft's values; title and description are replaced.
func ApplyParsedEvent(draft domain.CalendarDraft, parsed assist.ParsedEvent) domain.CalendarDraft {
	out := domain.CalendarDraft{
		Title:       parsed.Title,
		Date:        draft.Date,
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
		Description: parsed.Description,
		Color:       domain.ColorIndigo,
	}
	if parsed.Date != "" {
		out.Date = parsed.Date
	}
	if parsed.StartTime != "" {
		out.StartTime = parsed.StartTime
	}
	if parsed.EndTime != "" {
		out.EndTime = parsed.EndTime
	}
	return out
}

// ValidateCalendarDraft checks that the draft's date and times parse in loc.
// End before start is accepted.
func ValidateCalendarDraft(draft domain.CalendarDraft, loc *time.Location) error {
	if _, err := parseSlot(draft.Date, draft.StartTime, loc); err != nil {
		return err
	}
	if _, err := parseSlot(draft.Date, draft.EndTime, loc); err != nil {
		return err
	}
	return nil
}
