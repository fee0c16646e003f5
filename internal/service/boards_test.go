package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/nexushub/internal/board"
	"github.com/spec-kit/nexushub/internal/domain"
	"github.com/spec-kit/nexushub/internal/events"
)

func countByID[R any](records []R, id string, idOf func(R) string) int {
	n := 0
	for _, r := range records {
		if idOf(r) == id {
			n++
		}
	}
	return n
}

func TestWorkspaceSeedsFixtures(t *testing.T) {
	ws := newTestWorkspace(testStandard, nil)

	assert.Equal(t, 2, ws.Bulletin.Len())
	assert.Equal(t, 1, ws.Calendar.Len())
	assert.Equal(t, 2, ws.Exchanges.Len())
	assert.Equal(t, 2, ws.Returns.Len())
	assert.Equal(t, 2, ws.Reshipments.Len())
	assert.Equal(t, 2, ws.Missing.Len())
	assert.Equal(t, 4, ws.Employees.Len())

	meeting := ws.Calendar.Records()[0]
	assert.Equal(t, 10, meeting.Start.Hour())
	assert.Equal(t, 11, meeting.End.Hour())
}

func TestCreateAppearsOnceWithAuthor(t *testing.T) {
	ws := newTestWorkspace(testStandard, nil)

	bulletin, ok := ws.Bulletin.Create(domain.BulletinDraft{Title: "Hello", Content: "World", Category: domain.CategoryEvent})
	require.True(t, ok)
	assert.Equal(t, "Standard User", bulletin.AuthorName)
	assert.Equal(t, 1, countByID(ws.Bulletin.View(), bulletin.ID, func(m domain.BulletinMessage) string { return m.ID }))

	event, ok := ws.Calendar.Create(domain.CalendarDraft{Title: "Sync", Date: "2024-05-23", StartTime: "14:00", EndTime: "15:00"})
	require.True(t, ok)
	assert.Equal(t, "Standard User", event.OwnerName)
	assert.Equal(t, domain.ColorIndigo, event.Color)
	assert.Equal(t, 1, countByID(ws.Calendar.View(), event.ID, func(e domain.CalendarEvent) string { return e.ID }))

	exchange, ok := ws.Exchanges.Create(domain.ExchangeDraft{CustomerName: "Anna", Items: "Shoes"})
	require.True(t, ok)
	assert.Equal(t, "Standard User", exchange.AuthorName)
	assert.Equal(t, domain.ExchangePending, exchange.Status)
	assert.Equal(t, exchange.ID, ws.Exchanges.View()[0].ID)

	ret, ok := ws.Returns.Create(domain.ReturnDraft{CustomerName: "Anna", OrderNumber: "ORD-1", Reason: "Too small"})
	require.True(t, ok)
	assert.Equal(t, "Standard User", ret.AuthorName)
	assert.Equal(t, 1, countByID(ws.Returns.View(), ret.ID, func(r domain.ReturnItem) string { return r.ID }))

	reship, ok := ws.Reshipments.Create(domain.ReshipmentDraft{CustomerName: "Anna", OriginalOrderRef: "ORD-2", Reason: "Lost"})
	require.True(t, ok)
	assert.Equal(t, "Standard User", reship.AuthorName)
	assert.Equal(t, domain.ReshipmentProcessing, reship.Status)

	missing, ok := ws.Missing.Create(domain.MissingDraft{ProductName: "Mouse", ExpectedLocation: "B2"})
	require.True(t, ok)
	assert.Equal(t, "Standard User", missing.ReportedBy)
	assert.Equal(t, domain.MissingSearching, missing.Status)
}

func TestEmployeeCreateIsAdminOnly(t *testing.T) {
	standard := newTestWorkspace(testStandard, nil)
	_, ok := standard.Employees.Create(domain.EmployeeDraft{Name: "New Hire", RoleLabel: "Warehouse"})
	assert.False(t, ok)
	assert.Equal(t, 4, standard.Employees.Len())

	admin := newTestWorkspace(testAdmin, nil)
	hire, ok := admin.Employees.Create(domain.EmployeeDraft{Name: "New Hire", RoleLabel: "Warehouse", Email: "nh@nexushub.it"})
	require.True(t, ok)
	assert.Equal(t, domain.PresenceOffline, hire.Presence)
	assert.Contains(t, hire.AvatarURL, hire.ID)
	records := admin.Employees.Records()
	assert.Equal(t, hire.ID, records[len(records)-1].ID)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	standard := newTestWorkspace(testStandard, nil)
	assert.False(t, standard.Returns.Delete("r1"))
	assert.False(t, standard.Missing.Delete("m1"))
	assert.False(t, standard.Bulletin.Delete("b1"))
	assert.Equal(t, 2, standard.Returns.Len())
	assert.Equal(t, 2, standard.Missing.Len())
	assert.Equal(t, 2, standard.Bulletin.Len())

	admin := newTestWorkspace(testAdmin, nil)
	assert.True(t, admin.Returns.Delete("r1"))
	assert.True(t, admin.Missing.Delete("m2"))
	assert.True(t, admin.Bulletin.Delete("b2"))
	_, found := admin.Returns.Get("r1")
	assert.False(t, found)
	_, kept := admin.Returns.Get("r2")
	assert.True(t, kept)
	assert.Equal(t, 1, admin.Missing.Len())

	assert.False(t, admin.Exchanges.Delete("ex1"), "exchanges offer no delete")
	assert.False(t, admin.Reshipments.Delete("rs1"), "reshipments offer no delete")
}

func TestBulletinPinnedFirst(t *testing.T) {
	ws := newTestWorkspace(testAdmin, nil)
	_, ok := ws.Bulletin.Create(domain.BulletinDraft{Title: "Newest, unpinned"})
	require.True(t, ok)
	_, ok = ws.Bulletin.Create(domain.BulletinDraft{Title: "Pinned", IsPinned: true})
	require.True(t, ok)
	_, ok = ws.TogglePin("b2")
	require.True(t, ok)

	view := ws.Bulletin.View()
	seenUnpinned := false
	for _, m := range view {
		if !m.IsPinned {
			seenUnpinned = true
			continue
		}
		assert.False(t, seenUnpinned, "pinned post %q after an unpinned one", m.Title)
	}
}

func TestBulletinPinHonoredOnlyForAdmin(t *testing.T) {
	ws := newTestWorkspace(testStandard, nil)

	msg, ok := ws.Bulletin.Create(domain.BulletinDraft{Title: "Try pin", IsPinned: true})
	require.True(t, ok)
	assert.False(t, msg.IsPinned)

	_, toggled := ws.TogglePin("b1")
	assert.False(t, toggled)
	first, _ := ws.Bulletin.Get("b1")
	assert.True(t, first.IsPinned)
}

func TestStatusTransitionsArePermissive(t *testing.T) {
	ws := newTestWorkspace(testStandard, nil)

	updated, ok := ws.Exchanges.SetStatus("ex2", string(domain.ExchangePending))
	require.True(t, ok)
	assert.Equal(t, domain.ExchangePending, updated.Status)

	rec, ok := ws.Returns.SetStatus("r2", string(domain.ReturnRequested))
	require.True(t, ok)
	assert.Equal(t, domain.ReturnRequested, rec.Status)

	_, ok = ws.Returns.SetStatus("missing-id", string(domain.ReturnRefunded))
	assert.False(t, ok)
}

func TestExchangeFilterCombination(t *testing.T) {
	ws := newTestWorkspace(testStandard, nil)

	ws.Exchanges.SetCriteria(board.Criteria{Status: string(domain.ExchangeShipped), Search: "Rossi"})
	assert.Empty(t, ws.Exchanges.View())

	ws.Exchanges.SetCriteria(board.Criteria{Status: string(domain.ExchangeShipped), Search: "laptop"})
	view := ws.Exchanges.View()
	require.Len(t, view, 1)
	assert.Equal(t, "ex2", view[0].ID)

	ws.Exchanges.SetCriteria(board.Criteria{Status: board.AnyStatus, Day: "2024-05-22"})
	assert.Len(t, ws.Exchanges.View(), 2)
}

func TestSearchFieldsPerBoard(t *testing.T) {
	ws := newTestWorkspace(testStandard, nil)

	ws.Returns.SetCriteria(board.Criteria{Search: "ord-3921"})
	require.Len(t, ws.Returns.View(), 1)

	ws.Missing.SetCriteria(board.Criteria{Search: "pallet"})
	require.Len(t, ws.Missing.View(), 1)
	assert.Equal(t, "m2", ws.Missing.View()[0].ID)

	ws.Employees.SetCriteria(board.Criteria{Search: "logistics"})
	require.Len(t, ws.Employees.View(), 1)

	ws.Employees.SetCriteria(board.Criteria{Status: string(domain.PresenceOnline)})
	assert.Len(t, ws.Employees.View(), 2)

	ws.Bulletin.SetCriteria(board.Criteria{Status: string(domain.CategoryWarning)})
	require.Len(t, ws.Bulletin.View(), 1)
	assert.Equal(t, "b2", ws.Bulletin.View()[0].ID)
}

func TestMutationsPublishEvents(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	deps := testDeps(nil)
	deps.Dispatcher = dispatcher
	ws := NewWorkspace("s", testAdmin, deps)

	_, _ = ws.Returns.Create(domain.ReturnDraft{CustomerName: "A"})
	_, _ = ws.Returns.SetStatus("r1", string(domain.ReturnReceived))
	_, _ = ws.TogglePin("b1")
	_ = ws.Returns.Delete("r2")

	assert.Equal(t, []events.EventType{
		events.EventRecordCreated,
		events.EventStatusChanged,
		events.EventRecordUpdated,
		events.EventRecordDeleted,
	}, dispatcher.types())

	status := dispatcher.events[1].Payload.(events.MutationPayload)
	assert.Equal(t, "requested", status.OldStatus)
	assert.Equal(t, "received", status.NewStatus)
	assert.Equal(t, BoardReturns, dispatcher.events[1].Board)
}

func TestCreateResetsFormAndDraft(t *testing.T) {
	ws := newTestWorkspace(testStandard, nil)
	ws.Missing.OpenForm()
	ws.Missing.SetDraft(domain.MissingDraft{ProductName: "Cable", Status: domain.MissingLost})

	_, ok := ws.Missing.Create(ws.Missing.Draft())
	require.True(t, ok)
	assert.False(t, ws.Missing.FormOpen())
	assert.Equal(t, domain.MissingDraft{Status: domain.MissingSearching}, ws.Missing.Draft())
}
