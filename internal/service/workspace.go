package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/nexushub/internal/assist"
	"github.com/spec-kit/nexushub/internal/board"
	"github.com/spec-kit/nexushub/internal/domain"
	"github.com/spec-kit/nexushub/internal/events"
)

// WorkspaceDeps are the collaborators shared by every workspace.
type WorkspaceDeps struct {
	Assist     *assist.Client
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Location   *time.Location
	ReplyDelay time.Duration
	Now        func() time.Time
	NewID      func() string
}

func (d WorkspaceDeps) withDefaults() WorkspaceDeps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Assist == nil {
		d.Assist = assist.NewClient(nil, d.Logger)
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.ReplyDelay <= 0 {
		d.ReplyDelay = 2 * time.Second
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return d
}

// Workspace is the per-session state: seven seeded boards and at most one
// open chat. It is discarded on logout.
type Workspace struct {
	SessionID string
	identity  domain.Identity
	deps      WorkspaceDeps

	ctx    context.Context
	cancel context.CancelFunc

	Bulletin    *board.Board[domain.BulletinMessage, domain.BulletinDraft]
	Calendar    *board.Board[domain.CalendarEvent, domain.CalendarDraft]
	Exchanges   *board.Board[domain.Exchange, domain.ExchangeDraft]
	Returns     *board.Board[domain.ReturnItem, domain.ReturnDraft]
	Reshipments *board.Board[domain.Reshipment, domain.ReshipmentDraft]
	Missing     *board.Board[domain.MissingProduct, domain.MissingDraft]
	Employees   *board.Board[domain.Employee, domain.EmployeeDraft]

	lastSeen atomic.Int64

	chatMu sync.Mutex
	chat   *ChatView
	closed bool
}

// NewWorkspace builds a workspace seeded with fixtures for identity.
func NewWorkspace(sessionID string, identity domain.Identity, deps WorkspaceDeps) *Workspace {
	deps = deps.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	w := &Workspace{
		SessionID: sessionID,
		identity:  identity,
		deps:      deps,
		ctx:       ctx,
		cancel:    cancel,
	}
	w.touch(deps.Now())

	opts := []board.Option{
		board.WithClock(deps.Now),
		board.WithIDGenerator(deps.NewID),
		board.WithObserver(w.publish),
	}
	seed := seedFixtures(deps.Now(), deps.Location)
	w.Bulletin = board.New(bulletinSpec(), identity, seed.bulletin, opts...)
	w.Calendar = board.New(calendarSpec(deps.Location), identity, seed.calendar, opts...)
	w.Exchanges = board.New(exchangeSpec(), identity, seed.exchanges, opts...)
	w.Returns = board.New(returnSpec(), identity, seed.returns, opts...)
	w.Reshipments = board.New(reshipmentSpec(), identity, seed.reshipments, opts...)
	w.Missing = board.New(missingSpec(), identity, seed.missing, opts...)
	w.Employees = board.New(employeeSpec(), identity, seed.employees, opts...)
	return w
}

// Identity returns the session identity.
func (w *Workspace) Identity() domain.Identity {
	return w.identity
}

// Location returns the calendar time zone.
func (w *Workspace) Location() *time.Location {
	return w.deps.Location
}

// Close cancels in-flight assist calls and pending chat replies. No chat
// can be opened afterwards.
func (w *Workspace) Close() {
	w.cancel()
	w.chatMu.Lock()
	w.closed = true
	view := w.chat
	w.chat = nil
	w.chatMu.Unlock()
	if view != nil {
		view.Close()
	}
}

// Closed reports whether the workspace was torn down.
func (w *Workspace) Closed() bool {
	return w.ctx.Err() != nil
}

func (w *Workspace) touch(now time.Time) {
	w.lastSeen.Store(now.UnixNano())
}

// LastSeen returns when the workspace was last handed to a request.
func (w *Workspace) LastSeen() time.Time {
	return time.Unix(0, w.lastSeen.Load())
}

// bind derives a context cancelled by either ctx or the workspace.
func (w *Workspace) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(w.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// TogglePin flips the pinned flag of a bulletin post. Admin only.
func (w *Workspace) TogglePin(id string) (domain.BulletinMessage, bool) {
	return w.Bulletin.Update(id, domain.ActionBulletinPin, func(m *domain.BulletinMessage) {
		m.IsPinned = !m.IsPinned
	})
}

// AssistBulletinDraft fills the bulletin draft's title and content from its
// topic. Nothing is stored when the topic is blank, the call falls back, or
// the workspace closed meanwhile.
func (w *Workspace) AssistBulletinDraft(ctx context.Context, tone string) (assist.BulletinDraft, bool) {
	topic := w.Bulletin.Draft().Topic
	if topic == "" {
		return assist.BulletinDraft{}, false
	}
	ctx, cancel := w.bind(ctx)
	defer cancel()

	generated := w.deps.Assist.DraftBulletinMessage(ctx, topic, tone)
	if !generated.Generated || ctx.Err() != nil {
		return generated, false
	}
	w.Bulletin.EditDraft(func(d *domain.BulletinDraft) {
		d.Title = generated.Title
		d.Content = generated.Content
	})
	return generated, true
}

// AssistCalendarDraft parses free text into the calendar draft.
func (w *Workspace) AssistCalendarDraft(ctx context.Context, text string) (domain.CalendarDraft, bool) {
	ctx, cancel := w.bind(ctx)
	defer cancel()

	parsed := w.deps.Assist.ParseEventFromText(ctx, text)
	if parsed == nil || ctx.Err() != nil {
		return w.Calendar.Draft(), false
	}
	return w.Calendar.EditDraft(func(d *domain.CalendarDraft) {
		*d = ApplyParsedEvent(*d, *parsed)
	}), true
}

// SelectSlot pre-fills the calendar draft for a grid slot and opens the form.
func (w *Workspace) SelectSlot(date time.Time, hour int) domain.CalendarDraft {
	draft := w.Calendar.EditDraft(func(d *domain.CalendarDraft) {
		*d = SlotDraft(*d, date.In(w.deps.Location), hour)
	})
	w.Calendar.OpenForm()
	return draft
}

// Week returns the calendar grid offset weeks from the current one.
func (w *Workspace) Week(offset int) WeekView {
	return BuildWeek(w.Calendar.Records(), w.deps.Now(), w.deps.Location, offset)
}

// ReshipmentEmail drafts a customer email for a reshipment. The draft is
// returned, never stored.
func (w *Workspace) ReshipmentEmail(ctx context.Context, id string) (string, bool) {
	rec, ok := w.Reshipments.Get(id)
	if !ok {
		return "", false
	}
	ctx, cancel := w.bind(ctx)
	defer cancel()
	return w.deps.Assist.DraftReshipmentEmail(ctx, rec.CustomerName, rec.Reason, rec.TrackingNumber), true
}

// OpenChat starts a conversation with an employee, discarding any previous one.
func (w *Workspace) OpenChat(employeeID string) (*ChatView, bool) {
	peer, ok := w.Employees.Get(employeeID)
	if !ok {
		return nil, false
	}
	view := newChatView(w.identity, peer, w.deps.ReplyDelay, w.deps.Now, w.deps.NewID)

	w.chatMu.Lock()
	if w.closed {
		w.chatMu.Unlock()
		return nil, false
	}
	prev := w.chat
	w.chat = view
	w.chatMu.Unlock()
	if prev != nil {
		prev.Close()
	}
	return view, true
}

// Chat returns the open chat view.
func (w *Workspace) Chat() (*ChatView, bool) {
	w.chatMu.Lock()
	defer w.chatMu.Unlock()
	return w.chat, w.chat != nil
}

// SuggestChatReply proposes a reply in the open chat.
func (w *Workspace) SuggestChatReply(ctx context.Context) (string, bool) {
	view, ok := w.Chat()
	if !ok {
		return "", false
	}
	ctx, cancel := w.bind(ctx)
	defer cancel()
	return view.SuggestReply(ctx, w.deps.Assist)
}

// CloseChat discards the open chat, if any.
func (w *Workspace) CloseChat() {
	w.chatMu.Lock()
	view := w.chat
	w.chat = nil
	w.chatMu.Unlock()
	if view != nil {
		view.Close()
	}
}

func (w *Workspace) publish(change board.Change) {
	if w.deps.Dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventTypeFor(change.Kind),
		Board:     change.Board,
		RecordID:  change.RecordID,
		Actor:     events.ActorFromIdentity(change.Actor),
		Timestamp: change.At,
		Payload: events.MutationPayload{
			Action:    change.Action,
			OldStatus: change.OldStatus,
			NewStatus: change.NewStatus,
		},
	}
	if err := w.deps.Dispatcher.Publish(context.WithoutCancel(w.ctx), event); err != nil {
		w.deps.Logger.Warn("publish board event failed",
			zap.String("board", change.Board),
			zap.String("record_id", change.RecordID),
			zap.Error(err))
	}
}

func eventTypeFor(kind board.ChangeKind) events.EventType {
	switch kind {
	case board.ChangeCreated:
		return events.EventRecordCreated
	case board.ChangeStatus:
		return events.EventStatusChanged
	case board.ChangeDeleted:
		return events.EventRecordDeleted
	default:
		return events.EventRecordUpdated
	}
}
