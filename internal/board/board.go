package board

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/nexushub/internal/domain"
)

// Meta carries the values stamped onto a freshly created record.
type Meta struct {
	ID    string
	Now   time.Time
	Actor domain.Identity
}

// Spec parameterizes a Board for record type R and form draft type D.
type Spec[R any, D any] struct {
	Name string
	ID   func(R) string
	// Build turns a submitted draft into a stamped record.
	Build func(draft D, meta Meta) R
	// EmptyDraft returns the form defaults used after every submit.
	EmptyDraft func(now time.Time) D
	Match      func(rec R, c Criteria) bool
	// Less orders the derived view. Nil keeps insertion order.
	Less    func(a, b R) bool
	Prepend bool

	CreateAction domain.Action
	StatusAction domain.Action
	DeleteAction domain.Action

	Status    func(R) string
	SetStatus func(rec *R, status string)
}

// ChangeKind classifies a board mutation.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeStatus  ChangeKind = "status_changed"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change describes one applied mutation.
type Change struct {
	Board     string
	Kind      ChangeKind
	Action    domain.Action
	RecordID  string
	Actor     domain.Identity
	OldStatus string
	NewStatus string
	At        time.Time
}

// Observer is notified after every applied mutation, outside the board lock.
type Observer func(Change)

type options struct {
	now      func() time.Time
	newID    func() string
	observer Observer
}

// Option customizes a Board.
type Option func(*options)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithObserver registers a mutation observer.
func WithObserver(observer Observer) Option {
	return func(o *options) { o.observer = observer }
}

// Board is an in-memory record list owned by a single session.
type Board[R any, D any] struct {
	mu       sync.RWMutex
	spec     Spec[R, D]
	session  domain.Identity
	records  []R
	criteria Criteria
	draft    D
	formOpen bool
	opts     options
}

// New builds a board seeded with fixture records.
func New[R any, D any](spec Spec[R, D], session domain.Identity, seed []R, opts ...Option) *Board[R, D] {
	o := options{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	b := &Board[R, D]{
		spec:    spec,
		session: session,
		records: append([]R(nil), seed...),
		opts:    o,
	}
	b.draft = b.emptyDraft()
	return b
}

// Name returns the board name.
func (b *Board[R, D]) Name() string {
	return b.spec.Name
}

// Session returns the identity owning the board.
func (b *Board[R, D]) Session() domain.Identity {
	return b.session
}

// Offers reports whether the board exposes the given operation at all.
func (b *Board[R, D]) Offers(kind ChangeKind) bool {
	switch kind {
	case ChangeCreated:
		return b.spec.CreateAction != ""
	case ChangeStatus:
		return b.spec.StatusAction != "" && b.spec.SetStatus != nil
	case ChangeDeleted:
		return b.spec.DeleteAction != ""
	default:
		return true
	}
}

// Create stamps the draft into a new record, closes the form and resets the
// draft. It is a no-op when the session lacks the create capability.
func (b *Board[R, D]) Create(draft D) (R, bool) {
	var zero R
	if !domain.CanMutate(b.session, b.spec.CreateAction) {
		return zero, false
	}

	now := b.opts.now()
	rec := b.spec.Build(draft, Meta{ID: b.opts.newID(), Now: now, Actor: b.session})

	b.mu.Lock()
	if b.spec.Prepend {
		b.records = append([]R{rec}, b.records...)
	} else {
		b.records = append(b.records, rec)
	}
	b.formOpen = false
	b.draft = b.emptyDraftAt(now)
	b.mu.Unlock()

	b.notify(Change{Kind: ChangeCreated, Action: b.spec.CreateAction, RecordID: b.spec.ID(rec), At: now})
	return rec, true
}

// SetStatus replaces the status of the matching record. Any value follows
// any other; membership in the board's enum is checked by callers.
func (b *Board[R, D]) SetStatus(id, status string) (R, bool) {
	var zero R
	if !b.Offers(ChangeStatus) || !domain.CanMutate(b.session, b.spec.StatusAction) {
		return zero, false
	}

	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return zero, false
	}
	old := ""
	if b.spec.Status != nil {
		old = b.spec.Status(b.records[idx])
	}
	b.spec.SetStatus(&b.records[idx], status)
	rec := b.records[idx]
	b.mu.Unlock()

	b.notify(Change{Kind: ChangeStatus, Action: b.spec.StatusAction, RecordID: id, OldStatus: old, NewStatus: status, At: b.opts.now()})
	return rec, true
}

// Update applies fn to the matching record when the session may perform action.
func (b *Board[R, D]) Update(id string, action domain.Action, fn func(*R)) (R, bool) {
	var zero R
	if !domain.CanMutate(b.session, action) {
		return zero, false
	}

	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return zero, false
	}
	fn(&b.records[idx])
	rec := b.records[idx]
	b.mu.Unlock()

	b.notify(Change{Kind: ChangeUpdated, Action: action, RecordID: id, At: b.opts.now()})
	return rec, true
}

// Delete removes exactly the matching record. Unauthorized callers are
// silently ignored.
func (b *Board[R, D]) Delete(id string) bool {
	if !b.Offers(ChangeDeleted) || !domain.CanMutate(b.session, b.spec.DeleteAction) {
		return false
	}

	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	b.records = append(b.records[:idx:idx], b.records[idx+1:]...)
	b.mu.Unlock()

	b.notify(Change{Kind: ChangeDeleted, Action: b.spec.DeleteAction, RecordID: id, At: b.opts.now()})
	return true
}

// Get returns the record with the given id.
func (b *Board[R, D]) Get(id string) (R, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if idx := b.indexOf(id); idx >= 0 {
		return b.records[idx], true
	}
	var zero R
	return zero, false
}

// Records returns a copy of the records in storage order.
func (b *Board[R, D]) Records() []R {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]R(nil), b.records...)
}

// Len returns the number of stored records.
func (b *Board[R, D]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// SetCriteria replaces the active filter criteria.
func (b *Board[R, D]) SetCriteria(c Criteria) {
	b.mu.Lock()
	b.criteria = c
	b.mu.Unlock()
}

// Criteria returns the active filter criteria.
func (b *Board[R, D]) Criteria() Criteria {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.criteria
}

// View returns the records matching the active criteria, sorted when the
// board defines an order.
func (b *Board[R, D]) View() []R {
	b.mu.RLock()
	criteria := b.criteria
	view := make([]R, 0, len(b.records))
	for _, rec := range b.records {
		if b.spec.Match == nil || b.spec.Match(rec, criteria) {
			view = append(view, rec)
		}
	}
	b.mu.RUnlock()

	if b.spec.Less != nil {
		sort.SliceStable(view, func(i, j int) bool { return b.spec.Less(view[i], view[j]) })
	}
	return view
}

// OpenForm shows the creation form.
func (b *Board[R, D]) OpenForm() {
	b.mu.Lock()
	b.formOpen = true
	b.mu.Unlock()
}

// CloseForm hides the creation form without touching the draft.
func (b *Board[R, D]) CloseForm() {
	b.mu.Lock()
	b.formOpen = false
	b.mu.Unlock()
}

// FormOpen reports whether the creation form is shown.
func (b *Board[R, D]) FormOpen() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.formOpen
}

// Draft returns the current form draft.
func (b *Board[R, D]) Draft() D {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.draft
}

// SetDraft replaces the form draft.
func (b *Board[R, D]) SetDraft(draft D) {
	b.mu.Lock()
	b.draft = draft
	b.mu.Unlock()
}

// EditDraft applies fn to the form draft under the board lock.
func (b *Board[R, D]) EditDraft(fn func(*D)) D {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.draft)
	return b.draft
}

// ResetDraft restores the form defaults.
func (b *Board[R, D]) ResetDraft() {
	b.mu.Lock()
	b.draft = b.emptyDraft()
	b.mu.Unlock()
}

func (b *Board[R, D]) emptyDraft() D {
	return b.emptyDraftAt(b.opts.now())
}

func (b *Board[R, D]) emptyDraftAt(now time.Time) D {
	if b.spec.EmptyDraft == nil {
		var zero D
		return zero
	}
	return b.spec.EmptyDraft(now)
}

func (b *Board[R, D]) indexOf(id string) int {
	for i, rec := range b.records {
		if b.spec.ID(rec) == id {
			return i
		}
	}
	return -1
}

func (b *Board[R, D]) notify(change Change) {
	if b.opts.observer == nil {
		return
	}
	change.Board = b.spec.Name
	change.Actor = b.session
	b.opts.observer(change)
}
