package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/nexushub/internal/domain"
	"github.com/spec-kit/nexushub/internal/events"
	"github.com/spec-kit/nexushub/internal/repository"
)

const (
	recentActivityCap = 200
	activityWriteWait = 3 * time.Second
)

// ActivityService records board mutations and session changes. Entries are
// logged, kept in a bounded in-memory window and written to the audit table
// when one is configured.
type ActivityService struct {
	dispatcher events.Dispatcher
	repo       repository.ActivityRepository
	logger     *zap.Logger

	mu     sync.Mutex
	recent []domain.ActivityEntry
}

// NewActivityService creates the service. repo may be nil.
func NewActivityService(dispatcher events.Dispatcher, repo repository.ActivityRepository, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{dispatcher: dispatcher, repo: repo, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventRecordCreated,
		events.EventStatusChanged,
		events.EventRecordUpdated,
		events.EventRecordDeleted,
		events.EventSessionStarted,
		events.EventSessionEnded,
	} {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

// Persistent reports whether entries reach the audit table.
func (a *ActivityService) Persistent() bool {
	return a.repo != nil
}

// Recent returns the newest entries first.
func (a *ActivityService) Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 || limit > recentActivityCap {
		limit = 50
	}
	if a.repo != nil {
		return a.repo.ListRecent(ctx, limit)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.ActivityEntry, 0, limit)
	for i := len(a.recent) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, a.recent[i])
	}
	return out, nil
}

func (a *ActivityService) handle(ctx context.Context, event events.Event) error {
	entry := entryFromEvent(event)
	a.logger.Info(string(event.Type),
		zap.String("board", entry.Board),
		zap.String("action", entry.Action),
		zap.String("record_id", entry.RecordID),
		zap.String("actor", entry.ActorName),
		zap.Any("payload", entry.Payload))

	a.mu.Lock()
	a.recent = append(a.recent, entry)
	if over := len(a.recent) - recentActivityCap; over > 0 {
		a.recent = append([]domain.ActivityEntry(nil), a.recent[over:]...)
	}
	a.mu.Unlock()

	if a.repo == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, activityWriteWait)
	defer cancel()
	if err := a.repo.Create(ctx, &entry); err != nil {
		a.logger.Error("activity write failed", zap.String("event_id", event.ID), zap.Error(err))
		return err
	}
	return nil
}

func entryFromEvent(event events.Event) domain.ActivityEntry {
	entry := domain.ActivityEntry{
		ID:        event.ID,
		Board:     event.Board,
		Action:    string(event.Type),
		RecordID:  event.RecordID,
		ActorID:   event.Actor.ID,
		ActorName: event.Actor.Name,
		Payload:   payloadMap(event.Payload),
		CreatedAt: event.Timestamp,
	}
	switch p := event.Payload.(type) {
	case events.MutationPayload:
		if p.Action != "" {
			entry.Action = string(p.Action)
		}
	case events.SessionPayload:
		entry.Board = "session"
		entry.RecordID = p.SessionID
	}
	return entry
}

func payloadMap(payload any) map[string]any {
	if payload == nil {
		return map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{}
	}
	return out
}
