package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/nexushub/internal/auth"
	"github.com/spec-kit/nexushub/internal/domain"
	"github.com/spec-kit/nexushub/internal/events"
	"github.com/spec-kit/nexushub/internal/repository"
	apperrors "github.com/spec-kit/nexushub/pkg/util/errorutil"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	SessionID string
	Identity  domain.Identity
	Token     string
	ExpiresAt time.Time
	Workspace *Workspace
}

// SessionService owns identity lifecycle and the live workspaces.
type SessionService struct {
	store      repository.SessionRepository
	tokens     *auth.TokenManager
	deps       WorkspaceDeps
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu         sync.Mutex
	workspaces map[string]*Workspace
	// ended holds logged-out session ids until their tokens can no longer
	// be valid, so in-flight requests cannot bring a workspace back.
	ended map[string]time.Time
}

// NewSessionService builds the service.
func NewSessionService(store repository.SessionRepository, tokens *auth.TokenManager, deps WorkspaceDeps) *SessionService {
	deps = deps.withDefaults()
	return &SessionService{
		store:      store,
		tokens:     tokens,
		deps:       deps,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		workspaces: make(map[string]*Workspace),
		ended:      make(map[string]time.Time),
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *SessionService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login fabricates an identity for the chosen role, stores it and opens a
// fresh workspace. No credential is checked.
func (s *SessionService) Login(ctx context.Context, email string, role domain.Role) (*LoginResult, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}
	identity := fabricateIdentity(email, role)
	sessionID := uuid.NewString()

	if err := s.store.Save(ctx, sessionID, identity, s.tokens.TTL()); err != nil {
		return nil, err
	}
	token, expiresAt, err := s.tokens.GenerateToken(sessionID, identity)
	if err != nil {
		_ = s.store.Delete(ctx, sessionID)
		return nil, err
	}

	ws := NewWorkspace(sessionID, identity, s.deps)
	s.mu.Lock()
	s.workspaces[sessionID] = ws
	s.mu.Unlock()

	s.publish(ctx, events.EventSessionStarted, sessionID, identity)
	s.logger.Info("session started", zap.String("session_id", sessionID), zap.String("role", string(role)))
	return &LoginResult{SessionID: sessionID, Identity: identity, Token: token, ExpiresAt: expiresAt, Workspace: ws}, nil
}

// Resolve returns the identity stored for a session. A session whose
// identity expired from the store loses its workspace.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (*domain.Identity, error) {
	identity, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		s.evict(sessionID, "session expired")
	}
	return identity, err
}

// Workspace returns the live workspace of a session, rebuilding a seeded one
// when the process restarted while the stored identity survived. It reports
// false for sessions that were logged out or are no longer stored.
func (s *SessionService) Workspace(ctx context.Context, sessionID string, identity domain.Identity) (*Workspace, bool) {
	if ws, ok, known := s.lookup(sessionID); known {
		return ws, ok
	}

	if _, err := s.store.Get(ctx, sessionID); err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			s.logger.Warn("session lookup failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, gone := s.ended[sessionID]; gone {
		return nil, false
	}
	if ws, ok := s.workspaces[sessionID]; ok && !ws.Closed() {
		ws.touch(s.deps.Now())
		return ws, true
	}
	ws := NewWorkspace(sessionID, identity, s.deps)
	s.workspaces[sessionID] = ws
	s.logger.Info("workspace rehydrated", zap.String("session_id", sessionID))
	return ws, true
}

// lookup answers from memory alone; known is false when the store must be
// consulted.
func (s *SessionService) lookup(sessionID string) (ws *Workspace, ok, known bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, gone := s.ended[sessionID]; gone {
		return nil, false, true
	}
	if ws, ok := s.workspaces[sessionID]; ok && !ws.Closed() {
		ws.touch(s.deps.Now())
		return ws, true, true
	}
	return nil, false, false
}

// Logout forgets the stored identity and tears the workspace down.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	s.ended[sessionID] = s.deps.Now()
	ws, ok := s.workspaces[sessionID]
	delete(s.workspaces, sessionID)
	s.mu.Unlock()

	var identity domain.Identity
	if ok {
		identity = ws.Identity()
		ws.Close()
	}
	if err := s.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		return err
	}
	s.publish(ctx, events.EventSessionEnded, sessionID, identity)
	return nil
}

// SweepIdle closes workspaces not used for longer than the token lifetime
// and forgets logged-out sessions whose tokens have expired. It returns the
// number of workspaces closed.
func (s *SessionService) SweepIdle() int {
	now := s.deps.Now()
	ttl := s.tokens.TTL()

	s.mu.Lock()
	var idle []*Workspace
	for id, ws := range s.workspaces {
		if ws.Closed() || now.Sub(ws.LastSeen()) > ttl {
			idle = append(idle, ws)
			delete(s.workspaces, id)
		}
	}
	for id, at := range s.ended {
		if now.Sub(at) > ttl {
			delete(s.ended, id)
		}
	}
	s.mu.Unlock()

	for _, ws := range idle {
		ws.Close()
		s.logger.Info("workspace evicted", zap.String("session_id", ws.SessionID), zap.String("reason", "idle"))
	}
	return len(idle)
}

// StartSweeper runs SweepIdle every interval until the returned stop
// function is called. stop waits for the sweeper to exit.
func (s *SessionService) StartSweeper(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer close(exited)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.SweepIdle()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
		})
	}
}

func (s *SessionService) evict(sessionID, reason string) {
	s.mu.Lock()
	ws, ok := s.workspaces[sessionID]
	delete(s.workspaces, sessionID)
	s.mu.Unlock()
	if !ok {
		return
	}
	ws.Close()
	s.logger.Info("workspace evicted", zap.String("session_id", sessionID), zap.String("reason", reason))
}

// ActiveSessions returns the number of live workspaces.
func (s *SessionService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

// Shutdown closes every workspace without touching the store, so sessions
// survive a restart.
func (s *SessionService) Shutdown() {
	s.mu.Lock()
	workspaces := s.workspaces
	s.workspaces = make(map[string]*Workspace)
	s.mu.Unlock()
	for _, ws := range workspaces {
		ws.Close()
	}
}

func (s *SessionService) publish(ctx context.Context, eventType events.EventType, sessionID string, identity domain.Identity) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.ActorFromIdentity(identity),
		Timestamp: s.deps.Now(),
		Payload:   events.SessionPayload{SessionID: sessionID},
	}
	if err := s.dispatcher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn("publish session event failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}

func fabricateIdentity(email string, role domain.Role) domain.Identity {
	name, fallbackEmail := "Standard User", "user@nexushub.it"
	if role == domain.RoleAdmin {
		name, fallbackEmail = "Admin User", "admin@nexushub.it"
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = fallbackEmail
	}
	return domain.Identity{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		AvatarURL: "https://picsum.photos/seed/" + string(role) + "/100/100",
	}
}
