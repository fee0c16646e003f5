package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/nexushub/internal/domain"
)

// ErrSessionNotFound is returned when no identity is stored for a session.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores one serialized identity per session key.
type SessionRepository interface {
	Save(ctx context.Context, sessionID string, identity domain.Identity, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*domain.Identity, error)
	Delete(ctx context.Context, sessionID string) error
}

type redisSessionRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisSessionRepository stores identities as JSON strings under prefix+sessionID.
func NewRedisSessionRepository(client *redis.Client, prefix string) SessionRepository {
	return &redisSessionRepository{client: client, prefix: prefix}
}

func (r *redisSessionRepository) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *redisSessionRepository) Save(ctx context.Context, sessionID string, identity domain.Identity, ttl time.Duration) error {
	blob, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return r.client.Set(ctx, r.key(sessionID), blob, ttl).Err()
}

func (r *redisSessionRepository) Get(ctx context.Context, sessionID string) (*domain.Identity, error) {
	blob, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return decodeIdentity(blob)
}

func (r *redisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}

type memoryEntry struct {
	blob      []byte
	expiresAt time.Time
}

type memorySessionRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemorySessionRepository keeps identities in process memory with the same
// JSON encoding and expiry semantics as the Redis store.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{entries: make(map[string]memoryEntry), now: time.Now}
}

func (r *memorySessionRepository) Save(_ context.Context, sessionID string, identity domain.Identity, ttl time.Duration) error {
	blob, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	entry := memoryEntry{blob: blob}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}
	r.mu.Lock()
	r.entries[sessionID] = entry
	r.mu.Unlock()
	return nil
}

func (r *memorySessionRepository) Get(_ context.Context, sessionID string) (*domain.Identity, error) {
	r.mu.Lock()
	entry, ok := r.entries[sessionID]
	if ok && !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		delete(r.entries, sessionID)
		ok = false
	}
	r.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeIdentity(entry.blob)
}

func (r *memorySessionRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.entries, sessionID)
	r.mu.Unlock()
	return nil
}

func decodeIdentity(blob []byte) (*domain.Identity, error) {
	var identity domain.Identity
	if err := json.Unmarshal(blob, &identity); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return &identity, nil
}
