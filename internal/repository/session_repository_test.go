package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/nexushub/internal/domain"
)

func TestMemorySessionRepository_RoundTrip(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()
	identity := domain.Identity{ID: "u1", Name: "Standard User", Email: "user@nexushub.it", Role: domain.RoleStandard}

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, repo.Save(ctx, "s1", identity, time.Hour))
	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, identity, *got)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionRepository_Expires(t *testing.T) {
	repo := NewMemorySessionRepository().(*memorySessionRepository)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", domain.Identity{ID: "u1", Role: domain.RoleAdmin}, time.Minute))
	_, err := repo.Get(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionRepository_SaveReplacesWholesale(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", domain.Identity{ID: "u1", Name: "A", Email: "a@x", Role: domain.RoleAdmin}, 0))
	require.NoError(t, repo.Save(ctx, "s1", domain.Identity{ID: "u2", Name: "B", Role: domain.RoleStandard}, 0))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{ID: "u2", Name: "B", Role: domain.RoleStandard}, *got)
}
