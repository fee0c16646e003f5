package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/nexushub/internal/domain"
)

// ActivityRepository persists the board mutation audit trail.
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository instantiates the repository. A nil pool yields nil.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	if pool == nil {
		return nil
	}
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	const query = `
        INSERT INTO activity_log (id, board, action, record_id, actor_id, actor_name, payload, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	payload := entry.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Board,
		entry.Action,
		entry.RecordID,
		entry.ActorID,
		entry.ActorName,
		payload,
		entry.CreatedAt,
	)
	return err
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, board, action, record_id, actor_id, actor_name, payload, created_at
        FROM activity_log ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ActivityEntry
	for rows.Next() {
		var entry domain.ActivityEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Board,
			&entry.Action,
			&entry.RecordID,
			&entry.ActorID,
			&entry.ActorName,
			&entry.Payload,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
