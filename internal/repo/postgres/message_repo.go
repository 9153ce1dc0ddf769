package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepo exposes message volume only; the admin panel never reads
// message bodies.
type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) CountSince(ctx context.Context, since *time.Time) (int, error) {
	if r.pool == nil {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM messages`
	args := []any{}
	if since != nil {
		query += ` WHERE created_at >= $1`
		args = append(args, since.UTC())
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

func (r *MessageRepo) CreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	return createdAtSince(ctx, r.pool, "messages", since)
}
