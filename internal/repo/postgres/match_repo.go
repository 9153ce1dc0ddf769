package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yansassi23/upduoadm/internal/domain/model"
)

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

func (r *MatchRepo) CountSince(ctx context.Context, since *time.Time) (int, error) {
	if r.pool == nil {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM matches`
	args := []any{}
	if since != nil {
		query += ` WHERE created_at >= $1`
		args = append(args, since.UTC())
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return count, nil
}

func (r *MatchRepo) ListRecent(ctx context.Context, limit int) ([]model.Match, error) {
	if r.pool == nil {
		return []model.Match{}, nil
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, user1_id::text, user2_id::text, created_at
FROM matches
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows, limit)
}

// ListByUserIDs returns matches touching any of the given profiles on
// either side, newest first.
func (r *MatchRepo) ListByUserIDs(ctx context.Context, userIDs []string, limit int) ([]model.Match, error) {
	if r.pool == nil || len(userIDs) == 0 {
		return []model.Match{}, nil
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, user1_id::text, user2_id::text, created_at
FROM matches
WHERE user1_id = ANY($1::uuid[]) OR user2_id = ANY($1::uuid[])
ORDER BY created_at DESC
LIMIT $2
`, userIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches by users: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows, limit)
}

// CreatedAtSince feeds the daily activity buckets; only timestamps are
// needed.
func (r *MatchRepo) CreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	return createdAtSince(ctx, r.pool, "matches", since)
}

func scanMatches(rows pgx.Rows, sizeHint int) ([]model.Match, error) {
	items := make([]model.Match, 0, sizeHint)
	for rows.Next() {
		var item model.Match
		if err := rows.Scan(&item.ID, &item.User1ID, &item.User2ID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}
	return items, nil
}

func createdAtSince(ctx context.Context, pool *pgxpool.Pool, table string, since time.Time) ([]time.Time, error) {
	if pool == nil {
		return []time.Time{}, nil
	}

	// table is a compile-time constant, never user input
	rows, err := pool.Query(ctx, fmt.Sprintf(`
SELECT created_at FROM %s WHERE created_at >= $1
`, table), since.UTC())
	if err != nil {
		return nil, fmt.Errorf("list %s timestamps: %w", table, err)
	}
	defer rows.Close()

	items := make([]time.Time, 0)
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, fmt.Errorf("scan %s timestamp: %w", table, err)
		}
		items = append(items, at)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate %s timestamps: %w", table, rows.Err())
	}
	return items, nil
}
