package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yansassi23/upduoadm/internal/domain/model"
)

var (
	ErrWinnerNotFound = errors.New("daily winner not found")

	// ErrDuplicateDrawDate surfaces the UNIQUE(draw_date) violation;
	// the constraint, not a pre-read, is what guarantees one winner
	// per draw.
	ErrDuplicateDrawDate = errors.New("a winner already exists for this draw date")
)

const pgUniqueViolation = "23505"

type DailyWinnerRepo struct {
	pool *pgxpool.Pool
}

func NewDailyWinnerRepo(pool *pgxpool.Pool) *DailyWinnerRepo {
	return &DailyWinnerRepo{pool: pool}
}

func (r *DailyWinnerRepo) List(ctx context.Context) ([]model.DailyWinner, error) {
	if r.pool == nil {
		return []model.DailyWinner{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id::text,
	user_id::text,
	draw_date,
	COALESCE(prize_amount, 0),
	awarded_at,
	COALESCE(instagram_posted, FALSE),
	created_at
FROM daily_winners
ORDER BY draw_date DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list daily winners: %w", err)
	}
	defer rows.Close()

	items := make([]model.DailyWinner, 0)
	for rows.Next() {
		var item model.DailyWinner
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.DrawDate,
			&item.PrizeAmount,
			&item.AwardedAt,
			&item.PromoPosted,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan daily winner: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate daily winners: %w", rows.Err())
	}
	return items, nil
}

func (r *DailyWinnerRepo) Insert(ctx context.Context, userID string, drawDate time.Time, prizeAmount int, awardedAt time.Time) (string, error) {
	if r.pool == nil {
		return "", nil
	}

	var id string
	err := r.pool.QueryRow(ctx, `
INSERT INTO daily_winners (
	user_id,
	draw_date,
	prize_amount,
	awarded_at,
	instagram_posted,
	created_at
) VALUES ($1::uuid, $2::date, $3, $4, FALSE, NOW())
RETURNING id::text
`, userID, drawDate.Format("2006-01-02"), prizeAmount, awardedAt.UTC()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return "", ErrDuplicateDrawDate
		}
		return "", fmt.Errorf("insert daily winner: %w", err)
	}
	return id, nil
}

func (r *DailyWinnerRepo) SetPromoPosted(ctx context.Context, winnerID string, posted bool) error {
	if r.pool == nil {
		return nil
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE daily_winners SET instagram_posted = $2 WHERE id = $1::uuid
`, winnerID, posted)
	if err != nil {
		return fmt.Errorf("set promo posted flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWinnerNotFound
	}
	return nil
}
