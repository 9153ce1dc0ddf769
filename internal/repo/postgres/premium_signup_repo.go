package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yansassi23/upduoadm/internal/domain/model"
)

var ErrSignupNotFound = errors.New("premium signup not found")

type PremiumSignupRepo struct {
	pool *pgxpool.Pool
}

func NewPremiumSignupRepo(pool *pgxpool.Pool) *PremiumSignupRepo {
	return &PremiumSignupRepo{pool: pool}
}

func (r *PremiumSignupRepo) List(ctx context.Context) ([]model.PremiumSignup, error) {
	if r.pool == nil {
		return []model.PremiumSignup{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id::text,
	user_id::text,
	COALESCE(name, ''),
	COALESCE(email, ''),
	COALESCE(phone, ''),
	created_at
FROM premium_signups
ORDER BY created_at ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list premium signups: %w", err)
	}
	defer rows.Close()

	items := make([]model.PremiumSignup, 0)
	for rows.Next() {
		var item model.PremiumSignup
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Name,
			&item.Email,
			&item.Phone,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan premium signup: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate premium signups: %w", rows.Err())
	}
	return items, nil
}

func (r *PremiumSignupRepo) GetByID(ctx context.Context, signupID string) (model.PremiumSignup, error) {
	if r.pool == nil {
		return model.PremiumSignup{}, ErrSignupNotFound
	}

	var item model.PremiumSignup
	err := r.pool.QueryRow(ctx, `
SELECT
	id::text,
	user_id::text,
	COALESCE(name, ''),
	COALESCE(email, ''),
	COALESCE(phone, ''),
	created_at
FROM premium_signups
WHERE id = $1::uuid
`, signupID).Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Email,
		&item.Phone,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PremiumSignup{}, ErrSignupNotFound
		}
		return model.PremiumSignup{}, fmt.Errorf("get premium signup: %w", err)
	}
	return item, nil
}

// Delete runs inside the caller's transaction so an approval removes
// the request and promotes the profile atomically.
func (r *PremiumSignupRepo) Delete(ctx context.Context, tx pgx.Tx, signupID string) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	tag, err := tx.Exec(ctx, `
DELETE FROM premium_signups WHERE id = $1::uuid
`, signupID)
	if err != nil {
		return fmt.Errorf("delete premium signup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSignupNotFound
	}
	return nil
}
