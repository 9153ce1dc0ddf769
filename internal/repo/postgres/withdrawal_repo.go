package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yansassi23/upduoadm/internal/domain/enums"
	"github.com/yansassi23/upduoadm/internal/domain/model"
)

var ErrWithdrawalNotFound = errors.New("withdrawal not found")

type WithdrawalRepo struct {
	pool *pgxpool.Pool
}

func NewWithdrawalRepo(pool *pgxpool.Pool) *WithdrawalRepo {
	return &WithdrawalRepo{pool: pool}
}

func (r *WithdrawalRepo) List(ctx context.Context, limit int) ([]model.DiamondWithdrawal, error) {
	if r.pool == nil {
		return []model.DiamondWithdrawal{}, nil
	}
	if limit <= 0 {
		limit = 200
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id::text,
	user_id::text,
	COALESCE(amount, 0),
	COALESCE(ml_user_id, ''),
	COALESCE(ml_zone_id, ''),
	COALESCE(status, 'pending'),
	COALESCE(admin_notes, ''),
	created_at,
	updated_at,
	processed_at
FROM diamond_withdrawals
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()

	items := make([]model.DiamondWithdrawal, 0, limit)
	for rows.Next() {
		var item model.DiamondWithdrawal
		var status string
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Amount,
			&item.GameUserID,
			&item.GameZoneID,
			&status,
			&item.AdminNotes,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.ProcessedAt,
		); err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		item.Status = enums.WithdrawalStatus(status)
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate withdrawals: %w", rows.Err())
	}
	return items, nil
}

// WithdrawalStatusTotal is the whole-table aggregate for one status.
type WithdrawalStatusTotal struct {
	Status enums.WithdrawalStatus
	Count  int
	Amount int64
}

// StatusTotals aggregates over the whole table, unlike List which is
// bounded by its limit.
func (r *WithdrawalRepo) StatusTotals(ctx context.Context) ([]WithdrawalStatusTotal, error) {
	if r.pool == nil {
		return []WithdrawalStatusTotal{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT COALESCE(status, 'pending'), COUNT(*), COALESCE(SUM(amount), 0)
FROM diamond_withdrawals
GROUP BY 1
`)
	if err != nil {
		return nil, fmt.Errorf("total withdrawals by status: %w", err)
	}
	defer rows.Close()

	totals := make([]WithdrawalStatusTotal, 0, 4)
	for rows.Next() {
		var total WithdrawalStatusTotal
		var status string
		if err := rows.Scan(&status, &total.Count, &total.Amount); err != nil {
			return nil, fmt.Errorf("scan withdrawal total: %w", err)
		}
		total.Status = enums.WithdrawalStatus(status)
		totals = append(totals, total)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate withdrawal totals: %w", rows.Err())
	}
	return totals, nil
}

func (r *WithdrawalRepo) GetStatus(ctx context.Context, withdrawalID string) (enums.WithdrawalStatus, error) {
	if r.pool == nil {
		return "", ErrWithdrawalNotFound
	}

	var status string
	err := r.pool.QueryRow(ctx, `
SELECT COALESCE(status, 'pending') FROM diamond_withdrawals WHERE id = $1::uuid
`, withdrawalID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrWithdrawalNotFound
		}
		return "", fmt.Errorf("get withdrawal status: %w", err)
	}
	return enums.WithdrawalStatus(status), nil
}

// UpdateStatus is guarded by the expected current status; processedAt
// is set when the transition lands on a terminal state.
func (r *WithdrawalRepo) UpdateStatus(
	ctx context.Context,
	withdrawalID string,
	from, to enums.WithdrawalStatus,
	notes string,
	processedAt *time.Time,
) (bool, error) {
	if r.pool == nil {
		return false, nil
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE diamond_withdrawals
SET
	status = $3,
	admin_notes = CASE WHEN $4 <> '' THEN $4 ELSE admin_notes END,
	processed_at = COALESCE($5, processed_at),
	updated_at = NOW()
WHERE id = $1::uuid AND status = $2
`, withdrawalID, string(from), string(to), notes, processedAt)
	if err != nil {
		return false, fmt.Errorf("update withdrawal status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
