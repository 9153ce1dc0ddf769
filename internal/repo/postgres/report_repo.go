package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yansassi23/upduoadm/internal/domain/enums"
	"github.com/yansassi23/upduoadm/internal/domain/model"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func (r *ReportRepo) List(ctx context.Context, limit int) ([]model.Report, error) {
	if r.pool == nil {
		return []model.Report{}, nil
	}
	if limit <= 0 {
		limit = 200
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id::text,
	reporter_id::text,
	reported_id::text,
	COALESCE(reason, 'other'),
	COALESCE(status, 'pending'),
	COALESCE(comment, ''),
	created_at,
	updated_at
FROM reports
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	items := make([]model.Report, 0, limit)
	for rows.Next() {
		var item model.Report
		var reason, status string
		if err := rows.Scan(
			&item.ID,
			&item.ReporterID,
			&item.ReportedID,
			&reason,
			&status,
			&item.Comment,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		item.Reason = enums.ReportReason(reason)
		item.Status = enums.ReportStatus(status)
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate reports: %w", rows.Err())
	}
	return items, nil
}

// CountByStatus aggregates over the whole table, unlike List which is
// bounded by its limit.
func (r *ReportRepo) CountByStatus(ctx context.Context) (map[enums.ReportStatus]int, error) {
	counts := make(map[enums.ReportStatus]int)
	if r.pool == nil {
		return counts, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT COALESCE(status, 'pending'), COUNT(*)
FROM reports
GROUP BY 1
`)
	if err != nil {
		return nil, fmt.Errorf("count reports by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan report count: %w", err)
		}
		counts[enums.ReportStatus(status)] = count
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate report counts: %w", rows.Err())
	}
	return counts, nil
}

func (r *ReportRepo) GetStatus(ctx context.Context, reportID string) (enums.ReportStatus, error) {
	if r.pool == nil {
		return "", ErrReportNotFound
	}

	var status string
	err := r.pool.QueryRow(ctx, `
SELECT COALESCE(status, 'pending') FROM reports WHERE id = $1::uuid
`, reportID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrReportNotFound
		}
		return "", fmt.Errorf("get report status: %w", err)
	}
	return enums.ReportStatus(status), nil
}

// UpdateStatus only applies the transition when the row still holds the
// expected status; a false return means another admin got there first.
func (r *ReportRepo) UpdateStatus(ctx context.Context, reportID string, from, to enums.ReportStatus) (bool, error) {
	if r.pool == nil {
		return false, nil
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE reports
SET status = $3, updated_at = NOW()
WHERE id = $1::uuid AND status = $2
`, reportID, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("update report status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
