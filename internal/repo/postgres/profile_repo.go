package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yansassi23/upduoadm/internal/domain/model"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

// SignupRecord is the minimal row the growth series needs.
type SignupRecord struct {
	CreatedAt time.Time
	IsPremium bool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `
	id::text,
	COALESCE(name, ''),
	COALESCE(email, ''),
	COALESCE(age, 0),
	COALESCE(city, ''),
	COALESCE(bio, ''),
	COALESCE(avatar_url, ''),
	COALESCE(current_rank, ''),
	COALESCE(is_premium, FALSE),
	COALESCE(is_active, TRUE),
	COALESCE(diamond_count, 0),
	created_at,
	updated_at,
	premium_activated_at
`

func (r *ProfileRepo) CountCreatedSince(ctx context.Context, since *time.Time) (int, error) {
	if r.pool == nil {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM profiles`
	args := []any{}
	if since != nil {
		query += ` WHERE created_at >= $1`
		args = append(args, since.UTC())
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return count, nil
}

func (r *ProfileRepo) CountPremiumSince(ctx context.Context, since *time.Time) (int, error) {
	if r.pool == nil {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM profiles WHERE is_premium = TRUE`
	args := []any{}
	if since != nil {
		query += ` AND created_at >= $1`
		args = append(args, since.UTC())
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count premium profiles: %w", err)
	}
	return count, nil
}

// CountActiveSince counts profiles touched since the cutoff; the
// dashboard treats a recent updated_at as activity.
func (r *ProfileRepo) CountActiveSince(ctx context.Context, since time.Time) (int, error) {
	if r.pool == nil {
		return 0, nil
	}

	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM profiles WHERE updated_at >= $1
`, since.UTC()).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active profiles: %w", err)
	}
	return count, nil
}

func (r *ProfileRepo) SumDiamondsSince(ctx context.Context, since *time.Time) (int64, error) {
	if r.pool == nil {
		return 0, nil
	}

	query := `SELECT COALESCE(SUM(diamond_count), 0) FROM profiles`
	args := []any{}
	if since != nil {
		query += ` WHERE created_at >= $1`
		args = append(args, since.UTC())
	}

	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum diamonds: %w", err)
	}
	return total, nil
}

func (r *ProfileRepo) ListRecent(ctx context.Context, limit int) ([]model.Profile, error) {
	if r.pool == nil {
		return []model.Profile{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+profileColumns+`
FROM profiles
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent profiles: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows, limit)
}

func (r *ProfileRepo) ListPremium(ctx context.Context) ([]model.Profile, error) {
	if r.pool == nil {
		return []model.Profile{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE is_premium = TRUE
ORDER BY premium_activated_at DESC NULLS LAST
`)
	if err != nil {
		return nil, fmt.Errorf("list premium profiles: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows, 0)
}

// Search matches the term case-insensitively against name and email.
func (r *ProfileRepo) Search(ctx context.Context, term string, limit int) ([]model.Profile, error) {
	if r.pool == nil {
		return []model.Profile{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	pattern := "%" + strings.TrimSpace(term) + "%"
	rows, err := r.pool.Query(ctx, `
SELECT `+profileColumns+`
FROM profiles
WHERE name ILIKE $1 OR email ILIKE $1
ORDER BY created_at DESC
LIMIT $2
`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows, limit)
}

// SearchIDs resolves a name/email term to profile ids, the first step
// of the two-step match search.
func (r *ProfileRepo) SearchIDs(ctx context.Context, term string) ([]string, error) {
	if r.pool == nil {
		return []string{}, nil
	}

	pattern := "%" + strings.TrimSpace(term) + "%"
	rows, err := r.pool.Query(ctx, `
SELECT id::text FROM profiles WHERE name ILIKE $1 OR email ILIKE $1
`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search profile ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate profile ids: %w", rows.Err())
	}
	return ids, nil
}

// GetDisplayByIDs is the batched lookup behind enrichment: one query
// for the whole id set, keyed result map.
func (r *ProfileRepo) GetDisplayByIDs(ctx context.Context, ids []string) (map[string]model.ProfileDisplay, error) {
	out := make(map[string]model.ProfileDisplay, len(ids))
	if r.pool == nil || len(ids) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, COALESCE(name, ''), COALESCE(email, ''), COALESCE(avatar_url, '')
FROM profiles
WHERE id = ANY($1::uuid[])
`, ids)
	if err != nil {
		return nil, fmt.Errorf("batch profile display lookup: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var display model.ProfileDisplay
		if err := rows.Scan(&id, &display.Name, &display.Email, &display.AvatarURL); err != nil {
			return nil, fmt.Errorf("scan profile display: %w", err)
		}
		out[id] = display
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate profile displays: %w", rows.Err())
	}
	return out, nil
}

func (r *ProfileRepo) SignupsSince(ctx context.Context, since time.Time) ([]SignupRecord, error) {
	if r.pool == nil {
		return []SignupRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT created_at, COALESCE(is_premium, FALSE)
FROM profiles
WHERE created_at >= $1
ORDER BY created_at ASC
`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}
	defer rows.Close()

	items := make([]SignupRecord, 0)
	for rows.Next() {
		var item SignupRecord
		if err := rows.Scan(&item.CreatedAt, &item.IsPremium); err != nil {
			return nil, fmt.Errorf("scan signup record: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate signups: %w", rows.Err())
	}
	return items, nil
}

func (r *ProfileRepo) CitiesSince(ctx context.Context, since *time.Time) ([]string, error) {
	return r.categoricalField(ctx, "city", since)
}

func (r *ProfileRepo) RanksSince(ctx context.Context, since *time.Time) ([]string, error) {
	return r.categoricalField(ctx, "current_rank", since)
}

func (r *ProfileRepo) categoricalField(ctx context.Context, column string, since *time.Time) ([]string, error) {
	if r.pool == nil {
		return []string{}, nil
	}

	// column is one of two compile-time constants, never user input
	query := fmt.Sprintf(`SELECT COALESCE(%s, '') FROM profiles`, column)
	args := []any{}
	if since != nil {
		query += ` WHERE created_at >= $1`
		args = append(args, since.UTC())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profile %s values: %w", column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan %s value: %w", column, err)
		}
		values = append(values, value)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate %s values: %w", column, rows.Err())
	}
	return values, nil
}

// SetPremium runs inside the caller's transaction so a signup approval
// can pair it with the request deletion atomically.
func (r *ProfileRepo) SetPremium(ctx context.Context, tx pgx.Tx, profileID string, premium bool, activatedAt *time.Time) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}

	tag, err := tx.Exec(ctx, `
UPDATE profiles
SET is_premium = $2, premium_activated_at = $3, updated_at = NOW()
WHERE id = $1::uuid
`, profileID, premium, activatedAt)
	if err != nil {
		return fmt.Errorf("set premium flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepo) SetActive(ctx context.Context, profileID string, active bool) error {
	if r.pool == nil {
		return nil
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE profiles SET is_active = $2, updated_at = NOW() WHERE id = $1::uuid
`, profileID, active)
	if err != nil {
		return fmt.Errorf("set active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// GrantDiamonds applies a delta, clamped so the balance never goes
// negative, and returns the new balance.
func (r *ProfileRepo) GrantDiamonds(ctx context.Context, profileID string, delta int) (int, error) {
	if r.pool == nil {
		return 0, nil
	}

	var balance int
	err := r.pool.QueryRow(ctx, `
UPDATE profiles
SET diamond_count = GREATEST(COALESCE(diamond_count, 0) + $2, 0), updated_at = NOW()
WHERE id = $1::uuid
RETURNING diamond_count
`, profileID, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrProfileNotFound
		}
		return 0, fmt.Errorf("grant diamonds: %w", err)
	}
	return balance, nil
}

func scanProfiles(rows pgx.Rows, sizeHint int) ([]model.Profile, error) {
	items := make([]model.Profile, 0, sizeHint)
	for rows.Next() {
		var item model.Profile
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Email,
			&item.Age,
			&item.City,
			&item.Bio,
			&item.AvatarURL,
			&item.CurrentRank,
			&item.IsPremium,
			&item.IsActive,
			&item.DiamondCount,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.PremiumActivatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate profiles: %w", rows.Err())
	}
	return items, nil
}
