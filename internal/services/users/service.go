// Package users backs the user management view: listing, search and
// the per-profile admin actions.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yansassi23/upduoadm/internal/domain/model"
	"github.com/yansassi23/upduoadm/internal/pkg/validate"
	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
)

type ProfileStore interface {
	ListRecent(ctx context.Context, limit int) ([]model.Profile, error)
	Search(ctx context.Context, term string, limit int) ([]model.Profile, error)
	SetActive(ctx context.Context, profileID string, active bool) error
	SetPremium(ctx context.Context, tx pgx.Tx, profileID string, premium bool, activatedAt *time.Time) error
	GrantDiamonds(ctx context.Context, profileID string, delta int) (int, error)
}

type Config struct {
	RecentLimit int
}

type Dependencies struct {
	Pool     *pgxpool.Pool
	Profiles ProfileStore
}

type Service struct {
	pool     *pgxpool.Pool
	profiles ProfileStore
	cfg      Config
	now      func() time.Time
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 50
	}
	return &Service{
		pool:     deps.Pool,
		profiles: deps.Profiles,
		cfg:      cfg,
		now:      time.Now,
	}
}

// List returns the most recent profiles, or a name/email search when a
// term is given.
func (s *Service) List(ctx context.Context, term string) ([]model.Profile, error) {
	if !validate.Required(term) {
		return s.profiles.ListRecent(ctx, s.cfg.RecentLimit)
	}
	term = strings.TrimSpace(term)
	return s.profiles.Search(ctx, term, s.cfg.RecentLimit)
}

// SetActive flips the profile's active flag.
func (s *Service) SetActive(ctx context.Context, profileID string, active bool) error {
	if err := validateID(profileID); err != nil {
		return err
	}
	if err := s.profiles.SetActive(ctx, profileID, active); err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("set active: %w", err)
	}
	return nil
}

// SetPremium grants or revokes premium directly, without a signup
// request. Granting stamps the activation time, revoking clears it.
func (s *Service) SetPremium(ctx context.Context, profileID string, premium bool) error {
	if err := validateID(profileID); err != nil {
		return err
	}
	if s.pool == nil {
		return fmt.Errorf("user dependencies are not configured")
	}

	var activatedAt *time.Time
	if premium {
		now := s.now().UTC()
		activatedAt = &now
	}

	if err := pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		return s.profiles.SetPremium(txCtx, tx, profileID, premium, activatedAt)
	}); err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("set premium: %w", err)
	}
	return nil
}

// GrantDiamonds adjusts the profile's diamond balance by delta and
// returns the new balance. The balance never goes below zero.
func (s *Service) GrantDiamonds(ctx context.Context, profileID string, delta int) (int, error) {
	if err := validateID(profileID); err != nil {
		return 0, err
	}
	if delta == 0 {
		return 0, ErrValidation
	}

	balance, err := s.profiles.GrantDiamonds(ctx, profileID, delta)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("grant diamonds: %w", err)
	}
	return balance, nil
}

func validateID(profileID string) error {
	if _, err := uuid.Parse(profileID); err != nil {
		return ErrValidation
	}
	return nil
}
