// Package premium backs the premium management view: the signup
// request queue and the premium user list.
package premium

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/yansassi23/upduoadm/internal/domain/model"
	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("premium signup not found")
)

type SignupStore interface {
	List(ctx context.Context) ([]model.PremiumSignup, error)
	GetByID(ctx context.Context, signupID string) (model.PremiumSignup, error)
	Delete(ctx context.Context, tx pgx.Tx, signupID string) error
}

type ProfileStore interface {
	ListPremium(ctx context.Context) ([]model.Profile, error)
	SetPremium(ctx context.Context, tx pgx.Tx, profileID string, premium bool, activatedAt *time.Time) error
}

type Dependencies struct {
	Pool     *pgxpool.Pool
	Signups  SignupStore
	Profiles ProfileStore
	Logger   *zap.Logger
}

type Service struct {
	pool     *pgxpool.Pool
	signups  SignupStore
	profiles ProfileStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{
		pool:     deps.Pool,
		signups:  deps.Signups,
		profiles: deps.Profiles,
		logger:   deps.Logger,
		now:      time.Now,
	}
}

// ListSignups returns the pending signup queue, oldest first.
func (s *Service) ListSignups(ctx context.Context) ([]model.PremiumSignup, error) {
	return s.signups.List(ctx)
}

// ListPremiumUsers returns the currently premium profiles.
func (s *Service) ListPremiumUsers(ctx context.Context) ([]model.Profile, error) {
	return s.profiles.ListPremium(ctx)
}

// Approve promotes the signup's profile to premium and removes the
// request. Both land or neither does.
func (s *Service) Approve(ctx context.Context, signupID string) error {
	if _, err := uuid.Parse(signupID); err != nil {
		return ErrValidation
	}

	signup, err := s.signups.GetByID(ctx, signupID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrSignupNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("read premium signup: %w", err)
	}
	if s.pool == nil {
		return fmt.Errorf("premium dependencies are not configured")
	}

	activatedAt := s.now().UTC()
	if err := pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.profiles.SetPremium(txCtx, tx, signup.UserID, true, &activatedAt); err != nil {
			return err
		}
		return s.signups.Delete(txCtx, tx, signupID)
	}); err != nil {
		return fmt.Errorf("approve premium signup: %w", err)
	}

	s.logger.Info("premium signup approved",
		zap.String("signup_id", signupID),
		zap.String("user_id", signup.UserID))
	return nil
}

// Reject removes the signup request without touching the profile.
func (s *Service) Reject(ctx context.Context, signupID string) error {
	if _, err := uuid.Parse(signupID); err != nil {
		return ErrValidation
	}
	if s.pool == nil {
		return fmt.Errorf("premium dependencies are not configured")
	}

	if err := pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		return s.signups.Delete(txCtx, tx, signupID)
	}); err != nil {
		if errors.Is(err, pgrepo.ErrSignupNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("reject premium signup: %w", err)
	}
	return nil
}

// Deactivate revokes a profile's premium and clears the activation
// time.
func (s *Service) Deactivate(ctx context.Context, profileID string) error {
	if _, err := uuid.Parse(profileID); err != nil {
		return ErrValidation
	}
	if s.pool == nil {
		return fmt.Errorf("premium dependencies are not configured")
	}

	if err := pgrepo.WithTx(ctx, s.pool, func(txCtx context.Context, tx pgx.Tx) error {
		return s.profiles.SetPremium(txCtx, tx, profileID, false, nil)
	}); err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deactivate premium: %w", err)
	}
	return nil
}
