// Package withdrawals backs the diamond withdrawal view: the request
// queue, its counters and the processing workflow.
package withdrawals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yansassi23/upduoadm/internal/domain/enums"
	"github.com/yansassi23/upduoadm/internal/domain/model"
	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
	"github.com/yansassi23/upduoadm/internal/services/enrich"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("withdrawal not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("withdrawal status changed concurrently")
)

type WithdrawalStore interface {
	List(ctx context.Context, limit int) ([]model.DiamondWithdrawal, error)
	StatusTotals(ctx context.Context) ([]pgrepo.WithdrawalStatusTotal, error)
	GetStatus(ctx context.Context, withdrawalID string) (enums.WithdrawalStatus, error)
	UpdateStatus(ctx context.Context, withdrawalID string, from, to enums.WithdrawalStatus, notes string, processedAt *time.Time) (bool, error)
}

type Enricher interface {
	Displays(ctx context.Context, idSets ...[]string) map[string]model.ProfileDisplay
}

// Stats are the counters above the withdrawal queue.
type Stats struct {
	PendingCount   int
	CompletedCount int
	TotalAmount    int64
	PendingAmount  int64
}

type Config struct {
	ListLimit int
}

type Dependencies struct {
	Withdrawals WithdrawalStore
	Enricher    Enricher
	Logger      *zap.Logger
}

type Service struct {
	withdrawals WithdrawalStore
	enricher    Enricher
	logger      *zap.Logger
	cfg         Config
	now         func() time.Time
}

func NewService(deps Dependencies, cfg Config) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 200
	}
	return &Service{
		withdrawals: deps.Withdrawals,
		enricher:    deps.Enricher,
		logger:      deps.Logger,
		cfg:         cfg,
		now:         time.Now,
	}
}

// List returns the withdrawal queue with requesters resolved to
// display fields, optionally narrowed to one status.
func (s *Service) List(ctx context.Context, status string) ([]model.DiamondWithdrawal, error) {
	var filter enums.WithdrawalStatus
	if status != "" {
		parsed, ok := enums.ParseWithdrawalStatus(status)
		if !ok {
			return nil, ErrValidation
		}
		filter = parsed
	}

	items, err := s.withdrawals.List(ctx, s.cfg.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	if filter != "" {
		filtered := make([]model.DiamondWithdrawal, 0, len(items))
		for _, item := range items {
			if item.Status == filter {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	return s.enrichWithdrawals(ctx, items), nil
}

// Stats are the counters over every withdrawal, not just the listed
// page.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	totals, err := s.withdrawals.StatusTotals(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("total withdrawals: %w", err)
	}

	var stats Stats
	for _, total := range totals {
		stats.TotalAmount += total.Amount
		switch total.Status {
		case enums.WithdrawalStatusPending:
			stats.PendingCount = total.Count
			stats.PendingAmount = total.Amount
		case enums.WithdrawalStatusCompleted:
			stats.CompletedCount = total.Count
		}
	}
	return stats, nil
}

// UpdateStatus moves a withdrawal through the processing workflow.
// Landing on a terminal status stamps the processing time.
func (s *Service) UpdateStatus(ctx context.Context, withdrawalID, status, notes string) error {
	if _, err := uuid.Parse(withdrawalID); err != nil {
		return ErrValidation
	}
	to, ok := enums.ParseWithdrawalStatus(status)
	if !ok {
		return ErrValidation
	}

	from, err := s.withdrawals.GetStatus(ctx, withdrawalID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrWithdrawalNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("read withdrawal status: %w", err)
	}
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}

	var processedAt *time.Time
	if to.Terminal() {
		now := s.now().UTC()
		processedAt = &now
	}

	moved, err := s.withdrawals.UpdateStatus(ctx, withdrawalID, from, to, notes, processedAt)
	if err != nil {
		return fmt.Errorf("update withdrawal status: %w", err)
	}
	if !moved {
		return ErrConflict
	}
	return nil
}

func (s *Service) enrichWithdrawals(ctx context.Context, items []model.DiamondWithdrawal) []model.DiamondWithdrawal {
	if len(items) == 0 {
		return []model.DiamondWithdrawal{}
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.UserID)
	}

	displays := s.enricher.Displays(ctx, ids)
	for i := range items {
		items[i].User = enrich.Display(displays, items[i].UserID)
	}
	return items
}
