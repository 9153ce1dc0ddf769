// Package moderation backs the reports view: listing with filters,
// status counters and the review workflow.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yansassi23/upduoadm/internal/domain/enums"
	"github.com/yansassi23/upduoadm/internal/domain/model"
	"github.com/yansassi23/upduoadm/internal/pkg/validate"
	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
	"github.com/yansassi23/upduoadm/internal/services/enrich"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("report not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConflict means the report moved to another status between the
	// read and the guarded update.
	ErrConflict = errors.New("report status changed concurrently")
)

type ReportStore interface {
	List(ctx context.Context, limit int) ([]model.Report, error)
	CountByStatus(ctx context.Context) (map[enums.ReportStatus]int, error)
	GetStatus(ctx context.Context, reportID string) (enums.ReportStatus, error)
	UpdateStatus(ctx context.Context, reportID string, from, to enums.ReportStatus) (bool, error)
}

type Enricher interface {
	Displays(ctx context.Context, idSets ...[]string) map[string]model.ProfileDisplay
}

// StatusCounts are the counters above the report list.
type StatusCounts struct {
	Pending  int
	Reviewed int
	Resolved int
}

type Config struct {
	ListLimit int
}

type Dependencies struct {
	Reports  ReportStore
	Enricher Enricher
	Logger   *zap.Logger
}

type Service struct {
	reports  ReportStore
	enricher Enricher
	logger   *zap.Logger
	cfg      Config
}

func NewService(deps Dependencies, cfg Config) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 200
	}
	return &Service{
		reports:  deps.Reports,
		enricher: deps.Enricher,
		logger:   deps.Logger,
		cfg:      cfg,
	}
}

// ListFilter narrows the report list. Search matches the resolved
// reporter and reported display fields, not raw ids.
type ListFilter struct {
	Status string
	Reason string
	Search string
}

// List returns reports with both parties resolved to display fields,
// optionally narrowed by status, reason and a search term.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]model.Report, error) {
	var status enums.ReportStatus
	if filter.Status != "" {
		parsed, ok := enums.ParseReportStatus(filter.Status)
		if !ok {
			return nil, ErrValidation
		}
		status = parsed
	}
	var reason enums.ReportReason
	if filter.Reason != "" {
		parsed, ok := enums.ParseReportReason(filter.Reason)
		if !ok {
			return nil, ErrValidation
		}
		reason = parsed
	}

	items, err := s.reports.List(ctx, s.cfg.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	if status != "" || reason != "" {
		filtered := make([]model.Report, 0, len(items))
		for _, item := range items {
			if status != "" && item.Status != status {
				continue
			}
			if reason != "" && item.Reason != reason {
				continue
			}
			filtered = append(filtered, item)
		}
		items = filtered
	}

	items = s.enrichReports(ctx, items)
	if validate.Required(filter.Search) {
		items = searchReports(items, filter.Search)
	}
	return items, nil
}

func searchReports(items []model.Report, term string) []model.Report {
	term = strings.ToLower(strings.TrimSpace(term))
	matched := make([]model.Report, 0, len(items))
	for _, item := range items {
		if displayMatches(item.Reporter, term) || displayMatches(item.Reported, term) {
			matched = append(matched, item)
		}
	}
	return matched
}

func displayMatches(display model.ProfileDisplay, term string) bool {
	return strings.Contains(strings.ToLower(display.Name), term) ||
		strings.Contains(strings.ToLower(display.Email), term)
}

// Counts are the per-status counters over every report, not just the
// listed page.
func (s *Service) Counts(ctx context.Context) (StatusCounts, error) {
	byStatus, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return StatusCounts{}, fmt.Errorf("count reports: %w", err)
	}

	return StatusCounts{
		Pending:  byStatus[enums.ReportStatusPending],
		Reviewed: byStatus[enums.ReportStatusReviewed],
		Resolved: byStatus[enums.ReportStatusResolved],
	}, nil
}

// UpdateStatus moves a report forward through the review workflow. The
// transition table is enforced here and the storage update is guarded
// by the status the decision was made against.
func (s *Service) UpdateStatus(ctx context.Context, reportID, status string) error {
	if _, err := uuid.Parse(reportID); err != nil {
		return ErrValidation
	}
	to, ok := enums.ParseReportStatus(status)
	if !ok {
		return ErrValidation
	}

	from, err := s.reports.GetStatus(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrReportNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("read report status: %w", err)
	}
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}

	moved, err := s.reports.UpdateStatus(ctx, reportID, from, to)
	if err != nil {
		return fmt.Errorf("update report status: %w", err)
	}
	if !moved {
		return ErrConflict
	}
	return nil
}

func (s *Service) enrichReports(ctx context.Context, items []model.Report) []model.Report {
	if len(items) == 0 {
		return []model.Report{}
	}

	reporters := make([]string, 0, len(items))
	reported := make([]string, 0, len(items))
	for _, item := range items {
		reporters = append(reporters, item.ReporterID)
		reported = append(reported, item.ReportedID)
	}

	displays := s.enricher.Displays(ctx, reporters, reported)
	for i := range items {
		items[i].Reporter = enrich.Display(displays, items[i].ReporterID)
		items[i].Reported = enrich.Display(displays, items[i].ReportedID)
	}
	return items
}
