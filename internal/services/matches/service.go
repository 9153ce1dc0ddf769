// Package matches backs the match management view: recent matches,
// name/email search and the match counters.
package matches

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yansassi23/upduoadm/internal/domain/model"
	"github.com/yansassi23/upduoadm/internal/domain/timerange"
	"github.com/yansassi23/upduoadm/internal/services/enrich"
)

const weekDays = 7

type MatchStore interface {
	ListRecent(ctx context.Context, limit int) ([]model.Match, error)
	ListByUserIDs(ctx context.Context, userIDs []string, limit int) ([]model.Match, error)
	CountSince(ctx context.Context, since *time.Time) (int, error)
}

type ProfileSearcher interface {
	SearchIDs(ctx context.Context, term string) ([]string, error)
}

type Enricher interface {
	Displays(ctx context.Context, idSets ...[]string) map[string]model.ProfileDisplay
}

// Stats are the counters above the match list.
type Stats struct {
	Total     int
	Today     int
	ThisWeek  int
	AvgPerDay float64
}

type Config struct {
	RecentLimit int
}

type Dependencies struct {
	Matches  MatchStore
	Searcher ProfileSearcher
	Enricher Enricher
	Logger   *zap.Logger
}

type Service struct {
	matches  MatchStore
	searcher ProfileSearcher
	enricher Enricher
	logger   *zap.Logger
	cfg      Config
	now      func() time.Time
}

func NewService(deps Dependencies, cfg Config) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 100
	}
	return &Service{
		matches:  deps.Matches,
		searcher: deps.Searcher,
		enricher: deps.Enricher,
		logger:   deps.Logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// List returns recent matches with both sides resolved to display
// fields. A search term narrows the list to matches touching any
// profile whose name or email matches the term.
func (s *Service) List(ctx context.Context, term string) ([]model.Match, error) {
	term = strings.TrimSpace(term)

	var (
		items []model.Match
		err   error
	)
	if term == "" {
		items, err = s.matches.ListRecent(ctx, s.cfg.RecentLimit)
	} else {
		items, err = s.search(ctx, term)
	}
	if err != nil {
		return nil, err
	}

	return s.enrichMatches(ctx, items), nil
}

// search resolves the term to profile ids first, then loads matches
// touching any of them on either side.
func (s *Service) search(ctx context.Context, term string) ([]model.Match, error) {
	ids, err := s.searcher.SearchIDs(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	if len(ids) == 0 {
		return []model.Match{}, nil
	}
	return s.matches.ListByUserIDs(ctx, ids, s.cfg.RecentLimit)
}

func (s *Service) enrichMatches(ctx context.Context, items []model.Match) []model.Match {
	if len(items) == 0 {
		return []model.Match{}
	}

	side1 := make([]string, 0, len(items))
	side2 := make([]string, 0, len(items))
	for _, item := range items {
		side1 = append(side1, item.User1ID)
		side2 = append(side2, item.User2ID)
	}

	displays := s.enricher.Displays(ctx, side1, side2)
	for i := range items {
		items[i].User1 = enrich.Display(displays, items[i].User1ID)
		items[i].User2 = enrich.Display(displays, items[i].User2ID)
	}
	return items
}

// Stats loads the match counters. Each counter degrades to zero on
// failure so the view always renders.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	now := s.now()
	todayStart := timerange.RangeToday.Start(now)
	weekStart := now.AddDate(0, 0, -weekDays)

	var stats Stats
	total, err := s.matches.CountSince(ctx, nil)
	if err != nil {
		s.logger.Warn("count matches failed", zap.Error(err))
	} else {
		stats.Total = total
	}

	today, err := s.matches.CountSince(ctx, todayStart)
	if err != nil {
		s.logger.Warn("count today matches failed", zap.Error(err))
	} else {
		stats.Today = today
	}

	week, err := s.matches.CountSince(ctx, &weekStart)
	if err != nil {
		s.logger.Warn("count week matches failed", zap.Error(err))
	} else {
		stats.ThisWeek = week
	}

	stats.AvgPerDay = float64(stats.ThisWeek) / float64(weekDays)
	return stats, nil
}
