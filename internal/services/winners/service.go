// Package winners backs the daily winner view: picking a winner,
// the award history and the promo posting workflow.
package winners

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yansassi23/upduoadm/internal/domain/model"
	"github.com/yansassi23/upduoadm/internal/pkg/validate"
	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
	"github.com/yansassi23/upduoadm/internal/services/enrich"
)

const drawDateLayout = "2006-01-02"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("winner not found")
	// ErrDuplicateDrawDate means the draw date already has a winner.
	ErrDuplicateDrawDate = errors.New("draw date already awarded")
)

type WinnerStore interface {
	List(ctx context.Context) ([]model.DailyWinner, error)
	Insert(ctx context.Context, userID string, drawDate time.Time, prizeAmount int, awardedAt time.Time) (string, error)
	SetPromoPosted(ctx context.Context, winnerID string, posted bool) error
}

type ProfileSearcher interface {
	Search(ctx context.Context, term string, limit int) ([]model.Profile, error)
}

type Enricher interface {
	Displays(ctx context.Context, idSets ...[]string) map[string]model.ProfileDisplay
}

type Announcer interface {
	AnnounceWinner(ctx context.Context, winner model.DailyWinner) error
}

// Stats are the counters above the winner history.
type Stats struct {
	Total        int
	ThisMonth    int
	PrizeTotal   int64
	PendingPromo int
}

type Config struct {
	SearchLimit        int
	DefaultPrizeAmount int
}

type Dependencies struct {
	Winners   WinnerStore
	Searcher  ProfileSearcher
	Enricher  Enricher
	Announcer Announcer
	Logger    *zap.Logger
}

type Service struct {
	winners   WinnerStore
	searcher  ProfileSearcher
	enricher  Enricher
	announcer Announcer
	logger    *zap.Logger
	cfg       Config
	now       func() time.Time
}

func NewService(deps Dependencies, cfg Config) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 20
	}
	if cfg.DefaultPrizeAmount <= 0 {
		cfg.DefaultPrizeAmount = 30
	}
	return &Service{
		winners:   deps.Winners,
		searcher:  deps.Searcher,
		enricher:  deps.Enricher,
		announcer: deps.Announcer,
		logger:    deps.Logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SearchUsers finds candidate profiles for the winner picker.
func (s *Service) SearchUsers(ctx context.Context, term string) ([]model.Profile, error) {
	if !validate.Required(term) {
		return []model.Profile{}, nil
	}
	term = strings.TrimSpace(term)
	return s.searcher.Search(ctx, term, s.cfg.SearchLimit)
}

// List returns the award history, newest draw first, with winners
// resolved to display fields.
func (s *Service) List(ctx context.Context) ([]model.DailyWinner, error) {
	items, err := s.winners.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list winners: %w", err)
	}
	return s.enrichWinners(ctx, items), nil
}

// Stats folds the award history into its counters.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.winners.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list winners: %w", err)
	}

	now := s.now()
	var stats Stats
	stats.Total = len(items)
	for _, item := range items {
		stats.PrizeTotal += int64(item.PrizeAmount)
		if item.DrawDate.Year() == now.Year() && item.DrawDate.Month() == now.Month() {
			stats.ThisMonth++
		}
		if !item.PromoPosted {
			stats.PendingPromo++
		}
	}
	return stats, nil
}

// AddWinner awards the draw date to a profile. The prize must be a
// positive amount; a zero prize falls back to the configured default.
// A date that already has a winner surfaces the storage conflict.
func (s *Service) AddWinner(ctx context.Context, userID, drawDate string, prizeAmount int) (model.DailyWinner, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return model.DailyWinner{}, ErrValidation
	}
	date, err := time.Parse(drawDateLayout, strings.TrimSpace(drawDate))
	if err != nil {
		return model.DailyWinner{}, ErrValidation
	}
	if prizeAmount == 0 {
		prizeAmount = s.cfg.DefaultPrizeAmount
	}
	if prizeAmount < 0 {
		return model.DailyWinner{}, ErrValidation
	}

	awardedAt := s.now().UTC()
	id, err := s.winners.Insert(ctx, userID, date, prizeAmount, awardedAt)
	if err != nil {
		if errors.Is(err, pgrepo.ErrDuplicateDrawDate) {
			return model.DailyWinner{}, ErrDuplicateDrawDate
		}
		return model.DailyWinner{}, fmt.Errorf("insert winner: %w", err)
	}

	winner := model.DailyWinner{
		ID:          id,
		UserID:      userID,
		DrawDate:    date,
		PrizeAmount: prizeAmount,
		AwardedAt:   awardedAt,
	}
	displays := s.enricher.Displays(ctx, []string{userID})
	winner.User = enrich.Display(displays, userID)

	s.announce(ctx, winner)
	return winner, nil
}

// TogglePromoPosted flips the promo-posted flag on an award.
func (s *Service) TogglePromoPosted(ctx context.Context, winnerID string, posted bool) error {
	if _, err := uuid.Parse(winnerID); err != nil {
		return ErrValidation
	}
	if err := s.winners.SetPromoPosted(ctx, winnerID, posted); err != nil {
		if errors.Is(err, pgrepo.ErrWinnerNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("set promo posted: %w", err)
	}
	return nil
}

// announce posts the new winner to the promo channel. Failures are
// logged and never surface to the admin action.
func (s *Service) announce(ctx context.Context, winner model.DailyWinner) {
	if s.announcer == nil {
		return
	}
	if err := s.announcer.AnnounceWinner(ctx, winner); err != nil {
		s.logger.Warn("winner announcement failed",
			zap.String("winner_id", winner.ID),
			zap.Error(err))
	}
}

func (s *Service) enrichWinners(ctx context.Context, items []model.DailyWinner) []model.DailyWinner {
	if len(items) == 0 {
		return []model.DailyWinner{}
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
