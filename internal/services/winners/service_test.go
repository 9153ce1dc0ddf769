package winners

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yansassi23/upduoadm/internal/domain/model"
	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
)

const testWinnerUserID = "3c2b1a0d-9e8f-4a7b-6c5d-4e3f2a1b0c9d"

type winnerStoreStub struct {
	items       []model.DailyWinner
	insertID    string
	insertErr   error
	lastUserID  string
	lastDate    time.Time
	lastPrize   int
	promoCalls  int
	promoPosted bool
}

func (s *winnerStoreStub) List(context.Context) ([]model.DailyWinner, error) {
	return s.items, nil
}

func (s *winnerStoreStub) Insert(_ context.Context, userID string, drawDate time.Time, prizeAmount int, _ time.Time) (string, error) {
	if s.insertErr != nil {
		return "", s.insertErr
	}
	s.lastUserID = userID
	s.lastDate = drawDate
	s.lastPrize = prizeAmount
	return s.insertID, nil
}

func (s *winnerStoreStub) SetPromoPosted(_ context.Context, _ string, posted bool) error {
	s.promoCalls++
	s.promoPosted = posted
	return nil
}

type searcherStub struct {
	profiles []model.Profile
	lastTerm string
}

func (s *searcherStub) Search(_ context.Context, term string, _ int) ([]model.Profile, error) {
	s.lastTerm = term
	return s.profiles, nil
}

type enricherStub struct {
	displays map[string]model.ProfileDisplay
}

func (s *enricherStub) Displays(context.Context, ...[]string) map[string]model.ProfileDisplay {
	return s.displays
}

type announcerStub struct {
	calls int
	last  model.DailyWinner
	err   error
}

func (s *announcerStub) AnnounceWinner(_ context.Context, winner model.DailyWinner) error {
	s.calls++
	s.last = winner
	return s.err
}

func newTestService(store *winnerStoreStub, announcer Announcer) *Service {
	return NewService(Dependencies{
		Winners:   store,
		Searcher:  &searcherStub{},
		Enricher:  &enricherStub{displays: map[string]model.ProfileDisplay{testWinnerUserID: {Name: "Ana"}}},
		Announcer: announcer,
	}, Config{})
}

func TestSearchUsersBlankTermShortCircuits(t *testing.T) {
	searcher := &searcherStub{profiles: []model.Profile{{ID: testWinnerUserID}}}
	svc := NewService(Dependencies{Winners: &winnerStoreStub{}, Searcher: searcher, Enricher: &enricherStub{}}, Config{})

	profiles, err := svc.SearchUsers(context.Background(), "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected no candidates for a blank term, got %d", len(profiles))
	}
	if searcher.lastTerm != "" {
		t.Fatalf("blank term must not hit search, searched for %q", searcher.lastTerm)
	}
}

func TestStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	store := &winnerStoreStub{items: []model.DailyWinner{
		{DrawDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), PrizeAmount: 30, PromoPosted: true},
		{DrawDate: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), PrizeAmount: 30},
		{DrawDate: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), PrizeAmount: 50},
	}}
	svc := newTestService(store, nil)
	svc.now = func() time.Time { return now }

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Stats{Total: 3, ThisMonth: 2, PrizeTotal: 110, PendingPromo: 2}
	if stats != want {
		t.Fatalf("unexpected stats: got %+v want %+v", stats, want)
	}
}

func TestAddWinnerAwardsAndAnnounces(t *testing.T) {
	store := &winnerStoreStub{insertID: "w1"}
	announcer := &announcerStub{}
	svc := newTestService(store, announcer)

	winner, err := svc.AddWinner(context.Background(), testWinnerUserID, "2026-03-10", 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner.ID != "w1" || winner.PrizeAmount != 40 {
		t.Fatalf("unexpected winner: %+v", winner)
	}
	if winner.User.Name != "Ana" {
		t.Fatalf("expected the winner resolved, got %q", winner.User.Name)
	}
	if store.lastDate.Format("2006-01-02") != "2026-03-10" {
		t.Fatalf("unexpected draw date: %v", store.lastDate)
	}
	if announcer.calls != 1 || announcer.last.ID != "w1" {
		t.Fatalf("expected one announcement, got calls=%d last=%+v", announcer.calls, announcer.last)
	}
}

func TestAddWinnerDefaultsPrize(t *testing.T) {
	store := &winnerStoreStub{insertID: "w1"}
	svc := newTestService(store, nil)

	winner, err := svc.AddWinner(context.Background(), testWinnerUserID, "2026-03-10", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if winner.PrizeAmount != 30 || store.lastPrize != 30 {
		t.Fatalf("expected the default prize, got %d", winner.PrizeAmount)
	}
}

func TestAddWinnerRejectsBadInput(t *testing.T) {
	store := &winnerStoreStub{insertID: "w1"}
	svc := newTestService(store, nil)

	if _, err := svc.AddWinner(context.Background(), "nope", "2026-03-10", 30); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for a malformed id, got %v", err)
	}
	if _, err := svc.AddWinner(context.Background(), testWinnerUserID, "10/03/2026", 30); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for a malformed date, got %v", err)
	}
	if _, err := svc.AddWinner(context.Background(), testWinnerUserID, "2026-03-10", -5); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for a negative prize, got %v", err)
	}
	if store.lastUserID != "" {
		t.Fatalf("rejected input must not reach the store, got %q", store.lastUserID)
	}
}

func TestAddWinnerSurfacesDuplicateDrawDate(t *testing.T) {
	store := &winnerStoreStub{insertErr: pgrepo.ErrDuplicateDrawDate}
	announcer := &announcerStub{}
	svc := newTestService(store, announcer)

	if _, err := svc.AddWinner(context.Background(), testWinnerUserID, "2026-03-10", 30); !errors.Is(err, ErrDuplicateDrawDate) {
		t.Fatalf("expected ErrDuplicateDrawDate, got %v", err)
	}
	if announcer.calls != 0 {
		t.Fatalf("a failed award must not be announced, got %d calls", announcer.calls)
	}
}

func TestAddWinnerToleratesAnnouncerFailure(t *testing.T) {
	store := &winnerStoreStub{insertID: "w1"}
	announcer := &announcerStub{err: errors.New("chat not found")}
	svc := newTestService(store, announcer)

	if _, err := svc.AddWinner(context.Background(), testWinnerUserID, "2026-03-10", 30); err != nil {
		t.Fatalf("an announcement failure must not fail the award: %v", err)
	}
}

func TestTogglePromoPosted(t *testing.T) {
	store := &winnerStoreStub{}
	svc := newTestService(store, nil)

	if err := svc.TogglePromoPosted(context.Background(), testWinnerUserID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.promoCalls != 1 || !store.promoPosted {
		t.Fatalf("expected the flag set, got calls=%d posted=%v", store.promoCalls, store.promoPosted)
	}

	if err := svc.TogglePromoPosted(context.Background(), "nope", true); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListEnrichesWinners(t *testing.T) {
	store := &winnerStoreStub{items: []model.DailyWinner{
		{ID: "w1", UserID: testWinnerUserID},
		{ID: "w2", UserID: "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"},
	}}
	svc := newTestService(store, nil)

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].User.Name != "Ana" {
		t.Fatalf("expected the winner resolved, got %q", items[0].User.Name)
	}
	if items[1].User.Name != "Nome não informado" {
		t.Fatalf("expected a placeholder for the dangling winner, got %q", items[1].User.Name)
	}
}
