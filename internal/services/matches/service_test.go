package matches

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yansassi23/upduoadm/internal/domain/model"
)

type matchStoreStub struct {
	recent      []model.Match
	byUsers     []model.Match
	lastUserIDs []string
	total       int
	today       int
	week        int
	countErr    error
	ref         time.Time
}

func (s *matchStoreStub) ListRecent(context.Context, int) ([]model.Match, error) {
	return s.recent, nil
}

func (s *matchStoreStub) ListByUserIDs(_ context.Context, userIDs []string, _ int) ([]model.Match, error) {
	s.lastUserIDs = userIDs
	return s.byUsers, nil
}

func (s *matchStoreStub) CountSince(_ context.Context, since *time.Time) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	switch {
	case since == nil:
		return s.total, nil
	case s.ref.Sub(*since) < 24*time.Hour:
		return s.today, nil
	default:
		return s.week, nil
	}
}

type searcherStub struct {
	ids      []string
	lastTerm string
}

func (s *searcherStub) SearchIDs(_ context.Context, term string) ([]string, error) {
	s.lastTerm = term
	return s.ids, nil
}

type enricherStub struct {
	displays map[string]model.ProfileDisplay
	calls    int
}

func (s *enricherStub) Displays(context.Context, ...[]string) map[string]model.ProfileDisplay {
	s.calls++
	return s.displays
}

func newTestService(store *matchStoreStub, searcher *searcherStub, enricher *enricherStub) *Service {
	svc := NewService(Dependencies{Matches: store, Searcher: searcher, Enricher: enricher}, Config{})
	if !store.ref.IsZero() {
		svc.now = func() time.Time { return store.ref }
	}
	return svc
}

func TestListEnrichesBothSides(t *testing.T) {
	store := &matchStoreStub{recent: []model.Match{
		{ID: "m1", User1ID: "u1", User2ID: "u2"},
		{ID: "m2", User1ID: "u1", User2ID: "u3"},
	}}
	enricher := &enricherStub{displays: map[string]model.ProfileDisplay{
		"u1": {Name: "Ana"},
		"u2": {Name: "Bia"},
	}}
	svc := newTestService(store, &searcherStub{}, enricher)

	items, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enricher.calls != 1 {
		t.Fatalf("expected one batched enrichment call, got %d", enricher.calls)
	}
	if items[0].User1.Name != "Ana" || items[0].User2.Name != "Bia" {
		t.Fatalf("unexpected display names: %+v", items[0])
	}
	if items[1].User2.Name != "Nome não informado" {
		t.Fatalf("expected the dangling side to get a placeholder, got %q", items[1].User2.Name)
	}
}

func TestListSearchGoesThroughProfileIDs(t *testing.T) {
	store := &matchStoreStub{byUsers: []model.Match{{ID: "m1", User1ID: "u1", User2ID: "u2"}}}
	searcher := &searcherStub{ids: []string{"u1"}}
	svc := newTestService(store, searcher, &enricherStub{})

	items, err := svc.List(context.Background(), " ana ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if searcher.lastTerm != "ana" {
		t.Fatalf("expected a trimmed term, got %q", searcher.lastTerm)
	}
	if len(store.lastUserIDs) != 1 || store.lastUserIDs[0] != "u1" {
		t.Fatalf("expected the resolved ids to reach the store, got %v", store.lastUserIDs)
	}
	if len(items) != 1 {
		t.Fatalf("expected one match, got %d", len(items))
	}
}

func TestListSearchWithNoProfileHitsShortCircuits(t *testing.T) {
	store := &matchStoreStub{}
	svc := newTestService(store, &searcherStub{}, &enricherStub{})

	items, err := svc.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected an empty list, got %d", len(items))
	}
	if store.lastUserIDs != nil {
		t.Fatalf("no profile hits must not query matches, got %v", store.lastUserIDs)
	}
}

func TestStats(t *testing.T) {
	store := &matchStoreStub{
		total: 100,
		today: 3,
		week:  14,
		ref:   time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
	}
	svc := newTestService(store, &searcherStub{}, &enricherStub{})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 100 || stats.Today != 3 || stats.ThisWeek != 14 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
	if stats.AvgPerDay != 2 {
		t.Fatalf("avg per day: got %v want 2", stats.AvgPerDay)
	}
}

func TestStatsDegradesOnFailure(t *testing.T) {
	store := &matchStoreStub{countErr: errors.New("connection reset")}
	svc := newTestService(store, &searcherStub{}, &enricherStub{})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("a failed counter must not fail the view: %v", err)
	}
	if stats != (Stats{}) {
		t.Fatalf("expected zeroed counters, got %+v", stats)
	}
}
