package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yansassi23/upduoadm/internal/domain/model"
	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
)

const testUserID = "7b8a2f90-13aa-4a6f-9c1e-2f4f4c4f9d10"

type profileStoreStub struct {
	recent      []model.Profile
	found       []model.Profile
	searchTerm  string
	activeCalls int
	lastActive  bool
	grantDelta  int
	balance     int
	grantErr    error
}

func (s *profileStoreStub) ListRecent(context.Context, int) ([]model.Profile, error) {
	return s.recent, nil
}

func (s *profileStoreStub) Search(_ context.Context, term string, _ int) ([]model.Profile, error) {
	s.searchTerm = term
	return s.found, nil
}

func (s *profileStoreStub) SetActive(_ context.Context, _ string, active bool) error {
	s.activeCalls++
	s.lastActive = active
	return nil
}

func (s *profileStoreStub) SetPremium(context.Context, pgx.Tx, string, bool, *time.Time) error {
	return nil
}

func (s *profileStoreStub) GrantDiamonds(_ context.Context, _ string, delta int) (int, error) {
	if s.grantErr != nil {
		return 0, s.grantErr
	}
	s.grantDelta = delta
	return s.balance, nil
}

func TestListWithoutTermReturnsRecent(t *testing.T) {
	store := &profileStoreStub{recent: []model.Profile{{ID: testUserID}}}
	svc := NewService(Dependencies{Profiles: store}, Config{})

	profiles, err := svc.List(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 1 || profiles[0].ID != testUserID {
		t.Fatalf("expected the recent list, got %+v", profiles)
	}
	if store.searchTerm != "" {
		t.Fatalf("blank term must not hit search, searched for %q", store.searchTerm)
	}
}

func TestListWithTermSearches(t *testing.T) {
	store := &profileStoreStub{found: []model.Profile{{ID: testUserID}}}
	svc := NewService(Dependencies{Profiles: store}, Config{})

	profiles, err := svc.List(context.Background(), "  maria ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected one hit, got %d", len(profiles))
	}
	if store.searchTerm != "maria" {
		t.Fatalf("expected a trimmed term, searched for %q", store.searchTerm)
	}
}

func TestSetActiveRejectsMalformedID(t *testing.T) {
	store := &profileStoreStub{}
	svc := NewService(Dependencies{Profiles: store}, Config{})

	if err := svc.SetActive(context.Background(), "not-a-uuid", true); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if store.activeCalls != 0 {
		t.Fatalf("a rejected id must not reach the store, got %d calls", store.activeCalls)
	}
}

func TestSetActiveForwards(t *testing.T) {
	store := &profileStoreStub{}
	svc := NewService(Dependencies{Profiles: store}, Config{})

	if err := svc.SetActive(context.Background(), testUserID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.activeCalls != 1 || store.lastActive {
		t.Fatalf("expected one deactivation call, got calls=%d active=%v", store.activeCalls, store.lastActive)
	}
}

func TestGrantDiamonds(t *testing.T) {
	store := &profileStoreStub{balance: 110}
	svc := NewService(Dependencies{Profiles: store}, Config{})

	balance, err := svc.GrantDiamonds(context.Background(), testUserID, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 110 || store.grantDelta != 10 {
		t.Fatalf("unexpected grant result: balance=%d delta=%d", balance, store.grantDelta)
	}
}

func TestGrantDiamondsRejectsZeroDelta(t *testing.T) {
	svc := NewService(Dependencies{Profiles: &profileStoreStub{}}, Config{})

	if _, err := svc.GrantDiamonds(context.Background(), testUserID, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGrantDiamondsMapsMissingProfile(t *testing.T) {
	store := &profileStoreStub{grantErr: pgrepo.ErrProfileNotFound}
	svc := NewService(Dependencies{Profiles: store}, Config{})

	if _, err := svc.GrantDiamonds(context.Background(), testUserID, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
