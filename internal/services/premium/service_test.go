package premium

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yansassi23/upduoadm/internal/domain/model"
	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
)

const testSignupID = "5a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"

type signupStoreStub struct {
	items  []model.PremiumSignup
	signup model.PremiumSignup
	getErr error
}

func (s *signupStoreStub) List(context.Context) ([]model.PremiumSignup, error) {
	return s.items, nil
}

func (s *signupStoreStub) GetByID(context.Context, string) (model.PremiumSignup, error) {
	return s.signup, s.getErr
}

func (s *signupStoreStub) Delete(context.Context, pgx.Tx, string) error {
	return nil
}

type profileStoreStub struct {
	premium []model.Profile
}

func (s *profileStoreStub) ListPremium(context.Context) ([]model.Profile, error) {
	return s.premium, nil
}

func (s *profileStoreStub) SetPremium(context.Context, pgx.Tx, string, bool, *time.Time) error {
	return nil
}

func TestListSignups(t *testing.T) {
	signups := &signupStoreStub{items: []model.PremiumSignup{{ID: testSignupID, Name: "Ana"}}}
	svc := NewService(Dependencies{Signups: signups, Profiles: &profileStoreStub{}})

	items, err := svc.ListSignups(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Ana" {
		t.Fatalf("unexpected signup list: %+v", items)
	}
}

func TestApproveRejectsMalformedID(t *testing.T) {
	svc := NewService(Dependencies{Signups: &signupStoreStub{}, Profiles: &profileStoreStub{}})

	if err := svc.Approve(context.Background(), "nope"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestApproveMapsMissingSignup(t *testing.T) {
	signups := &signupStoreStub{getErr: pgrepo.ErrSignupNotFound}
	svc := NewService(Dependencies{Signups: signups, Profiles: &profileStoreStub{}})

	// The signup lookup runs before the transaction, so the not-found
	// mapping is reachable without a pool. A nil pool is still rejected
	// before any write.
	err := svc.Approve(context.Background(), testSignupID)
	if errors.Is(err, ErrNotFound) {
		return
	}
	t.Fatalf("expected ErrNotFound, got %v", err)
}

func TestApproveWithoutPoolFailsBeforeWrites(t *testing.T) {
	signups := &signupStoreStub{signup: model.PremiumSignup{ID: testSignupID, UserID: "u1"}}
	svc := NewService(Dependencies{Signups: signups, Profiles: &profileStoreStub{}})

	if err := svc.Approve(context.Background(), testSignupID); err == nil {
		t.Fatal("expected an error without a configured pool")
	}
}

func TestRejectRejectsMalformedID(t *testing.T) {
	svc := NewService(Dependencies{Signups: &signupStoreStub{}, Profiles: &profileStoreStub{}})

	if err := svc.Reject(context.Background(), "nope"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDeactivateRejectsMalformedID(t *testing.T) {
	svc := NewService(Dependencies{Signups: &signupStoreStub{}, Profiles: &profileStoreStub{}})

	if err := svc.Deactivate(context.Background(), "nope"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
