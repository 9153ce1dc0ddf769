package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/yansassi23/upduoadm/internal/domain/enums"
	"github.com/yansassi23/upduoadm/internal/domain/model"
	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
)

const testReportID = "2f0a5d0e-6f3a-4f09-8f1a-6b9a4c1d2e3f"

type reportStoreStub struct {
	items       []model.Report
	counts      map[enums.ReportStatus]int
	status      enums.ReportStatus
	statusErr   error
	moved       bool
	updateCalls int
	lastFrom    enums.ReportStatus
	lastTo      enums.ReportStatus
}

func (s *reportStoreStub) List(context.Context, int) ([]model.Report, error) {
	return s.items, nil
}

func (s *reportStoreStub) CountByStatus(context.Context) (map[enums.ReportStatus]int, error) {
	return s.counts, nil
}

func (s *reportStoreStub) GetStatus(context.Context, string) (enums.ReportStatus, error) {
	return s.status, s.statusErr
}

func (s *reportStoreStub) UpdateStatus(_ context.Context, _ string, from, to enums.ReportStatus) (bool, error) {
	s.updateCalls++
	s.lastFrom = from
	s.lastTo = to
	return s.moved, nil
}

type enricherStub struct {
	displays map[string]model.ProfileDisplay
	calls    int
}

func (s *enricherStub) Displays(context.Context, ...[]string) map[string]model.ProfileDisplay {
	s.calls++
	return s.displays
}

func TestListFiltersAndEnriches(t *testing.T) {
	store := &reportStoreStub{items: []model.Report{
		{ID: "r1", ReporterID: "u1", ReportedID: "u2", Status: enums.ReportStatusPending},
		{ID: "r2", ReporterID: "u3", ReportedID: "u4", Status: enums.ReportStatusResolved},
	}}
	enricher := &enricherStub{displays: map[string]model.ProfileDisplay{
		"u1": {Name: "Ana"},
	}}
	svc := NewService(Dependencies{Reports: store, Enricher: enricher}, Config{})

	items, err := svc.List(context.Background(), ListFilter{Status: "pending"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "r1" {
		t.Fatalf("expected only the pending report, got %+v", items)
	}
	if items[0].Reporter.Name != "Ana" {
		t.Fatalf("expected the reporter resolved, got %q", items[0].Reporter.Name)
	}
	if items[0].Reported.Name != "Nome não informado" {
		t.Fatalf("expected a placeholder for the reported side, got %q", items[0].Reported.Name)
	}
	if enricher.calls != 1 {
		t.Fatalf("expected one batched enrichment call, got %d", enricher.calls)
	}
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc := NewService(Dependencies{Reports: &reportStoreStub{}, Enricher: &enricherStub{}}, Config{})

	if _, err := svc.List(context.Background(), ListFilter{Status: "archived"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.List(context.Background(), ListFilter{Reason: "bad_vibes"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown reason, got %v", err)
	}
}

func TestListSearchMatchesResolvedDisplays(t *testing.T) {
	store := &reportStoreStub{items: []model.Report{
		{ID: "r1", ReporterID: "u1", ReportedID: "u2", Status: enums.ReportStatusPending},
		{ID: "r2", ReporterID: "u3", ReportedID: "u4", Status: enums.ReportStatusPending},
	}}
	enricher := &enricherStub{displays: map[string]model.ProfileDisplay{
		"u1": {Name: "Ana Souza", Email: "ana@example.com"},
		"u3": {Name: "Bruno Lima", Email: "bruno@example.com"},
	}}
	svc := NewService(Dependencies{Reports: store, Enricher: enricher}, Config{})

	items, err := svc.List(context.Background(), ListFilter{Search: "bruno"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "r2" {
		t.Fatalf("expected only the report involving Bruno, got %+v", items)
	}
}

func TestCounts(t *testing.T) {
	store := &reportStoreStub{counts: map[enums.ReportStatus]int{
		enums.ReportStatusPending:  2,
		enums.ReportStatusReviewed: 1,
		enums.ReportStatusResolved: 1,
	}}
	svc := NewService(Dependencies{Reports: store, Enricher: &enricherStub{}}, Config{})

	counts, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts != (StatusCounts{Pending: 2, Reviewed: 1, Resolved: 1}) {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestCountsCoverMoreRowsThanOneListPage(t *testing.T) {
	page := make([]model.Report, 200)
	for i := range page {
		page[i] = model.Report{Status: enums.ReportStatusPending}
	}
	store := &reportStoreStub{
		items:  page,
		counts: map[enums.ReportStatus]int{enums.ReportStatusPending: 300},
	}
	svc := NewService(Dependencies{Reports: store, Enricher: &enricherStub{}}, Config{ListLimit: 200})

	counts, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Pending != 300 {
		t.Fatalf("expected the whole-table pending count, got %d", counts.Pending)
	}
}

func TestUpdateStatusForwardTransition(t *testing.T) {
	store := &reportStoreStub{status: enums.ReportStatusPending, moved: true}
	svc := NewService(Dependencies{Reports: store, Enricher: &enricherStub{}}, Config{})

	if err := svc.UpdateStatus(context.Background(), testReportID, "reviewed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.lastFrom != enums.ReportStatusPending || store.lastTo != enums.ReportStatusReviewed {
		t.Fatalf("unexpected guarded update: from=%s to=%s", store.lastFrom, store.lastTo)
	}
}

func TestUpdateStatusRejectsBackwardTransition(t *testing.T) {
	store := &reportStoreStub{status: enums.ReportStatusResolved}
	svc := NewService(Dependencies{Reports: store, Enricher: &enricherStub{}}, Config{})

	err := svc.UpdateStatus(context.Background(), testReportID, "pending")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if store.updateCalls != 0 {
		t.Fatalf("a rejected transition must not reach the store, got %d calls", store.updateCalls)
	}
}

func TestUpdateStatusConcurrentMove(t *testing.T) {
	store := &reportStoreStub{status: enums.ReportStatusPending, moved: false}
	svc := NewService(Dependencies{Reports: store, Enricher: &enricherStub{}}, Config{})

	if err := svc.UpdateStatus(context.Background(), testReportID, "resolved"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateStatusMissingReport(t *testing.T) {
	store := &reportStoreStub{statusErr: pgrepo.ErrReportNotFound}
	svc := NewService(Dependencies{Reports: store, Enricher: &enricherStub{}}, Config{})

	if err := svc.UpdateStatus(context.Background(), testReportID, "reviewed"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
