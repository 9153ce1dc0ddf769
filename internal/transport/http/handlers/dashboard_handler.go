package handlers

import (
	"net/http"

	"github.com/yansassi23/upduoadm/internal/domain/timerange"
	statssvc "github.com/yansassi23/upduoadm/internal/services/stats"
	"github.com/yansassi23/upduoadm/internal/transport/http/dto"
	httperrors "github.com/yansassi23/upduoadm/internal/transport/http/errors"
)

type DashboardHandler struct {
	service *statssvc.Service
}

func NewDashboardHandler(service *statssvc.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get serves the headline cards. The unbounded range is served from
// the warm snapshot when one is published; a narrowed range is always
// computed live.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "STATS_SERVICE_UNAVAILABLE", "stats service is unavailable")
		return
	}

	rng, err := timerange.Parse(r.URL.Query().Get("range"))
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "unknown time range")
		return
	}

	var overview statssvc.Overview
	if rng == timerange.RangeAll {
		overview, err = h.service.CachedOverview(r.Context())
	} else {
		overview, err = h.service.Overview(r.Context(), rng)
	}
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load dashboard overview")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.DashboardOverviewResponse{
		Range:         string(overview.Range),
		TotalUsers:    overview.TotalUsers,
		ActiveUsers:   overview.ActiveUsers,
		TotalMatches:  overview.TotalMatches,
		TotalMessages: overview.TotalMessages,
		TodayMatches:  overview.TodayMatches,
		TodaySignups:  overview.TodaySignups,
		GeneratedAt:   overview.GeneratedAt,
	})
}
