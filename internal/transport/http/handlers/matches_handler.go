package handlers

import (
	"net/http"

	matchessvc "github.com/yansassi23/upduoadm/internal/services/matches"
	"github.com/yansassi23/upduoadm/internal/transport/http/dto"
	httperrors "github.com/yansassi23/upduoadm/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchessvc.Service
}

func NewMatchesHandler(service *matchessvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	items, err := h.service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load matches")
		return
	}

	responseItems := make([]dto.MatchItemResponse, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, dto.MatchItemResponse{
			ID:        item.ID,
			CreatedAt: item.CreatedAt,
			User1:     toDisplayResponse(item.User1),
			User2:     toDisplayResponse(item.User2),
		})
	}

	httperrors.Write(w, http.StatusOK, dto.MatchesResponse{Items: responseItems})
}

func (h *MatchesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load match stats")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MatchStatsResponse{
		Total:     stats.Total,
		Today:     stats.Today,
		ThisWeek:  stats.ThisWeek,
		AvgPerDay: stats.AvgPerDay,
	})
}
