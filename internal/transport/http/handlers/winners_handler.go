package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	winnerssvc "github.com/yansassi23/upduoadm/internal/services/winners"
	"github.com/yansassi23/upduoadm/internal/transport/http/dto"
	httperrors "github.com/yansassi23/upduoadm/internal/transport/http/errors"
)

type WinnersHandler struct {
	service *winnerssvc.Service
}

func NewWinnersHandler(service *winnerssvc.Service) *WinnersHandler {
	return &WinnersHandler{service: service}
}

func (h *WinnersHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "WINNERS_SERVICE_UNAVAILABLE", "winners service is unavailable")
		return
	}

	items, err := h.service.List(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load winners")
		return
	}

	responseItems := make([]dto.WinnerItemResponse, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, dto.WinnerItemResponse{
			ID:          item.ID,
			DrawDate:    item.DrawDate.Format("2006-01-02"),
			PrizeAmount: item.PrizeAmount,
			AwardedAt:   item.AwardedAt,
			PromoPosted: item.PromoPosted,
			User:        toDisplayResponse(item.User),
		})
	}

	httperrors.Write(w, http.StatusOK, dto.WinnersResponse{Items: responseItems})
}

func (h *WinnersHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "WINNERS_SERVICE_UNAVAILABLE", "winners service is unavailable")
		return
	}

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load winner stats")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.WinnerStatsResponse{
		Total:        stats.Total,
		ThisMonth:    stats.ThisMonth,
		PrizeTotal:   stats.PrizeTotal,
		PendingPromo: stats.PendingPromo,
	})
}

func (h *WinnersHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "WINNERS_SERVICE_UNAVAILABLE", "winners service is unavailable")
		return
	}

	profiles, err := h.service.SearchUsers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to search candidates")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UsersResponse{Items: toUserResponses(profiles)})
}

func (h *WinnersHandler) Add(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "WINNERS_SERVICE_UNAVAILABLE", "winners service is unavailable")
		return
	}

	var req dto.AddWinnerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	winner, err := h.service.AddWinner(r.Context(), req.UserID, req.DrawDate, req.PrizeAmount)
	switch {
	case err == nil:
		httperrors.Write(w, http.StatusCreated, dto.WinnerItemResponse{
			ID:          winner.ID,
			DrawDate:    winner.DrawDate.Format("2006-01-02"),
			PrizeAmount: winner.PrizeAmount,
			AwardedAt:   winner.AwardedAt,
			PromoPosted: winner.PromoPosted,
			User:        toDisplayResponse(winner.User),
		})
	case errors.Is(err, winnerssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid winner request")
	case errors.Is(err, winnerssvc.ErrDuplicateDrawDate):
		writeConflict(w, "DUPLICATE_DRAW_DATE", "draw date already has a winner")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to add winner")
	}
}

func (h *WinnersHandler) SetPromoPosted(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "WINNERS_SERVICE_UNAVAILABLE", "winners service is unavailable")
		return
	}

	var req dto.SetPromoPostedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	err := h.service.TogglePromoPosted(r.Context(), chi.URLParam(r, "id"), req.Posted)
	switch {
	case err == nil:
		httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
	case errors.Is(err, winnerssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid winner id")
	case errors.Is(err, winnerssvc.ErrNotFound):
		writeNotFound(w, "WINNER_NOT_FOUND", "winner not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to update promo flag")
	}
}
