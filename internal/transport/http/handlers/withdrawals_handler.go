package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	withdrawalssvc "github.com/yansassi23/upduoadm/internal/services/withdrawals"
	"github.com/yansassi23/upduoadm/internal/transport/http/dto"
	httperrors "github.com/yansassi23/upduoadm/internal/transport/http/errors"
)

type WithdrawalsHandler struct {
	service *withdrawalssvc.Service
}

func NewWithdrawalsHandler(service *withdrawalssvc.Service) *WithdrawalsHandler {
	return &WithdrawalsHandler{service: service}
}

func (h *WithdrawalsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "WITHDRAWALS_SERVICE_UNAVAILABLE", "withdrawals service is unavailable")
		return
	}

	items, err := h.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		if errors.Is(err, withdrawalssvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "unknown withdrawal status")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load withdrawals")
		return
	}

	responseItems := make([]dto.WithdrawalItemResponse, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, dto.WithdrawalItemResponse{
			ID:          item.ID,
			Amount:      item.Amount,
			GameUserID:  item.GameUserID,
			GameZoneID:  item.GameZoneID,
			Status:      string(item.Status),
			AdminNotes:  item.AdminNotes,
			CreatedAt:   item.CreatedAt,
			ProcessedAt: item.ProcessedAt,
			User:        toDisplayResponse(item.User),
		})
	}

	httperrors.Write(w, http.StatusOK, dto.WithdrawalsResponse{Items: responseItems})
}

func (h *WithdrawalsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "WITHDRAWALS_SERVICE_UNAVAILABLE", "withdrawals service is unavailable")
		return
	}

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load withdrawal stats")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.WithdrawalStatsResponse{
		PendingCount:   stats.PendingCount,
		CompletedCount: stats.CompletedCount,
		TotalAmount:    stats.TotalAmount,
		PendingAmount:  stats.PendingAmount,
	})
}

func (h *WithdrawalsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "WITHDRAWALS_SERVICE_UNAVAILABLE", "withdrawals service is unavailable")
		return
	}

	var req dto.UpdateWithdrawalStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.AdminNotes)
	switch {
	case err == nil:
		httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
	case errors.Is(err, withdrawalssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid withdrawal status request")
	case errors.Is(err, withdrawalssvc.ErrInvalidTransition):
		writeBadRequest(w, "INVALID_TRANSITION", "withdrawal status cannot move that way")
	case errors.Is(err, withdrawalssvc.ErrNotFound):
		writeNotFound(w, "WITHDRAWAL_NOT_FOUND", "withdrawal not found")
	case errors.Is(err, withdrawalssvc.ErrConflict):
		writeConflict(w, "CONFLICT", "withdrawal status changed concurrently")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to update withdrawal status")
	}
}
