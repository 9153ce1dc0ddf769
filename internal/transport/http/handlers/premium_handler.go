package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	premiumsvc "github.com/yansassi23/upduoadm/internal/services/premium"
	"github.com/yansassi23/upduoadm/internal/transport/http/dto"
	httperrors "github.com/yansassi23/upduoadm/internal/transport/http/errors"
)

type PremiumHandler struct {
	service *premiumsvc.Service
}

func NewPremiumHandler(service *premiumsvc.Service) *PremiumHandler {
	return &PremiumHandler{service: service}
}

func (h *PremiumHandler) ListSignups(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PREMIUM_SERVICE_UNAVAILABLE", "premium service is unavailable")
		return
	}

	items, err := h.service.ListSignups(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load premium signups")
		return
	}

	responseItems := make([]dto.PremiumSignupResponse, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, dto.PremiumSignupResponse{
			ID:        item.ID,
			UserID:    item.UserID,
			Name:      item.Name,
			Email:     item.Email,
			Phone:     item.Phone,
			CreatedAt: item.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.PremiumSignupsResponse{Items: responseItems})
}

func (h *PremiumHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PREMIUM_SERVICE_UNAVAILABLE", "premium service is unavailable")
		return
	}

	profiles, err := h.service.ListPremiumUsers(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load premium users")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UsersResponse{Items: toUserResponses(profiles)})
}

func (h *PremiumHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PREMIUM_SERVICE_UNAVAILABLE", "premium service is unavailable")
		return
	}
	h.handleMutation(w, h.service.Approve(r.Context(), chi.URLParam(r, "id")))
}

func (h *PremiumHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PREMIUM_SERVICE_UNAVAILABLE", "premium service is unavailable")
		return
	}
	h.handleMutation(w, h.service.Reject(r.Context(), chi.URLParam(r, "id")))
}

func (h *PremiumHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PREMIUM_SERVICE_UNAVAILABLE", "premium service is unavailable")
		return
	}
	h.handleMutation(w, h.service.Deactivate(r.Context(), chi.URLParam(r, "id")))
}

func (h *PremiumHandler) handleMutation(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
	case errors.Is(err, premiumsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid premium request")
	case errors.Is(err, premiumsvc.ErrNotFound):
		writeNotFound(w, "PREMIUM_SIGNUP_NOT_FOUND", "premium signup not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "premium operation failed")
	}
}
