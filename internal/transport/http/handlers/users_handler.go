package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yansassi23/upduoadm/internal/domain/model"
	userssvc "github.com/yansassi23/upduoadm/internal/services/users"
	"github.com/yansassi23/upduoadm/internal/transport/http/dto"
	httperrors "github.com/yansassi23/upduoadm/internal/transport/http/errors"
)

type UsersHandler struct {
	service *userssvc.Service
}

func NewUsersHandler(service *userssvc.Service) *UsersHandler {
	return &UsersHandler{service: service}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	profiles, err := h.service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load users")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UsersResponse{Items: toUserResponses(profiles)})
}

func (h *UsersHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	var req dto.SetActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if err := h.service.SetActive(r.Context(), chi.URLParam(r, "id"), req.Active); err != nil {
		handleUsersError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *UsersHandler) SetPremium(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	var req dto.SetPremiumRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if err := h.service.SetPremium(r.Context(), chi.URLParam(r, "id"), req.Premium); err != nil {
		handleUsersError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *UsersHandler) GrantDiamonds(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	var req dto.GrantDiamondsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	balance, err := h.service.GrantDiamonds(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		handleUsersError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.DiamondBalanceResponse{OK: true, DiamondCount: balance})
}

func handleUsersError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user request")
	case errors.Is(err, userssvc.ErrNotFound):
		writeNotFound(w, "USER_NOT_FOUND", "user not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "user operation failed")
	}
}

func toUserResponses(profiles []model.Profile) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, dto.UserResponse{
			ID:                 profile.ID,
			Name:               profile.Name,
			Email:              profile.Email,
			Age:                profile.Age,
			City:               profile.City,
			Bio:                profile.Bio,
			AvatarURL:          profile.AvatarURL,
			CurrentRank:        profile.CurrentRank,
			IsPremium:          profile.IsPremium,
			IsActive:           profile.IsActive,
			DiamondCount:       profile.DiamondCount,
			CreatedAt:          profile.CreatedAt,
			PremiumActivatedAt: profile.PremiumActivatedAt,
		})
	}
	return items
}
