package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	modsvc "github.com/yansassi23/upduoadm/internal/services/moderation"
	"github.com/yansassi23/upduoadm/internal/transport/http/dto"
	httperrors "github.com/yansassi23/upduoadm/internal/transport/http/errors"
)

type ModerationHandler struct {
	service *modsvc.Service
}

func NewModerationHandler(service *modsvc.Service) *ModerationHandler {
	return &ModerationHandler{service: service}
}

func (h *ModerationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	items, err := h.service.List(r.Context(), modsvc.ListFilter{
		Status: r.URL.Query().Get("status"),
		Reason: r.URL.Query().Get("reason"),
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		if errors.Is(err, modsvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "unknown report filter")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load reports")
		return
	}

	responseItems := make([]dto.ReportItemResponse, 0, len(items))
	for _, item := range items {
		responseItems = append(responseItems, dto.ReportItemResponse{
			ID:        item.ID,
			Reason:    string(item.Reason),
			Status:    string(item.Status),
			Comment:   item.Comment,
			CreatedAt: item.CreatedAt,
			Reporter:  toDisplayResponse(item.Reporter),
			Reported:  toDisplayResponse(item.Reported),
		})
	}

	httperrors.Write(w, http.StatusOK, dto.ReportsResponse{Items: responseItems})
}

func (h *ModerationHandler) Counts(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	counts, err := h.service.Counts(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load report counts")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ReportCountsResponse{
		Pending:  counts.Pending,
		Reviewed: counts.Reviewed,
		Resolved: counts.Resolved,
	})
}

func (h *ModerationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	var req dto.UpdateReportStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	switch {
	case err == nil:
		httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
	case errors.Is(err, modsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid report status request")
	case errors.Is(err, modsvc.ErrInvalidTransition):
		writeBadRequest(w, "INVALID_TRANSITION", "report status cannot move that way")
	case errors.Is(err, modsvc.ErrNotFound):
		writeNotFound(w, "REPORT_NOT_FOUND", "report not found")
	case errors.Is(err, modsvc.ErrConflict):
		writeConflict(w, "CONFLICT", "report status changed concurrently")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to update report status")
	}
}
