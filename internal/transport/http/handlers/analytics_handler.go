package handlers

import (
	"net/http"

	"github.com/yansassi23/upduoadm/internal/domain/timerange"
	statssvc "github.com/yansassi23/upduoadm/internal/services/stats"
	"github.com/yansassi23/upduoadm/internal/transport/http/dto"
	httperrors "github.com/yansassi23/upduoadm/internal/transport/http/errors"
)

type AnalyticsHandler struct {
	service *statssvc.Service
}

func NewAnalyticsHandler(service *statssvc.Service) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "STATS_SERVICE_UNAVAILABLE", "stats service is unavailable")
		return
	}

	rng, err := timerange.Parse(r.URL.Query().Get("range"))
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "unknown time range")
		return
	}

	report, err := h.service.Analytics(r.Context(), rng)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load analytics")
		return
	}

	growth := make([]dto.GrowthPointResponse, 0, len(report.UserGrowth))
	for _, point := range report.UserGrowth {
		growth = append(growth, dto.GrowthPointResponse{
			Date:         point.Date,
			Users:        point.Users,
			PremiumUsers: point.PremiumUsers,
		})
	}
	activity := make([]dto.ActivityBucketResponse, 0, len(report.DailyActivity))
	for _, bucket := range report.DailyActivity {
		activity = append(activity, dto.ActivityBucketResponse{
			Date:     bucket.Date,
			Matches:  bucket.Matches,
			Messages: bucket.Messages,
			Signups:  bucket.Signups,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.AnalyticsResponse{
		Range:                 string(report.Range),
		TotalUsers:            report.TotalUsers,
		PremiumUsers:          report.PremiumUsers,
		TotalMatches:          report.TotalMatches,
		TotalMessages:         report.TotalMessages,
		TotalDiamonds:         report.TotalDiamonds,
		PremiumConversionRate: report.Ratios.PremiumConversionRate,
		AvgMatchesPerUser:     report.Ratios.AvgMatchesPerUser,
		AvgMessagesPerMatch:   report.Ratios.AvgMessagesPerMatch,
		UserGrowth:            growth,
		CityDistribution:      toCategoryResponses(report.CityDistribution),
		RankDistribution:      toCategoryResponses(report.RankDistribution),
		DailyActivity:         activity,
		GeneratedAt:           report.GeneratedAt,
	})
}

func toCategoryResponses(counts []statssvc.CategoryCount) []dto.CategoryCountResponse {
	out := make([]dto.CategoryCountResponse, 0, len(counts))
	for _, count := range counts {
		out = append(out, dto.CategoryCountResponse{Label: count.Label, Count: count.Count})
	}
	return out
}
