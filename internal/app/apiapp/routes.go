package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yansassi23/upduoadm/internal/config"
	matchessvc "github.com/yansassi23/upduoadm/internal/services/matches"
	modsvc "github.com/yansassi23/upduoadm/internal/services/moderation"
	premiumsvc "github.com/yansassi23/upduoadm/internal/services/premium"
	statssvc "github.com/yansassi23/upduoadm/internal/services/stats"
	userssvc "github.com/yansassi23/upduoadm/internal/services/users"
	winnerssvc "github.com/yansassi23/upduoadm/internal/services/winners"
	withdrawalssvc "github.com/yansassi23/upduoadm/internal/services/withdrawals"
	"github.com/yansassi23/upduoadm/internal/transport/http/handlers"
)

type Dependencies struct {
	StatsService      *statssvc.Service
	UserService       *userssvc.Service
	MatchService      *matchessvc.Service
	ModerationService *modsvc.Service
	WithdrawalService *withdrawalssvc.Service
	PremiumService    *premiumsvc.Service
	WinnerService     *winnerssvc.Service
	Logger            *zap.Logger
	Config            config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	dashboardHandler := handlers.NewDashboardHandler(deps.StatsService)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.StatsService)
	usersHandler := handlers.NewUsersHandler(deps.UserService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	moderationHandler := handlers.NewModerationHandler(deps.ModerationService)
	withdrawalsHandler := handlers.NewWithdrawalsHandler(deps.WithdrawalService)
	premiumHandler := handlers.NewPremiumHandler(deps.PremiumService)
	winnersHandler := handlers.NewWinnersHandler(deps.WinnerService)
	adminAuthMW := AdminAuthMiddleware(deps.Config.Admin, deps.Logger)

	r.Get("/healthz", healthHandler.Get)
	r.Route("/admin", func(r chi.Router) {
		r.Use(adminAuthMW)

		r.Get("/dashboard", dashboardHandler.Get)
		r.Get("/analytics", analyticsHandler.Get)

		r.Get("/users", usersHandler.List)
		r.Post("/users/{id}/active", usersHandler.SetActive)
		r.Post("/users/{id}/premium", usersHandler.SetPremium)
		r.Post("/users/{id}/diamonds", usersHandler.GrantDiamonds)

		r.Get("/matches", matchesHandler.List)
		r.Get("/matches/stats", matchesHandler.Stats)

		r.Get("/reports", moderationHandler.List)
		r.Get("/reports/counts", moderationHandler.Counts)
		r.Post("/reports/{id}/status", moderationHandler.UpdateStatus)

		r.Get("/withdrawals", withdrawalsHandler.List)
		r.Get("/withdrawals/stats", withdrawalsHandler.Stats)
		r.Post("/withdrawals/{id}/status", withdrawalsHandler.UpdateStatus)

		r.Get("/premium/signups", premiumHandler.ListSignups)
		r.Post("/premium/signups/{id}/approve", premiumHandler.Approve)
		r.Post("/premium/signups/{id}/reject", premiumHandler.Reject)
		r.Get("/premium/users", premiumHandler.ListUsers)
		r.Post("/premium/users/{id}/deactivate", premiumHandler.Deactivate)

		r.Get("/winners", winnersHandler.List)
		r.Post("/winners", winnersHandler.Add)
		r.Get("/winners/stats", winnersHandler.Stats)
		r.Get("/winners/users", winnersHandler.SearchUsers)
		r.Post("/winners/{id}/promo", winnersHandler.SetPromoPosted)
	})
}
