// Package apiapp assembles the admin dashboard API: storage, services,
// the snapshot refresh job and the HTTP server.
package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yansassi23/upduoadm/internal/config"
	"github.com/yansassi23/upduoadm/internal/infra/telegram"
	"github.com/yansassi23/upduoadm/internal/jobs/refresh"
	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
	redrepo "github.com/yansassi23/upduoadm/internal/repo/redis"
	"github.com/yansassi23/upduoadm/internal/services/enrich"
	matchessvc "github.com/yansassi23/upduoadm/internal/services/matches"
	modsvc "github.com/yansassi23/upduoadm/internal/services/moderation"
	premiumsvc "github.com/yansassi23/upduoadm/internal/services/premium"
	statssvc "github.com/yansassi23/upduoadm/internal/services/stats"
	userssvc "github.com/yansassi23/upduoadm/internal/services/users"
	winnerssvc "github.com/yansassi23/upduoadm/internal/services/winners"
	withdrawalssvc "github.com/yansassi23/upduoadm/internal/services/withdrawals"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	refreshJob *refresh.Job
	jobCtx     context.Context
	jobCancel  context.CancelFunc
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	snapshotCache := redrepo.NewSnapshotCache(redisClient)

	profileRepo := pgrepo.NewProfileRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	messageRepo := pgrepo.NewMessageRepo(pool)
	reportRepo := pgrepo.NewReportRepo(pool)
	withdrawalRepo := pgrepo.NewWithdrawalRepo(pool)
	signupRepo := pgrepo.NewPremiumSignupRepo(pool)
	winnerRepo := pgrepo.NewDailyWinnerRepo(pool)

	joiner := enrich.NewJoiner(profileRepo, log)

	statsService := statssvc.NewService(statssvc.Dependencies{
		Profiles:  profileRepo,
		Matches:   matchRepo,
		Messages:  messageRepo,
		Snapshots: snapshotCache,
		Logger:    log,
	}, statssvc.Config{
		SnapshotTTL:     cfg.Dashboard.SnapshotTTL,
		ActivityCapDays: cfg.Dashboard.ActivityCapDays,
	})
	userService := userssvc.NewService(userssvc.Dependencies{
		Pool:     pool,
		Profiles: profileRepo,
	}, userssvc.Config{
		RecentLimit: cfg.Dashboard.RecentUsersLimit,
	})
	matchService := matchessvc.NewService(matchessvc.Dependencies{
		Matches:  matchRepo,
		Searcher: profileRepo,
		Enricher: joiner,
		Logger:   log,
	}, matchessvc.Config{
		RecentLimit: cfg.Dashboard.RecentMatchesLimit,
	})
	moderationService := modsvc.NewService(modsvc.Dependencies{
		Reports:  reportRepo,
		Enricher: joiner,
		Logger:   log,
	}, modsvc.Config{})
	withdrawalService := withdrawalssvc.NewService(withdrawalssvc.Dependencies{
		Withdrawals: withdrawalRepo,
		Enricher:    joiner,
		Logger:      log,
	}, withdrawalssvc.Config{})
	premiumService := premiumsvc.NewService(premiumsvc.Dependencies{
		Pool:     pool,
		Signups:  signupRepo,
		Profiles: profileRepo,
		Logger:   log,
	})

	var announcer winnerssvc.Announcer
	if cfg.Telegram.AnnounceDraws && cfg.Telegram.Token != "" {
		if bot, err := telegram.NewBot(cfg.Telegram.Token); err != nil {
			log.Warn("telegram init failed, winner announcements disabled", zap.Error(err))
		} else {
			announcer = telegram.NewAnnouncer(bot, cfg.Telegram.PromoChatID)
		}
	}
	winnerService := winnerssvc.NewService(winnerssvc.Dependencies{
		Winners:   winnerRepo,
		Searcher:  profileRepo,
		Enricher:  joiner,
		Announcer: announcer,
		Logger:    log,
	}, winnerssvc.Config{
		DefaultPrizeAmount: cfg.Dashboard.DefaultPrizeAmount,
	})

	RegisterRoutes(r, Dependencies{
		StatsService:      statsService,
		UserService:       userService,
		MatchService:      matchService,
		ModerationService: moderationService,
		WithdrawalService: withdrawalService,
		PremiumService:    premiumService,
		WinnerService:     winnerService,
		Logger:            log,
		Config:            cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	jobCtx, jobCancel := context.WithCancel(context.Background())

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		refreshJob: refresh.New(statsService, cfg.Dashboard.SnapshotRefreshInterval, log),
		jobCtx:     jobCtx,
		jobCancel:  jobCancel,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	go a.refreshJob.Loop(a.jobCtx)

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	a.jobCancel()

	var shutdownErr error
	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
