// Package stats computes the dashboard and analytics aggregates. All
// folding is done by pure functions over timestamps and categorical
// values pulled from the gateway stores; the service only orchestrates
// the reads and keeps each metric independent of its neighbours.
package stats

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yansassi23/upduoadm/internal/domain/timerange"
	pgrepo "github.com/yansassi23/upduoadm/internal/repo/postgres"
)

const (
	SnapshotKeyOverview  = "overview"
	SnapshotKeyAnalytics = "analytics"

	activeWindowDays = 7
)

type ProfileStore interface {
	CountCreatedSince(ctx context.Context, since *time.Time) (int, error)
	CountPremiumSince(ctx context.Context, since *time.Time) (int, error)
	CountActiveSince(ctx context.Context, since time.Time) (int, error)
	SumDiamondsSince(ctx context.Context, since *time.Time) (int64, error)
	SignupsSince(ctx context.Context, since time.Time) ([]pgrepo.SignupRecord, error)
	CitiesSince(ctx context.Context, since *time.Time) ([]string, error)
	RanksSince(ctx context.Context, since *time.Time) ([]string, error)
}

type MatchStore interface {
	CountSince(ctx context.Context, since *time.Time) (int, error)
	CreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

type MessageStore interface {
	CountSince(ctx context.Context, since *time.Time) (int, error)
	CreatedAtSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

type SnapshotStore interface {
	Put(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, target any) error
}

// Overview is the headline card row of the dashboard.
type Overview struct {
	Range         timerange.Range `json:"range"`
	TotalUsers    int             `json:"totalUsers"`
	ActiveUsers   int             `json:"activeUsers"`
	TotalMatches  int             `json:"totalMatches"`
	TotalMessages int             `json:"totalMessages"`
	TodayMatches  int             `json:"todayMatches"`
	TodaySignups  int             `json:"todaySignups"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}

// Analytics is the full aggregate set of the analytics view.
type Analytics struct {
	Range            timerange.Range  `json:"range"`
	TotalUsers       int              `json:"totalUsers"`
	PremiumUsers     int              `json:"premiumUsers"`
	TotalMatches     int              `json:"totalMatches"`
	TotalMessages    int              `json:"totalMessages"`
	TotalDiamonds    int64            `json:"totalDiamonds"`
	Ratios           Ratios           `json:"ratios"`
	UserGrowth       []GrowthPoint    `json:"userGrowth"`
	CityDistribution []CategoryCount  `json:"cityDistribution"`
	RankDistribution []CategoryCount  `json:"rankDistribution"`
	DailyActivity    []ActivityBucket `json:"dailyActivity"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}

type Config struct {
	SnapshotTTL time.Duration
	// ActivityCapDays bounds the bucketed series for the unbounded
	// range; total counters are unaffected.
	ActivityCapDays int
}

type Dependencies struct {
	Profiles  ProfileStore
	Matches   MatchStore
	Messages  MessageStore
	Snapshots SnapshotStore
	Logger    *zap.Logger
}

type Service struct {
	profiles  ProfileStore
	matches   MatchStore
	messages  MessageStore
	snapshots SnapshotStore
	logger    *zap.Logger
	cfg       Config
	guard     latestGuard
	now       func() time.Time
}

func NewService(deps Dependencies, cfg Config) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = 10 * time.Minute
	}
	if cfg.ActivityCapDays <= 0 {
		cfg.ActivityCapDays = timerange.RangeAll.Days()
	}
	return &Service{
		profiles:  deps.Profiles,
		matches:   deps.Matches,
		messages:  deps.Messages,
		snapshots: deps.Snapshots,
		logger:    deps.Logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Overview loads the dashboard cards for the given range. Each metric
// is fetched independently; a failed read degrades that one card to
// zero instead of failing the whole view.
func (s *Service) Overview(ctx context.Context, rng timerange.Range) (Overview, error) {
	now := s.now()
	since := rng.Start(now)
	todayStart := timerange.RangeToday.Start(now)

	overview := Overview{Range: rng, GeneratedAt: now}
	s.gather(ctx,
		metric("total users", func(ctx context.Context) error {
			var err error
			overview.TotalUsers, err = s.profiles.CountCreatedSince(ctx, since)
			return err
		}),
		metric("active users", func(ctx context.Context) error {
			var err error
			overview.ActiveUsers, err = s.profiles.CountActiveSince(ctx, now.AddDate(0, 0, -activeWindowDays))
			return err
		}),
		metric("total matches", func(ctx context.Context) error {
			var err error
			overview.TotalMatches, err = s.matches.CountSince(ctx, since)
			return err
		}),
		metric("total messages", func(ctx context.Context) error {
			var err error
			overview.TotalMessages, err = s.messages.CountSince(ctx, since)
			return err
		}),
		metric("today matches", func(ctx context.Context) error {
			var err error
			overview.TodayMatches, err = s.matches.CountSince(ctx, todayStart)
			return err
		}),
		metric("today signups", func(ctx context.Context) error {
			var err error
			overview.TodaySignups, err = s.profiles.CountCreatedSince(ctx, todayStart)
			return err
		}),
	)
	return overview, nil
}

// Analytics loads totals, derived ratios, the growth series and the
// categorical distributions for the given range. Bucketed series are
// capped at the range's day window even for the unbounded range.
func (s *Service) Analytics(ctx context.Context, rng timerange.Range) (Analytics, error) {
	now := s.now()
	since := rng.Start(now)
	activityDays := s.activityDays(rng)
	activitySince := since
	if activitySince == nil {
		cutoff := now.AddDate(0, 0, -activityDays)
		activitySince = &cutoff
	}

	var (
		signups                  []pgrepo.SignupRecord
		cities, ranks            []string
		matchTimes, messageTimes []time.Time
		signupTimes              []time.Time
	)
	report := Analytics{Range: rng, GeneratedAt: now}

	s.gather(ctx,
		metric("total users", func(ctx context.Context) error {
			var err error
			report.TotalUsers, err = s.profiles.CountCreatedSince(ctx, since)
			return err
		}),
		metric("premium users", func(ctx context.Context) error {
			var err error
			report.PremiumUsers, err = s.profiles.CountPremiumSince(ctx, since)
			return err
		}),
		metric("total matches", func(ctx context.Context) error {
			var err error
			report.TotalMatches, err = s.matches.CountSince(ctx, since)
			return err
		}),
		metric("total messages", func(ctx context.Context) error {
			var err error
			report.TotalMessages, err = s.messages.CountSince(ctx, since)
			return err
		}),
		metric("total diamonds", func(ctx context.Context) error {
			var err error
			report.TotalDiamonds, err = s.profiles.SumDiamondsSince(ctx, since)
			return err
		}),
		metric("signup series", func(ctx context.Context) error {
			var err error
			signups, err = s.profiles.SignupsSince(ctx, *activitySince)
			return err
		}),
		metric("city distribution", func(ctx context.Context) error {
			var err error
			cities, err = s.profiles.CitiesSince(ctx, since)
			return err
		}),
		metric("rank distribution", func(ctx context.Context) error {
			var err error
			ranks, err = s.profiles.RanksSince(ctx, since)
			return err
		}),
		metric("match activity", func(ctx context.Context) error {
			var err error
			matchTimes, err = s.matches.CreatedAtSince(ctx, *activitySince)
			return err
		}),
		metric("message activity", func(ctx context.Context) error {
			var err error
			messageTimes, err = s.messages.CreatedAtSince(ctx, *activitySince)
			return err
		}),
	)

	signupTimes = make([]time.Time, 0, len(signups))
	for _, signup := range signups {
		signupTimes = append(signupTimes, signup.CreatedAt)
	}

	report.Ratios = DeriveRatios(report.TotalUsers, report.PremiumUsers, report.TotalMatches, report.TotalMessages)
	report.UserGrowth = GrowthSeries(signups)
	report.CityDistribution = TopCities(cities)
	report.RankDistribution = RankDistribution(ranks)
	report.DailyActivity = BucketDaily(now, activityDays, matchTimes, messageTimes, signupTimes)
	return report, nil
}

// activityDays is the bucketed window width; the unbounded range uses
// the configured cap instead of a table-wide series.
func (s *Service) activityDays(rng timerange.Range) int {
	if rng == timerange.RangeAll {
		return s.cfg.ActivityCapDays
	}
	return rng.Days()
}

// RefreshSnapshots recomputes the unbounded-range overview and
// analytics and publishes them to the snapshot store. Overlapping
// refreshes are resolved in favour of the most recently started one;
// a superseded run discards its result.
func (s *Service) RefreshSnapshots(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	ticket := s.guard.Begin()

	overview, err := s.Overview(ctx, timerange.RangeAll)
	if err != nil {
		return err
	}
	analytics, err := s.Analytics(ctx, timerange.RangeAll)
	if err != nil {
		return err
	}

	if !s.guard.Commit(ticket) {
		s.logger.Debug("snapshot refresh superseded, discarding result")
		return nil
	}
	if err := s.snapshots.Put(ctx, SnapshotKeyOverview, overview, s.cfg.SnapshotTTL); err != nil {
		return err
	}
	return s.snapshots.Put(ctx, SnapshotKeyAnalytics, analytics, s.cfg.SnapshotTTL)
}

// CachedOverview serves the published overview snapshot, recomputing
// on a miss.
func (s *Service) CachedOverview(ctx context.Context) (Overview, error) {
	var overview Overview
	if s.snapshots != nil {
		if err := s.snapshots.Get(ctx, SnapshotKeyOverview, &overview); err == nil {
			return overview, nil
		}
	}
	return s.Overview(ctx, timerange.RangeAll)
}

type task struct {
	name string
	run  func(ctx context.Context) error
}

func metric(name string, run func(ctx context.Context) error) task {
	return task{name: name, run: run}
}

// gather runs the tasks concurrently. Each task writes a distinct
// field of the result, so no locking is needed beyond the WaitGroup.
func (s *Service) gather(ctx context.Context, tasks ...task) {
	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(t task) {
			defer wg.Done()
			if err := t.run(ctx); err != nil {
				s.logger.Warn("metric load failed, reporting zero value",
					zap.String("metric", t.name),
					zap.Error(err))
			}
		}(t)
	}
	wg.Wait()
}
