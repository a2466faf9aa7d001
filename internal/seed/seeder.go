// Package seed populates the document store from the remote fixture source.
package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/placekeeper/placekeeper/internal/cache"
	"github.com/placekeeper/placekeeper/internal/fixture"
	"github.com/placekeeper/placekeeper/internal/metrics"
	"github.com/placekeeper/placekeeper/internal/model"
	"github.com/placekeeper/placekeeper/internal/repository"
)

// Seed run statuses reported to metrics.
const (
	statusInserted = "inserted"
	statusSkipped  = "skipped"
	statusFailed   = "failed"
	statusReloaded = "reloaded"
)

// Seeder performs bulk loads of the three fixture collections.
type Seeder struct {
	fixtures  *fixture.Client
	repo      *repository.Repository
	cache     *cache.Cache
	logger    *slog.Logger
	metrics   metrics.Recorder
	userLimit int
}

// New creates a Seeder.
func New(fixtures *fixture.Client, repo *repository.Repository, c *cache.Cache, logger *slog.Logger, recorder metrics.Recorder, userLimit int) *Seeder {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Seeder{
		fixtures:  fixtures,
		repo:      repo,
		cache:     c,
		logger:    logger,
		metrics:   recorder,
		userLimit: userLimit,
	}
}

// Run performs a one-time, count-guarded bulk load: each of the three
// collections is filled from the fixture source only when it is empty.
// Seeding is best-effort; fetch or insert failures are logged and never
// propagate to the caller.
func (s *Seeder) Run(ctx context.Context) {
	runID := ulid.Make().String()
	start := time.Now()
	defer func() {
		s.metrics.ObserveSeedDuration(time.Since(start))
	}()

	logger := s.logger.With(slog.String("seed_run_id", runID))
	logger.Info("seed_started")

	ds, err := s.fixtures.FetchAll(ctx)
	if err != nil {
		logger.Error("seed_fetch_failed", slog.String("error", err.Error()))
		s.metrics.IncSeedRun(statusFailed)
		return
	}

	inserted := false

	if ok := s.seedUsers(ctx, logger, ds.Users); ok {
		inserted = true
	}
	if ok := s.seedPosts(ctx, logger, ds.Posts); ok {
		inserted = true
	}
	if ok := s.seedComments(ctx, logger, ds.Comments); ok {
		inserted = true
	}

	if inserted {
		s.invalidateCache(ctx, logger)
		s.metrics.IncSeedRun(statusInserted)
	} else {
		s.metrics.IncSeedRun(statusSkipped)
	}

	logger.Info("seed_finished",
		slog.Bool("inserted", inserted),
		slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
	)
}

// Reload wipes the three collections and loads the limited variant:
// the first userLimit users plus only posts and comments transitively
// reachable from them. It returns the enriched view of the inserted
// users, with posts embedded under users and comments under posts.
// Collections themselves stay normalized.
func (s *Seeder) Reload(ctx context.Context) ([]model.User, error) {
	runID := ulid.Make().String()
	start := time.Now()
	defer func() {
		s.metrics.ObserveSeedDuration(time.Since(start))
	}()

	logger := s.logger.With(slog.String("seed_run_id", runID))
	logger.Info("reload_started", slog.Int("user_limit", s.userLimit))

	ds, err := s.fixtures.FetchAll(ctx)
	if err != nil {
		s.metrics.IncSeedRun(statusFailed)
		return nil, err
	}

	limited := LimitDataset(ds, s.userLimit)

	if _, err := s.repo.DeleteAllComments(ctx); err != nil {
		s.metrics.IncSeedRun(statusFailed)
		return nil, err
	}
	if _, err := s.repo.DeleteAllPosts(ctx); err != nil {
		s.metrics.IncSeedRun(statusFailed)
		return nil, err
	}
	if _, err := s.repo.DeleteAllUsers(ctx); err != nil {
		s.metrics.IncSeedRun(statusFailed)
		return nil, err
	}

	if err := s.repo.InsertUsers(ctx, limited.Users); err != nil {
		s.metrics.IncSeedRun(statusFailed)
		return nil, err
	}
	if err := s.repo.InsertPosts(ctx, limited.Posts); err != nil {
		s.metrics.IncSeedRun(statusFailed)
		return nil, err
	}
	if err := s.repo.InsertComments(ctx, limited.Comments); err != nil {
		s.metrics.IncSeedRun(statusFailed)
		return nil, err
	}

	s.invalidateCache(ctx, logger)
	s.metrics.IncSeedRun(statusReloaded)

	logger.Info("reload_finished",
		slog.Int("users", len(limited.Users)),
		slog.Int("posts", len(limited.Posts)),
		slog.Int("comments", len(limited.Comments)),
	)

	enrichedPosts := AttachComments(limited.Posts, limited.Comments)
	return AttachPosts(limited.Users, enrichedPosts), nil
}

// seedUsers inserts the users dataset when the collection is empty.
// Returns true if documents were inserted.
func (s *Seeder) seedUsers(ctx context.Context, logger *slog.Logger, users []model.User) bool {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		logger.Error("seed_count_failed", slog.String("collection", "users"), slog.String("error", err.Error()))
		return false
	}
	if count > 0 {
		logger.Info("seed_skipped", slog.String("collection", "users"), slog.Int64("existing", count))
		return false
	}

	if err := s.repo.InsertUsers(ctx, users); err != nil {
		logger.Error("seed_insert_failed", slog.String("collection", "users"), slog.String("error", err.Error()))
		return false
	}

	logger.Info("seed_inserted", slog.String("collection", "users"), slog.Int("count", len(users)))
	return true
}

// seedPosts inserts the posts dataset when the collection is empty.
func (s *Seeder) seedPosts(ctx context.Context, logger *slog.Logger, posts []model.Post) bool {
	count, err := s.repo.CountPosts(ctx)
	if err != nil {
		logger.Error("seed_count_failed", slog.String("collection", "posts"), slog.String("error", err.Error()))
		return false
	}
	if count > 0 {
		logger.Info("seed_skipped", slog.String("collection", "posts"), slog.Int64("existing", count))
		return false
	}

	if err := s.repo.InsertPosts(ctx, posts); err != nil {
		logger.Error("seed_insert_failed", slog.String("collection", "posts"), slog.String("error", err.Error()))
		return false
	}

	logger.Info("seed_inserted", slog.String("collection", "posts"), slog.Int("count", len(posts)))
	return true
}

// seedComments inserts the comments dataset when the collection is empty.
func (s *Seeder) seedComments(ctx context.Context, logger *slog.Logger, comments []model.Comment) bool {
	count, err := s.repo.CountComments(ctx)
	if err != nil {
		logger.Error("seed_count_failed", slog.String("collection", "comments"), slog.String("error", err.Error()))
		return false
	}
	if count > 0 {
		logger.Info("seed_skipped", slog.String("collection", "comments"), slog.Int64("existing", count))
		return false
	}

	if err := s.repo.InsertComments(ctx, comments); err != nil {
		logger.Error("seed_insert_failed", slog.String("collection", "comments"), slog.String("error", err.Error()))
		return false
	}

	logger.Info("seed_inserted", slog.String("collection", "comments"), slog.Int("count", len(comments)))
	return true
}

// invalidateCache drops all cached entity documents after a bulk load.
func (s *Seeder) invalidateCache(ctx context.Context, logger *slog.Logger) {
	if s.cache == nil {
		return
	}

	for _, kind := range []cache.Kind{cache.KindUser, cache.KindPost, cache.KindComment} {
		if err := s.cache.InvalidateKind(ctx, kind); err != nil {
			logger.Error("seed_cache_invalidate_failed",
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()),
			)
		}
	}
}
