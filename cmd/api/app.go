package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/adapters/ai"
	"github.com/comitanigiacomo/habitquest/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/habitquest/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habitquest/internal/adapters/repository"
	"github.com/comitanigiacomo/habitquest/internal/config"
	"github.com/comitanigiacomo/habitquest/internal/core/domain"
	"github.com/comitanigiacomo/habitquest/internal/core/services"
	"github.com/comitanigiacomo/habitquest/internal/core/workers"
)

// app is the fully wired server. Close stops the insight worker and releases
// connections.
type app struct {
	router  *gin.Engine
	worker  *workers.InsightWorker
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func openSQLStore(ctx context.Context, cfg *config.Config, driver, dsn string) (*repository.SQLStore, *sqlx.DB, error) {
	db, err := repository.OpenSQL(driver, dsn)
	if err != nil {
		return nil, nil, err
	}

	store := repository.NewSQLStore(db, cfg.Storage.Table)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, db, nil
}

type storage struct {
	kv     domain.KVStore
	pinger adapterHTTP.Pinger
	redis  *redis.Client
}

func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger, a *app) (*storage, error) {
	var rdb *redis.Client
	if cfg.Redis.Enabled || cfg.Storage.Driver == config.DriverRedis {
		var err error
		rdb, err = cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		logger.Info("redis connected", zap.String("host", cfg.Redis.Host))
	}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return &storage{kv: repository.NewInMemoryStore(), redis: rdb}, nil
	case config.DriverRedis:
		return &storage{kv: cache.NewRedisStore(rdb, cfg.Redis.Prefix), redis: rdb}, nil
	}

	driver, dsn, ok := cfg.SQLDriver()
	if !ok {
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	sqlStore, db, err := openSQLStore(ctx, cfg, driver, dsn)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = db.Close() })
	logger.Info("database connected", zap.String("driver", driver))

	s := &storage{kv: sqlStore, pinger: sqlStore, redis: rdb}
	if rdb != nil {
		s.kv = repository.NewCachedStore(sqlStore, rdb, config.Duration(cfg.Storage.CacheTTL, 30*time.Minute), logger)
	}
	return s, nil
}

func newGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) domain.Generator {
	if cfg.Insight.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, insights will use fallback content")
		return nil
	}

	gen, err := ai.NewGeminiGenerator(ctx, cfg.Insight.APIKey, cfg.Insight.Model)
	if err != nil {
		logger.Error("gemini client unavailable, insights will use fallback content", zap.Error(err))
		return nil
	}
	return gen
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{}

	store, err := openStorage(ctx, cfg, logger, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		a.Close()
		return nil, err
	}
	clock := services.NewClock(loc)
	insightTimeout := config.Duration(cfg.Insight.Timeout, 30*time.Second)

	users := repository.NewKVUserRepository(store.kv, logger)
	habits := repository.NewKVHabitRepository(store.kv, logger)
	logs := repository.NewKVHabitLogRepository(store.kv, logger)
	achievements := repository.NewKVAchievementRepository(store.kv, logger)
	insightCache := repository.NewKVInsightCache(store.kv)
	revocations := repository.NewKVRevocationRepository(store.kv)

	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, config.Duration(cfg.Auth.TokenTTL, 72*time.Hour), users, revocations)
	auth := services.NewAuthService(users, tokens, logger)
	progress := services.NewProgressService(habits, logs, achievements, clock, logger)
	stats := services.NewStatsService(habits, logs, clock)
	insights := services.NewInsightService(habits, logs, insightCache, newGenerator(ctx, cfg, logger), clock, insightTimeout, logger)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	a.worker = workers.NewInsightWorker(insights, insightTimeout, logger)
	a.worker.Start(workerCtx)
	a.closers = append(a.closers, func() {
		cancelWorker()
		<-a.worker.Done()
	})

	habitSvc := services.NewHabitService(habits, logs, progress, a.worker, logger)

	deps := adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(auth),
		HabitHandler:    adapterHTTP.NewHabitHandler(habitSvc),
		ProgressHandler: adapterHTTP.NewProgressHandler(progress),
		StatsHandler:    adapterHTTP.NewStatsHandler(stats),
		InsightHandler:  adapterHTTP.NewInsightHandler(insights),
		TokenValidator:  tokens,
		Store:           store.pinger,
		Redis:           store.redis,
		Logger:          logger,
		StartTime:       time.Now(),
	}
	a.router = adapterHTTP.NewRouter(deps)

	return a, nil
}
