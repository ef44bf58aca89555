package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/metrics"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/core/workers"
)

// app owns every long-lived dependency of the API process.
type app struct {
	router  *gin.Engine
	worker  *workers.StreakWorker
	metrics *metrics.Metrics
	db      *sqlx.DB
	redis   *redis.Client
	log     *logrus.Logger
}

func newApp(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*app, error) {
	startTime := time.Now()

	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}

	a := &app{log: log, metrics: metrics.New()}

	var (
		habitRepo domain.HabitRepository
		userRepo  domain.UserRepository
	)

	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("Using in-memory storage, data is lost on restart")
		habitRepo = repository.NewInMemoryHabitRepository()
		userRepo = repository.NewInMemoryUserRepository()

	default:
		log.Info("Connecting to database...")
		db, err := repository.OpenPostgres(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db

		migrator, err := repository.NewMigrator(db, cfg.MigrationsPath, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := migrator.Up(); err != nil {
			a.Close()
			return nil, err
		}
		log.Info("Database connected successfully")

		habitRepo = repository.NewPostgresHabitRepository(db)
		userRepo = repository.NewPostgresUserRepository(db)
	}

	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = rdb
		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb, cfg.Redis.CacheTTL, log)
	}

	a.worker = workers.NewStreakWorker(habitRepo, a.metrics, opts, log)

	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	habitService := services.NewHabitService(habitRepo, a.worker, opts.Location)
	statsService := services.NewStatsService(habitRepo, opts)

	deps := adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(authService),
		HabitHandler:   adapterHTTP.NewHabitHandler(habitService, a.metrics),
		StatsHandler:   adapterHTTP.NewStatsHandler(statsService),
		CatalogHandler: adapterHTTP.NewCatalogHandler(opts.Milestones),
		TokenValidator: tokenService,
		Metrics:        a.metrics,
		Redis:          a.redis,
		RateLimit: adapterHTTP.RateLimit{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
		},
		Logger:    log,
		StartTime: startTime,
	}
	if a.db != nil {
		deps.DB = a.db
	}

	a.router = adapterHTTP.NewRouter(deps)

	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("Failed to close redis client")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.WithError(err).Warn("Failed to close database")
		}
	}
}
