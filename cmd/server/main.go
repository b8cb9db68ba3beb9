package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/facilityops/access-system/internal/api"
	"github.com/facilityops/access-system/internal/core/service"
	"github.com/facilityops/access-system/internal/infrastructure/config"
	mongodb "github.com/facilityops/access-system/internal/infrastructure/db/mongo"
	redisdb "github.com/facilityops/access-system/internal/infrastructure/db/redis"
	"github.com/facilityops/access-system/internal/infrastructure/push"
	"github.com/facilityops/access-system/internal/infrastructure/scheduler"
	"github.com/facilityops/access-system/pkg/logger"
)

func main() {
	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") == "development",
	})

	cfg := config.Load(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage connections ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Repositories ---
	profiles := mongodb.NewProfileRepository(db)
	audit := mongodb.NewAuditRepository(db)
	schedules := mongodb.NewMaintenanceRepository(db)
	credentials := mongodb.NewCredentialRepository(db)

	if err := profiles.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("users index creation failed")
	}
	if err := audit.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("audit_logs index creation failed")
	}
	if err := schedules.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("maintenance_schedules index creation failed")
	}
	if err := credentials.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("credentials index creation failed")
	}

	claims := redisdb.NewClaimStore(rdb)
	dedup := redisdb.NewDedupChecker(rdb)
	gateway := push.NewClient(push.Config{
		URL:     cfg.Push.URL,
		APIKey:  cfg.Push.APIKey,
		Timeout: cfg.Push.Timeout,
	})

	// --- Services ---
	dispatcher := service.NewDispatchService(profiles, gateway, dedup, cfg.Push.BatchesPerSecond, log)
	roleService := service.NewRoleService(profiles, claims, audit, cfg.BootstrapAdminSecret, log)
	hookService := service.NewRepairHookService(dispatcher, log)
	reminderService := service.NewReminderService(schedules, dispatcher, log)
	authService := service.NewAuthService(credentials, claims, cfg.JWTSecret, 24*time.Hour)

	// --- Background reminder scheduler ---
	if cfg.Scheduler.Enabled {
		scheduler.New(reminderService, cfg.Scheduler.Interval, log).Start(ctx)
	} else {
		log.Info().Msg("reminder scheduler disabled")
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Roles:     roleService,
		Hooks:     hookService,
		Reminders: reminderService,
		Auth:      authService,
		Audit:     audit,
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
