package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/casedesk/casedesk-api/internal/api"
	"github.com/casedesk/casedesk-api/internal/core/service"
	"github.com/casedesk/casedesk-api/internal/infrastructure/config"
	mongodb "github.com/casedesk/casedesk-api/internal/infrastructure/db/mongo"
	redisdb "github.com/casedesk/casedesk-api/internal/infrastructure/db/redis"
	"github.com/casedesk/casedesk-api/internal/infrastructure/queue"
	"github.com/casedesk/casedesk-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        CaseDesk API
// @version      1.0
// @description  Appointment and case management API with cookie-based session lifecycle.
// @BasePath     /api
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Data stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// The unique email index is load-bearing: it resolves duplicate
	// registration races. Refuse to start without it.
	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := mongodb.NewAppointmentRepository(db).EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure appointment indexes")
	}

	// Registration only creates USER accounts, so the first admin has to be
	// seeded here.
	if err := service.EnsureAdmin(ctx, userRepo, service.AdminSeed{
		Name:       cfg.Admin.Name,
		Email:      cfg.Admin.Email,
		Password:   cfg.Admin.Password,
		BcryptCost: cfg.Auth.BcryptCost,
	}, log); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	// --- Audit pipeline ---
	auditDispatcher := queue.NewAuditDispatcher(0, mongodb.NewAuditRepository(db), log)
	auditDispatcher.Start(ctx)

	// --- HTTP server ---
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	e := api.NewRouter(api.Deps{
		DB:         db,
		Redis:      rdb,
		Tokens:     tokens,
		Audit:      auditDispatcher,
		BcryptCost: cfg.Auth.BcryptCost,
		Secure:     cfg.IsProduction(),
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
