package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"mtogo/auth/internal/audit"
	"mtogo/auth/internal/cache"
	"mtogo/auth/internal/config"
	"mtogo/auth/internal/database"
	"mtogo/auth/internal/geocode"
	"mtogo/auth/internal/handlers"
	"mtogo/auth/internal/jobs"
	"mtogo/auth/internal/log"
	"mtogo/auth/internal/repository"
	"mtogo/auth/internal/server"
	"mtogo/auth/internal/service"
	"mtogo/auth/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level)

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}
	if cfg.Postgres.Migrate {
		if err := database.Migrate(ctx, dbPool); err != nil {
			logger.Fatal().Err(err).Msg("schema migration failed")
		}
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	sessions := session.NewManager(session.NewRedisStore(redisClient), session.Options{
		MaxSessions:   cfg.Session.MaxSessions,
		TTL:           cfg.Session.TTL,
		RememberMeTTL: cfg.Session.RememberMeTTL,
	})

	customers := repository.NewCustomerRepository(dbPool)
	restaurants := repository.NewRestaurantRepository(dbPool)
	admins := repository.NewAdminRepository(dbPool)

	var publisher service.AuditPublisher
	var scheduler *jobs.Scheduler
	if cfg.Audit.Enabled {
		auditPublisher := audit.NewPublisher(redisClient, cfg.Audit.Stream)
		publisher = auditPublisher
		scheduler = jobs.NewScheduler(auditPublisher, cfg.Audit.FlushSchedule, logger)
		if err := scheduler.Start(); err != nil {
			logger.Error().Err(err).Msg("scheduler start failed")
		}
	}

	authService := service.NewAuthService(
		customers,
		restaurants,
		admins,
		sessions,
		geocode.NewNominatim(cfg.Geocoding),
		publisher,
		logger,
	)
	profileService := service.NewProfileService(customers, restaurants)

	handlerSet := handlers.NewHandlerSet(logger, cfg, dbPool, redisClient, authService, profileService)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, dbPool, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	if scheduler != nil {
		select {
		case <-scheduler.Stop().Done():
		case <-shutdownCtx.Done():
			logger.Warn().Msg("scheduler did not stop in time")
		}
	}

	db.Close()
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}

	logger.Info().Msg("server exited cleanly")
}
