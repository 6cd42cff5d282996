package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"mtogo/auth/internal/cache"
	"mtogo/auth/internal/config"
	"mtogo/auth/internal/log"
	"mtogo/auth/internal/queue"
	"mtogo/auth/internal/storage"
	"mtogo/auth/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level).With().Str("component", "audit-worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer client.Close()

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Warn().Err(err).Str("bucket", objectStore.Bucket()).Msg("ensure bucket failed")
	}

	archiver := tasks.NewArchiver(objectStore, cfg.Audit.BatchSize, logger)
	consumer := queue.NewConsumer(client, cfg.Audit, logger, archiver)
	if err := consumer.EnsureGroup(ctx); err != nil {
		logger.Fatal().Err(err).Msg("consumer group setup failed")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("consumer stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")
	<-done

	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := archiver.Flush(flushCtx); err != nil {
		logger.Error().Err(err).Int("pending", archiver.Pending()).Msg("final audit flush failed")
	}
}
