package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/hszk-dev/vidtube/internal/config"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/queue"
	"github.com/hszk-dev/vidtube/internal/infrastructure/storage"
	"github.com/hszk-dev/vidtube/internal/mediastore"
	"github.com/hszk-dev/vidtube/internal/transcoder"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize infrastructure clients
	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO")

	queueCfg := queue.DefaultClientConfig(cfg.RabbitMQ.URL())
	queueCfg.MaxRetries = cfg.Worker.MaxRetries
	queueClient, err := queue.NewClient(ctx, queueCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	media := mediastore.New(
		storageClient,
		transcoder.NewFFmpegProcessor(transcoder.FFmpegConfig{
			FFmpegPath:  cfg.Media.FFmpegPath,
			FFprobePath: cfg.Media.FFprobePath,
		}),
		mediastore.Config{
			PublicBaseURL:      cfg.MinIO.PublicBaseURL,
			TempDir:            cfg.Media.TempDir,
			BreakerMaxFailures: cfg.Breaker.MaxFailures,
			BreakerInterval:    cfg.Breaker.Interval,
			BreakerTimeout:     cfg.Breaker.Timeout,
		},
	)

	cleanupSvc := usecase.NewMediaCleanupService(media, usecase.MediaCleanupServiceConfig{
		RemovalsPerSecond: cfg.Worker.RemovalsPerSecond,
		RemovalBurst:      cfg.Worker.RemovalBurst,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// WaitGroup to track in-flight tasks
	var wg sync.WaitGroup

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting worker, consuming media cleanup tasks")
		err := queueClient.ConsumeMediaCleanup(ctx, func(task repository.MediaCleanupTask) error {
			wg.Add(1)
			defer wg.Done()

			logger.Info("processing task",
				slog.String("video_id", task.VideoID.String()),
				slog.Int("urls", len(task.URLs)),
				slog.Int("retry_count", task.RetryCount),
			)

			// Removals in flight finish even after shutdown begins.
			if err := cleanupSvc.ProcessTask(context.WithoutCancel(ctx), task); err != nil {
				logger.Error("task processing failed",
					slog.String("video_id", task.VideoID.String()),
					slog.Int("retry_count", task.RetryCount),
					slog.String("error", err.Error()),
				)
				return err
			}
			return nil
		})
		if err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("consumer error: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Worker.ShutdownTimeout)
	defer shutdownCancel()

	// Stop consuming new messages
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all in-flight tasks completed")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, some tasks may not have completed")
	}

	logger.Info("worker stopped")
	return nil
}
