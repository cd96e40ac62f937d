package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// MediaCleanupServiceConfig holds configuration for MediaCleanupService.
type MediaCleanupServiceConfig struct {
	// RemovalsPerSecond throttles object removals so a backlog of cleanup
	// tasks does not saturate object storage.
	RemovalsPerSecond float64
	RemovalBurst      int
}

// DefaultMediaCleanupServiceConfig returns the default configuration.
func DefaultMediaCleanupServiceConfig() MediaCleanupServiceConfig {
	return MediaCleanupServiceConfig{
		RemovalsPerSecond: 10,
		RemovalBurst:      5,
	}
}

// MediaCleanupService removes media left behind by deleted videos.
type MediaCleanupService interface {
	// ProcessTask removes every URL in the task.
	// Returns an error when any removal failed so the task is retried.
	ProcessTask(ctx context.Context, task repository.MediaCleanupTask) error
}

type mediaCleanupService struct {
	media   repository.MediaStore
	limiter *rate.Limiter
}

// NewMediaCleanupService creates a new MediaCleanupService instance.
func NewMediaCleanupService(media repository.MediaStore, cfg MediaCleanupServiceConfig) MediaCleanupService {
	limit := rate.Limit(cfg.RemovalsPerSecond)
	if cfg.RemovalsPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RemovalBurst
	if burst < 1 {
		burst = 1
	}

	return &mediaCleanupService{
		media:   media,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (s *mediaCleanupService) ProcessTask(ctx context.Context, task repository.MediaCleanupTask) error {
	var errs []error
	for _, url := range task.URLs {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for removal slot: %w", err)
		}

		if err := s.media.Remove(ctx, url); err != nil {
			metrics.MediaCleanupTotal.WithLabelValues(metrics.CleanupStageWorker, metrics.CleanupError).Inc()
			slog.Warn("media removal failed",
				"video_id", task.VideoID,
				"url", url,
				"retry_count", task.RetryCount,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("remove %s: %w", url, err))
			continue
		}
		metrics.MediaCleanupTotal.WithLabelValues(metrics.CleanupStageWorker, metrics.CleanupSuccess).Inc()
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	slog.Info("media cleanup completed",
		"video_id", task.VideoID,
		"removed", len(task.URLs),
	)
	return nil
}
