package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/cache"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
	"github.com/hszk-dev/vidtube/internal/pagination"
)

// CachedVideoServiceConfig holds configuration for CachedVideoService.
type CachedVideoServiceConfig struct {
	// CacheTTL is the TTL for cached video records.
	CacheTTL time.Duration
}

// DefaultCachedVideoServiceConfig returns the default configuration.
func DefaultCachedVideoServiceConfig() CachedVideoServiceConfig {
	return CachedVideoServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedVideoService wraps VideoService with caching of published videos.
// It implements the decorator pattern to add caching without modifying the original service.
// Only GetVideo reads the cache; every owner mutation invalidates it.
// View counts in cached entries may lag by up to the TTL.
type cachedVideoService struct {
	delegate VideoService
	cache    cache.VideoCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedVideoService creates a new CachedVideoService wrapping the provided VideoService.
func NewCachedVideoService(
	delegate VideoService,
	videoCache cache.VideoCache,
	cfg CachedVideoServiceConfig,
) VideoService {
	return &cachedVideoService{
		delegate: delegate,
		cache:    videoCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// PublishVideo delegates to the underlying service.
func (s *cachedVideoService) PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	return s.delegate.PublishVideo(ctx, input)
}

// GetVideo retrieves a video with caching.
// Uses singleflight to prevent cache stampede on concurrent requests for the same video.
// The flight key includes the actor because a draft is visible to its owner only.
func (s *cachedVideoService) GetVideo(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error) {
	key := videoID.String() + ":" + actor.String()
	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.getVideoWithCache(ctx, actor, videoID)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	// copy so callers cannot mutate a value shared with other flights
	video := *result.(*model.VideoWithOwner)
	return &video, nil
}

// getVideoWithCache implements the cache-aside pattern.
// The cache generation is read before the store so an invalidation that
// lands while the store read is in flight discards the stale Set.
func (s *cachedVideoService) getVideoWithCache(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error) {
	video, err := s.cache.Get(ctx, videoID)
	if err != nil {
		// Log cache error but continue to database
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		slog.Warn("cache get failed, falling back to database",
			"video_id", videoID,
			"error", err,
		)
	}

	if video != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeRedis).Inc()
		return video, nil
	}
	if err == nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeRedis).Inc()
	}

	version, versionErr := s.cache.Version(ctx, videoID)
	if versionErr != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		slog.Warn("cache version read failed, serving without caching",
			"video_id", videoID,
			"error", versionErr,
		)
	}

	video, err = s.delegate.GetVideo(ctx, actor, videoID)
	if err != nil {
		return nil, err
	}
	if versionErr != nil {
		return video, nil
	}

	// drafts are skipped by the cache itself
	stored, err := s.cache.Set(ctx, video, s.cacheTTL, version)
	switch {
	case err != nil:
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		slog.Warn("failed to cache video",
			"video_id", videoID,
			"error", err,
		)
	case stored:
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
	case video.IsPublished:
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusStale, metrics.CacheTypeRedis).Inc()
	}

	return video, nil
}

func (s *cachedVideoService) UpdateVideo(ctx context.Context, actor, videoID uuid.UUID, input UpdateVideoInput) (*model.Video, error) {
	video, err := s.delegate.UpdateVideo(ctx, actor, videoID, input)
	if err == nil {
		s.invalidate(ctx, videoID)
	}
	return video, err
}

func (s *cachedVideoService) TogglePublish(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error) {
	video, err := s.delegate.TogglePublish(ctx, actor, videoID)
	if err == nil {
		s.invalidate(ctx, videoID)
	}
	return video, err
}

func (s *cachedVideoService) DeleteVideo(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error) {
	video, err := s.delegate.DeleteVideo(ctx, actor, videoID)
	if err == nil {
		s.invalidate(ctx, videoID)
	}
	return video, err
}

// RecordView delegates without invalidating; see the type comment.
func (s *cachedVideoService) RecordView(ctx context.Context, actor, videoID uuid.UUID) (int64, error) {
	return s.delegate.RecordView(ctx, actor, videoID)
}

func (s *cachedVideoService) ListVideos(ctx context.Context, query repository.VideoFeedQuery, req pagination.Request) (pagination.Page[model.VideoWithOwner], error) {
	return s.delegate.ListVideos(ctx, query, req)
}

// invalidate removes a video from the cache and fences out in-flight fills.
// Cache invalidation failure is non-critical; the entry expires with its TTL.
func (s *cachedVideoService) invalidate(ctx context.Context, videoID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, videoID); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError, metrics.CacheTypeRedis).Inc()
		slog.Warn("failed to invalidate video cache",
			"video_id", videoID,
			"error", err,
		)
		return
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess, metrics.CacheTypeRedis).Inc()
}
