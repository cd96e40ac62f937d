package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// VideoCache defines the interface for caching published video records.
// Implementations should handle serialization/deserialization transparently.
type VideoCache interface {
	// Get retrieves a video from cache by ID.
	// Returns nil, nil if the video is not found in cache (cache miss).
	Get(ctx context.Context, videoID uuid.UUID) (*model.VideoWithOwner, error)

	// Version returns the invalidation generation of a video.
	// Read it before loading the record that will be passed to Set.
	Version(ctx context.Context, videoID uuid.UUID) (int64, error)

	// Set stores a video with the specified TTL if the video's generation
	// still equals version, and reports whether it was stored.
	// Unpublished videos are never stored.
	Set(ctx context.Context, video *model.VideoWithOwner, ttl time.Duration, version int64) (bool, error)

	// Invalidate removes a video from cache and bumps its generation so a
	// Set that loaded the record earlier is discarded.
	// Returns nil if the video was not in cache.
	Invalidate(ctx context.Context, videoID uuid.UUID) error
}

// RateLimiter counts hits per key inside a fixed window.
type RateLimiter interface {
	// Allow records a hit for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
}
