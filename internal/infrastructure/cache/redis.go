package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

const (
	// videoCacheKeyPrefix is the prefix for video cache keys in Redis.
	videoCacheKeyPrefix = "video:"

	// videoVersionKeyPrefix is the prefix for per-video invalidation generations.
	videoVersionKeyPrefix = "video-version:"

	// videoVersionTTL must outlive any read in flight.
	videoVersionTTL = 24 * time.Hour
)

// videoJSON is the JSON representation of a VideoWithOwner for caching.
// Using explicit struct avoids coupling to domain model's JSON tags.
type videoJSON struct {
	ID           string  `json:"id"`
	OwnerID      string  `json:"owner_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	VideoURL     string  `json:"video_url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
	Views        int64   `json:"views"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`

	OwnerUsername string `json:"owner_username"`
	OwnerFullName string `json:"owner_full_name"`
	OwnerAvatar   string `json:"owner_avatar"`
}

// RedisVideoCache implements VideoCache using Redis as the backing store.
type RedisVideoCache struct {
	client *redis.Client
}

var _ VideoCache = (*RedisVideoCache)(nil)

// NewRedisVideoCache creates a new Redis-backed video cache.
func NewRedisVideoCache(client *redis.Client) *RedisVideoCache {
	return &RedisVideoCache{
		client: client,
	}
}

// Get retrieves a video from Redis cache.
// Returns nil, nil on cache miss.
func (c *RedisVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.VideoWithOwner, error) {
	key := c.buildKey(videoID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	video, err := c.deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize video: %w", err)
	}

	return video, nil
}

// Version returns the current invalidation generation of a video, 0 if none.
func (c *RedisVideoCache) Version(ctx context.Context, videoID uuid.UUID) (int64, error) {
	v, err := c.client.Get(ctx, c.buildVersionKey(videoID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get version: %w", err)
	}
	return v, nil
}

// Set stores a published video in Redis cache with the specified TTL when
// its generation still equals version. The check and the write run under
// WATCH so an Invalidate between them aborts the write.
// Drafts are skipped so owner-only records never reach the public read path.
func (c *RedisVideoCache) Set(ctx context.Context, video *model.VideoWithOwner, ttl time.Duration, version int64) (bool, error) {
	if !video.IsPublished {
		return false, nil
	}

	data, err := c.serialize(video)
	if err != nil {
		return false, fmt.Errorf("serialize video: %w", err)
	}

	versionKey := c.buildVersionKey(video.ID)
	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.buildKey(video.ID), data, ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, versionKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis set: %w", err)
	}

	return stored, nil
}

// Invalidate bumps the video's generation and removes its entry atomically.
func (c *RedisVideoCache) Invalidate(ctx context.Context, videoID uuid.UUID) error {
	versionKey := c.buildVersionKey(videoID)

	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, versionKey)
	pipe.Expire(ctx, versionKey, videoVersionTTL)
	pipe.Del(ctx, c.buildKey(videoID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}

	return nil
}

// Ping checks Redis connectivity.
func (c *RedisVideoCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// buildKey constructs the Redis key for a video.
func (c *RedisVideoCache) buildKey(videoID uuid.UUID) string {
	return videoCacheKeyPrefix + videoID.String()
}

func (c *RedisVideoCache) buildVersionKey(videoID uuid.UUID) string {
	return videoVersionKeyPrefix + videoID.String()
}

func (c *RedisVideoCache) serialize(video *model.VideoWithOwner) ([]byte, error) {
	v := videoJSON{
		ID:            video.ID.String(),
		OwnerID:       video.OwnerID.String(),
		Title:         video.Title,
		Description:   video.Description,
		VideoURL:      video.VideoURL,
		ThumbnailURL:  video.ThumbnailURL,
		Duration:      video.Duration,
		Views:         video.Views,
		CreatedAt:     video.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:     video.UpdatedAt.Format(time.RFC3339Nano),
		OwnerUsername: video.Owner.Username,
		OwnerFullName: video.Owner.FullName,
		OwnerAvatar:   video.Owner.AvatarURL,
	}
	return json.Marshal(v)
}

func (c *RedisVideoCache) deserialize(data []byte) (*model.VideoWithOwner, error) {
	var v videoJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(v.ID)
	if err != nil {
		return nil, fmt.Errorf("parse video ID: %w", err)
	}

	ownerID, err := uuid.Parse(v.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("parse owner ID: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, v.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &model.VideoWithOwner{
		Video: model.Video{
			ID:           id,
			OwnerID:      ownerID,
			Title:        v.Title,
			Description:  v.Description,
			VideoURL:     v.VideoURL,
			ThumbnailURL: v.ThumbnailURL,
			Duration:     v.Duration,
			Views:        v.Views,
			IsPublished:  true,
			CreatedAt:    createdAt,
			UpdatedAt:    updatedAt,
		},
		Owner: model.UserSummary{
			ID:        ownerID,
			Username:  v.OwnerUsername,
			FullName:  v.OwnerFullName,
			AvatarURL: v.OwnerAvatar,
		},
	}, nil
}
