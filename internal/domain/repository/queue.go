package repository

import (
	"context"

	"github.com/google/uuid"
)

// MediaCleanupTask asks the worker to remove media left behind by a
// deleted video.
type MediaCleanupTask struct {
	VideoID    uuid.UUID `json:"video_id"`
	URLs       []string  `json:"urls"`
	RetryCount int       `json:"retry_count"`
}

// MessageQueue defines the interface for message queue operations.
// Implementations should be provided by the infrastructure layer (e.g., RabbitMQ).
type MessageQueue interface {
	// PublishMediaCleanup enqueues a cleanup task.
	// Used by the API server when inline media removal fails.
	PublishMediaCleanup(ctx context.Context, task MediaCleanupTask) error

	// ConsumeMediaCleanup calls handler for each task until ctx is cancelled.
	// Used by the worker service.
	ConsumeMediaCleanup(ctx context.Context, handler func(task MediaCleanupTask) error) error

	// Close gracefully closes the connection to the message queue.
	Close() error
}
