package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// VideoRepository defines video persistence. Every method taking an owner
// applies the ownership filter in the same statement as the mutation.
type VideoRepository interface {
	// Create persists a new video.
	// Returns ErrDuplicate if the ID is already taken.
	Create(ctx context.Context, video *model.Video) error

	// GetVisible returns the video with its owner summary when it is
	// published or owned by actor. actor may be uuid.Nil.
	GetVisible(ctx context.Context, id, actor uuid.UUID) (*model.VideoWithOwner, error)

	// UpdateOwned applies non-empty fields of changes.
	// Returns ErrNotFound if the video does not exist or is not owned by owner.
	UpdateOwned(ctx context.Context, id, owner uuid.UUID, changes model.VideoChanges) (*model.Video, error)

	// TogglePublishOwned flips is_published.
	TogglePublishOwned(ctx context.Context, id, owner uuid.UUID) (*model.Video, error)

	// DeleteOwned removes the video and returns the deleted row so its media
	// can be cleaned up.
	DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*model.Video, error)

	// IncrementViews atomically adds one view to a video visible to actor
	// and returns the new count.
	IncrementViews(ctx context.Context, id, actor uuid.UUID) (int64, error)
}
