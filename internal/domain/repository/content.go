package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// CommentRepository persists comments.
type CommentRepository interface {
	// Create inserts the comment if its video is published.
	// Returns ErrNotFound otherwise.
	Create(ctx context.Context, comment *model.Comment) error

	UpdateOwned(ctx context.Context, id, owner uuid.UUID, content string) (*model.Comment, error)
	DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*model.Comment, error)
}

// TweetRepository persists tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error)
	UpdateOwned(ctx context.Context, id, owner uuid.UUID, content string) (*model.Tweet, error)
	DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*model.Tweet, error)
}

// PlaylistRepository persists playlists. Membership changes are set
// operations: adding a present video or removing an absent one succeeds
// without changing the list.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	GetOwned(ctx context.Context, id, owner uuid.UUID) (*model.Playlist, error)
	// UpdateOwned replaces both fields; an empty description clears it.
	UpdateOwned(ctx context.Context, id, owner uuid.UUID, name, description string) (*model.Playlist, error)
	DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*model.Playlist, error)

	// AddVideoOwned appends videoID when the video is visible to owner.
	// Returns ErrNotFound if either the playlist or the video fails its check.
	AddVideoOwned(ctx context.Context, id, owner, videoID uuid.UUID) (*model.Playlist, error)
	RemoveVideoOwned(ctx context.Context, id, owner, videoID uuid.UUID) (*model.Playlist, error)
}

// UserRepository reads profiles owned by the identity provider.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
