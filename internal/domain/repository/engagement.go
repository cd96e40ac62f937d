package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
)

// LikeRepository stores like relationships.
type LikeRepository interface {
	// Delete removes the like of target by likedBy, reporting whether one existed.
	Delete(ctx context.Context, likedBy uuid.UUID, target model.LikeTarget) (bool, error)

	// Insert creates the like if the target is visible to its liker.
	// Returns ErrNotFound if the target is missing or hidden, and
	// ErrDuplicate if the like already exists.
	Insert(ctx context.Context, like *model.Like) error
}

// SubscriptionRepository stores subscriber to channel relationships.
type SubscriptionRepository interface {
	// Delete removes the subscription, reporting whether one existed.
	Delete(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)

	// Insert creates the subscription if the channel exists.
	// Returns ErrNotFound for an unknown channel and ErrDuplicate if the
	// subscription already exists.
	Insert(ctx context.Context, sub *model.Subscription) error
}
