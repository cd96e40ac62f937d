package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
)

// LikeService manages likes on videos, comments and tweets.
type LikeService interface {
	// ToggleLike likes the target, or removes an existing like.
	// Liking requires the target to be visible to the actor; unliking does not.
	ToggleLike(ctx context.Context, actor uuid.UUID, target model.LikeTarget) (ToggleResult[model.Like], error)

	// LikedVideos lists the videos the actor has liked.
	LikedVideos(ctx context.Context, actor uuid.UUID, req pagination.Request) (pagination.Page[model.LikedVideo], error)
}

type likeService struct {
	likes repository.LikeRepository
	views repository.ViewRepository
}

// NewLikeService creates a new LikeService instance.
func NewLikeService(likes repository.LikeRepository, views repository.ViewRepository) LikeService {
	return &likeService{
		likes: likes,
		views: views,
	}
}

func (s *likeService) ToggleLike(ctx context.Context, actor uuid.UUID, target model.LikeTarget) (ToggleResult[model.Like], error) {
	if actor == uuid.Nil {
		return ToggleResult[model.Like]{}, ErrUnauthenticated
	}

	like, err := model.NewLike(actor, target)
	if err != nil {
		return ToggleResult[model.Like]{}, err
	}

	return toggle(ctx, toggleOps[model.Like]{
		relation: target.Kind().String() + "_like",
		remove: func(ctx context.Context) (bool, error) {
			return s.likes.Delete(ctx, actor, target)
		},
		insert: s.likes.Insert,
	}, like)
}

func (s *likeService) LikedVideos(ctx context.Context, actor uuid.UUID, req pagination.Request) (pagination.Page[model.LikedVideo], error) {
	if actor == uuid.Nil {
		return pagination.Page[model.LikedVideo]{}, ErrUnauthenticated
	}
	return s.views.LikedVideos(ctx, actor, req)
}
