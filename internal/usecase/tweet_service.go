package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
)

// TweetService manages short text posts.
type TweetService interface {
	CreateTweet(ctx context.Context, actor uuid.UUID, content string) (*model.Tweet, error)
	GetTweet(ctx context.Context, tweetID uuid.UUID) (*model.Tweet, error)
	UpdateTweet(ctx context.Context, actor, tweetID uuid.UUID, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, actor, tweetID uuid.UUID) (*model.Tweet, error)

	// UserTweets lists a user's tweets, newest first.
	// Returns ErrNotFound for an unknown user.
	UserTweets(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Tweet], error)
}

type tweetService struct {
	tweets repository.TweetRepository
	users  repository.UserRepository
	views  repository.ViewRepository
}

// NewTweetService creates a new TweetService instance.
func NewTweetService(
	tweets repository.TweetRepository,
	users repository.UserRepository,
	views repository.ViewRepository,
) TweetService {
	return &tweetService{
		tweets: tweets,
		users:  users,
		views:  views,
	}
}

func (s *tweetService) CreateTweet(ctx context.Context, actor uuid.UUID, content string) (*model.Tweet, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	tweet, err := model.NewTweet(actor, content)
	if err != nil {
		return nil, err
	}

	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}
	return tweet, nil
}

func (s *tweetService) GetTweet(ctx context.Context, tweetID uuid.UUID) (*model.Tweet, error) {
	return s.tweets.GetByID(ctx, tweetID)
}

func (s *tweetService) UpdateTweet(ctx context.Context, actor, tweetID uuid.UUID, content string) (*model.Tweet, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	text, err := model.ValidateContent(content)
	if err != nil {
		return nil, err
	}

	tweet, err := s.tweets.UpdateOwned(ctx, tweetID, actor, text)
	return tweet, ownership("tweet", err)
}

func (s *tweetService) DeleteTweet(ctx context.Context, actor, tweetID uuid.UUID) (*model.Tweet, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	tweet, err := s.tweets.DeleteOwned(ctx, tweetID, actor)
	return tweet, ownership("tweet", err)
}

func (s *tweetService) UserTweets(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Tweet], error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return pagination.Page[model.Tweet]{}, err
	}
	return s.views.UserTweets(ctx, userID, req)
}
