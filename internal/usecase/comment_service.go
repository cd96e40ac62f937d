package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
)

// CommentService manages comments on videos.
type CommentService interface {
	// AddComment attaches a comment to a published video.
	AddComment(ctx context.Context, actor, videoID uuid.UUID, content string) (*model.Comment, error)
	UpdateComment(ctx context.Context, actor, commentID uuid.UUID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, actor, commentID uuid.UUID) (*model.Comment, error)

	// VideoComments lists a video's comments, newest first.
	VideoComments(ctx context.Context, videoID uuid.UUID, req pagination.Request) (pagination.Page[model.CommentWithOwner], error)
}

type commentService struct {
	comments repository.CommentRepository
	views    repository.ViewRepository
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(comments repository.CommentRepository, views repository.ViewRepository) CommentService {
	return &commentService{
		comments: comments,
		views:    views,
	}
}

func (s *commentService) AddComment(ctx context.Context, actor, videoID uuid.UUID, content string) (*model.Comment, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	comment, err := model.NewComment(actor, videoID, content)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actor, commentID uuid.UUID, content string) (*model.Comment, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	text, err := model.ValidateContent(content)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.UpdateOwned(ctx, commentID, actor, text)
	return comment, ownership("comment", err)
}

func (s *commentService) DeleteComment(ctx context.Context, actor, commentID uuid.UUID) (*model.Comment, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	comment, err := s.comments.DeleteOwned(ctx, commentID, actor)
	return comment, ownership("comment", err)
}

func (s *commentService) VideoComments(ctx context.Context, videoID uuid.UUID, req pagination.Request) (pagination.Page[model.CommentWithOwner], error) {
	return s.views.VideoComments(ctx, videoID, req)
}
