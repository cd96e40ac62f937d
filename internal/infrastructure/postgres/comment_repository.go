package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

const commentColumns = `id, owner_id, video_id, content, created_at, updated_at`

// CommentRepository implements repository.CommentRepository using PostgreSQL.
type CommentRepository struct {
	db DBTX
}

// NewCommentRepository creates a new CommentRepository instance.
func NewCommentRepository(db DBTX) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts the comment only if its video is published.
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	const query = `
		INSERT INTO comments (id, owner_id, video_id, content, created_at, updated_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4::text, $5::timestamptz, $6::timestamptz
		WHERE EXISTS (SELECT 1 FROM videos WHERE id = $3 AND is_published)
	`

	tag, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.OwnerID,
		comment.VideoID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateOwned replaces the content of a comment owned by owner.
func (r *CommentRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, content string) (*model.Comment, error) {
	const query = `
		UPDATE comments
		SET content = $3, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + commentColumns

	comment, err := scanComment(r.db.QueryRow(ctx, query, id, owner, content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// DeleteOwned deletes a comment owned by owner.
func (r *CommentRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*model.Comment, error) {
	const query = `
		DELETE FROM comments
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + commentColumns

	comment, err := scanComment(r.db.QueryRow(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	return comment, nil
}

func scanComment(row pgx.Row) (*model.Comment, error) {
	var c model.Comment
	if err := row.Scan(&c.ID, &c.OwnerID, &c.VideoID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
