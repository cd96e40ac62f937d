package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// likeStatements holds the per-target SQL. Target columns are fixed
// strings, never caller input.
type likeStatements struct {
	delete string
	insert string
}

var likeSQL = map[model.TargetKind]likeStatements{
	model.TargetVideo: {
		delete: `DELETE FROM likes WHERE liked_by = $1 AND video_id = $2`,
		insert: `
			INSERT INTO likes (id, liked_by, video_id, created_at)
			SELECT $1::uuid, $2::uuid, $3::uuid, $4::timestamptz
			WHERE EXISTS (SELECT 1 FROM videos WHERE id = $3 AND (is_published OR owner_id = $2))
		`,
	},
	model.TargetComment: {
		delete: `DELETE FROM likes WHERE liked_by = $1 AND comment_id = $2`,
		insert: `
			INSERT INTO likes (id, liked_by, comment_id, created_at)
			SELECT $1::uuid, $2::uuid, $3::uuid, $4::timestamptz
			WHERE EXISTS (SELECT 1 FROM comments WHERE id = $3)
		`,
	},
	model.TargetTweet: {
		delete: `DELETE FROM likes WHERE liked_by = $1 AND tweet_id = $2`,
		insert: `
			INSERT INTO likes (id, liked_by, tweet_id, created_at)
			SELECT $1::uuid, $2::uuid, $3::uuid, $4::timestamptz
			WHERE EXISTS (SELECT 1 FROM tweets WHERE id = $3)
		`,
	},
}

// LikeRepository implements repository.LikeRepository using PostgreSQL.
type LikeRepository struct {
	db DBTX
}

func NewLikeRepository(db DBTX) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) statements(target model.LikeTarget) (likeStatements, error) {
	stmts, ok := likeSQL[target.Kind()]
	if !ok || !target.Valid() {
		return likeStatements{}, model.ErrInvalidTarget
	}
	return stmts, nil
}

// Delete removes the like and reports whether it existed.
func (r *LikeRepository) Delete(ctx context.Context, likedBy uuid.UUID, target model.LikeTarget) (bool, error) {
	stmts, err := r.statements(target)
	if err != nil {
		return false, err
	}

	tag, err := r.db.Exec(ctx, stmts.delete, likedBy, target.ID())
	if err != nil {
		return false, fmt.Errorf("failed to delete %s like: %w", target.Kind(), err)
	}
	return tag.RowsAffected() > 0, nil
}

// Insert creates the like when its target is visible to the liker.
func (r *LikeRepository) Insert(ctx context.Context, like *model.Like) error {
	stmts, err := r.statements(like.Target)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, stmts.insert, like.ID, like.LikedBy, like.Target.ID(), like.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert %s like: %w", like.Target.Kind(), err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.LikeRepository = (*LikeRepository)(nil)
