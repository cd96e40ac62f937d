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

const videoColumns = `id, owner_id, title, description, video_url, thumbnail_url, duration, views, is_published, created_at, updated_at`

// VideoRepository implements repository.VideoRepository using PostgreSQL.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create persists a new video entity.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (id, owner_id, title, description, video_url, thumbnail_url, duration, views, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.ThumbnailURL,
		video.Duration,
		video.Views,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetVisible retrieves a video and its owner summary if actor may see it.
func (r *VideoRepository) GetVisible(ctx context.Context, id, actor uuid.UUID) (*model.VideoWithOwner, error) {
	const query = `
		SELECT v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url, v.duration,
		       v.views, v.is_published, v.created_at, v.updated_at,
		       u.username, u.full_name, u.avatar_url
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.id = $1 AND (v.is_published OR v.owner_id = $2)
	`

	var out model.VideoWithOwner
	err := r.db.QueryRow(ctx, query, id, actor).Scan(
		&out.ID,
		&out.OwnerID,
		&out.Title,
		&out.Description,
		&out.VideoURL,
		&out.ThumbnailURL,
		&out.Duration,
		&out.Views,
		&out.IsPublished,
		&out.CreatedAt,
		&out.UpdatedAt,
		&out.Owner.Username,
		&out.Owner.FullName,
		&out.Owner.AvatarURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	out.Owner.ID = out.OwnerID

	return &out, nil
}

// UpdateOwned changes the non-empty fields of a video owned by owner.
func (r *VideoRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, changes model.VideoChanges) (*model.Video, error) {
	const query = `
		UPDATE videos
		SET title = COALESCE(NULLIF($3, ''), title),
		    description = COALESCE(NULLIF($4, ''), description),
		    thumbnail_url = COALESCE(NULLIF($5, ''), thumbnail_url),
		    updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + videoColumns

	video, err := scanVideo(r.db.QueryRow(ctx, query, id, owner, changes.Title, changes.Description, changes.ThumbnailURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	return video, nil
}

// TogglePublishOwned flips the published flag of a video owned by owner.
func (r *VideoRepository) TogglePublishOwned(ctx context.Context, id, owner uuid.UUID) (*model.Video, error) {
	const query = `
		UPDATE videos
		SET is_published = NOT is_published, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + videoColumns

	video, err := scanVideo(r.db.QueryRow(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle publish status: %w", err)
	}

	return video, nil
}

// DeleteOwned deletes a video owned by owner and returns the removed row.
func (r *VideoRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*model.Video, error) {
	const query = `
		DELETE FROM videos
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + videoColumns

	video, err := scanVideo(r.db.QueryRow(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete video: %w", err)
	}

	return video, nil
}

// IncrementViews adds one view to a video visible to actor.
func (r *VideoRepository) IncrementViews(ctx context.Context, id, actor uuid.UUID) (int64, error) {
	const query = `
		UPDATE videos
		SET views = views + 1
		WHERE id = $1 AND (is_published OR owner_id = $2)
		RETURNING views
	`

	var views int64
	if err := r.db.QueryRow(ctx, query, id, actor).Scan(&views); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("failed to increment views: %w", err)
	}

	return views, nil
}

// scanVideo scans a row selected with videoColumns.
func scanVideo(row pgx.Row) (*model.Video, error) {
	var video model.Video
	err := row.Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Duration,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Compile-time verification that VideoRepository implements repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)
