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

const playlistColumns = `id, owner_id, name, description, video_ids, created_at, updated_at`

// PlaylistRepository implements repository.PlaylistRepository using PostgreSQL.
// Membership is stored as an ordered uuid[] and edited in place, so every
// change is a single-row update.
type PlaylistRepository struct {
	db DBTX
}

func NewPlaylistRepository(db DBTX) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(ctx context.Context, p *model.Playlist) error {
	const query = `
		INSERT INTO playlists (id, owner_id, name, description, video_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query, p.ID, p.OwnerID, p.Name, p.Description, p.VideoIDs, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) GetOwned(ctx context.Context, id, owner uuid.UUID) (*model.Playlist, error) {
	const query = `SELECT ` + playlistColumns + ` FROM playlists WHERE id = $1 AND owner_id = $2`
	return r.one(ctx, "get playlist", query, id, owner)
}

// UpdateOwned replaces name and description. An empty description clears it.
func (r *PlaylistRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, name, description string) (*model.Playlist, error) {
	const query = `
		UPDATE playlists
		SET name = $3,
		    description = $4,
		    updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + playlistColumns
	return r.one(ctx, "update playlist", query, id, owner, name, description)
}

func (r *PlaylistRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*model.Playlist, error) {
	const query = `
		DELETE FROM playlists
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + playlistColumns
	return r.one(ctx, "delete playlist", query, id, owner)
}

// AddVideoOwned appends videoID unless it is already a member. The video
// must be published or belong to the playlist owner.
func (r *PlaylistRepository) AddVideoOwned(ctx context.Context, id, owner, videoID uuid.UUID) (*model.Playlist, error) {
	const query = `
		UPDATE playlists
		SET video_ids = CASE
		        WHEN $3::uuid = ANY(video_ids) THEN video_ids
		        ELSE array_append(video_ids, $3::uuid)
		    END,
		    updated_at = now()
		WHERE id = $1 AND owner_id = $2
		  AND EXISTS (SELECT 1 FROM videos v WHERE v.id = $3 AND (v.is_published OR v.owner_id = $2))
		RETURNING ` + playlistColumns
	return r.one(ctx, "add video to playlist", query, id, owner, videoID)
}

// RemoveVideoOwned drops videoID from the playlist if present.
func (r *PlaylistRepository) RemoveVideoOwned(ctx context.Context, id, owner, videoID uuid.UUID) (*model.Playlist, error) {
	const query = `
		UPDATE playlists
		SET video_ids = array_remove(video_ids, $3::uuid), updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + playlistColumns
	return r.one(ctx, "remove video from playlist", query, id, owner, videoID)
}

func (r *PlaylistRepository) one(ctx context.Context, op, query string, args ...any) (*model.Playlist, error) {
	p, err := scanPlaylist(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	return p, nil
}

func scanPlaylist(row pgx.Row) (*model.Playlist, error) {
	var p model.Playlist
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.VideoIDs, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if p.VideoIDs == nil {
		p.VideoIDs = []uuid.UUID{}
	}
	return &p, nil
}

var _ repository.PlaylistRepository = (*PlaylistRepository)(nil)
