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

// UserRepository reads user profiles.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const query = `
		SELECT id, username, full_name, avatar_url, cover_image_url
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.FullName, &u.AvatarURL, &u.CoverImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
