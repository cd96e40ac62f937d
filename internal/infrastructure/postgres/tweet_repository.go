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

const tweetColumns = `id, owner_id, content, created_at, updated_at`

// TweetRepository implements repository.TweetRepository using PostgreSQL.
type TweetRepository struct {
	db DBTX
}

func NewTweetRepository(db DBTX) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	const query = `
		INSERT INTO tweets (id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, tweet.ID, tweet.OwnerID, tweet.Content, tweet.CreatedAt, tweet.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create tweet: %w", err)
	}
	return nil
}

func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	const query = `SELECT ` + tweetColumns + ` FROM tweets WHERE id = $1`

	tweet, err := scanTweet(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	return tweet, nil
}

func (r *TweetRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, content string) (*model.Tweet, error) {
	const query = `
		UPDATE tweets
		SET content = $3, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + tweetColumns

	tweet, err := scanTweet(r.db.QueryRow(ctx, query, id, owner, content))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}
	return tweet, nil
}

func (r *TweetRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (*model.Tweet, error) {
	const query = `
		DELETE FROM tweets
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + tweetColumns

	tweet, err := scanTweet(r.db.QueryRow(ctx, query, id, owner))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete tweet: %w", err)
	}
	return tweet, nil
}

func scanTweet(row pgx.Row) (*model.Tweet, error) {
	var t model.Tweet
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

var _ repository.TweetRepository = (*TweetRepository)(nil)
