package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
)

// SubscriptionRepository implements repository.SubscriptionRepository using PostgreSQL.
type SubscriptionRepository struct {
	db DBTX
}

func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	const query = `DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`

	tag, err := r.db.Exec(ctx, query, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Insert creates the subscription if the channel is an existing user.
func (r *SubscriptionRepository) Insert(ctx context.Context, sub *model.Subscription) error {
	const query = `
		INSERT INTO subscriptions (id, subscriber_id, channel_id, created_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4::timestamptz
		WHERE EXISTS (SELECT 1 FROM users WHERE id = $3)
	`

	tag, err := r.db.Exec(ctx, query, sub.ID, sub.SubscriberID, sub.ChannelID, sub.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)
