package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
)

// SubscriptionService manages channel subscriptions.
type SubscriptionService interface {
	// ToggleSubscription subscribes the actor to a channel, or unsubscribes.
	ToggleSubscription(ctx context.Context, actor, channelID uuid.UUID) (ToggleResult[model.Subscription], error)

	// Subscribers lists the users subscribed to a channel.
	Subscribers(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error)

	// SubscribedChannels lists the channels a user subscribes to.
	SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error)
}

// SubscriptionServiceConfig holds configuration for SubscriptionService.
type SubscriptionServiceConfig struct {
	AllowSelfSubscription bool
}

type subscriptionService struct {
	subs  repository.SubscriptionRepository
	views repository.ViewRepository

	allowSelf bool
}

// NewSubscriptionService creates a new SubscriptionService instance.
func NewSubscriptionService(
	subs repository.SubscriptionRepository,
	views repository.ViewRepository,
	cfg SubscriptionServiceConfig,
) SubscriptionService {
	return &subscriptionService{
		subs:      subs,
		views:     views,
		allowSelf: cfg.AllowSelfSubscription,
	}
}

func (s *subscriptionService) ToggleSubscription(ctx context.Context, actor, channelID uuid.UUID) (ToggleResult[model.Subscription], error) {
	if actor == uuid.Nil {
		return ToggleResult[model.Subscription]{}, ErrUnauthenticated
	}

	sub, err := model.NewSubscription(actor, channelID)
	if err != nil {
		return ToggleResult[model.Subscription]{}, err
	}
	if sub.IsSelf() && !s.allowSelf {
		return ToggleResult[model.Subscription]{}, ErrSelfSubscription
	}

	return toggle(ctx, toggleOps[model.Subscription]{
		relation: "subscription",
		remove: func(ctx context.Context) (bool, error) {
			return s.subs.Delete(ctx, actor, channelID)
		},
		insert: s.subs.Insert,
	}, sub)
}

func (s *subscriptionService) Subscribers(ctx context.Context, channelID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error) {
	return s.views.Subscribers(ctx, channelID, req)
}

func (s *subscriptionService) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, req pagination.Request) (pagination.Page[model.SubscriberEntry], error) {
	return s.views.SubscribedChannels(ctx, subscriberID, req)
}
