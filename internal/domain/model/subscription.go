package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscription links a subscriber to a channel. Both sides are users.
type Subscription struct {
	ID           uuid.UUID
	SubscriberID uuid.UUID
	ChannelID    uuid.UUID
	CreatedAt    time.Time
}

// NewSubscription creates an unsaved subscription record.
func NewSubscription(subscriberID, channelID uuid.UUID) (*Subscription, error) {
	if subscriberID == uuid.Nil || channelID == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	return &Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now(),
	}, nil
}

// IsSelf reports whether a channel subscribes to itself.
func (s *Subscription) IsSelf() bool {
	return s.SubscriberID == s.ChannelID
}

// SubscriberEntry is one row of a subscriber or subscribed-channel list.
type SubscriberEntry struct {
	SubscriptionID uuid.UUID
	User           UserSummary
	SubscribedAt   time.Time
}
