package model

import (
	"time"

	"github.com/google/uuid"
)

// Tweet is a short text post owned by a user.
type Tweet struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTweet creates an unsaved tweet.
func NewTweet(ownerID uuid.UUID, content string) (*Tweet, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	text, err := ValidateContent(content)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Tweet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   text,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
