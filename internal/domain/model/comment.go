package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comment is a text reply attached to a video.
type Comment struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	VideoID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentWithOwner is a comment joined with its author's summary.
type CommentWithOwner struct {
	Comment
	Owner UserSummary
}

// ErrEmptyContent is returned when text content is blank after trimming.
var ErrEmptyContent = errors.New("content cannot be empty")

// ValidateContent trims content and rejects blank text.
func ValidateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrEmptyContent
	}
	return trimmed, nil
}

// NewComment creates an unsaved comment on a video.
func NewComment(ownerID, videoID uuid.UUID, content string) (*Comment, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	text, err := ValidateContent(content)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		VideoID:   videoID,
		Content:   text,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
