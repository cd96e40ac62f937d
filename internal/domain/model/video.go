package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Video represents a published or draft video owned by a channel.
type Video struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     float64
	Views        int64
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VideoSummary is the projection embedded in liked-video feeds.
type VideoSummary struct {
	ID           uuid.UUID
	VideoURL     string
	ThumbnailURL string
	Title        string
	Description  string
	Views        int64
}

// VideoWithOwner is a video joined with its owner's summary.
type VideoWithOwner struct {
	Video
	Owner UserSummary
}

// VideoChanges holds the optional fields an owner may change.
// Empty values leave the stored field untouched.
type VideoChanges struct {
	Title        string
	Description  string
	ThumbnailURL string
}

var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidUserID    = errors.New("user ID cannot be nil")
	ErrTitleTooLong     = errors.New("title exceeds maximum length of 255 characters")
	ErrMissingMedia     = errors.New("video file is required")
	ErrNoChanges        = errors.New("at least one field must be provided")
)

const maxTitleLength = 255

// NewVideo creates an unsaved video. New videos are published immediately,
// matching the upload flow where a video exists only once its media is stored.
func NewVideo(ownerID uuid.UUID, title, description, videoURL, thumbnailURL string, duration float64) (*Video, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	if videoURL == "" {
		return nil, ErrMissingMedia
	}

	now := time.Now()
	return &Video{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(title),
		Description:  strings.TrimSpace(description),
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidateTitle checks a title for emptiness and length.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// Validate checks that the change set is non-empty and well formed.
func (c VideoChanges) Validate() error {
	if strings.TrimSpace(c.Title) == "" && strings.TrimSpace(c.Description) == "" && c.ThumbnailURL == "" {
		return ErrNoChanges
	}
	if len(strings.TrimSpace(c.Title)) > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// IsVisibleTo reports whether the actor may see the video.
func (v *Video) IsVisibleTo(actor uuid.UUID) bool {
	return v.IsPublished || (actor != uuid.Nil && v.OwnerID == actor)
}
