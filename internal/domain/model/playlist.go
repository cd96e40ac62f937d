package model

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Playlist is an owner-curated, ordered set of videos.
// A video appears at most once in VideoIDs.
type Playlist struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	VideoIDs    []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var ErrEmptyName = errors.New("name cannot be empty")

// NewPlaylist creates an empty, unsaved playlist.
func NewPlaylist(ownerID uuid.UUID, name, description string) (*Playlist, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
		VideoIDs:    []uuid.UUID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Contains reports whether the video is a member of the playlist.
func (p *Playlist) Contains(videoID uuid.UUID) bool {
	return slices.Contains(p.VideoIDs, videoID)
}
