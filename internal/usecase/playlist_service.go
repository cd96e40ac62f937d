package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
)

// PlaylistService manages owner-curated playlists.
// Playlists are private: reads and writes are scoped to the owner.
type PlaylistService interface {
	CreatePlaylist(ctx context.Context, actor uuid.UUID, name, description string) (*model.Playlist, error)
	GetPlaylist(ctx context.Context, actor, playlistID uuid.UUID) (*model.Playlist, error)
	UpdatePlaylist(ctx context.Context, actor, playlistID uuid.UUID, name, description string) (*model.Playlist, error)
	DeletePlaylist(ctx context.Context, actor, playlistID uuid.UUID) (*model.Playlist, error)

	// AddVideo adds a video visible to the actor. Adding a member is a no-op.
	AddVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*model.Playlist, error)
	// RemoveVideo removes a video. Removing a non-member is a no-op.
	RemoveVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*model.Playlist, error)

	UserPlaylists(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Playlist], error)
}

type playlistService struct {
	playlists repository.PlaylistRepository
	views     repository.ViewRepository
}

// NewPlaylistService creates a new PlaylistService instance.
func NewPlaylistService(playlists repository.PlaylistRepository, views repository.ViewRepository) PlaylistService {
	return &playlistService{
		playlists: playlists,
		views:     views,
	}
}

func (s *playlistService) CreatePlaylist(ctx context.Context, actor uuid.UUID, name, description string) (*model.Playlist, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	playlist, err := model.NewPlaylist(actor, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.playlists.Create(ctx, playlist); err != nil {
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	return playlist, nil
}

func (s *playlistService) GetPlaylist(ctx context.Context, actor, playlistID uuid.UUID) (*model.Playlist, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	playlist, err := s.playlists.GetOwned(ctx, playlistID, actor)
	return playlist, ownership("playlist", err)
}

func (s *playlistService) UpdatePlaylist(ctx context.Context, actor, playlistID uuid.UUID, name, description string) (*model.Playlist, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrEmptyName
	}

	playlist, err := s.playlists.UpdateOwned(ctx, playlistID, actor, name, strings.TrimSpace(description))
	return playlist, ownership("playlist", err)
}

func (s *playlistService) DeletePlaylist(ctx context.Context, actor, playlistID uuid.UUID) (*model.Playlist, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	playlist, err := s.playlists.DeleteOwned(ctx, playlistID, actor)
	return playlist, ownership("playlist", err)
}

func (s *playlistService) AddVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	playlist, err := s.playlists.AddVideoOwned(ctx, playlistID, actor, videoID)
	return playlist, ownership("playlist", err)
}

func (s *playlistService) RemoveVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) (*model.Playlist, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	playlist, err := s.playlists.RemoveVideoOwned(ctx, playlistID, actor, videoID)
	return playlist, ownership("playlist", err)
}

func (s *playlistService) UserPlaylists(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[model.Playlist], error) {
	return s.views.UserPlaylists(ctx, userID, req)
}
