package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/pagination"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlaylistHandler handles playlist HTTP requests.
type PlaylistHandler struct {
	svc usecase.PlaylistService
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(svc usecase.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

// Create handles POST /v1/playlists
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PlaylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	playlist, err := h.svc.CreatePlaylist(r.Context(), middleware.ActorFrom(r.Context()), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusCreated, toPlaylistResponse(*playlist))
}

// Get handles GET /v1/playlists/{playlistID}
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	playlist, err := h.svc.GetPlaylist(r.Context(), middleware.ActorFrom(r.Context()), playlistID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toPlaylistResponse(*playlist))
}

// Update handles PATCH /v1/playlists/{playlistID}
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req PlaylistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	playlist, err := h.svc.UpdatePlaylist(r.Context(), middleware.ActorFrom(r.Context()), playlistID, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toPlaylistResponse(*playlist))
}

// Delete handles DELETE /v1/playlists/{playlistID}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	playlist, err := h.svc.DeletePlaylist(r.Context(), middleware.ActorFrom(r.Context()), playlistID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toPlaylistResponse(*playlist))
}

// AddVideo handles PUT /v1/playlists/{playlistID}/videos/{videoID}
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	playlist, err := h.svc.AddVideo(r.Context(), middleware.ActorFrom(r.Context()), playlistID, videoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toPlaylistResponse(*playlist))
}

// RemoveVideo handles DELETE /v1/playlists/{playlistID}/videos/{videoID}
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	playlistID, err := pathID(r, "playlistID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	videoID, err := pathID(r, "videoID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	playlist, err := h.svc.RemoveVideo(r.Context(), middleware.ActorFrom(r.Context()), playlistID, videoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toPlaylistResponse(*playlist))
}

// ListByUser handles GET /v1/users/{userID}/playlists
func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := h.svc.UserPlaylists(r.Context(), userID, pageRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, pagination.Map(page, toPlaylistResponse))
}
