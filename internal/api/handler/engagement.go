package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/pagination"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// LikeHandler handles like toggles and the liked-video feed.
type LikeHandler struct {
	svc usecase.LikeService
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(svc usecase.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

// ToggleVideo handles POST /v1/likes/videos/{targetID}
func (h *LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.VideoTarget)
}

// ToggleComment handles POST /v1/likes/comments/{targetID}
func (h *LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.CommentTarget)
}

// ToggleTweet handles POST /v1/likes/tweets/{targetID}
func (h *LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, model.TweetTarget)
}

func (h *LikeHandler) toggle(w http.ResponseWriter, r *http.Request, target func(uuid.UUID) model.LikeTarget) {
	targetID, err := pathID(r, "targetID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.svc.ToggleLike(r.Context(), middleware.ActorFrom(r.Context()), target(targetID))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toToggleResponse(res, toLikeResponse))
}

// LikedVideos handles GET /v1/likes/videos
func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.LikedVideos(r.Context(), middleware.ActorFrom(r.Context()), pageRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, pagination.Map(page, toLikedVideoResponse))
}

// SubscriptionHandler handles channel subscriptions.
type SubscriptionHandler struct {
	svc usecase.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(svc usecase.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Toggle handles POST /v1/subscriptions/channels/{channelID}
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "channelID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.svc.ToggleSubscription(r.Context(), middleware.ActorFrom(r.Context()), channelID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toToggleResponse(res, toSubscriptionResponse))
}

// Subscribers handles GET /v1/subscriptions/channels/{channelID}/subscribers
func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "channelID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := h.svc.Subscribers(r.Context(), channelID, pageRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, pagination.Map(page, toSubscriberEntryResponse))
}

// SubscribedChannels handles GET /v1/subscriptions/users/{userID}/channels
func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := h.svc.SubscribedChannels(r.Context(), userID, pageRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, pagination.Map(page, toSubscriberEntryResponse))
}
