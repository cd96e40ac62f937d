package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/pagination"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

type TweetRequest struct {
	Content string `json:"content"`
}

// TweetHandler handles short-post HTTP requests.
type TweetHandler struct {
	svc usecase.TweetService
}

// NewTweetHandler creates a new TweetHandler.
func NewTweetHandler(svc usecase.TweetService) *TweetHandler {
	return &TweetHandler{svc: svc}
}

// Create handles POST /v1/tweets
func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TweetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tweet, err := h.svc.CreateTweet(r.Context(), middleware.ActorFrom(r.Context()), req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusCreated, toTweetResponse(*tweet))
}

// Get handles GET /v1/tweets/{tweetID}
func (h *TweetHandler) Get(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathID(r, "tweetID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	tweet, err := h.svc.GetTweet(r.Context(), tweetID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toTweetResponse(*tweet))
}

// Update handles PATCH /v1/tweets/{tweetID}
func (h *TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathID(r, "tweetID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req TweetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tweet, err := h.svc.UpdateTweet(r.Context(), middleware.ActorFrom(r.Context()), tweetID, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toTweetResponse(*tweet))
}

// Delete handles DELETE /v1/tweets/{tweetID}
func (h *TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tweetID, err := pathID(r, "tweetID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	tweet, err := h.svc.DeleteTweet(r.Context(), middleware.ActorFrom(r.Context()), tweetID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toTweetResponse(*tweet))
}

// ListByUser handles GET /v1/users/{userID}/tweets
func (h *TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := h.svc.UserTweets(r.Context(), userID, pageRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, pagination.Map(page, toTweetResponse))
}
