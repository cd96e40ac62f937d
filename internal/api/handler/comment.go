package handler

import (
	"net/http"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/pagination"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

type CommentRequest struct {
	Content string `json:"content"`
}

// CommentHandler handles comment-related HTTP requests.
type CommentHandler struct {
	svc usecase.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc usecase.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// List handles GET /v1/videos/{videoID}/comments. The page is rendered with
// the comment vocabulary (commentsList, paginator, ...).
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page, err := h.svc.VideoComments(r.Context(), videoID, pageRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, pagination.Map(page, toCommentWithOwnerResponse).Render(pagination.CommentLabels))
}

// Add handles POST /v1/videos/{videoID}/comments
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.svc.AddComment(r.Context(), middleware.ActorFrom(r.Context()), videoID, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusCreated, toCommentResponse(*comment))
}

// Update handles PATCH /v1/comments/{commentID}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r, "commentID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.svc.UpdateComment(r.Context(), middleware.ActorFrom(r.Context()), commentID, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toCommentResponse(*comment))
}

// Delete handles DELETE /v1/comments/{commentID}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathID(r, "commentID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	comment, err := h.svc.DeleteComment(r.Context(), middleware.ActorFrom(r.Context()), commentID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toCommentResponse(*comment))
}
