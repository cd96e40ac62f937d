package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

// maxMemory is the multipart budget kept in memory; larger parts spill to disk.
const maxMemory = 32 << 20

type UpdateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// VideoHandlerConfig holds upload limits for VideoHandler.
type VideoHandlerConfig struct {
	// TempDir receives uploads before they are handed to the media store.
	TempDir       string
	MaxUploadSize int64
}

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	svc usecase.VideoService
	cfg VideoHandlerConfig
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService, cfg VideoHandlerConfig) *VideoHandler {
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &VideoHandler{svc: svc, cfg: cfg}
}

// List handles GET /v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := repository.VideoFeedQuery{
		Search: q.Get("query"),
		SortBy: repository.ParseVideoSort(q.Get("sortBy")),
		Desc:   q.Get("sortType") == "desc",
	}
	if raw := q.Get("userId"); raw != "" {
		ownerID, err := model.ParseID(raw)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		query.OwnerID = ownerID
	}

	page, err := h.svc.ListVideos(r.Context(), query, pageRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, pagination.Map(page, toVideoWithOwnerResponse))
}

// Publish handles POST /v1/videos as multipart/form-data with fields
// title, description, videoFile and an optional thumbnail.
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	videoFile, err := h.stage(r, "videoFile")
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}
	if videoFile == nil {
		writeServiceError(w, r, model.ErrMissingMedia)
		return
	}
	defer os.Remove(videoFile.Path)

	thumbnail, err := h.stage(r, "thumbnail")
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}
	if thumbnail != nil {
		defer os.Remove(thumbnail.Path)
	}

	video, err := h.svc.PublishVideo(r.Context(), usecase.PublishVideoInput{
		OwnerID:     middleware.ActorFrom(r.Context()),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Video:       *videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusCreated, toVideoResponse(*video))
}

// Get handles GET /v1/videos/{videoID}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	video, err := h.svc.GetVideo(r.Context(), middleware.ActorFrom(r.Context()), videoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toVideoWithOwnerResponse(*video))
}

// Update handles PATCH /v1/videos/{videoID}. A JSON body changes text fields;
// multipart/form-data may additionally replace the thumbnail.
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var input usecase.UpdateVideoInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if !h.parseMultipart(w, r) {
			return
		}
		defer r.MultipartForm.RemoveAll()

		thumbnail, err := h.stage(r, "thumbnail")
		if err != nil {
			h.writeUploadError(w, r, err)
			return
		}
		if thumbnail != nil {
			defer os.Remove(thumbnail.Path)
		}
		input = usecase.UpdateVideoInput{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Thumbnail:   thumbnail,
		}
	} else {
		var req UpdateVideoRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		input = usecase.UpdateVideoInput{Title: req.Title, Description: req.Description}
	}

	video, err := h.svc.UpdateVideo(r.Context(), middleware.ActorFrom(r.Context()), videoID, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(*video))
}

// TogglePublish handles PATCH /v1/videos/{videoID}/publish
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	video, err := h.svc.TogglePublish(r.Context(), middleware.ActorFrom(r.Context()), videoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(*video))
}

// Delete handles DELETE /v1/videos/{videoID}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	video, err := h.svc.DeleteVideo(r.Context(), middleware.ActorFrom(r.Context()), videoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(*video))
}

type ViewResponse struct {
	Views int64 `json:"views"`
}

// RecordView handles POST /v1/videos/{videoID}/views
func (h *VideoHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	videoID, err := pathID(r, "videoID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	views, err := h.svc.RecordView(r.Context(), middleware.ActorFrom(r.Context()), videoID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, ViewResponse{Views: views})
}

var errUploadTooLarge = errors.New("upload exceeds size limit")

func (h *VideoHandler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	if h.cfg.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(w, http.StatusRequestEntityTooLarge, "upload_too_large", errUploadTooLarge.Error())
			return false
		}
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid multipart form")
		return false
	}
	return true
}

// stage copies a multipart file into TempDir. A missing field yields nil.
func (h *VideoHandler) stage(r *http.Request, field string) (*repository.LocalObject, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	defer file.Close()

	return stageFile(h.cfg.TempDir, file, header)
}

func stageFile(dir string, src multipart.File, header *multipart.FileHeader) (*repository.LocalObject, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	dst, err := os.CreateTemp(dir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	return &repository.LocalObject{
		Path:        dst.Name(),
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

func (h *VideoHandler) writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Warn("failed to stage upload",
		"path", r.URL.Path,
		"error", err,
	)
	Error(w, http.StatusBadRequest, "invalid_upload", "Uploaded file could not be read")
}
