package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/api/middleware"
	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

type formFile struct {
	field, name, contentType string
	content                  []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write(f.content)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func withActor(req *http.Request, actor uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithActor(req.Context(), actor))
}

func TestVideoHandler_Publish(t *testing.T) {
	actor := uuid.New()
	video := formFile{"videoFile", "clip.mp4", "video/mp4", []byte("video bytes")}
	thumb := formFile{"thumbnail", "cover.jpg", "image/jpeg", []byte("jpeg")}

	tests := []struct {
		name           string
		files          []formFile
		svcErr         error
		wantStatusCode int
		wantThumbnail  bool
	}{
		{
			name:           "video and thumbnail",
			files:          []formFile{video, thumb},
			wantStatusCode: http.StatusCreated,
			wantThumbnail:  true,
		},
		{
			name:           "video only",
			files:          []formFile{video},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "missing video file",
			files:          []formFile{thumb},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "validation error from service",
			files:          []formFile{video},
			svcErr:         model.ErrEmptyTitle,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "anonymous",
			files:          []formFile{video},
			svcErr:         usecase.ErrUnauthenticated,
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			var staged []string

			mock := &mockVideoService{
				publishVideoFn: func(ctx context.Context, input usecase.PublishVideoInput) (*model.Video, error) {
					if tt.svcErr != nil {
						return nil, tt.svcErr
					}
					if input.OwnerID != actor {
						t.Errorf("OwnerID = %v, want %v", input.OwnerID, actor)
					}
					if input.Title != "My Clip" {
						t.Errorf("Title = %q", input.Title)
					}
					if input.Video.ContentType != "video/mp4" || !strings.HasPrefix(input.Video.Path, tmp) {
						t.Errorf("unexpected staged video %+v", input.Video)
					}
					data, err := os.ReadFile(input.Video.Path)
					if err != nil || string(data) != "video bytes" {
						t.Errorf("staged video content = %q, %v", data, err)
					}
					staged = append(staged, input.Video.Path)
					if (input.Thumbnail != nil) != tt.wantThumbnail {
						t.Errorf("thumbnail present = %v, want %v", input.Thumbnail != nil, tt.wantThumbnail)
					}
					if input.Thumbnail != nil {
						staged = append(staged, input.Thumbnail.Path)
					}
					return &model.Video{
						ID:          uuid.New(),
						OwnerID:     input.OwnerID,
						Title:       input.Title,
						VideoURL:    "http://cdn/videos/x.mp4",
						IsPublished: true,
						CreatedAt:   time.Now(),
						UpdatedAt:   time.Now(),
					}, nil
				},
			}
			h := NewVideoHandler(mock, VideoHandlerConfig{TempDir: tmp, MaxUploadSize: 1 << 20})

			body, contentType := multipartBody(t, map[string]string{"title": "My Clip", "description": "about"}, tt.files...)
			req := withActor(httptest.NewRequest(http.MethodPost, "/v1/videos", body), actor)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			h.Publish(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatusCode, rec.Code, rec.Body.String())
			}
			for _, path := range staged {
				if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
					t.Errorf("staged file %s was not removed", path)
				}
			}
			if tt.wantStatusCode == http.StatusCreated {
				var resp VideoResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if !resp.IsPublished || resp.VideoFile == "" {
					t.Errorf("unexpected response %+v", resp)
				}
			}
		})
	}
}

func TestVideoHandler_Publish_TooLarge(t *testing.T) {
	h := NewVideoHandler(&mockVideoService{}, VideoHandlerConfig{TempDir: t.TempDir(), MaxUploadSize: 64})

	body, contentType := multipartBody(t, map[string]string{"title": "x"},
		formFile{"videoFile", "clip.mp4", "video/mp4", bytes.Repeat([]byte("a"), 1024)})
	req := httptest.NewRequest(http.MethodPost, "/v1/videos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Publish(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status 413, got %d", rec.Code)
	}
}

func TestVideoHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		videoID        string
		setupMock      func(m *mockVideoService)
		wantStatusCode int
	}{
		{
			name:    "successful get",
			videoID: uuid.New().String(),
			setupMock: func(m *mockVideoService) {
				m.getVideoFn = func(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error) {
					return &model.VideoWithOwner{
						Video: model.Video{ID: videoID, Title: "Test Video", IsPublished: true},
						Owner: model.UserSummary{ID: uuid.New(), Username: "chan"},
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid video ID",
			videoID:        "not-a-uuid",
			setupMock:      func(m *mockVideoService) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:    "video not visible",
			videoID: uuid.New().String(),
			setupMock: func(m *mockVideoService) {
				m.getVideoFn = func(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error) {
					return nil, repository.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:    "store failure",
			videoID: uuid.New().String(),
			setupMock: func(m *mockVideoService) {
				m.getVideoFn = func(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error) {
					return nil, errors.New("connection reset")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockVideoService{}
			tt.setupMock(mock)
			h := NewVideoHandler(mock, VideoHandlerConfig{})

			r := chi.NewRouter()
			r.Get("/v1/videos/{videoID}", h.Get)

			req := httptest.NewRequest(http.MethodGet, "/v1/videos/"+tt.videoID, nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("expected status %d, got %d", tt.wantStatusCode, rec.Code)
			}
			if tt.wantStatusCode == http.StatusOK {
				var resp VideoResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.Owner == nil || resp.Owner.Username != "chan" {
					t.Errorf("expected owner summary, got %+v", resp.Owner)
				}
			}
		})
	}
}

func TestVideoHandler_List(t *testing.T) {
	owner := uuid.New()

	var gotQuery repository.VideoFeedQuery
	var gotReq pagination.Request
	mock := &mockVideoService{
		listVideosFn: func(ctx context.Context, query repository.VideoFeedQuery, req pagination.Request) (pagination.Page[model.VideoWithOwner], error) {
			gotQuery, gotReq = query, req
			items := []model.VideoWithOwner{{Video: model.Video{ID: uuid.New(), Title: "a"}}}
			return pagination.NewPage(items, 11, req), nil
		},
	}
	h := NewVideoHandler(mock, VideoHandlerConfig{})

	req := httptest.NewRequest(http.MethodGet, "/v1/videos?page=2&limit=5&query=cats&sortBy=price&sortType=desc&userId="+owner.String(), nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotQuery.SortBy != repository.SortByViews {
		t.Errorf("SortBy = %q, want fallback to views", gotQuery.SortBy)
	}
	if !gotQuery.Desc || gotQuery.Search != "cats" || gotQuery.OwnerID != owner {
		t.Errorf("unexpected query %+v", gotQuery)
	}
	if gotReq.Page != 2 || gotReq.PageSize != 5 {
		t.Errorf("unexpected page request %+v", gotReq)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body["totalPages"] != float64(3) || body["hasNextPage"] != true {
		t.Errorf("unexpected page metadata %v", body)
	}
	if items, _ := body["items"].([]any); len(items) != 1 {
		t.Errorf("items = %v, want 1", body["items"])
	}

	t.Run("malformed owner filter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, "/v1/videos?userId=nope", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestVideoHandler_Update(t *testing.T) {
	actor := uuid.New()

	t.Run("json body", func(t *testing.T) {
		var got usecase.UpdateVideoInput
		mock := &mockVideoService{
			updateVideoFn: func(ctx context.Context, a, videoID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error) {
				got = input
				return &model.Video{ID: videoID, Title: input.Title}, nil
			},
		}
		h := NewVideoHandler(mock, VideoHandlerConfig{})
		r := chi.NewRouter()
		r.Patch("/v1/videos/{videoID}", h.Update)

		req := withActor(httptest.NewRequest(http.MethodPatch, "/v1/videos/"+uuid.NewString(),
			strings.NewReader(`{"title":"New"}`)), actor)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if got.Title != "New" || got.Thumbnail != nil {
			t.Errorf("unexpected input %+v", got)
		}
	})

	t.Run("multipart thumbnail", func(t *testing.T) {
		var got usecase.UpdateVideoInput
		mock := &mockVideoService{
			updateVideoFn: func(ctx context.Context, a, videoID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error) {
				got = input
				return &model.Video{ID: videoID}, nil
			},
		}
		h := NewVideoHandler(mock, VideoHandlerConfig{TempDir: t.TempDir()})
		r := chi.NewRouter()
		r.Patch("/v1/videos/{videoID}", h.Update)

		body, contentType := multipartBody(t, nil, formFile{"thumbnail", "t.png", "image/png", []byte("png")})
		req := withActor(httptest.NewRequest(http.MethodPatch, "/v1/videos/"+uuid.NewString(), body), actor)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if got.Thumbnail == nil || got.Thumbnail.ContentType != "image/png" {
			t.Errorf("expected staged thumbnail, got %+v", got.Thumbnail)
		}
	})

	t.Run("non-owner", func(t *testing.T) {
		mock := &mockVideoService{
			updateVideoFn: func(ctx context.Context, a, videoID uuid.UUID, input usecase.UpdateVideoInput) (*model.Video, error) {
				return nil, repository.ErrNotFound
			},
		}
		h := NewVideoHandler(mock, VideoHandlerConfig{})
		r := chi.NewRouter()
		r.Patch("/v1/videos/{videoID}", h.Update)

		req := withActor(httptest.NewRequest(http.MethodPatch, "/v1/videos/"+uuid.NewString(),
			strings.NewReader(`{"title":"New"}`)), actor)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestVideoHandler_OwnerActions(t *testing.T) {
	actor := uuid.New()
	videoID := uuid.New()

	mock := &mockVideoService{
		togglePublishFn: func(ctx context.Context, a, id uuid.UUID) (*model.Video, error) {
			return &model.Video{ID: id, IsPublished: false}, nil
		},
		deleteVideoFn: func(ctx context.Context, a, id uuid.UUID) (*model.Video, error) {
			if a != actor {
				return nil, repository.ErrNotFound
			}
			return &model.Video{ID: id}, nil
		},
		recordViewFn: func(ctx context.Context, a, id uuid.UUID) (int64, error) {
			return 42, nil
		},
	}
	h := NewVideoHandler(mock, VideoHandlerConfig{})

	r := chi.NewRouter()
	r.Patch("/v1/videos/{videoID}/publish", h.TogglePublish)
	r.Delete("/v1/videos/{videoID}", h.Delete)
	r.Post("/v1/videos/{videoID}/views", h.RecordView)

	tests := []struct {
		name       string
		method     string
		path       string
		actor      uuid.UUID
		wantStatus int
	}{
		{"toggle publish", http.MethodPatch, "/v1/videos/" + videoID.String() + "/publish", actor, http.StatusOK},
		{"delete by owner", http.MethodDelete, "/v1/videos/" + videoID.String(), actor, http.StatusOK},
		{"delete by stranger", http.MethodDelete, "/v1/videos/" + videoID.String(), uuid.New(), http.StatusNotFound},
		{"record view", http.MethodPost, "/v1/videos/" + videoID.String() + "/views", uuid.Nil, http.StatusOK},
		{"malformed id", http.MethodDelete, "/v1/videos/123", actor, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withActor(httptest.NewRequest(tt.method, tt.path, nil), tt.actor)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
