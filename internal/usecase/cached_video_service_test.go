package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
)

// mockVideoService is a mock implementation of VideoService for testing.
type mockVideoService struct {
	getVideoFn      func(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error)
	updateVideoFn   func(ctx context.Context, actor, videoID uuid.UUID, input UpdateVideoInput) (*model.Video, error)
	togglePublishFn func(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error)
	deleteVideoFn   func(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error)
	getVideoCount   atomic.Int32
}

func (m *mockVideoService) PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	return &model.Video{ID: uuid.New(), OwnerID: input.OwnerID}, nil
}

func (m *mockVideoService) GetVideo(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error) {
	m.getVideoCount.Add(1)
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, actor, videoID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockVideoService) UpdateVideo(ctx context.Context, actor, videoID uuid.UUID, input UpdateVideoInput) (*model.Video, error) {
	if m.updateVideoFn != nil {
		return m.updateVideoFn(ctx, actor, videoID, input)
	}
	return &model.Video{ID: videoID}, nil
}

func (m *mockVideoService) TogglePublish(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error) {
	if m.togglePublishFn != nil {
		return m.togglePublishFn(ctx, actor, videoID)
	}
	return &model.Video{ID: videoID}, nil
}

func (m *mockVideoService) DeleteVideo(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error) {
	if m.deleteVideoFn != nil {
		return m.deleteVideoFn(ctx, actor, videoID)
	}
	return &model.Video{ID: videoID}, nil
}

func (m *mockVideoService) RecordView(ctx context.Context, actor, videoID uuid.UUID) (int64, error) {
	return 1, nil
}

func (m *mockVideoService) ListVideos(ctx context.Context, query repository.VideoFeedQuery, req pagination.Request) (pagination.Page[model.VideoWithOwner], error) {
	return pagination.NewPage[model.VideoWithOwner](nil, 0, req), nil
}

func testVideo(published bool) *model.VideoWithOwner {
	owner := uuid.New()
	return &model.VideoWithOwner{
		Video: model.Video{
			ID:          uuid.New(),
			OwnerID:     owner,
			Title:       "Test Video",
			IsPublished: published,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		Owner: model.UserSummary{ID: owner, Username: "owner"},
	}
}

func TestCachedVideoService_GetVideo_CacheHit(t *testing.T) {
	video := testVideo(true)
	mockCache := newMockVideoCache()
	mockCache.data[video.ID] = video
	mockSvc := &mockVideoService{}

	svc := NewCachedVideoService(mockSvc, mockCache, DefaultCachedVideoServiceConfig())

	got, err := svc.GetVideo(context.Background(), uuid.Nil, video.ID)
	if err != nil {
		t.Fatalf("GetVideo failed: %v", err)
	}
	if got.ID != video.ID {
		t.Errorf("ID = %v, want %v", got.ID, video.ID)
	}
	if mockSvc.getVideoCount.Load() != 0 {
		t.Error("delegate should not be called on cache hit")
	}
}

func TestCachedVideoService_GetVideo_CacheMiss(t *testing.T) {
	video := testVideo(true)
	mockSvc := &mockVideoService{
		getVideoFn: func(ctx context.Context, actor, id uuid.UUID) (*model.VideoWithOwner, error) {
			return video, nil
		},
	}
	mockCache := newMockVideoCache()

	svc := NewCachedVideoService(mockSvc, mockCache, DefaultCachedVideoServiceConfig())

	if _, err := svc.GetVideo(context.Background(), uuid.Nil, video.ID); err != nil {
		t.Fatalf("GetVideo failed: %v", err)
	}
	if mockCache.data[video.ID] == nil {
		t.Error("published video should be cached after a miss")
	}

	// second read is served from cache
	if _, err := svc.GetVideo(context.Background(), uuid.New(), video.ID); err != nil {
		t.Fatalf("GetVideo failed: %v", err)
	}
	if n := mockSvc.getVideoCount.Load(); n != 1 {
		t.Errorf("delegate called %d times, want 1", n)
	}
}

func TestCachedVideoService_GetVideo_DraftNotCached(t *testing.T) {
	draft := testVideo(false)
	mockSvc := &mockVideoService{
		getVideoFn: func(ctx context.Context, actor, id uuid.UUID) (*model.VideoWithOwner, error) {
			if actor != draft.OwnerID {
				return nil, repository.ErrNotFound
			}
			return draft, nil
		},
	}
	mockCache := newMockVideoCache()
	svc := NewCachedVideoService(mockSvc, mockCache, DefaultCachedVideoServiceConfig())

	if _, err := svc.GetVideo(context.Background(), draft.OwnerID, draft.ID); err != nil {
		t.Fatalf("owner GetVideo failed: %v", err)
	}
	if _, ok := mockCache.data[draft.ID]; ok {
		t.Error("draft must not be cached")
	}
	if _, err := svc.GetVideo(context.Background(), uuid.New(), draft.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("stranger GetVideo error = %v, want ErrNotFound", err)
	}
}

func TestCachedVideoService_GetVideo_ReturnsCopy(t *testing.T) {
	video := testVideo(true)
	mockCache := newMockVideoCache()
	mockCache.data[video.ID] = video

	svc := NewCachedVideoService(&mockVideoService{}, mockCache, DefaultCachedVideoServiceConfig())

	got, _ := svc.GetVideo(context.Background(), uuid.Nil, video.ID)
	got.Title = "mutated"
	if video.Title != "Test Video" {
		t.Error("caller mutation leaked into cached value")
	}
}

func TestCachedVideoService_GetVideo_Singleflight(t *testing.T) {
	// drafts bypass the cache, so every caller reaches the flight
	video := testVideo(false)

	mockSvc := &mockVideoService{
		getVideoFn: func(ctx context.Context, actor, id uuid.UUID) (*model.VideoWithOwner, error) {
			time.Sleep(50 * time.Millisecond)
			return video, nil
		},
	}
	svc := NewCachedVideoService(mockSvc, newMockVideoCache(), DefaultCachedVideoServiceConfig())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GetVideo(context.Background(), video.OwnerID, video.ID); err != nil {
				t.Errorf("GetVideo failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := mockSvc.getVideoCount.Load(); n != 1 {
		t.Errorf("delegate GetVideo called %d times, want 1 (singleflight should coalesce)", n)
	}
}

func TestCachedVideoService_GetVideo_CacheErrorFallsBackToDB(t *testing.T) {
	video := testVideo(true)
	mockSvc := &mockVideoService{
		getVideoFn: func(ctx context.Context, actor, id uuid.UUID) (*model.VideoWithOwner, error) {
			return video, nil
		},
	}
	mockCache := newMockVideoCache()
	mockCache.getErr = errors.New("redis connection refused")

	svc := NewCachedVideoService(mockSvc, mockCache, DefaultCachedVideoServiceConfig())

	got, err := svc.GetVideo(context.Background(), uuid.Nil, video.ID)
	if err != nil {
		t.Fatalf("GetVideo should fall back to DB, got %v", err)
	}
	if got.ID != video.ID {
		t.Errorf("ID = %v, want %v", got.ID, video.ID)
	}
}

func TestCachedVideoService_MutationsInvalidate(t *testing.T) {
	actor := uuid.New()

	tests := []struct {
		name string
		call func(svc VideoService, id uuid.UUID) error
	}{
		{"update", func(svc VideoService, id uuid.UUID) error {
			_, err := svc.UpdateVideo(context.Background(), actor, id, UpdateVideoInput{Title: "t"})
			return err
		}},
		{"toggle publish", func(svc VideoService, id uuid.UUID) error {
			_, err := svc.TogglePublish(context.Background(), actor, id)
			return err
		}},
		{"delete", func(svc VideoService, id uuid.UUID) error {
			_, err := svc.DeleteVideo(context.Background(), actor, id)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video := testVideo(true)
			mockCache := newMockVideoCache()
			mockCache.data[video.ID] = video

			svc := NewCachedVideoService(&mockVideoService{}, mockCache, DefaultCachedVideoServiceConfig())
			if err := tt.call(svc, video.ID); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := mockCache.data[video.ID]; ok {
				t.Error("cache entry should be invalidated")
			}
		})
	}
}

func TestCachedVideoService_RejectedMutationKeepsCache(t *testing.T) {
	video := testVideo(true)
	mockCache := newMockVideoCache()
	mockCache.data[video.ID] = video

	mockSvc := &mockVideoService{
		deleteVideoFn: func(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewCachedVideoService(mockSvc, mockCache, DefaultCachedVideoServiceConfig())

	if _, err := svc.DeleteVideo(context.Background(), uuid.New(), video.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if mockCache.deletes != 0 {
		t.Errorf("deletes = %d, want 0", mockCache.deletes)
	}
}

func TestCachedVideoService_GetVideo_InvalidationDuringLoad(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(svc VideoService, owner, videoID uuid.UUID) error
	}{
		{
			name: "unpublish",
			mutate: func(svc VideoService, owner, videoID uuid.UUID) error {
				_, err := svc.TogglePublish(context.Background(), owner, videoID)
				return err
			},
		},
		{
			name: "delete",
			mutate: func(svc VideoService, owner, videoID uuid.UUID) error {
				_, err := svc.DeleteVideo(context.Background(), owner, videoID)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video := testVideo(true)
			loading := make(chan struct{})
			release := make(chan struct{})
			var hidden atomic.Bool

			mockSvc := &mockVideoService{
				getVideoFn: func(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error) {
					if hidden.Load() {
						return nil, repository.ErrNotFound
					}
					// the published row has been read; stall before the cache fill
					snapshot := *video
					close(loading)
					<-release
					return &snapshot, nil
				},
			}
			mockCache := newMockVideoCache()
			svc := NewCachedVideoService(mockSvc, mockCache, DefaultCachedVideoServiceConfig())

			stranger := uuid.New()
			done := make(chan error, 1)
			go func() {
				_, err := svc.GetVideo(context.Background(), stranger, video.ID)
				done <- err
			}()

			<-loading
			hidden.Store(true)
			if err := tt.mutate(svc, video.OwnerID, video.ID); err != nil {
				t.Fatalf("mutation failed: %v", err)
			}
			close(release)

			if err := <-done; err != nil {
				t.Fatalf("in-flight GetVideo() error = %v", err)
			}
			if mockCache.cached(video.ID) {
				t.Fatal("stale published copy was cached after invalidation")
			}

			_, err := svc.GetVideo(context.Background(), uuid.New(), video.ID)
			if !errors.Is(err, repository.ErrNotFound) {
				t.Errorf("GetVideo() after %s error = %v, want ErrNotFound", tt.name, err)
			}
		})
	}
}
