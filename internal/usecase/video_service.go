package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
	"github.com/hszk-dev/vidtube/internal/pagination"
)

// PublishVideoInput contains the input parameters for publishing a video.
type PublishVideoInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Video       repository.LocalObject
	// Thumbnail is optional; a frame is extracted from the video when nil.
	Thumbnail *repository.LocalObject
}

// UpdateVideoInput contains the owner-editable fields. Empty fields are kept.
type UpdateVideoInput struct {
	Title       string
	Description string
	Thumbnail   *repository.LocalObject
}

// VideoService defines the interface for video business logic operations.
type VideoService interface {
	// PublishVideo uploads the media and creates a published video.
	PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error)

	// GetVideo returns a video that is published or owned by actor.
	GetVideo(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error)

	UpdateVideo(ctx context.Context, actor, videoID uuid.UUID, input UpdateVideoInput) (*model.Video, error)
	TogglePublish(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error)

	// DeleteVideo removes the video and then its media. Media removal is
	// best-effort and never fails the delete.
	DeleteVideo(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error)

	// RecordView counts one view of a visible video and returns the new total.
	RecordView(ctx context.Context, actor, videoID uuid.UUID) (int64, error)

	ListVideos(ctx context.Context, query repository.VideoFeedQuery, req pagination.Request) (pagination.Page[model.VideoWithOwner], error)
}

type videoService struct {
	repo   repository.VideoRepository
	views  repository.ViewRepository
	media  repository.MediaStore
	thumbs repository.ThumbnailExtractor
	queue  repository.MessageQueue
}

// NewVideoService creates a new VideoService instance.
// queue may be nil, in which case failed media removals are only logged.
func NewVideoService(
	repo repository.VideoRepository,
	views repository.ViewRepository,
	media repository.MediaStore,
	thumbs repository.ThumbnailExtractor,
	queue repository.MessageQueue,
) VideoService {
	return &videoService{
		repo:   repo,
		views:  views,
		media:  media,
		thumbs: thumbs,
		queue:  queue,
	}
}

func (s *videoService) PublishVideo(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	if input.OwnerID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	if err := model.ValidateTitle(input.Title); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, model.ErrEmptyDescription
	}
	if input.Video.Path == "" {
		return nil, model.ErrMissingMedia
	}

	stored, err := s.media.Store(ctx, input.Video)
	if err != nil {
		return nil, fmt.Errorf("store video: %w", err)
	}

	thumbURL, err := s.storeThumbnail(ctx, input)
	if err != nil {
		s.cleanupMedia(ctx, uuid.Nil, []string{stored.URL})
		return nil, err
	}

	video, err := model.NewVideo(input.OwnerID, input.Title, input.Description, stored.URL, thumbURL, stored.Duration)
	if err != nil {
		s.cleanupMedia(ctx, uuid.Nil, []string{stored.URL, thumbURL})
		return nil, err
	}

	if err := s.repo.Create(ctx, video); err != nil {
		s.cleanupMedia(ctx, video.ID, []string{stored.URL, thumbURL})
		return nil, fmt.Errorf("create video: %w", err)
	}

	return video, nil
}

// storeThumbnail uploads the provided thumbnail or one extracted from the video.
func (s *videoService) storeThumbnail(ctx context.Context, input PublishVideoInput) (string, error) {
	thumb := input.Thumbnail
	if thumb == nil {
		extracted, err := s.thumbs.Thumbnail(ctx, input.Video)
		if err != nil {
			return "", fmt.Errorf("generate thumbnail: %w", err)
		}
		defer os.Remove(extracted.Path)
		thumb = extracted
	}

	stored, err := s.media.Store(ctx, *thumb)
	if err != nil {
		return "", fmt.Errorf("store thumbnail: %w", err)
	}
	return stored.URL, nil
}

func (s *videoService) GetVideo(ctx context.Context, actor, videoID uuid.UUID) (*model.VideoWithOwner, error) {
	return s.repo.GetVisible(ctx, videoID, actor)
}

func (s *videoService) UpdateVideo(ctx context.Context, actor, videoID uuid.UUID, input UpdateVideoInput) (*model.Video, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	changes := model.VideoChanges{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
	}
	if input.Thumbnail == nil {
		if err := changes.Validate(); err != nil {
			return nil, err
		}
	} else {
		if changes.Title != "" {
			if err := model.ValidateTitle(changes.Title); err != nil {
				return nil, err
			}
		}

		stored, err := s.media.Store(ctx, *input.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("store thumbnail: %w", err)
		}
		changes.ThumbnailURL = stored.URL
	}

	video, err := s.repo.UpdateOwned(ctx, videoID, actor, changes)
	if err != nil {
		if input.Thumbnail != nil {
			s.cleanupMedia(ctx, videoID, []string{changes.ThumbnailURL})
		}
		return nil, ownership("video", err)
	}
	return video, nil
}

func (s *videoService) TogglePublish(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	video, err := s.repo.TogglePublishOwned(ctx, videoID, actor)
	return video, ownership("video", err)
}

func (s *videoService) DeleteVideo(ctx context.Context, actor, videoID uuid.UUID) (*model.Video, error) {
	if actor == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	video, err := s.repo.DeleteOwned(ctx, videoID, actor)
	if err != nil {
		return nil, ownership("video", err)
	}

	s.cleanupMedia(ctx, video.ID, []string{video.VideoURL, video.ThumbnailURL})
	return video, nil
}

func (s *videoService) RecordView(ctx context.Context, actor, videoID uuid.UUID) (int64, error) {
	return s.repo.IncrementViews(ctx, videoID, actor)
}

func (s *videoService) ListVideos(ctx context.Context, query repository.VideoFeedQuery, req pagination.Request) (pagination.Page[model.VideoWithOwner], error) {
	return s.views.VideoFeed(ctx, query, req)
}

// cleanupMedia removes media objects concurrently. URLs that could not be
// removed are handed to the cleanup worker through the queue.
func (s *videoService) cleanupMedia(ctx context.Context, videoID uuid.UUID, urls []string) {
	urls = nonEmpty(urls)
	if len(urls) == 0 {
		return
	}

	failed := make([]string, len(urls))
	var g errgroup.Group
	for i, url := range urls {
		g.Go(func() error {
			if err := s.media.Remove(ctx, url); err != nil {
				slog.Warn("failed to remove media",
					"video_id", videoID,
					"url", url,
					"error", err,
				)
				metrics.MediaCleanupTotal.WithLabelValues(metrics.CleanupStageInline, metrics.CleanupError).Inc()
				failed[i] = url
				return err
			}
			metrics.MediaCleanupTotal.WithLabelValues(metrics.CleanupStageInline, metrics.CleanupSuccess).Inc()
			return nil
		})
	}
	if err := g.Wait(); err == nil {
		return
	}

	remaining := nonEmpty(failed)
	if s.queue == nil {
		return
	}

	// the request context may be cancelled once the handler returns
	task := repository.MediaCleanupTask{VideoID: videoID, URLs: remaining}
	if err := s.queue.PublishMediaCleanup(context.WithoutCancel(ctx), task); err != nil {
		slog.Error("failed to queue media cleanup",
			"video_id", videoID,
			"urls", remaining,
			"error", err,
		)
		return
	}
	metrics.MediaCleanupTotal.WithLabelValues(metrics.CleanupStageInline, metrics.CleanupQueued).Inc()
}

func nonEmpty(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}
