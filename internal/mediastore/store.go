// Package mediastore turns staged upload files into public media URLs.
package mediastore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/transcoder"
)

// ErrForeignURL is returned when a URL was not issued by this store.
var ErrForeignURL = errors.New("url does not belong to media store")

const (
	videoPrefix     = "videos/"
	imagePrefix     = "images/"
	thumbnailOffset = 1.0
)

// Config holds media store settings.
type Config struct {
	// PublicBaseURL is joined with the object key to form stored URLs.
	PublicBaseURL string
	// TempDir receives extracted thumbnails before upload.
	TempDir string

	BreakerMaxFailures uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration
}

// Store implements repository.MediaStore on top of object storage.
type Store struct {
	storage repository.ObjectStorage
	proc    transcoder.Processor
	cb      *gobreaker.CircuitBreaker
	baseURL string
	tempDir string
}

var (
	_ repository.MediaStore         = (*Store)(nil)
	_ repository.ThumbnailExtractor = (*Store)(nil)
)

// New creates a Store. Object storage calls share one circuit breaker so a
// failing MinIO stops accepting uploads quickly instead of tying up requests.
func New(storage repository.ObjectStorage, proc transcoder.Processor, cfg Config) *Store {
	st := gobreaker.Settings{
		Name:        "object-storage",
		MaxRequests: 1,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	return &Store{
		storage: storage,
		proc:    proc,
		cb:      gobreaker.NewCircuitBreaker(st),
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		tempDir: tempDir,
	}
}

// Store uploads a staged file. Videos are probed for their duration first so
// an unreadable file is rejected before anything reaches object storage.
func (s *Store) Store(ctx context.Context, obj repository.LocalObject) (*repository.StoredMedia, error) {
	f, err := os.Open(obj.Path)
	if err != nil {
		return nil, fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat staged file: %w", err)
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(obj.Path))
	}

	var duration float64
	prefix := imagePrefix
	if isVideo(contentType) {
		prefix = videoPrefix
		probe, err := s.proc.Probe(ctx, obj.Path)
		if err != nil {
			return nil, fmt.Errorf("probe media: %w", err)
		}
		duration = probe.Duration
	}

	key := prefix + uuid.NewString() + strings.ToLower(filepath.Ext(obj.Path))

	_, err = s.cb.Execute(func() (interface{}, error) {
		return nil, s.storage.Upload(ctx, key, f, info.Size(), contentType)
	})
	if err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}

	return &repository.StoredMedia{
		URL:      s.baseURL + "/" + key,
		Duration: duration,
	}, nil
}

// Remove deletes the object behind a URL returned by Store. Empty URLs are
// ignored since optional media may never have been set.
func (s *Store) Remove(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	key, err := s.keyFor(url)
	if err != nil {
		return err
	}

	_, err = s.cb.Execute(func() (interface{}, error) {
		return nil, s.storage.Delete(ctx, key)
	})
	if err != nil {
		return fmt.Errorf("remove media: %w", err)
	}
	return nil
}

// Thumbnail extracts a JPEG frame from a staged video into the temp dir.
// The caller owns the returned file.
func (s *Store) Thumbnail(ctx context.Context, video repository.LocalObject) (*repository.LocalObject, error) {
	out := filepath.Join(s.tempDir, "thumb-"+uuid.NewString()+".jpg")

	if err := s.proc.ExtractThumbnail(ctx, video.Path, out, thumbnailOffset); err != nil {
		return nil, fmt.Errorf("extract thumbnail: %w", err)
	}

	return &repository.LocalObject{Path: out, ContentType: "image/jpeg"}, nil
}

func (s *Store) keyFor(url string) (string, error) {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || key == "" {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, url)
	}
	return key, nil
}

func isVideo(contentType string) bool {
	return strings.HasPrefix(contentType, "video/")
}
