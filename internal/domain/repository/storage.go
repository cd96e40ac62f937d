package repository

import (
	"context"
	"io"
)

// ObjectStorage defines the interface for object storage operations.
// Implementations should be provided by the infrastructure layer (e.g., MinIO, S3).
type ObjectStorage interface {
	// Upload stores an object under key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists in the storage.
	Exists(ctx context.Context, key string) (bool, error)
}

// LocalObject is a file staged on local disk awaiting upload.
type LocalObject struct {
	Path        string
	ContentType string
}

// StoredMedia describes an uploaded media file.
type StoredMedia struct {
	URL string
	// Duration is the playback length in seconds; zero for images.
	Duration float64
}

// MediaStore uploads media and removes it by the URL it returned.
type MediaStore interface {
	Store(ctx context.Context, obj LocalObject) (*StoredMedia, error)
	Remove(ctx context.Context, url string) error
}

// ThumbnailExtractor derives a still image from a staged video file.
type ThumbnailExtractor interface {
	Thumbnail(ctx context.Context, video LocalObject) (*LocalObject, error)
}
