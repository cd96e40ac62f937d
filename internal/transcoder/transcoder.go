package transcoder

import (
	"context"
)

// ProbeResult contains the media facts read from an uploaded file.
type ProbeResult struct {
	// Duration is the container duration in seconds.
	Duration float64
}

// Processor defines the media inspection operations the upload flow needs.
type Processor interface {
	// Probe reads container metadata from inputPath.
	Probe(ctx context.Context, inputPath string) (*ProbeResult, error)

	// ExtractThumbnail writes a single JPEG frame taken at offset seconds
	// into outputPath. The parent directory of outputPath must exist.
	ExtractThumbnail(ctx context.Context, inputPath, outputPath string, offset float64) error
}
