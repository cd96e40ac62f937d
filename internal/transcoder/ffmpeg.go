package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// FFmpegConfig holds configuration for the FFmpeg-backed processor.
type FFmpegConfig struct {
	// FFmpegPath is the path to the ffmpeg binary.
	// If empty, "ffmpeg" will be used (assumes it's in PATH).
	FFmpegPath string

	// FFprobePath is the path to the ffprobe binary.
	// If empty, "ffprobe" will be used.
	FFprobePath string

	// ThumbnailWidth is the width of extracted thumbnails in pixels.
	// Height is calculated to maintain aspect ratio.
	// Default: 640
	ThumbnailWidth int
}

// DefaultFFmpegConfig returns an FFmpegConfig with production-ready defaults.
func DefaultFFmpegConfig() FFmpegConfig {
	return FFmpegConfig{
		FFmpegPath:     "ffmpeg",
		FFprobePath:    "ffprobe",
		ThumbnailWidth: 640,
	}
}

// commandRunner executes a binary and returns its stdout.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// FFmpegProcessor implements Processor using the ffprobe and ffmpeg CLIs.
type FFmpegProcessor struct {
	config FFmpegConfig
	run    commandRunner
}

// Compile-time verification that FFmpegProcessor implements Processor.
var _ Processor = (*FFmpegProcessor)(nil)

// NewFFmpegProcessor creates a new FFmpeg-based processor.
func NewFFmpegProcessor(cfg FFmpegConfig) *FFmpegProcessor {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = "ffprobe"
	}
	if cfg.ThumbnailWidth <= 0 {
		cfg.ThumbnailWidth = 640
	}
	return &FFmpegProcessor{
		config: cfg,
		run:    runCommand,
	}
}

// Probe reads the container duration with ffprobe.
func (p *FFmpegProcessor) Probe(ctx context.Context, inputPath string) (*ProbeResult, error) {
	if err := p.validateInput(inputPath); err != nil {
		return nil, err
	}

	out, err := p.run(ctx, p.config.FFprobePath, p.buildProbeArgs(inputPath)...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("probe cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("ffprobe execution failed: %w", err)
	}

	duration, err := parseDuration(out)
	if err != nil {
		return nil, err
	}

	return &ProbeResult{Duration: duration}, nil
}

// ExtractThumbnail grabs one frame with ffmpeg and scales it to the configured width.
func (p *FFmpegProcessor) ExtractThumbnail(ctx context.Context, inputPath, outputPath string, offset float64) error {
	if err := p.validateInput(inputPath); err != nil {
		return err
	}
	if err := p.validateOutputDir(filepath.Dir(outputPath)); err != nil {
		return err
	}

	if _, err := p.run(ctx, p.config.FFmpegPath, p.buildThumbnailArgs(inputPath, outputPath, offset)...); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("thumbnail extraction cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("ffmpeg execution failed: %w", err)
	}

	if _, err := os.Stat(outputPath); err != nil {
		return fmt.Errorf("thumbnail not generated: %w", err)
	}

	return nil
}

// validateInput checks if the input file exists and is readable.
func (p *FFmpegProcessor) validateInput(inputPath string) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file does not exist: %s", inputPath)
		}
		return fmt.Errorf("failed to access input file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("input path is a directory, expected a file: %s", inputPath)
	}

	return nil
}

// validateOutputDir checks if the output directory exists.
func (p *FFmpegProcessor) validateOutputDir(outputDir string) error {
	info, err := os.Stat(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", outputDir)
		}
		return fmt.Errorf("failed to access output directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("output path is not a directory: %s", outputDir)
	}

	return nil
}

func (p *FFmpegProcessor) buildProbeArgs(inputPath string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	}
}

func (p *FFmpegProcessor) buildThumbnailArgs(inputPath, outputPath string, offset float64) []string {
	// -2 keeps the height even, which the mjpeg encoder requires
	scaleFilter := fmt.Sprintf("scale=%d:-2", p.config.ThumbnailWidth)

	return []string{
		"-ss", strconv.FormatFloat(offset, 'f', 3, 64),
		"-i", inputPath,
		"-frames:v", "1",
		"-vf", scaleFilter,
		"-q:v", "2",
		"-y",
		outputPath,
	}
}

// parseDuration reads ffprobe's bare duration output.
func parseDuration(out []byte) (float64, error) {
	s := strings.TrimSpace(string(out))
	if s == "" || s == "N/A" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}

	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %v", d)
	}
	return d, nil
}
