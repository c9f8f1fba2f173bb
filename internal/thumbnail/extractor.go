// Package thumbnail generates still-image thumbnails for uploaded videos,
// lazily, on first read.
package thumbnail

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// Options controls a single frame extraction.
type Options struct {
	OffsetSeconds float64 // capture position in the video
	Width         int     // 0 means keep source width
	Height        int     // 0 means keep source height
	Format        string  // "jpg" or "png"
}

// DefaultOptions captures one JPEG frame at 1 second, scaled to 320x180.
func DefaultOptions() Options {
	return Options{OffsetSeconds: 1, Width: 320, Height: 180, Format: "jpg"}
}

// ContentType returns the MIME type of the produced image.
func (o Options) ContentType() string {
	if o.Format == "png" {
		return "image/png"
	}
	return "image/jpeg"
}

// Extractor produces a single still image from a video byte buffer.
type Extractor interface {
	Extract(ctx context.Context, video []byte, opts Options) ([]byte, error)
}

// FFmpegExtractor shells out to ffmpeg to decode one frame.
type FFmpegExtractor struct {
	path string // ffmpeg binary, usually just "ffmpeg"
}

// NewFFmpegExtractor creates an extractor using the given ffmpeg binary.
func NewFFmpegExtractor(path string) *FFmpegExtractor {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpegExtractor{path: path}
}

// Extract writes the video buffer to a temp file, invokes ffmpeg to grab the
// frame at the requested offset, and reads the result back. Both temp files
// are removed on every exit path.
func (e *FFmpegExtractor) Extract(ctx context.Context, video []byte, opts Options) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = "jpg"
	}

	id := uuid.NewString()
	inPath := filepath.Join(os.TempDir(), "video-"+id)
	outPath := filepath.Join(os.TempDir(), "frame-"+id+"."+opts.Format)
	defer os.Remove(inPath)
	defer os.Remove(outPath)

	if err := os.WriteFile(inPath, video, 0o600); err != nil {
		return nil, fmt.Errorf("write temp video: %w", err)
	}

	args := []string{
		"-ss", strconv.FormatFloat(opts.OffsetSeconds, 'f', -1, 64),
		"-i", inPath,
		"-vframes", "1",
		"-q:v", "2",
	}
	if opts.Width > 0 || opts.Height > 0 {
		args = append(args, "-vf", scaleFilter(opts.Width, opts.Height))
	}
	args = append(args, "-y", outPath)

	cmd := exec.CommandContext(ctx, e.path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w, output: %s", err, out)
	}

	frame, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg produced no output file: %w", err)
	}
	return frame, nil
}

// scaleFilter builds an ffmpeg scale expression; -1 preserves aspect ratio
// on the unspecified axis.
func scaleFilter(w, h int) string {
	if w <= 0 {
		w = -1
	}
	if h <= 0 {
		h = -1
	}
	return fmt.Sprintf("scale=%d:%d", w, h)
}
