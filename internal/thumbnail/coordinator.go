package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/mediashare/service/internal/storage"
)

const (
	retryBackoffBase = 30 * time.Second
	retryBackoffMax  = time.Hour
	extractTimeout   = 30 * time.Second
)

// Video is the per-item state the coordinator decides on. A thumbnail URL
// equal to the video URL is the "not yet generated" sentinel.
type Video struct {
	ID           string
	URL          string
	ThumbnailURL *string
	Attempts     int
	NextRetryAt  *time.Time
}

// Store persists coordinator outcomes on the owning media row.
type Store interface {
	// SetThumbnailURL records a successful generation and clears any
	// failure state. Called at most once per item in practice.
	SetThumbnailURL(ctx context.Context, mediaID, thumbnailURL string) error
	// RecordFailure bumps the attempt counter and schedules the next retry.
	RecordFailure(ctx context.Context, mediaID string, attempts int, lastError string, nextRetryAt time.Time) error
}

// Coordinator drives lazy thumbnail generation: fetch the video from object
// storage, extract a frame, store the derived image, update the media row.
// Failures are swallowed into a degraded (thumbnail-less) response and
// retried with exponential backoff on later reads.
type Coordinator struct {
	store   Store
	objects storage.Storage
	extract Extractor
	now     func() time.Time
}

// NewCoordinator wires a Coordinator from its injected capabilities.
func NewCoordinator(store Store, objects storage.Storage, extract Extractor) *Coordinator {
	return &Coordinator{store: store, objects: objects, extract: extract, now: time.Now}
}

// EnsureThumbnail returns the thumbnail URL for a video item, generating and
// persisting one if it does not exist yet. A nil return means "no thumbnail
// for this response"; the caller serves the item degraded and a later read
// retries. Never returns an error: extraction failures are not the reader's
// problem.
//
// Two concurrent calls for the same pending item both generate; the second
// row update overwrites the first with an equally valid thumbnail.
func (c *Coordinator) EnsureThumbnail(ctx context.Context, v Video) *string {
	if v.ThumbnailURL != nil && *v.ThumbnailURL != v.URL {
		return v.ThumbnailURL // terminal: never regenerated
	}
	if v.NextRetryAt != nil && c.now().Before(*v.NextRetryAt) {
		return nil // backing off after earlier failures
	}

	url, err := c.generate(ctx, v)
	if err != nil {
		c.recordFailure(ctx, v, err)
		return nil
	}
	return &url
}

func (c *Coordinator) generate(ctx context.Context, v Video) (string, error) {
	key, ok := c.objects.KeyFromURL(v.URL)
	if !ok {
		return "", fmt.Errorf("url %q is not backed by object storage", v.URL)
	}

	rc, err := c.objects.Download(ctx, key)
	if err != nil {
		return "", fmt.Errorf("download video %q: %w", key, err)
	}
	defer rc.Close()

	video, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read video %q: %w", key, err)
	}

	opts := DefaultOptions()
	extractCtx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	frame, err := c.extract.Extract(extractCtx, video, opts)
	if err != nil {
		return "", fmt.Errorf("extract frame: %w", err)
	}

	thumbKey := storage.GenerateObjectName("thumbnail." + opts.Format)
	if err := c.objects.Upload(ctx, thumbKey, bytes.NewReader(frame), int64(len(frame)), opts.ContentType()); err != nil {
		return "", fmt.Errorf("store thumbnail %q: %w", thumbKey, err)
	}

	// Partial failure past this point leaves an orphaned blob; the media row
	// stays pending and remains the source of truth.
	thumbURL := c.objects.PublicURL(thumbKey)
	if err := c.store.SetThumbnailURL(ctx, v.ID, thumbURL); err != nil {
		return "", fmt.Errorf("update media row: %w", err)
	}

	log.Printf("thumbnail: generated %s for media %s", thumbKey, v.ID)
	return thumbURL, nil
}

func (c *Coordinator) recordFailure(ctx context.Context, v Video, cause error) {
	attempts := v.Attempts + 1
	nextRetry := c.now().Add(backoff(attempts))

	log.Printf("thumbnail: generation failed for media %s (attempt %d, next retry %s): %v",
		v.ID, attempts, nextRetry.Format(time.RFC3339), cause)

	if err := c.store.RecordFailure(ctx, v.ID, attempts, cause.Error(), nextRetry); err != nil {
		log.Printf("thumbnail: recording failure for media %s: %v", v.ID, err)
	}
}

// backoff doubles the delay per attempt, from 30s up to an hour.
func backoff(attempts int) time.Duration {
	d := retryBackoffBase
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= retryBackoffMax {
			return retryBackoffMax
		}
	}
	return d
}
