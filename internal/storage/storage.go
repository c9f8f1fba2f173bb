// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"io"
	"time"
)

// Storage is the capability object for blob storage, injected into every
// component that touches object bytes.
type Storage interface {
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Download opens a streamed read of the object at key. The caller must
	// close the returned reader. A missing object surfaces as an error on
	// the first Read, not here.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Exists reports whether an object is present under key.
	Exists(ctx context.Context, key string) (bool, error)
	// PresignedPut issues a time-limited URL permitting a direct
	// client-to-store upload of the object at key.
	PresignedPut(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
	// KeyFromURL recovers the object key from a URL previously produced by
	// PublicURL. ok is false for URLs outside this store's public base.
	KeyFromURL(url string) (key string, ok bool)
}
