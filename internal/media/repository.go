// Package media manages uploaded media items: persistence, the upload
// protocols, and the paginated read path.
package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediashare/service/internal/comment"
)

// Item represents one uploaded image or video.
//
// ThumbnailURL is nil (no thumbnail yet), equal to URL (presigned-upload
// sentinel: fall back to the raw video), or a distinct object-store URL for
// a generated still. Once distinct from URL it is never overwritten.
type Item struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	URL          string            `json:"url"`
	ThumbnailURL *string           `json:"thumbnailUrl,omitempty"`
	UploaderName string            `json:"uploaderName"`
	Description  string            `json:"description"`
	CreatedAt    time.Time         `json:"createdAt"`
	Comments     []comment.Comment `json:"comments"`

	// Thumbnail failure bookkeeping, not part of the API surface.
	ThumbAttempts    int        `json:"-"`
	ThumbNextRetryAt *time.Time `json:"-"`
}

// Media kinds.
const (
	TypeImage = "image"
	TypeVideo = "video"
)

// UploadSession is the server-side record of a presigned-URL issuance,
// keyed by the object name chosen at that time.
type UploadSession struct {
	ObjectName   string
	MediaID      string
	ContentType  string
	UploaderName string
	Description  string
	ExpiresAt    time.Time
}

// ErrNotFound is returned when a media item does not exist.
var ErrNotFound = errors.New("media item not found")

// ErrSessionNotFound is returned when no upload session exists for an object name.
var ErrSessionNotFound = errors.New("upload session not found")

const itemColumns = `id, type, url, thumbnail_url, uploader_name, description,
	created_at, thumb_attempts, thumb_next_retry_at`

// Repository handles all media item database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert creates a new media item row and returns the stored record.
func (r *Repository) Insert(ctx context.Context, itemType, url string, thumbnailURL *string, uploaderName, description string) (*Item, error) {
	it := &Item{Comments: []comment.Comment{}}
	err := r.db.QueryRow(ctx,
		`INSERT INTO media_items (type, url, thumbnail_url, uploader_name, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+itemColumns,
		itemType, url, thumbnailURL, uploaderName, description,
	).Scan(&it.ID, &it.Type, &it.URL, &it.ThumbnailURL, &it.UploaderName,
		&it.Description, &it.CreatedAt, &it.ThumbAttempts, &it.ThumbNextRetryAt)
	if err != nil {
		return nil, fmt.Errorf("insert media item: %w", err)
	}
	return it, nil
}

// GetByID fetches one media item. Comments are not attached here.
func (r *Repository) GetByID(ctx context.Context, id string) (*Item, error) {
	it := &Item{Comments: []comment.Comment{}}
	err := r.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM media_items WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Type, &it.URL, &it.ThumbnailURL, &it.UploaderName,
		&it.Description, &it.CreatedAt, &it.ThumbAttempts, &it.ThumbNextRetryAt)
	if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get media item: %w", err)
	}
	return it, nil
}

// List returns one page of media items, newest first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+` FROM media_items
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list media items: %w", err)
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		it := Item{Comments: []comment.Comment{}}
		if err := rows.Scan(&it.ID, &it.Type, &it.URL, &it.ThumbnailURL, &it.UploaderName,
			&it.Description, &it.CreatedAt, &it.ThumbAttempts, &it.ThumbNextRetryAt); err != nil {
			return nil, fmt.Errorf("scan media item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Count returns the total number of media items.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM media_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count media items: %w", err)
	}
	return n, nil
}

// Delete removes a media item; comments cascade at the database level.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM media_items WHERE id = $1`, id)
	return err
}

// SetThumbnailURL records a generated thumbnail and clears failure state.
func (r *Repository) SetThumbnailURL(ctx context.Context, mediaID, thumbnailURL string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE media_items
		 SET thumbnail_url = $2, thumb_attempts = 0, thumb_last_error = NULL,
		     thumb_next_retry_at = NULL, updated_at = now()
		 WHERE id = $1`,
		mediaID, thumbnailURL,
	)
	if err != nil {
		return fmt.Errorf("set thumbnail url: %w", err)
	}
	return nil
}

// RecordFailure stores the outcome of a failed thumbnail attempt.
func (r *Repository) RecordFailure(ctx context.Context, mediaID string, attempts int, lastError string, nextRetryAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE media_items
		 SET thumb_attempts = $2, thumb_last_error = $3, thumb_next_retry_at = $4,
		     updated_at = now()
		 WHERE id = $1`,
		mediaID, attempts, lastError, nextRetryAt,
	)
	if err != nil {
		return fmt.Errorf("record thumbnail failure: %w", err)
	}
	return nil
}

// CreateUploadSession stores the server-side record of a presigned issuance.
func (r *Repository) CreateUploadSession(ctx context.Context, s UploadSession) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO upload_sessions (object_name, media_id, content_type, uploader_name, description, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ObjectName, s.MediaID, s.ContentType, s.UploaderName, s.Description, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create upload session: %w", err)
	}
	return nil
}

// GetUploadSession looks up the session recorded for an object name.
func (r *Repository) GetUploadSession(ctx context.Context, objectName string) (*UploadSession, error) {
	s := &UploadSession{}
	err := r.db.QueryRow(ctx,
		`SELECT object_name, media_id, content_type, uploader_name, description, expires_at
		 FROM upload_sessions WHERE object_name = $1`,
		objectName,
	).Scan(&s.ObjectName, &s.MediaID, &s.ContentType, &s.UploaderName, &s.Description, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get upload session: %w", err)
	}
	return s, nil
}

// isInvalidUUID checks for PostgreSQL invalid_text_representation (code 22P02),
// raised when a path parameter is not a valid UUID.
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
