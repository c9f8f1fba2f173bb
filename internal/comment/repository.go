// Package comment manages the append-only comments attached to media items.
package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Comment is one comment on a media item. Comments are append-only: there is
// no edit or delete operation, and rows disappear only when the owning media
// item is removed (FK cascade).
type Comment struct {
	ID        string    `json:"id"`
	MediaID   string    `json:"mediaId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrMediaNotFound is returned when the owning media item does not exist.
var ErrMediaNotFound = errors.New("media item not found")

// Repository handles all comment database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert appends a comment to a media item. A missing media item surfaces as
// ErrMediaNotFound via the foreign key, with no separate existence query.
func (r *Repository) Insert(ctx context.Context, mediaID, author, content string) (*Comment, error) {
	c := &Comment{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO comments (media_id, author, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, media_id, author, content, created_at`,
		mediaID, author, content,
	).Scan(&c.ID, &c.MediaID, &c.Author, &c.Content, &c.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidUUID(err) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}

// ListByMedia returns all comments for one media item, oldest first.
func (r *Repository) ListByMedia(ctx context.Context, mediaID string) ([]Comment, error) {
	byID, err := r.ListByMediaIDs(ctx, []string{mediaID})
	if err != nil {
		return nil, err
	}
	if c, ok := byID[mediaID]; ok {
		return c, nil
	}
	return []Comment{}, nil
}

// ListByMediaIDs returns comments for a set of media items, grouped by owner,
// each group ordered oldest first.
func (r *Repository) ListByMediaIDs(ctx context.Context, mediaIDs []string) (map[string][]Comment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, media_id, author, content, created_at
		 FROM comments
		 WHERE media_id = ANY($1::uuid[])
		 ORDER BY created_at ASC`,
		mediaIDs,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return map[string][]Comment{}, nil
		}
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	byID := map[string][]Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.MediaID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		byID[c.MediaID] = append(byID[c.MediaID], c)
	}
	// pgx can defer execution errors to rows.Err(), including the uuid cast.
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return map[string][]Comment{}, nil
		}
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return byID, nil
}

// isForeignKeyViolation checks for PostgreSQL foreign_key_violation (code 23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isInvalidUUID checks for PostgreSQL invalid_text_representation (code 22P02).
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
