package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrValidation wraps missing/empty required field errors.
var ErrValidation = errors.New("validation")

// Store is the persistence capability the service depends on.
type Store interface {
	Insert(ctx context.Context, mediaID, author, content string) (*Comment, error)
	ListByMedia(ctx context.Context, mediaID string) ([]Comment, error)
}

// Service contains business logic for comments.
type Service struct {
	store Store
}

// NewService creates a new comment Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add appends a comment to a media item.
func (s *Service) Add(ctx context.Context, mediaID, author, content string) (*Comment, error) {
	if strings.TrimSpace(author) == "" {
		return nil, fmt.Errorf("%w: author name is required", ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}
	return s.store.Insert(ctx, mediaID, author, content)
}

// ListByMedia returns the comments for one media item, oldest first.
func (s *Service) ListByMedia(ctx context.Context, mediaID string) ([]Comment, error) {
	return s.store.ListByMedia(ctx, mediaID)
}
