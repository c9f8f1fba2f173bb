package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mediashare/service/internal/comment"
	"github.com/mediashare/service/internal/storage"
	"github.com/mediashare/service/internal/thumbnail"
)

const (
	// How long an issued presigned PUT URL stays valid.
	presignedExpiry = time.Hour

	defaultPageLimit = 12
)

// ErrValidation wraps all missing/empty required field errors.
var ErrValidation = errors.New("validation")

// Store is the persistence capability the service depends on.
type Store interface {
	Insert(ctx context.Context, itemType, url string, thumbnailURL *string, uploaderName, description string) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, limit, offset int) ([]Item, error)
	Count(ctx context.Context) (int, error)
	CreateUploadSession(ctx context.Context, s UploadSession) error
	GetUploadSession(ctx context.Context, objectName string) (*UploadSession, error)
}

// CommentLister attaches comments to media items on the read path.
type CommentLister interface {
	ListByMediaIDs(ctx context.Context, mediaIDs []string) (map[string][]comment.Comment, error)
}

// Thumbnailer is the lazy thumbnail coordinator, invoked per video item read.
type Thumbnailer interface {
	EnsureThumbnail(ctx context.Context, v thumbnail.Video) *string
}

// Service contains the upload orchestration and read-path logic.
type Service struct {
	store    Store
	objects  storage.Storage
	comments CommentLister
	thumbs   Thumbnailer
}

// NewService creates a new media Service from its injected capabilities.
func NewService(store Store, objects storage.Storage, comments CommentLister, thumbs Thumbnailer) *Service {
	return &Service{store: store, objects: objects, comments: comments, thumbs: thumbs}
}

// File is an uploaded payload held in memory.
type File struct {
	Data        []byte
	Name        string
	ContentType string
}

// Page is one page of the media feed.
type Page struct {
	Data       []Item `json:"data"`
	NextPage   *int   `json:"nextPage"`
	TotalPages int    `json:"totalPages"`
	TotalItems int    `json:"totalItems"`
}

// UploadURLResult is what presigned-URL issuance returns to the client.
type UploadURLResult struct {
	PresignedURL string `json:"presignedUrl"`
	MediaID      string `json:"mediaId"`
	ObjectName   string `json:"objectName"`
}

// typeOf maps a MIME content type to a media kind.
func typeOf(contentType string) string {
	if strings.HasPrefix(contentType, "video/") {
		return TypeVideo
	}
	return TypeImage
}

// Upload is the server-side upload path: write the blob first, then insert
// the row, so a row never points to a missing blob. objectName may be empty,
// in which case one is generated from the file's name.
//
// The thumbnail is always deferred to lazy generation, so thumbnail_url
// starts out null for images and videos alike.
func (s *Service) Upload(ctx context.Context, f File, uploaderName, description, objectName string) (*Item, error) {
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("%w: no file uploaded", ErrValidation)
	}
	if strings.TrimSpace(uploaderName) == "" {
		return nil, fmt.Errorf("%w: uploader name is required", ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	if objectName == "" {
		objectName = storage.GenerateObjectName(f.Name)
	}

	if err := s.objects.Upload(ctx, objectName, bytes.NewReader(f.Data), int64(len(f.Data)), f.ContentType); err != nil {
		return nil, fmt.Errorf("upload object: %w", err)
	}

	item, err := s.store.Insert(ctx, typeOf(f.ContentType), s.objects.PublicURL(objectName), nil, uploaderName, description)
	if err != nil {
		return nil, fmt.Errorf("persist media item: %w", err)
	}
	return item, nil
}

// CreateUploadURL issues a presigned PUT credential and creates the media row
// immediately, before any bytes exist in object storage. The client needs the
// row's ID to attach comments while the upload is still in flight; the read
// path tolerates the missing blob.
func (s *Service) CreateUploadURL(ctx context.Context, fileName, fileType, uploaderName, description string) (*UploadURLResult, error) {
	required := []struct{ field, value string }{
		{"file name", fileName},
		{"file type", fileType},
		{"uploader name", uploaderName},
		{"description", description},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrValidation, r.field)
		}
	}

	objectName := storage.GenerateObjectName(fileName)

	presigned, err := s.objects.PresignedPut(ctx, objectName, presignedExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue presigned url: %w", err)
	}

	url := s.objects.PublicURL(objectName)

	// Sentinel state for videos: thumbnail_url == url means "no real
	// thumbnail yet, fall back to the raw asset".
	var thumbURL *string
	if typeOf(fileType) == TypeVideo {
		thumbURL = &url
	}

	item, err := s.store.Insert(ctx, typeOf(fileType), url, thumbURL, uploaderName, description)
	if err != nil {
		return nil, fmt.Errorf("persist media item: %w", err)
	}

	session := UploadSession{
		ObjectName:   objectName,
		MediaID:      item.ID,
		ContentType:  fileType,
		UploaderName: uploaderName,
		Description:  description,
		ExpiresAt:    time.Now().Add(presignedExpiry),
	}
	if err := s.store.CreateUploadSession(ctx, session); err != nil {
		return nil, fmt.Errorf("record upload session: %w", err)
	}

	return &UploadURLResult{PresignedURL: presigned, MediaID: item.ID, ObjectName: objectName}, nil
}

// CompleteDirectUpload finishes an upload routed through the server. Metadata
// comes from the completion token when one decodes cleanly, otherwise from
// the raw form fields, with sentinel defaults substituted for anything
// missing — this path never fails on metadata.
//
// The object name is the idempotency key: when the token references an
// object with a recorded upload session, the row created at issuance is
// reused instead of inserting a second one.
func (s *Service) CompleteDirectUpload(ctx context.Context, f File, rawToken, uploaderName, description string) (*Item, error) {
	objectName := ""
	if tok, ok := decodeUploadToken(rawToken); ok {
		objectName = tok.ObjectName
		uploaderName = tok.UploaderName
		description = tok.Description
	}
	if strings.TrimSpace(uploaderName) == "" {
		uploaderName = DefaultUploaderName
	}
	if strings.TrimSpace(description) == "" {
		description = DefaultDescription
	}

	if objectName != "" {
		session, err := s.store.GetUploadSession(ctx, objectName)
		switch {
		case err == nil:
			return s.finishSession(ctx, f, session)
		case errors.Is(err, ErrSessionNotFound):
			// Token references an object this server never issued; fall
			// through and persist under that name as a fresh item.
		default:
			return nil, fmt.Errorf("look up upload session: %w", err)
		}
	}

	return s.Upload(ctx, f, uploaderName, description, objectName)
}

// finishSession writes the blob for a row that already exists from issuance.
func (s *Service) finishSession(ctx context.Context, f File, session *UploadSession) (*Item, error) {
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("%w: no file uploaded", ErrValidation)
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = session.ContentType
	}

	if err := s.objects.Upload(ctx, session.ObjectName, bytes.NewReader(f.Data), int64(len(f.Data)), contentType); err != nil {
		return nil, fmt.Errorf("upload object: %w", err)
	}

	item, err := s.store.GetByID(ctx, session.MediaID)
	if err != nil {
		return nil, fmt.Errorf("load media item for session: %w", err)
	}
	return item, nil
}

// Get returns a single media item with its comments attached. Video items
// pass through the thumbnail coordinator first.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByMediaIDs(ctx, []string{item.ID})
	if err != nil {
		return nil, fmt.Errorf("attach comments: %w", err)
	}
	if c, ok := comments[item.ID]; ok {
		item.Comments = c
	}

	s.ensureThumbnail(ctx, item)
	return item, nil
}

// List returns one page of the feed, newest first, comments oldest-first per
// item, with lazy thumbnail generation applied to every video encountered.
func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	offset := (page - 1) * limit

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	commentsByID := map[string][]comment.Comment{}
	if len(ids) > 0 {
		commentsByID, err = s.comments.ListByMediaIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("attach comments: %w", err)
		}
	}

	for i := range items {
		if c, ok := commentsByID[items[i].ID]; ok {
			items[i].Comments = c
		}
		s.ensureThumbnail(ctx, &items[i])
	}

	totalPages := (total + limit - 1) / limit
	result := &Page{Data: items, TotalPages: totalPages, TotalItems: total}
	if page < totalPages {
		next := page + 1
		result.NextPage = &next
	}
	return result, nil
}

// ensureThumbnail runs the coordinator for video items and folds the result
// into the in-flight response. The coordinator already persisted it.
func (s *Service) ensureThumbnail(ctx context.Context, item *Item) {
	if item.Type != TypeVideo {
		return
	}
	item.ThumbnailURL = s.thumbs.EnsureThumbnail(ctx, thumbnail.Video{
		ID:           item.ID,
		URL:          item.URL,
		ThumbnailURL: item.ThumbnailURL,
		Attempts:     item.ThumbAttempts,
		NextRetryAt:  item.ThumbNextRetryAt,
	})
}

// IsNotFound returns true when the error indicates a missing media item.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
