package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mediashare/service/internal/comment"
	"github.com/mediashare/service/internal/thumbnail"
)

// fakeStore is an in-memory Store. Items list newest-first like the SQL does.
type fakeStore struct {
	items     []*Item
	sessions  map[string]UploadSession
	nextID    int
	insertErr error
	inserts   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]UploadSession{}}
}

func (s *fakeStore) Insert(_ context.Context, itemType, url string, thumbnailURL *string, uploaderName, description string) (*Item, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.inserts++
	s.nextID++
	it := &Item{
		ID:           fmt.Sprintf("item-%d", s.nextID),
		Type:         itemType,
		URL:          url,
		ThumbnailURL: thumbnailURL,
		UploaderName: uploaderName,
		Description:  description,
		CreatedAt:    time.Now().Add(time.Duration(s.nextID) * time.Second),
		Comments:     []comment.Comment{},
	}
	s.items = append([]*Item{it}, s.items...)
	return copyItem(it), nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*Item, error) {
	for _, it := range s.items {
		if it.ID == id {
			return copyItem(it), nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) List(_ context.Context, limit, offset int) ([]Item, error) {
	if offset >= len(s.items) {
		return []Item{}, nil
	}
	end := offset + limit
	if end > len(s.items) {
		end = len(s.items)
	}
	out := make([]Item, 0, end-offset)
	for _, it := range s.items[offset:end] {
		out = append(out, *copyItem(it))
	}
	return out, nil
}

func (s *fakeStore) Count(_ context.Context) (int, error) {
	return len(s.items), nil
}

func (s *fakeStore) CreateUploadSession(_ context.Context, sess UploadSession) error {
	s.sessions[sess.ObjectName] = sess
	return nil
}

func (s *fakeStore) GetUploadSession(_ context.Context, objectName string) (*UploadSession, error) {
	sess, ok := s.sessions[objectName]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func copyItem(it *Item) *Item {
	dup := *it
	if it.ThumbnailURL != nil {
		u := *it.ThumbnailURL
		dup.ThumbnailURL = &u
	}
	dup.Comments = append([]comment.Comment{}, it.Comments...)
	return &dup
}

// fakeObjects is an in-memory storage.Storage recording write order.
type fakeObjects struct {
	base      string
	blobs     map[string][]byte
	puts      []string
	uploadErr error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{base: "/media-sharing", blobs: map[string][]byte{}}
}

func (f *fakeObjects) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, _ := io.ReadAll(r)
	f.blobs[key] = data
	f.puts = append(f.puts, key)
	return nil
}

func (f *fakeObjects) Download(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.blobs[key]
	if !ok {
		return nil, errors.New("no such key: " + key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeObjects) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.blobs[key]
	return ok, nil
}

func (f *fakeObjects) PresignedPut(_ context.Context, key string, _ time.Duration) (string, error) {
	return "http://storage.local/" + key + "?signed", nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	delete(f.blobs, key)
	return nil
}

func (f *fakeObjects) PublicURL(key string) string {
	return f.base + "/" + key
}

func (f *fakeObjects) KeyFromURL(url string) (string, bool) {
	key, found := strings.CutPrefix(url, f.base+"/")
	return key, found && key != ""
}

// fakeComments serves canned comments per media ID.
type fakeComments struct {
	byMedia map[string][]comment.Comment
}

func newFakeComments() *fakeComments {
	return &fakeComments{byMedia: map[string][]comment.Comment{}}
}

func (f *fakeComments) ListByMediaIDs(_ context.Context, mediaIDs []string) (map[string][]comment.Comment, error) {
	out := map[string][]comment.Comment{}
	for _, id := range mediaIDs {
		if c, ok := f.byMedia[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

// fakeThumbs records which items the read path sent through the coordinator.
type fakeThumbs struct {
	calls  []string
	result *string
}

func (f *fakeThumbs) EnsureThumbnail(_ context.Context, v thumbnail.Video) *string {
	f.calls = append(f.calls, v.ID)
	if f.result != nil {
		return f.result
	}
	return v.ThumbnailURL
}

func newService(store *fakeStore, objects *fakeObjects, comments *fakeComments, thumbs *fakeThumbs) *Service {
	return NewService(store, objects, comments, thumbs)
}
