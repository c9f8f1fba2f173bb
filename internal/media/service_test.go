package media

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediashare/service/internal/comment"
)

func TestUploadValidatesBeforeAnyIO(t *testing.T) {
	store := newFakeStore()
	objects := newFakeObjects()
	svc := newService(store, objects, newFakeComments(), &fakeThumbs{})

	cases := []struct {
		name string
		file File
		up   string
		desc string
	}{
		{"no file", File{}, "Alice", "A cat"},
		{"empty uploader", File{Data: []byte("x"), Name: "a.jpg"}, "  ", "A cat"},
		{"empty description", File{Data: []byte("x"), Name: "a.jpg"}, "Alice", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), tc.file, tc.up, tc.desc, "")
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, objects.puts, "validation failures must not touch storage")
	assert.Zero(t, store.inserts, "validation failures must not insert rows")
}

func TestUploadWritesBlobThenRow(t *testing.T) {
	store := newFakeStore()
	objects := newFakeObjects()
	svc := newService(store, objects, newFakeComments(), &fakeThumbs{})

	item, err := svc.Upload(context.Background(),
		File{Data: []byte("video-bytes"), Name: "cat.mp4", ContentType: "video/mp4"},
		"Alice", "A cat", "")

	require.NoError(t, err)
	assert.Equal(t, TypeVideo, item.Type)
	assert.Equal(t, "Alice", item.UploaderName)
	assert.Nil(t, item.ThumbnailURL, "thumbnail is always deferred to lazy generation")
	assert.Empty(t, item.Comments)

	require.Len(t, objects.puts, 1)
	key := objects.puts[0]
	assert.True(t, strings.HasSuffix(key, ".mp4"))
	assert.Equal(t, objects.PublicURL(key), item.URL)
}

func TestUploadDeterminesTypeFromContentType(t *testing.T) {
	svc := newService(newFakeStore(), newFakeObjects(), newFakeComments(), &fakeThumbs{})

	img, err := svc.Upload(context.Background(),
		File{Data: []byte("img"), Name: "p.png", ContentType: "image/png"}, "Bob", "pic", "")
	require.NoError(t, err)
	assert.Equal(t, TypeImage, img.Type)
	assert.Nil(t, img.ThumbnailURL, "images never get a thumbnail URL")

	vid, err := svc.Upload(context.Background(),
		File{Data: []byte("vid"), Name: "v.webm", ContentType: "video/webm"}, "Bob", "vid", "")
	require.NoError(t, err)
	assert.Equal(t, TypeVideo, vid.Type)
}

func TestUploadIsAllOrNothingOnStorageFailure(t *testing.T) {
	store := newFakeStore()
	objects := newFakeObjects()
	objects.uploadErr = errors.New("bucket unreachable")
	svc := newService(store, objects, newFakeComments(), &fakeThumbs{})

	_, err := svc.Upload(context.Background(),
		File{Data: []byte("x"), Name: "a.jpg", ContentType: "image/jpeg"}, "Alice", "pic", "")

	require.Error(t, err)
	assert.Zero(t, store.inserts, "no row when the blob write fails")
}

func TestCreateUploadURLCreatesRowBeforeBytesExist(t *testing.T) {
	store := newFakeStore()
	objects := newFakeObjects()
	svc := newService(store, objects, newFakeComments(), &fakeThumbs{})

	result, err := svc.CreateUploadURL(context.Background(), "cat.mp4", "video/mp4", "Alice", "A cat")

	require.NoError(t, err)
	assert.NotEmpty(t, result.PresignedURL)
	assert.True(t, strings.HasSuffix(result.ObjectName, ".mp4"))

	// The row exists even though no blob was written.
	assert.Empty(t, objects.puts)
	item, err := store.GetByID(context.Background(), result.MediaID)
	require.NoError(t, err)
	assert.Equal(t, TypeVideo, item.Type)
	require.NotNil(t, item.ThumbnailURL)
	assert.Equal(t, item.URL, *item.ThumbnailURL, "video rows start in the sentinel state")

	// And the issuance was recorded server-side, keyed by the object name.
	sess, err := store.GetUploadSession(context.Background(), result.ObjectName)
	require.NoError(t, err)
	assert.Equal(t, result.MediaID, sess.MediaID)
	assert.Equal(t, "Alice", sess.UploaderName)
}

func TestCreateUploadURLImageHasNoSentinel(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, newFakeObjects(), newFakeComments(), &fakeThumbs{})

	result, err := svc.CreateUploadURL(context.Background(), "photo.jpg", "image/jpeg", "Bob", "pic")

	require.NoError(t, err)
	item, err := store.GetByID(context.Background(), result.MediaID)
	require.NoError(t, err)
	assert.Nil(t, item.ThumbnailURL)
}

func TestCreateUploadURLValidation(t *testing.T) {
	svc := newService(newFakeStore(), newFakeObjects(), newFakeComments(), &fakeThumbs{})

	_, err := svc.CreateUploadURL(context.Background(), "", "video/mp4", "Alice", "A cat")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateUploadURL(context.Background(), "cat.mp4", "video/mp4", "", "A cat")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompleteDirectUploadReusesIssuedRow(t *testing.T) {
	store := newFakeStore()
	objects := newFakeObjects()
	svc := newService(store, objects, newFakeComments(), &fakeThumbs{})

	issued, err := svc.CreateUploadURL(context.Background(), "cat.mp4", "video/mp4", "Alice", "A cat")
	require.NoError(t, err)
	rowsAfterIssuance := store.inserts

	token := base64.StdEncoding.EncodeToString([]byte(
		`{"uploaderName":"Alice","description":"A cat","objectName":"` + issued.ObjectName + `"}`))

	item, err := svc.CompleteDirectUpload(context.Background(),
		File{Data: []byte("video-bytes"), Name: "cat.mp4", ContentType: "video/mp4"}, token, "", "")

	require.NoError(t, err)
	assert.Equal(t, issued.MediaID, item.ID, "object name is the idempotency key: the issued row is reused")
	assert.Equal(t, rowsAfterIssuance, store.inserts, "completion must not create a second row")
	assert.Equal(t, []byte("video-bytes"), objects.blobs[issued.ObjectName])
}

func TestCompleteDirectUploadMalformedTokenFallsBackToDefaults(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, newFakeObjects(), newFakeComments(), &fakeThumbs{})

	item, err := svc.CompleteDirectUpload(context.Background(),
		File{Data: []byte("img"), Name: "p.jpg", ContentType: "image/jpeg"},
		"!!! not decodable !!!", "", "")

	require.NoError(t, err)
	assert.Equal(t, DefaultUploaderName, item.UploaderName)
	assert.Equal(t, DefaultDescription, item.Description)
}

func TestCompleteDirectUploadPrefersFormFieldsOverDefaults(t *testing.T) {
	svc := newService(newFakeStore(), newFakeObjects(), newFakeComments(), &fakeThumbs{})

	item, err := svc.CompleteDirectUpload(context.Background(),
		File{Data: []byte("img"), Name: "p.jpg", ContentType: "image/jpeg"},
		"", "Carol", "holiday pic")

	require.NoError(t, err)
	assert.Equal(t, "Carol", item.UploaderName)
	assert.Equal(t, "holiday pic", item.Description)
}

func TestCompleteDirectUploadUnknownObjectNamePersistsFresh(t *testing.T) {
	store := newFakeStore()
	objects := newFakeObjects()
	svc := newService(store, objects, newFakeComments(), &fakeThumbs{})

	token := base64.StdEncoding.EncodeToString([]byte(
		`{"uploaderName":"Dave","description":"import","objectName":"foreign-99.mp4"}`))

	item, err := svc.CompleteDirectUpload(context.Background(),
		File{Data: []byte("vid"), Name: "x.mp4", ContentType: "video/mp4"}, token, "", "")

	require.NoError(t, err)
	assert.Equal(t, "Dave", item.UploaderName)
	assert.Equal(t, []byte("vid"), objects.blobs["foreign-99.mp4"], "token object name is honored")
	assert.Equal(t, 1, store.inserts)
}

func TestListPagination(t *testing.T) {
	store := newFakeStore()
	svc := newService(store, newFakeObjects(), newFakeComments(), &fakeThumbs{})

	for i := 0; i < 5; i++ {
		_, err := svc.Upload(context.Background(),
			File{Data: []byte("img"), Name: "p.jpg", ContentType: "image/jpeg"}, "Alice", "pic", "")
		require.NoError(t, err)
	}

	page1, err := svc.List(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, page1.Data, 2)
	assert.Equal(t, 5, page1.TotalItems)
	assert.Equal(t, 3, page1.TotalPages)
	require.NotNil(t, page1.NextPage)
	assert.Equal(t, 2, *page1.NextPage)

	// Newest first across the whole page.
	assert.True(t, !page1.Data[0].CreatedAt.Before(page1.Data[1].CreatedAt))

	page3, err := svc.List(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3.Data, 1)
	assert.Nil(t, page3.NextPage, "no next page on the last page")

	page9, err := svc.List(context.Background(), 9, 2)
	require.NoError(t, err)
	assert.Empty(t, page9.Data)
	assert.Nil(t, page9.NextPage)
}

func TestListAttachesCommentsAndRunsCoordinatorForVideosOnly(t *testing.T) {
	store := newFakeStore()
	comments := newFakeComments()
	thumbs := &fakeThumbs{}
	svc := newService(store, newFakeObjects(), comments, thumbs)

	img, err := svc.Upload(context.Background(),
		File{Data: []byte("img"), Name: "p.jpg", ContentType: "image/jpeg"}, "Alice", "pic", "")
	require.NoError(t, err)
	vid, err := svc.Upload(context.Background(),
		File{Data: []byte("vid"), Name: "v.mp4", ContentType: "video/mp4"}, "Alice", "vid", "")
	require.NoError(t, err)

	comments.byMedia[img.ID] = []comment.Comment{{ID: "c1", MediaID: img.ID, Author: "Bob", Content: "nice"}}

	page, err := svc.List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)

	assert.Equal(t, []string{vid.ID}, thumbs.calls, "only video items pass through the coordinator")

	for _, it := range page.Data {
		if it.ID == img.ID {
			require.Len(t, it.Comments, 1)
			assert.Equal(t, "Bob", it.Comments[0].Author)
		} else {
			assert.Empty(t, it.Comments)
		}
	}
}

func TestGetReturnsGeneratedThumbnailInline(t *testing.T) {
	store := newFakeStore()
	thumbURL := "/media-sharing/generated-thumb.jpg"
	thumbs := &fakeThumbs{result: &thumbURL}
	svc := newService(store, newFakeObjects(), newFakeComments(), thumbs)

	vid, err := svc.Upload(context.Background(),
		File{Data: []byte("vid"), Name: "v.mp4", ContentType: "video/mp4"}, "Alice", "vid", "")
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), vid.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ThumbnailURL)
	assert.Equal(t, thumbURL, *got.ThumbnailURL, "coordinator result is used in the same response")
}

func TestGetNotFound(t *testing.T) {
	svc := newService(newFakeStore(), newFakeObjects(), newFakeComments(), &fakeThumbs{})

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, svc.IsNotFound(err))
}
