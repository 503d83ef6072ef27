package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sriaruvi/storefront/internal/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir(), "http://localhost:8080/media/")
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadAndGetURL(t *testing.T) {
	s := newTestStorage(t)

	result, err := s.Upload(context.Background(), &storage.UploadInput{
		Key:         "1700000000-abc.jpg",
		ContentType: "image/jpeg",
		Data:        strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/1700000000-abc.jpg", result.URL)

	data, err := os.ReadFile(filepath.Join(s.Dir(), "1700000000-abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	url, err := s.GetURL(context.Background(), "1700000000-abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, result.URL, url)
}

func TestLocalStorage_Upload_DuplicateKeyFails(t *testing.T) {
	s := newTestStorage(t)

	input := func() *storage.UploadInput {
		return &storage.UploadInput{Key: "same.jpg", Data: strings.NewReader("x")}
	}
	_, err := s.Upload(context.Background(), input())
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), input())
	assert.Error(t, err)
}

func TestLocalStorage_Upload_RejectsTraversalKey(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Upload(context.Background(), &storage.UploadInput{
		Key:  "../escape.jpg",
		Data: strings.NewReader("x"),
	})
	assert.Error(t, err)
}

func TestLocalStorage_Delete(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Upload(context.Background(), &storage.UploadInput{
		Key:  "gone.jpg",
		Data: strings.NewReader("x"),
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), "gone.jpg"))

	_, err = s.GetURL(context.Background(), "gone.jpg")
	assert.Error(t, err)
}

func TestLocalStorage_Delete_Missing(t *testing.T) {
	s := newTestStorage(t)
	assert.Error(t, s.Delete(context.Background(), "never-existed.jpg"))
}
