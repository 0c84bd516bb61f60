package photo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"testing"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	uploads map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{uploads: make(map[string][]byte)}
}

func (m *memoryStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.uploads[path] = data
	return path, nil
}

func (m *memoryStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := m.uploads[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStorage) Delete(ctx context.Context, path string) error {
	delete(m.uploads, path)
	return nil
}

func (m *memoryStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "https://files.test/" + path, nil
}

func (m *memoryStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := m.uploads[path]
	return ok, nil
}

func testJPEG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}))
	return buf.Bytes()
}

func upload(t *testing.T, filename string) session.PhotoUpload {
	data := testJPEG(t)
	return session.PhotoUpload{
		Filename: filename,
		Size:     int64(len(data)),
		File:     bytes.NewReader(data),
	}
}

func TestBindStoresPhotosUnderCheckoutDate(t *testing.T) {
	store := newMemoryStorage()
	binder := NewBinder(store)
	checkoutAt := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	photos, err := binder.Bind(context.Background(), "sess-1", checkoutAt, []session.PhotoUpload{
		upload(t, "front.jpg"),
		upload(t, "back.jpeg"),
	})

	require.NoError(t, err)
	require.Len(t, photos, 2)

	assert.Equal(t, "checkouts/2026-08-31/sess-1-1.jpg", photos[0].Path)
	assert.Equal(t, "checkouts/2026-08-31/sess-1-2.jpg", photos[1].Path)

	for _, p := range photos {
		assert.Equal(t, "sess-1", p.SessionID)
		assert.Positive(t, p.SizeBytes)
		assert.Contains(t, store.uploads, p.Path)
	}
}

func TestBindTruncatesToMaxPhotos(t *testing.T) {
	store := newMemoryStorage()
	binder := NewBinder(store)

	uploads := make([]session.PhotoUpload, 0, session.MaxPhotos+2)
	for i := 0; i < session.MaxPhotos+2; i++ {
		uploads = append(uploads, upload(t, fmt.Sprintf("photo-%d.jpg", i)))
	}

	photos, err := binder.Bind(context.Background(), "sess-1", time.Now(), uploads)

	require.NoError(t, err)
	assert.Len(t, photos, session.MaxPhotos)
	assert.Len(t, store.uploads, session.MaxPhotos)
}

func TestBindRejectsUnsupportedExtension(t *testing.T) {
	binder := NewBinder(newMemoryStorage())

	_, err := binder.Bind(context.Background(), "sess-1", time.Now(), []session.PhotoUpload{
		{Filename: "evidence.gif", Size: 100, File: bytes.NewReader([]byte("GIF89a"))},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file type")
}

func TestBindRejectsOversizedPhoto(t *testing.T) {
	binder := NewBinder(newMemoryStorage())

	_, err := binder.Bind(context.Background(), "sess-1", time.Now(), []session.PhotoUpload{
		{Filename: "huge.jpg", Size: session.MaxPhotoSize + 1, File: bytes.NewReader(nil)},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "5 MB")
}

func TestBindNoUploads(t *testing.T) {
	store := newMemoryStorage()
	binder := NewBinder(store)

	photos, err := binder.Bind(context.Background(), "sess-1", time.Now(), nil)

	require.NoError(t, err)
	assert.Empty(t, photos)
	assert.Empty(t, store.uploads)
}

func TestSignedURL(t *testing.T) {
	binder := NewBinder(newMemoryStorage())

	url, err := binder.SignedURL(context.Background(), "checkouts/2026-08-31/sess-1-1.jpg")

	require.NoError(t, err)
	assert.Equal(t, "https://files.test/checkouts/2026-08-31/sess-1-1.jpg", url)
}
