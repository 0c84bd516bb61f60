package storage

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files", "test-secret")
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadDownload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStorage(t)

	path, err := s.Upload(ctx, strings.NewReader("photo-bytes"), "checkouts/2025-06-01/abc-1.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "checkouts/2025-06-01/abc-1.jpg", path)

	rc, err := s.Download(ctx, path)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "photo-bytes", string(content))

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStorage_UploadRejectsTraversal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStorage(t)

	_, err := s.Upload(ctx, strings.NewReader("x"), "../../etc/passwd", "text/plain")
	assert.Error(t, err)
}

func TestLocalStorage_SignedURL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStorage(t)

	signed, err := s.GetURL(ctx, "checkouts/2025-06-01/abc-1.jpg", time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "checkouts/2025-06-01/abc-1.jpg", q.Get("path"))
	assert.NotEmpty(t, q.Get("sig"))

	// Valid signature passes
	assert.NoError(t, s.VerifySignedRequest(q.Get("path"), q.Get("exp"), q.Get("sig")))

	// Tampered path fails
	assert.Error(t, s.VerifySignedRequest("checkouts/2025-06-01/other.jpg", q.Get("exp"), q.Get("sig")))

	// Tampered expiry fails
	future := strconv.FormatInt(time.Now().Add(48*time.Hour).Unix(), 10)
	assert.Error(t, s.VerifySignedRequest(q.Get("path"), future, q.Get("sig")))
}

func TestLocalStorage_SignedURLExpires(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStorage(t)

	signed, err := s.GetURL(ctx, "checkouts/a.jpg", -time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	q := u.Query()

	err = s.VerifySignedRequest(q.Get("path"), q.Get("exp"), q.Get("sig"))
	assert.ErrorContains(t, err, "expired")
}

func TestLocalStorage_DeleteIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStorage(t)

	path, err := s.Upload(ctx, strings.NewReader("x"), "a/b.jpg", "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, path))
	// Deleting a missing file is not an error
	require.NoError(t, s.Delete(ctx, path))

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)
}
