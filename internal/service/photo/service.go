package photo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/session"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

// SignedURLExpiry is how long photo evidence links stay valid.
const SignedURLExpiry = time.Hour

// Binder stores check-out photo evidence and hands back the rows to persist.
type Binder interface {
	// Bind validates, compresses, and uploads the photos for a session.
	// At most session.MaxPhotos are kept; extras are silently dropped.
	Bind(ctx context.Context, sessionID string, checkoutAt time.Time, uploads []session.PhotoUpload) ([]session.Photo, error)

	// SignedURL returns a time-limited link to a stored photo.
	SignedURL(ctx context.Context, path string) (string, error)
}

type binderImpl struct {
	storage storage.FileStorage
}

func NewBinder(storage storage.FileStorage) Binder {
	return &binderImpl{storage: storage}
}

// Bind implements Binder.
func (b *binderImpl) Bind(ctx context.Context, sessionID string, checkoutAt time.Time, uploads []session.PhotoUpload) ([]session.Photo, error) {
	if len(uploads) > session.MaxPhotos {
		uploads = uploads[:session.MaxPhotos]
	}

	dateStr := checkoutAt.Format("2006-01-02")

	var photos []session.Photo
	for i, upload := range uploads {
		ext := strings.ToLower(filepath.Ext(upload.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			return nil, fmt.Errorf("invalid file type %q: only jpg, jpeg, png allowed", ext)
		}

		if upload.Size > session.MaxPhotoSize {
			return nil, fmt.Errorf("photo %q exceeds the 5 MB limit", upload.Filename)
		}

		buffer, err := io.ReadAll(upload.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read photo: %w", err)
		}

		compressed, err := compressImage(buffer, 150*1024, 50*1024)
		if err != nil {
			return nil, fmt.Errorf("failed to compress photo: %w", err)
		}

		// Always output as JPEG after compression for consistency
		path := filepath.Join("checkouts", dateStr, fmt.Sprintf("%s-%d.jpg", sessionID, i+1))

		uploadedPath, err := b.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}

		photos = append(photos, session.Photo{
			SessionID: sessionID,
			Path:      uploadedPath,
			SizeBytes: int64(len(compressed)),
		})
	}

	return photos, nil
}

// SignedURL implements Binder.
func (b *binderImpl) SignedURL(ctx context.Context, path string) (string, error) {
	return b.storage.GetURL(ctx, path, SignedURLExpiry)
}

// compressImage compresses an image to target size range
// maxSize: maximum allowed size (e.g., 150KB)
// minSize: minimum target size (e.g., 50KB)
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	// Try compression with decreasing quality first
	quality := 85
	var compressed []byte
	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}

		compressed = buf.Bytes()

		if len(compressed) <= maxSize && len(compressed) >= minSize {
			return compressed, nil
		}

		if len(compressed) > maxSize {
			quality -= 5
			continue
		}

		if len(compressed) < minSize && quality <= 60 {
			return compressed, nil
		}

		break
	}

	// If still too large after quality reduction, resize toward the middle
	// of the target range
	if len(compressed) > maxSize {
		targetSize := 100 * 1024
		ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
		newWidth := int(float64(originalWidth) * ratio)
		newHeight := int(float64(originalHeight) * ratio)

		if newWidth < 600 {
			newWidth = 600
		}
		if newHeight < 400 {
			newHeight = 400
		}

		resized := resizeImage(img, newWidth, newHeight)

		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70}); err != nil {
			return nil, fmt.Errorf("failed to encode resized image: %w", err)
		}

		compressed = buf.Bytes()
	}

	return compressed, nil
}

// resizeImage resizes an image using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
