package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cleantrack/cleantrack-backend-go/internal/handler/http/response"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/storage"
)

type FileHandler interface {
	Serve(w http.ResponseWriter, r *http.Request)
}

type fileHandlerImpl struct {
	storage *storage.LocalStorage
}

func NewFileHandler(localStorage *storage.LocalStorage) FileHandler {
	return &fileHandlerImpl{storage: localStorage}
}

// Serve implements FileHandler. Only requests carrying a valid, unexpired
// signature get a file back.
func (h *fileHandlerImpl) Serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := q.Get("path")
	exp := q.Get("exp")
	sig := q.Get("sig")

	if path == "" || exp == "" || sig == "" {
		response.BadRequest(w, "Missing signed URL parameters", nil)
		return
	}

	if err := h.storage.VerifySignedRequest(path, exp, sig); err != nil {
		response.Forbidden(w, "Invalid or expired link")
		return
	}

	file, err := h.storage.Download(r.Context(), path)
	if err != nil {
		response.NotFound(w, "File not found")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", contentTypeFor(path))
	w.Header().Set("Cache-Control", "private, max-age=300")
	if _, err := io.Copy(w, file); err != nil {
		// Headers already sent; nothing left to do.
		return
	}
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
