package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// allowedImageTypes is the fixed allow-list of raster image MIME types.
// The declared content type is trusted as-is; the bytes are never decoded.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadHandler accepts one image per request, stores it under the public
// uploads directory with a random name and returns its URL.
type UploadHandler struct {
	Dir string
	// PublicPath is the URL prefix the stored file is served under,
	// e.g. "/static/uploads".
	PublicPath string
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "No file was uploaded")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file was uploaded")
		return
	}
	defer file.Close()

	imageURL, err := h.saveImage(file, header)
	if err != nil {
		var vErr *uploadValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Message)
			return
		}
		slog.Error("Failed to store uploaded file", "error", err)
		writeErrorDetails(w, http.StatusInternalServerError, "Error uploading file", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"imageUrl": imageURL,
	})
}

// saveImage validates the declared content type before anything touches
// disk, then writes the raw bytes under a fresh random filename that keeps
// the original extension. Shared with the admin form handlers.
func (h *UploadHandler) saveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return "", &uploadValidationError{Message: "File type not allowed. Only images are accepted."}
	}

	filename := uuid.New().String() + filepath.Ext(header.Filename)

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	path := filepath.Join(h.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	slog.Info("Stored uploaded image", "file", filename, "bytes", len(data))
	return h.PublicPath + "/" + filename, nil
}

type uploadValidationError struct {
	Message string
}

func (e *uploadValidationError) Error() string { return e.Message }
