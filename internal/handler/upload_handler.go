package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go-directory-app/internal/config"
	"go-directory-app/internal/logger"
	"go-directory-app/internal/middleware"

	"github.com/google/uuid"
)

// allowedImageExtensions lists the file extensions accepted by the upload
// endpoint.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler stores uploaded images on local disk and serves them back
// under /uploads/.
type UploadHandler struct {
	cfg config.UploadsConfig
	log logger.Logger
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(cfg config.UploadsConfig, log logger.Logger) *UploadHandler {
	return &UploadHandler{cfg: cfg, log: log}
}

// upload handles POST /upload. The stored filename is a fresh UUID plus the
// original extension so uploads can never collide or traverse paths.
func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxSizeBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		return &middleware.AppError{Error: err, Message: "no file uploaded", Code: http.StatusBadRequest}
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return &middleware.AppError{
			Error:   fmt.Errorf("rejected upload extension %q", ext),
			Message: "only image files are accepted",
			Code:    http.StatusBadRequest,
		}
	}

	if err := os.MkdirAll(h.cfg.Dir, 0o755); err != nil {
		return &middleware.AppError{Error: err, Message: "failed to store file", Code: http.StatusInternalServerError}
	}

	filename := uuid.New().String() + ext
	savePath := filepath.Join(h.cfg.Dir, filename)
	dst, err := os.Create(savePath)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "failed to store file", Code: http.StatusInternalServerError}
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(savePath)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &middleware.AppError{Error: err, Message: "file too large", Code: http.StatusBadRequest}
		}
		return &middleware.AppError{Error: err, Message: "failed to store file", Code: http.StatusInternalServerError}
	}

	return respondJSON(w, http.StatusOK, map[string]string{
		"url": fmt.Sprintf("%s/uploads/%s", h.cfg.BaseURL, filename),
	})
}
