// Package uploads accepts event images from organizers and stores them in S3.
package uploads

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/morocco-events/backend/internal/i18n"
	"github.com/morocco-events/backend/internal/middleware"
	"github.com/morocco-events/backend/pkg/apperr"
	"github.com/morocco-events/backend/pkg/response"
	"github.com/morocco-events/backend/pkg/storage"
)

// MaxFiles is the number of images accepted per request.
const MaxFiles = 5

// ImageStore is where uploaded images go. *storage.S3 implements it.
type ImageStore interface {
	UploadImage(ctx context.Context, key, contentType string, body io.Reader, contentLength int64) (string, error)
	DeleteImage(ctx context.Context, key string) error
}

// Result is the body of a successful upload.
type Result struct {
	URLs []string `json:"urls"`
}

// Handler handles image uploads.
type Handler struct {
	store  ImageStore
	logger *zap.Logger
}

// NewHandler creates an upload handler. A nil store makes every upload fail with 503.
func NewHandler(store ImageStore, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func invalid(field, msg string) error {
	return apperr.Validation(i18n.ErrInvalidUpload).WithDetails(map[string]string{field: msg})
}

// UploadImages handles POST /uploads/images with multipart field "files" (or "files[]").
func (h *Handler) UploadImages(c *gin.Context) {
	if h.store == nil {
		response.Fail(c, apperr.New(apperr.KindUnavailable, i18n.ErrUploadsDisabled))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxFiles*storage.MaxImageSize+1<<20)
	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, invalid("files", "invalid multipart body"))
		return
	}
	files := append(form.File["files"], form.File["files[]"]...)
	if len(files) == 0 {
		response.Fail(c, invalid("files", "is required"))
		return
	}
	if len(files) > MaxFiles {
		response.Fail(c, invalid("files", fmt.Sprintf("at most %d files", MaxFiles)))
		return
	}
	for _, fh := range files {
		if fh.Size > storage.MaxImageSize {
			response.Fail(c, invalid(fh.Filename, "must be at most 5MB"))
			return
		}
		if !storage.ValidateImageType(fh.Header.Get("Content-Type"), fh.Filename) {
			response.Fail(c, invalid(fh.Filename, "must be a jpeg, png, webp or gif image"))
			return
		}
	}

	userID := middleware.UserID(c)
	ctx := c.Request.Context()
	var keys []string
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		key := storage.EventImageKey(userID, storage.ExtensionFor(fh.Header.Get("Content-Type"), fh.Filename))
		url, err := h.put(ctx, key, fh)
		if err != nil {
			h.rollback(ctx, keys)
			response.Fail(c, apperr.Internal(err))
			return
		}
		keys = append(keys, key)
		urls = append(urls, url)
	}
	h.logger.Info("images uploaded", zap.String("user_id", userID.String()), zap.Int("count", len(urls)))
	response.Created(c, Result{URLs: urls})
}

func (h *Handler) put(ctx context.Context, key string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	ct := fh.Header.Get("Content-Type")
	if _, ok := storage.AllowedImageTypes[ct]; !ok {
		ct = storage.ContentTypeForFilename(fh.Filename)
	}
	return h.store.UploadImage(ctx, key, ct, f, fh.Size)
}

// rollback removes the images already stored for a request that failed midway.
func (h *Handler) rollback(ctx context.Context, keys []string) {
	for _, k := range keys {
		if err := h.store.DeleteImage(ctx, k); err != nil {
			h.logger.Warn("delete orphaned image", zap.String("key", k), zap.Error(err))
		}
	}
}
