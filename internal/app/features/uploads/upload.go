// internal/app/features/uploads/upload.go
package uploads

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/app/system/authz"
	"github.com/oakbarrel/cellar/internal/app/system/limits"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// uploadSubdirs are the mimetype-classified directories under the upload
// root. Delete searches them in this order.
var uploadSubdirs = []string{"images", "documents", "others"}

// classifySubdir picks the storage subdirectory for a content type.
func classifySubdir(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch {
	case strings.HasPrefix(ct, "image/"):
		return "images"
	case ct == "application/pdf",
		ct == "application/msword",
		ct == "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		ct == "application/vnd.ms-excel",
		ct == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		strings.HasPrefix(ct, "text/"):
		return "documents"
	default:
		return "others"
	}
}

// sanitizeFilename strips path components and replaces characters that are
// unsafe in stored filenames.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)

	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') || c == '-' || c == '_' || c == '.'
		if ok {
			out = append(out, c)
		} else {
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "file"
	}
	if len(out) > 100 {
		ext := filepath.Ext(string(out))
		if len(ext) > 0 && len(ext) < 10 {
			out = append(out[:100-len(ext)], ext...)
		} else {
			out = out[:100]
		}
	}
	return string(out)
}

// storedName returns the unique on-disk name for an uploaded file.
func storedName(original string) string {
	return fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(original))
}

// storeFile writes one multipart file to storage and returns its asset
// record.
func (h *Handler) storeFile(ctx context.Context, fh *multipart.FileHeader, uid primitive.ObjectID) (models.AssetRecord, error) {
	f, err := fh.Open()
	if err != nil {
		return models.AssetRecord{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	name := storedName(fh.Filename)
	rel := path.Join(classifySubdir(contentType), name)

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.Storage.Put(ctx, rel, f, opts); err != nil {
		return models.AssetRecord{}, fmt.Errorf("store upload: %w", err)
	}

	now := time.Now().UTC()
	return models.AssetRecord{
		Filename:     name,
		OriginalName: fh.Filename,
		Path:         rel,
		MimeType:     contentType,
		Size:         fh.Size,
		UploadedAt:   &now,
		UploadedBy:   &uid,
	}, nil
}

// HandleUpload handles POST /upload with a single multipart "file" part.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		webapi.BadRequest(w, "Invalid multipart request or file too large.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	f, fh, err := r.FormFile("file")
	if err != nil {
		webapi.BadRequest(w, "A \"file\" part is required.")
		return
	}
	f.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, _, uid, _ := authz.UserCtx(r)
	rec, err := h.storeFile(ctx, fh, uid)
	if err != nil {
		webapi.ServerError(w, h.Log, "store upload failed", err)
		return
	}

	h.Log.Info("file uploaded",
		zap.String("path", rec.Path),
		zap.Int64("size", rec.Size))
	webapi.Created(w, rec)
}

// HandleUploadMultiple handles POST /upload/multiple with up to
// limits.MaxUploadFiles parts under "files".
func (h *Handler) HandleUploadMultiple(w http.ResponseWriter, r *http.Request) {
	maxTotal := h.MaxBytes * int64(limits.MaxUploadFiles)
	r.Body = http.MaxBytesReader(w, r.Body, maxTotal)
	if err := r.ParseMultipartForm(maxTotal); err != nil {
		webapi.BadRequest(w, "Invalid multipart request or files too large.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		webapi.BadRequest(w, "At least one \"files\" part is required.")
		return
	}
	if len(files) > limits.MaxUploadFiles {
		webapi.BadRequest(w, fmt.Sprintf("At most %d files may be uploaded at once.", limits.MaxUploadFiles))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	_, _, uid, _ := authz.UserCtx(r)

	records := make([]models.AssetRecord, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.MaxBytes {
			webapi.BadRequest(w, fmt.Sprintf("File %q exceeds the size limit.", fh.Filename))
			return
		}
		rec, err := h.storeFile(ctx, fh, uid)
		if err != nil {
			webapi.ServerError(w, h.Log, "store upload failed", err)
			return
		}
		records = append(records, rec)
	}

	h.Log.Info("files uploaded", zap.Int("count", len(records)))
	webapi.Created(w, records)
}
