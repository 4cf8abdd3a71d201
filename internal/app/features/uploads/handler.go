// internal/app/features/uploads/handler.go
package uploads

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for file uploads.
type Handler struct {
	Storage  storage.Store
	MaxBytes int64
	Log      *zap.Logger
}

// NewHandler constructs an uploads handler over the given storage backend.
// maxBytes caps the size of a single uploaded file.
func NewHandler(store storage.Store, maxBytes int64, logger *zap.Logger) *Handler {
	return &Handler{
		Storage:  store,
		MaxBytes: maxBytes,
		Log:      logger,
	}
}
