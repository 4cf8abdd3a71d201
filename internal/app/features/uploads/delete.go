// internal/app/features/uploads/delete.go
package uploads

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
)

// HandleDelete handles DELETE /upload/{filename}. The stored name carries
// no directory, so each classified subdirectory is searched in turn.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "filename"))
	if name == "" || name == "." || name == string(filepath.Separator) {
		webapi.BadRequest(w, "Invalid filename.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rel, ok := h.findStored(name)
	if !ok {
		webapi.NotFound(w, "File not found.")
		return
	}

	if err := h.Storage.Delete(ctx, rel); err != nil {
		webapi.ServerError(w, h.Log, "delete upload failed", err)
		return
	}

	h.Log.Info("file deleted", zap.String("path", rel))
	webapi.OKMessage(w, nil, "File deleted.")
}

// findStored returns the relative path of a stored file, checking each
// classified subdirectory. Existence checks need the local backend; other
// backends report not-found and deletion is a no-op.
func (h *Handler) findStored(name string) (string, bool) {
	local, ok := h.Storage.(*storage.Local)
	if !ok {
		return "", false
	}
	for _, dir := range uploadSubdirs {
		rel := path.Join(dir, name)
		full, err := local.GetFullPath(rel)
		if err != nil {
			continue
		}
		if _, err := os.Stat(full); err == nil {
			return rel, true
		}
	}
	return "", false
}
