// internal/app/features/vintages/assets.go
package vintages

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oakbarrel/cellar/internal/app/policy/catalogpolicy"
	"github.com/oakbarrel/cellar/internal/app/system/authz"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// assetInput mirrors the metadata returned by the upload endpoints.
type assetInput struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	RelativePath string `json:"relativePath"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

// HandleSetAsset handles PUT /vintages/{id}/assets/{assetType}. The slot is
// replaced wholesale with the submitted record.
func (h *Handler) HandleSetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	assetType, ok := pathAssetType(w, r)
	if !ok {
		return
	}

	var in assetInput
	if err := webapi.DecodeBody(r, &in); err != nil {
		webapi.BadRequest(w, "Invalid request body.")
		return
	}
	if strings.TrimSpace(in.RelativePath) == "" {
		webapi.BadRequest(w, "Validation failed.", "relativePath is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing, err := h.Vintages.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Vintage not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "get vintage failed", err)
		return
	}

	if !catalogpolicy.CanMutate(r, existing.CreatedBy, catalogpolicy.ActionUpdate) {
		webapi.Forbidden(w, "")
		return
	}

	_, _, uid, _ := authz.UserCtx(r)
	now := time.Now().UTC()
	rec := models.AssetRecord{
		Filename:     strings.TrimSpace(in.Filename),
		OriginalName: strings.TrimSpace(in.OriginalName),
		Path:         strings.TrimSpace(in.RelativePath),
		MimeType:     strings.TrimSpace(in.MimeType),
		Size:         in.Size,
		UploadedAt:   &now,
		UploadedBy:   &uid,
	}

	updated, err := h.Vintages.SetAsset(ctx, id, assetType, rec)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Vintage not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "set vintage asset failed", err)
		return
	}

	webapi.OK(w, updated)
}

// HandleClearAsset handles DELETE /vintages/{id}/assets/{assetType},
// emptying the slot.
func (h *Handler) HandleClearAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	assetType, ok := pathAssetType(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing, err := h.Vintages.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Vintage not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "get vintage failed", err)
		return
	}

	if !catalogpolicy.CanMutate(r, existing.CreatedBy, catalogpolicy.ActionUpdate) {
		webapi.Forbidden(w, "")
		return
	}

	updated, err := h.Vintages.ClearAsset(ctx, id, assetType)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Vintage not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "clear vintage asset failed", err)
		return
	}

	webapi.OK(w, updated)
}
