// internal/app/features/wineries/create.go
package wineries

import (
	"context"
	"net/http"
	"strings"

	"github.com/oakbarrel/cellar/internal/app/policy/catalogpolicy"
	winerystore "github.com/oakbarrel/cellar/internal/app/store/wineries"
	"github.com/oakbarrel/cellar/internal/app/system/authz"
	"github.com/oakbarrel/cellar/internal/app/system/htmlsanitize"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

type wineryInput struct {
	Name            *string               `json:"name"`
	Description     *string               `json:"description"`
	FeaturedImage   *models.AssetRecord   `json:"featuredImage"`
	Logo            *models.AssetRecord   `json:"logo"`
	LifestyleImages *[]models.AssetRecord `json:"lifestyleImages"`
	Status          *string               `json:"status"`
}

// HandleCreate handles POST /wineries.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !catalogpolicy.CanCreate(r) {
		webapi.Forbidden(w, "")
		return
	}

	var in wineryInput
	if err := webapi.DecodeBody(r, &in); err != nil {
		webapi.BadRequest(w, "Invalid request body.")
		return
	}

	var fieldErrs []string
	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		fieldErrs = append(fieldErrs, "name is required")
	}
	desc := ""
	if in.Description != nil {
		desc = strings.TrimSpace(*in.Description)
	}
	if desc == "" {
		fieldErrs = append(fieldErrs, "description is required")
	}
	status := models.DefaultStatus
	if in.Status != nil && *in.Status != "" {
		if !models.IsValidStatus(*in.Status) {
			fieldErrs = append(fieldErrs, "status must be one of draft, published, archived")
		} else {
			status = strings.ToLower(strings.TrimSpace(*in.Status))
		}
	}
	if len(fieldErrs) > 0 {
		webapi.BadRequest(w, "Validation failed.", fieldErrs...)
		return
	}

	_, _, uid, _ := authz.UserCtx(r)

	winery := models.Winery{
		Name:        name,
		Description: htmlsanitize.Sanitize(desc),
		Status:      status,
		CreatedBy:   &uid,
		UpdatedBy:   &uid,
	}
	if in.FeaturedImage != nil {
		winery.FeaturedImage = *in.FeaturedImage
	}
	if in.Logo != nil {
		winery.Logo = *in.Logo
	}
	if in.LifestyleImages != nil {
		winery.LifestyleImages = *in.LifestyleImages
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Wineries.Create(ctx, winery)
	if err == winerystore.ErrDuplicateWinery {
		webapi.Conflict(w, "A winery with this name already exists.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "create winery failed", err)
		return
	}

	webapi.Created(w, created)
}
