// internal/app/features/wineries/update.go
package wineries

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oakbarrel/cellar/internal/app/policy/catalogpolicy"
	winerystore "github.com/oakbarrel/cellar/internal/app/store/wineries"
	"github.com/oakbarrel/cellar/internal/app/system/authz"
	"github.com/oakbarrel/cellar/internal/app/system/htmlsanitize"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// HandleUpdate handles PUT /wineries/{id} with merge semantics: only fields
// present in the body change.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in wineryInput
	if err := webapi.DecodeBody(r, &in); err != nil {
		webapi.BadRequest(w, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing, err := h.Wineries.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Winery not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "get winery failed", err)
		return
	}

	if !catalogpolicy.CanMutate(r, existing.CreatedBy, catalogpolicy.ActionUpdate) {
		webapi.Forbidden(w, "")
		return
	}

	set := bson.M{}
	var fieldErrs []string

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			fieldErrs = append(fieldErrs, "name cannot be empty")
		} else {
			taken, err := h.Wineries.NameExistsForOther(ctx, text.Fold(name), id)
			if err != nil {
				webapi.ServerError(w, h.Log, "winery name check failed", err)
				return
			}
			if taken {
				webapi.Conflict(w, "A winery with this name already exists.")
				return
			}
			set["name"] = name
		}
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			fieldErrs = append(fieldErrs, "description cannot be empty")
		} else {
			set["description"] = htmlsanitize.Sanitize(desc)
		}
	}
	if in.Status != nil {
		if !models.IsValidStatus(*in.Status) {
			fieldErrs = append(fieldErrs, "status must be one of draft, published, archived")
		} else {
			set["status"] = strings.ToLower(strings.TrimSpace(*in.Status))
		}
	}
	if in.FeaturedImage != nil {
		set["featured_image"] = *in.FeaturedImage
	}
	if in.Logo != nil {
		set["logo"] = *in.Logo
	}
	if in.LifestyleImages != nil {
		set["lifestyle_images"] = *in.LifestyleImages
	}

	if len(fieldErrs) > 0 {
		webapi.BadRequest(w, "Validation failed.", fieldErrs...)
		return
	}

	_, _, uid, _ := authz.UserCtx(r)
	set["updated_by"] = uid

	updated, err := h.Wineries.Update(ctx, id, set)
	if err == winerystore.ErrDuplicateWinery {
		webapi.Conflict(w, "A winery with this name already exists.")
		return
	}
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Winery not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "update winery failed", err)
		return
	}

	webapi.OK(w, updated)
}
