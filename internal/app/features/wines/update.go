// internal/app/features/wines/update.go
package wines

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oakbarrel/cellar/internal/app/policy/catalogpolicy"
	"github.com/oakbarrel/cellar/internal/app/system/authz"
	"github.com/oakbarrel/cellar/internal/app/system/htmlsanitize"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// HandleUpdate handles PUT /wines/{id} with merge semantics. A changed
// winery reference must resolve before it is accepted.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in wineInput
	if err := webapi.DecodeBody(r, &in); err != nil {
		webapi.BadRequest(w, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing, err := h.Wines.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Wine not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "get wine failed", err)
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
			set["name"] = name
		}
	}
	if in.Winery != nil {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(*in.Winery))
		if err != nil {
			fieldErrs = append(fieldErrs, "winery must be a valid id")
		} else if oid != existing.WineryID {
			if _, err := h.Wineries.GetByID(ctx, oid); err == mongo.ErrNoDocuments {
				webapi.NotFound(w, "Winery not found.")
				return
			} else if err != nil {
				webapi.ServerError(w, h.Log, "check winery failed", err)
				return
			}
			set["winery_id"] = oid
		}
	}
	if in.Region != nil {
		if !models.IsValidRegion(*in.Region) {
			fieldErrs = append(fieldErrs, "region is not a recognized region")
		} else {
			set["region"] = models.CanonicalRegion(*in.Region)
		}
	}
	if in.Type != nil {
		if !models.IsValidWineType(*in.Type) {
			fieldErrs = append(fieldErrs, "type is not a recognized wine type")
		} else {
			set["type"] = models.CanonicalWineType(*in.Type)
		}
	}
	if in.Status != nil {
		if !models.IsValidStatus(*in.Status) {
			fieldErrs = append(fieldErrs, "status must be one of draft, published, archived")
		} else {
			set["status"] = strings.ToLower(strings.TrimSpace(*in.Status))
		}
	}
	if in.Description != nil {
		set["description"] = strings.TrimSpace(*in.Description)
	}
	if in.TastingNotes != nil {
		set["tasting_notes"] = htmlsanitize.Sanitize(*in.TastingNotes)
	}
	if in.Variety != nil {
		set["variety"] = strings.TrimSpace(*in.Variety)
	}
	if in.FoodPairing != nil {
		set["food_pairing"] = strings.TrimSpace(*in.FoodPairing)
	}
	if in.BottleImage != nil {
		set["bottle_image"] = *in.BottleImage
	}

	if len(fieldErrs) > 0 {
		webapi.BadRequest(w, "Validation failed.", fieldErrs...)
		return
	}

	_, _, uid, _ := authz.UserCtx(r)
	set["updated_by"] = uid

	updated, err := h.Wines.Update(ctx, id, set)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Wine not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "update wine failed", err)
		return
	}

	webapi.OK(w, updated)
}
