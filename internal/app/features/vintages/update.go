// internal/app/features/vintages/update.go
package vintages

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oakbarrel/cellar/internal/app/policy/catalogpolicy"
	vintagestore "github.com/oakbarrel/cellar/internal/app/store/vintages"
	"github.com/oakbarrel/cellar/internal/app/system/authz"
	"github.com/oakbarrel/cellar/internal/app/system/htmlsanitize"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// HandleUpdate handles PUT /vintages/{id} with merge semantics. Changing
// the wine reference or the year re-checks the (wine, year) uniqueness.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in vintageInput
	if err := webapi.DecodeBody(r, &in); err != nil {
		webapi.BadRequest(w, "Invalid request body.")
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

	set := bson.M{}
	var fieldErrs []string

	wineID := existing.WineID
	if in.Wine != nil {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(*in.Wine))
		if err != nil {
			fieldErrs = append(fieldErrs, "wine must be a valid id")
		} else if oid != existing.WineID {
			if _, err := h.Wines.GetByID(ctx, oid); err == mongo.ErrNoDocuments {
				webapi.NotFound(w, "Wine not found.")
				return
			} else if err != nil {
				webapi.ServerError(w, h.Log, "check wine failed", err)
				return
			}
			wineID = oid
			set["wine_id"] = oid
		}
	}

	year := existing.Year
	if in.Year != nil {
		if !validYear(*in.Year) {
			fieldErrs = append(fieldErrs, fmt.Sprintf("year must be between %d and %d", models.MinVintageYear, models.MaxVintageYear()))
		} else if *in.Year != existing.Year {
			year = *in.Year
			set["year"] = *in.Year
		}
	}

	if in.Status != nil {
		if !models.IsValidStatus(*in.Status) {
			fieldErrs = append(fieldErrs, "status must be one of draft, published, archived")
		} else {
			set["status"] = strings.ToLower(strings.TrimSpace(*in.Status))
		}
	}
	if in.Notes != nil {
		set["notes"] = htmlsanitize.Sanitize(*in.Notes)
	}
	if in.Production != nil {
		set["production"] = *in.Production
	}
	if in.Pricing != nil {
		set["pricing"] = *in.Pricing
	}

	if len(fieldErrs) > 0 {
		webapi.BadRequest(w, "Validation failed.", fieldErrs...)
		return
	}

	// Re-check uniqueness when the (wine, year) pair moves.
	if wineID != existing.WineID || year != existing.Year {
		exists, err := h.Vintages.ExistsForWineYear(ctx, wineID, year, &id)
		if err != nil {
			webapi.ServerError(w, h.Log, "check vintage year failed", err)
			return
		}
		if exists {
			webapi.Conflict(w, "A vintage for this wine and year already exists.")
			return
		}
	}

	_, _, uid, _ := authz.UserCtx(r)
	set["updated_by"] = uid

	updated, err := h.Vintages.Update(ctx, id, set)
	if err == vintagestore.ErrVintageExists {
		webapi.Conflict(w, "A vintage for this wine and year already exists.")
		return
	}
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Vintage not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "update vintage failed", err)
		return
	}

	webapi.OK(w, updated)
}
