// internal/app/features/vintages/create.go
package vintages

import (
	"context"
	"fmt"
	"net/http"
	"strings"

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

type vintageInput struct {
	Wine       *string            `json:"wine"`
	Year       *int               `json:"year"`
	Notes      *string            `json:"notes"`
	Production *models.Production `json:"production"`
	Pricing    *models.Pricing    `json:"pricing"`
	Status     *string            `json:"status"`
}

// HandleCreate handles POST /vintages. The referenced wine must exist and
// the (wine, year) pair must be free before anything is persisted; the
// unique index backstops the pre-check under races.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !catalogpolicy.CanCreate(r) {
		webapi.Forbidden(w, "")
		return
	}

	var in vintageInput
	if err := webapi.DecodeBody(r, &in); err != nil {
		webapi.BadRequest(w, "Invalid request body.")
		return
	}

	var fieldErrs []string

	var wineID primitive.ObjectID
	if in.Wine == nil || strings.TrimSpace(*in.Wine) == "" {
		fieldErrs = append(fieldErrs, "wine is required")
	} else {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(*in.Wine))
		if err != nil {
			fieldErrs = append(fieldErrs, "wine must be a valid id")
		} else {
			wineID = oid
		}
	}

	year := 0
	if in.Year == nil {
		fieldErrs = append(fieldErrs, "year is required")
	} else if !validYear(*in.Year) {
		fieldErrs = append(fieldErrs, fmt.Sprintf("year must be between %d and %d", models.MinVintageYear, models.MaxVintageYear()))
	} else {
		year = *in.Year
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Wines.GetByID(ctx, wineID); err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Wine not found.")
		return
	} else if err != nil {
		webapi.ServerError(w, h.Log, "check wine failed", err)
		return
	}

	exists, err := h.Vintages.ExistsForWineYear(ctx, wineID, year, nil)
	if err != nil {
		webapi.ServerError(w, h.Log, "check vintage year failed", err)
		return
	}
	if exists {
		webapi.Conflict(w, "A vintage for this wine and year already exists.")
		return
	}

	_, _, uid, _ := authz.UserCtx(r)

	vintage := models.Vintage{
		WineID:    wineID,
		Year:      year,
		Status:    status,
		CreatedBy: &uid,
		UpdatedBy: &uid,
	}
	if in.Notes != nil {
		vintage.Notes = htmlsanitize.Sanitize(*in.Notes)
	}
	if in.Production != nil {
		vintage.Production = *in.Production
	}
	if in.Pricing != nil {
		vintage.Pricing = *in.Pricing
	}

	created, err := h.Vintages.Create(ctx, vintage)
	if err == vintagestore.ErrVintageExists {
		webapi.Conflict(w, "A vintage for this wine and year already exists.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "create vintage failed", err)
		return
	}

	webapi.Created(w, created)
}
