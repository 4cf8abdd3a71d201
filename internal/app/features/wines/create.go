// internal/app/features/wines/create.go
package wines

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oakbarrel/cellar/internal/app/policy/catalogpolicy"
	"github.com/oakbarrel/cellar/internal/app/system/authz"
	"github.com/oakbarrel/cellar/internal/app/system/htmlsanitize"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

type wineInput struct {
	Name         *string             `json:"name"`
	Winery       *string             `json:"winery"`
	Description  *string             `json:"description"`
	Region       *string             `json:"region"`
	Type         *string             `json:"type"`
	TastingNotes *string             `json:"tastingNotes"`
	Variety      *string             `json:"variety"`
	FoodPairing  *string             `json:"foodPairing"`
	BottleImage  *models.BottleImage `json:"bottleImage"`
	Status       *string             `json:"status"`
}

// HandleCreate handles POST /wines. The referenced winery must exist before
// anything is persisted.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !catalogpolicy.CanCreate(r) {
		webapi.Forbidden(w, "")
		return
	}

	var in wineInput
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

	var wineryID primitive.ObjectID
	if in.Winery == nil || strings.TrimSpace(*in.Winery) == "" {
		fieldErrs = append(fieldErrs, "winery is required")
	} else {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(*in.Winery))
		if err != nil {
			fieldErrs = append(fieldErrs, "winery must be a valid id")
		} else {
			wineryID = oid
		}
	}

	region := ""
	if in.Region != nil && *in.Region != "" {
		if !models.IsValidRegion(*in.Region) {
			fieldErrs = append(fieldErrs, "region is not a recognized region")
		} else {
			region = models.CanonicalRegion(*in.Region)
		}
	}
	wtype := ""
	if in.Type != nil && *in.Type != "" {
		if !models.IsValidWineType(*in.Type) {
			fieldErrs = append(fieldErrs, "type is not a recognized wine type")
		} else {
			wtype = models.CanonicalWineType(*in.Type)
		}
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

	if _, err := h.Wineries.GetByID(ctx, wineryID); err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Winery not found.")
		return
	} else if err != nil {
		webapi.ServerError(w, h.Log, "check winery failed", err)
		return
	}

	_, _, uid, _ := authz.UserCtx(r)

	wine := models.Wine{
		Name:      name,
		WineryID:  wineryID,
		Region:    region,
		Type:      wtype,
		Status:    status,
		CreatedBy: &uid,
		UpdatedBy: &uid,
	}
	if in.Description != nil {
		wine.Description = strings.TrimSpace(*in.Description)
	}
	if in.TastingNotes != nil {
		wine.TastingNotes = htmlsanitize.Sanitize(*in.TastingNotes)
	}
	if in.Variety != nil {
		wine.Variety = strings.TrimSpace(*in.Variety)
	}
	if in.FoodPairing != nil {
		wine.FoodPairing = strings.TrimSpace(*in.FoodPairing)
	}
	if in.BottleImage != nil {
		wine.BottleImage = *in.BottleImage
	}

	created, err := h.Wines.Create(ctx, wine)
	if err != nil {
		webapi.ServerError(w, h.Log, "create wine failed", err)
		return
	}

	webapi.Created(w, created)
}
