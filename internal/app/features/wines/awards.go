// internal/app/features/wines/awards.go
package wines

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oakbarrel/cellar/internal/app/policy/catalogpolicy"
	winestore "github.com/oakbarrel/cellar/internal/app/store/wines"
	"github.com/oakbarrel/cellar/internal/app/system/inputval"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

type awardInput struct {
	Score     int    `json:"score"`
	AwardName string `json:"awardName"`
	Year      int    `json:"year"`
}

// HandleAddAward handles POST /wines/{id}/awards.
func (h *Handler) HandleAddAward(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in awardInput
	if err := webapi.DecodeBody(r, &in); err != nil {
		webapi.BadRequest(w, "Invalid request body.")
		return
	}

	var fieldErrs []string
	if !inputval.IsValidScore(in.Score) {
		fieldErrs = append(fieldErrs, "score must be an integer between 0 and 100")
	}
	if !inputval.NonEmpty(in.AwardName) {
		fieldErrs = append(fieldErrs, "awardName is required")
	}
	if !inputval.IsValidAwardYear(in.Year) {
		fieldErrs = append(fieldErrs, "year must be 1900 or later")
	}
	if len(fieldErrs) > 0 {
		webapi.BadRequest(w, "Validation failed.", fieldErrs...)
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

	updated, err := h.Wines.AddAward(ctx, id, models.Award{
		Score:     in.Score,
		AwardName: strings.TrimSpace(in.AwardName),
		Year:      in.Year,
	})
	if err != nil {
		webapi.ServerError(w, h.Log, "add award failed", err)
		return
	}

	webapi.OK(w, updated)
}

// HandleUpdateAward handles PUT /wines/{id}/awards/{awardId}, replacing one
// award in place.
func (h *Handler) HandleUpdateAward(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	awardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "awardId"))
	if err != nil {
		webapi.BadRequest(w, "Invalid award id.")
		return
	}

	var in awardInput
	if err := webapi.DecodeBody(r, &in); err != nil {
		webapi.BadRequest(w, "Invalid request body.")
		return
	}

	var fieldErrs []string
	if !inputval.IsValidScore(in.Score) {
		fieldErrs = append(fieldErrs, "score must be an integer between 0 and 100")
	}
	if !inputval.NonEmpty(in.AwardName) {
		fieldErrs = append(fieldErrs, "awardName is required")
	}
	if !inputval.IsValidAwardYear(in.Year) {
		fieldErrs = append(fieldErrs, "year must be 1900 or later")
	}
	if len(fieldErrs) > 0 {
		webapi.BadRequest(w, "Validation failed.", fieldErrs...)
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

	updated, err := h.Wines.UpdateAward(ctx, id, awardID, models.Award{
		Score:     in.Score,
		AwardName: strings.TrimSpace(in.AwardName),
		Year:      in.Year,
	})
	if err == winestore.ErrAwardNotFound {
		webapi.NotFound(w, "Award not found.")
		return
	}
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Wine not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "update award failed", err)
		return
	}

	webapi.OK(w, updated)
}

// HandleRemoveAward handles DELETE /wines/{id}/awards/{awardId}. Removing
// an award id that is not on the wine returns 200 with the unchanged list;
// clients treat award deletion as idempotent.
func (h *Handler) HandleRemoveAward(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	awardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "awardId"))
	if err != nil {
		webapi.BadRequest(w, "Invalid award id.")
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

	updated, err := h.Wines.RemoveAward(ctx, id, awardID)
	if err != nil {
		webapi.ServerError(w, h.Log, "remove award failed", err)
		return
	}

	webapi.OK(w, updated)
}
