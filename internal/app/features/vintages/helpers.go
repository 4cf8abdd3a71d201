// internal/app/features/vintages/helpers.go
package vintages

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oakbarrel/cellar/internal/app/system/auth"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.NotFound(w, "Vintage not found.")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// pathAssetType validates the {assetType} route parameter against the slot
// allow-list.
func pathAssetType(w http.ResponseWriter, r *http.Request) (string, bool) {
	assetType := chi.URLParam(r, "assetType")
	if !models.IsValidAssetType(assetType) {
		webapi.BadRequest(w, fmt.Sprintf("Unknown asset type %q.", assetType))
		return "", false
	}
	return assetType, true
}

// restrictToPublished forces anonymous callers onto published records.
func restrictToPublished(r *http.Request, filter bson.M) {
	if _, ok := auth.CurrentUser(r); !ok {
		filter["status"] = "published"
	}
}

// validYear reports whether year falls inside the accepted vintage range.
func validYear(year int) bool {
	return year >= models.MinVintageYear && year <= models.MaxVintageYear()
}
