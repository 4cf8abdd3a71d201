// internal/app/features/wines/helpers.go
package wines

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oakbarrel/cellar/internal/app/system/auth"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
)

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.NotFound(w, "Wine not found.")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// searchFilter builds a case-insensitive regex $or over the searchable wine
// fields.
func searchFilter(q string) bson.M {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	return bson.M{"$or": []bson.M{
		{"name": re},
		{"description": re},
		{"variety": re},
		{"tasting_notes": re},
	}}
}

// restrictToPublished forces anonymous callers onto published records.
func restrictToPublished(r *http.Request, filter bson.M) {
	if _, ok := auth.CurrentUser(r); !ok {
		filter["status"] = "published"
	}
}
