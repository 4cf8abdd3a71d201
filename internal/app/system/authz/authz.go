// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oakbarrel/cellar/internal/app/system/auth"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", NilObjectID, false. This ensures callers can
// trust that ok=true means a valid, authenticated user with a valid
// ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in token - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsEditor reports whether the current request's user is an editor.
func IsEditor(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "editor"
}

// IsViewer reports whether the current request's user is a viewer.
func IsViewer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "viewer"
}

// CanWrite reports whether the current request's user may create catalog
// documents (admins and editors; ownership rules for update/delete live in
// the catalogpolicy package).
func CanWrite(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == "admin" || role == "editor")
}
