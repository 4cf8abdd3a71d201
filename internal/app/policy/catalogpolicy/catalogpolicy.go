// Package catalogpolicy centralizes mutation rights for catalog entities
// (wineries, wines, vintages).
//
// Authorization rules:
//   - Viewers are read-only
//   - Editors can create, and can update or delete records they authored
//   - Admins are unrestricted
//   - Winery deletion is admin-only regardless of authorship
//
// Ownership lives on the document itself as created_by; there is no separate
// ACL. A record with no created_by (legacy import, bootstrap seed) can only
// be mutated by an admin.
package catalogpolicy

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oakbarrel/cellar/internal/app/system/authz"
)

// Action names the mutation being attempted.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CanCreate reports whether the request user may create catalog records.
func CanCreate(r *http.Request) bool {
	return authz.CanWrite(r)
}

// CanMutate reports whether the request user may perform action on a record
// authored by createdBy. It answers (false) rather than erroring for
// anonymous requests; route middleware has already turned those into 401s
// on write routes.
func CanMutate(r *http.Request, createdBy *primitive.ObjectID, action Action) bool {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}

	switch role {
	case "admin":
		return true
	case "editor":
		if action == ActionCreate {
			return true
		}
		return createdBy != nil && *createdBy == uid
	}
	return false
}

// CanDeleteWinery reports whether the request user may delete a winery.
// Stricter than CanMutate: authorship does not grant winery deletion.
func CanDeleteWinery(r *http.Request) bool {
	return authz.IsAdmin(r)
}
