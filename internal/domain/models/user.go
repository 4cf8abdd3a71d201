// internal/domain/models/user.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role identifiers. Role determines mutation rights: viewers are read-only,
// editors may create and may update/delete what they authored, admins are
// unrestricted (including winery deletes).
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Roles is the full set of allowed role identifiers.
var Roles = []string{RoleAdmin, RoleEditor, RoleViewer}

// IsValidRole reports whether r (case-insensitive, trimmed) is an allowed role.
func IsValidRole(r string) bool {
	r = strings.ToLower(strings.TrimSpace(r))
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

// User is an account that can authenticate against the API.
//
// EmailCI is the case-folded email used for the unique index and lookups;
// Email preserves the casing the user registered with. PasswordHash is a
// bcrypt hash and is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	FirstName    string             `bson:"first_name" json:"firstName"`
	LastName     string             `bson:"last_name" json:"lastName"`
	Role         string             `bson:"role" json:"role"`
	IsActive     bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// FullName returns the display name for stamping audit fields and logs.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
