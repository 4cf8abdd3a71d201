package authz_test

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oakbarrel/cellar/internal/app/system/auth"
	"github.com/oakbarrel/cellar/internal/app/system/authz"
)

// testUserID returns a valid ObjectID hex string for tests.
func testUserID() string {
	return primitive.NewObjectID().Hex()
}

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/wines", nil)

	role, name, userID, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false without a user in context")
	}
	if role != "visitor" {
		t.Errorf("role = %q, want %q", role, "visitor")
	}
	if name != "" {
		t.Errorf("name = %q, want empty", name)
	}
	if userID != primitive.NilObjectID {
		t.Error("expected NilObjectID without a user")
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/wines", nil)
	req = auth.WithTestUser(req, &auth.TokenUser{ID: "not-an-object-id", Role: "admin"})

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false for malformed user id (fail closed)")
	}
}

func TestUserCtx_Valid(t *testing.T) {
	id := testUserID()
	req := httptest.NewRequest("GET", "/wines", nil)
	req = auth.WithTestUser(req, &auth.TokenUser{ID: id, Name: "Ed Itor", Role: "Editor"})

	role, name, userID, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "editor" {
		t.Errorf("role = %q, want lowercased %q", role, "editor")
	}
	if name != "Ed Itor" {
		t.Errorf("name = %q, want %q", name, "Ed Itor")
	}
	if userID.Hex() != id {
		t.Errorf("userID = %s, want %s", userID.Hex(), id)
	}
}

func TestRoleChecks(t *testing.T) {
	tests := []struct {
		role       string
		isAdmin    bool
		isEditor   bool
		isViewer   bool
		canWrite   bool
	}{
		{"admin", true, false, false, true},
		{"editor", false, true, false, true},
		{"viewer", false, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/wines", nil)
			req = auth.WithTestUser(req, &auth.TokenUser{ID: testUserID(), Role: tt.role})

			if got := authz.IsAdmin(req); got != tt.isAdmin {
				t.Errorf("IsAdmin = %v, want %v", got, tt.isAdmin)
			}
			if got := authz.IsEditor(req); got != tt.isEditor {
				t.Errorf("IsEditor = %v, want %v", got, tt.isEditor)
			}
			if got := authz.IsViewer(req); got != tt.isViewer {
				t.Errorf("IsViewer = %v, want %v", got, tt.isViewer)
			}
			if got := authz.CanWrite(req); got != tt.canWrite {
				t.Errorf("CanWrite = %v, want %v", got, tt.canWrite)
			}
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	req := httptest.NewRequest("GET", "/wines", nil)
	req = auth.WithTestUser(req, &auth.TokenUser{ID: testUserID(), Role: "editor"})

	if !authz.HasAnyRole(req, "admin", "editor") {
		t.Error("expected HasAnyRole(admin, editor) to match editor")
	}
	if authz.HasAnyRole(req, "admin") {
		t.Error("expected HasAnyRole(admin) not to match editor")
	}

	anon := httptest.NewRequest("GET", "/wines", nil)
	if authz.HasAnyRole(anon, "admin", "editor", "viewer") {
		t.Error("expected HasAnyRole to be false without a user")
	}
}
