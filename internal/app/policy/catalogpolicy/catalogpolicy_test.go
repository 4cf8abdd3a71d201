package catalogpolicy_test

import (
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oakbarrel/cellar/internal/app/policy/catalogpolicy"
	"github.com/oakbarrel/cellar/internal/testutil"
)

func TestCanMutate(t *testing.T) {
	ownerID := primitive.NewObjectID()
	owner := testutil.TestUser{ID: ownerID.Hex(), Name: "Owner", Role: "editor"}

	tests := []struct {
		name      string
		user      *testutil.TestUser
		createdBy *primitive.ObjectID
		action    catalogpolicy.Action
		want      bool
	}{
		{"anonymous cannot update", nil, &ownerID, catalogpolicy.ActionUpdate, false},
		{"admin can update anything", ptr(testutil.AdminUser()), &ownerID, catalogpolicy.ActionUpdate, true},
		{"admin can delete anything", ptr(testutil.AdminUser()), nil, catalogpolicy.ActionDelete, true},
		{"editor can create", ptr(testutil.EditorUser()), nil, catalogpolicy.ActionCreate, true},
		{"editor can update own record", &owner, &ownerID, catalogpolicy.ActionUpdate, true},
		{"editor can delete own record", &owner, &ownerID, catalogpolicy.ActionDelete, true},
		{"editor cannot update another's record", ptr(testutil.EditorUser()), &ownerID, catalogpolicy.ActionUpdate, false},
		{"editor cannot mutate ownerless record", &owner, nil, catalogpolicy.ActionUpdate, false},
		{"viewer cannot create", ptr(testutil.ViewerUser()), nil, catalogpolicy.ActionCreate, false},
		{"viewer cannot delete own-authored record", ptrRole(ownerID, "viewer"), &ownerID, catalogpolicy.ActionDelete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewRequest(http.MethodPut, "/wines/abc")
			if tt.user != nil {
				req = testutil.WithUser(req, *tt.user)
			}
			if got := catalogpolicy.CanMutate(req, tt.createdBy, tt.action); got != tt.want {
				t.Errorf("CanMutate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanDeleteWinery(t *testing.T) {
	ownerID := primitive.NewObjectID()

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/wineries/abc", testutil.AdminUser())
	if !catalogpolicy.CanDeleteWinery(req) {
		t.Error("admin should delete wineries")
	}

	// Authorship does not matter for winery deletion.
	editor := testutil.TestUser{ID: ownerID.Hex(), Name: "Owner", Role: "editor"}
	req = testutil.NewAuthenticatedRequest(http.MethodDelete, "/wineries/abc", editor)
	if catalogpolicy.CanDeleteWinery(req) {
		t.Error("editor should not delete wineries, even their own")
	}
}

func TestCanCreate(t *testing.T) {
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/wines", testutil.EditorUser())
	if !catalogpolicy.CanCreate(req) {
		t.Error("editor should create")
	}
	req = testutil.NewAuthenticatedRequest(http.MethodPost, "/wines", testutil.ViewerUser())
	if catalogpolicy.CanCreate(req) {
		t.Error("viewer should not create")
	}
}

func ptr(u testutil.TestUser) *testutil.TestUser { return &u }

func ptrRole(id primitive.ObjectID, role string) *testutil.TestUser {
	return &testutil.TestUser{ID: id.Hex(), Name: "Role Holder", Role: role}
}
