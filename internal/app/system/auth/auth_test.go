package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/domain/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testUser() *models.User {
	return &models.User{
		ID:        primitive.NewObjectID(),
		Email:     "editor@example.com",
		FirstName: "Ed",
		LastName:  "Itor",
		Role:      models.RoleEditor,
		IsActive:  true,
	}
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	u := testUser()
	token, err := tm.Issue(u)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	sub, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if sub != u.ID.Hex() {
		t.Errorf("subject = %q, want %q", sub, u.ID.Hex())
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tm1, _ := NewTokenManager(testSecret, time.Hour, zap.NewNop())
	tm2, _ := NewTokenManager("another-secret-that-is-long-enough!", time.Hour, zap.NewNop())

	token, err := tm1.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tm2.Verify(token); err == nil {
		t.Error("expected verification failure with a different secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	tm, _ := NewTokenManager(testSecret, time.Hour, zap.NewNop())
	// The constructor replaces non-positive lifetimes with a default, so
	// force an already-expired exp claim directly.
	tm.expiry = -time.Minute

	token, err := tm.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tm.Verify(token); err == nil {
		t.Error("expected verification failure for expired token")
	}
}

func TestVerify_Garbage(t *testing.T) {
	tm, _ := NewTokenManager(testSecret, time.Hour, zap.NewNop())
	if _, err := tm.Verify("not-a-jwt"); err == nil {
		t.Error("expected verification failure for garbage token")
	}
}

func TestRequireSignedIn_NoUser(t *testing.T) {
	called := false
	h := RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/wines", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("next handler should not run without a user")
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		user       *TokenUser
		allowed    []string
		wantStatus int
	}{
		{"no user", nil, []string{"admin"}, http.StatusUnauthorized},
		{"wrong role", &TokenUser{ID: primitive.NewObjectID().Hex(), Role: "viewer"}, []string{"admin", "editor"}, http.StatusForbidden},
		{"allowed role", &TokenUser{ID: primitive.NewObjectID().Hex(), Role: "editor"}, []string{"admin", "editor"}, http.StatusOK},
		{"case-insensitive", &TokenUser{ID: primitive.NewObjectID().Hex(), Role: "Admin"}, []string{"admin"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireRole(tt.allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("POST", "/wines", nil)
			if tt.user != nil {
				req = WithTestUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer ", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := bearerToken(r); got != tt.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
