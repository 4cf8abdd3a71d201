package login_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/app/features/login"
	"github.com/oakbarrel/cellar/internal/app/system/auth"
	"github.com/oakbarrel/cellar/internal/domain/models"
	"github.com/oakbarrel/cellar/internal/testutil"
)

func newHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	tokens, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return login.NewHandler(db, tokens, zap.NewNop()), testutil.NewFixtures(t, db)
}

func postLogin(h *login.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)
	return rec
}

func TestHandleLogin_Success(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "taster@example.com", models.RoleEditor)

	rec := postLogin(h, `{"email":"taster@example.com","password":"test-password"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Data    struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if !resp.Success {
		t.Error("success: got false")
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.Data.ID != user.ID.Hex() {
		t.Errorf("user id: got %q, want %q", resp.Data.ID, user.ID.Hex())
	}
	if resp.Data.Role != models.RoleEditor {
		t.Errorf("role: got %q", resp.Data.Role)
	}

	// The hash must never appear in the response.
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response leaks password material")
	}
}

func TestHandleLogin_CaseInsensitiveEmail(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "mixed@example.com", models.RoleViewer)

	rec := postLogin(h, `{"email":"MIXED@Example.COM","password":"test-password"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}

func TestHandleLogin_Failures(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "known@example.com", models.RoleViewer)
	fx.CreateInactiveUser(ctx, "inactive@example.com")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"wrong password", `{"email":"known@example.com","password":"nope"}`, http.StatusUnauthorized},
		{"unknown email", `{"email":"ghost@example.com","password":"test-password"}`, http.StatusUnauthorized},
		{"inactive account", `{"email":"inactive@example.com","password":"test-password"}`, http.StatusUnauthorized},
		{"missing fields", `{"email":"known@example.com"}`, http.StatusBadRequest},
		{"malformed body", `{not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postLogin(h, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestServeMe(t *testing.T) {
	h, fx := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "me@example.com", models.RoleAdmin)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/auth/me", testutil.AsTokenUser(user))
	rec := httptest.NewRecorder()
	h.ServeMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var resp struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Data.Email != "me@example.com" {
		t.Errorf("email: got %q", resp.Data.Email)
	}
}
