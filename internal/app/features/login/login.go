// internal/app/features/login/login.go
package login

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/oakbarrel/cellar/internal/app/store/users"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the one envelope in the API that carries a top-level
// token field alongside the user document.
type loginResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Token   string `json:"token"`
}

// HandleLogin handles POST /auth/login.
//
// Bad credentials and unknown emails produce the same 401 so the endpoint
// does not leak which accounts exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := webapi.DecodeBody(r, &req); err != nil {
		webapi.BadRequest(w, "Invalid request body.")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		webapi.BadRequest(w, "Email and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		webapi.Unauthorized(w, "Invalid email or password.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "login: user lookup failed", err)
		return
	}

	if !userstore.CheckPassword(user.PasswordHash, req.Password) {
		webapi.Unauthorized(w, "Invalid email or password.")
		return
	}
	if !user.IsActive {
		webapi.Unauthorized(w, "Account is not active.")
		return
	}

	token, err := h.Tokens.Issue(&user)
	if err != nil {
		webapi.ServerError(w, h.Log, "login: token issue failed", err)
		return
	}

	h.Log.Info("user logged in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(loginResponse{
		Success: true,
		Data:    user,
		Token:   token,
	})
}
