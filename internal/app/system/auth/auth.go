// internal/app/system/auth/auth.go

// Package auth handles stateless bearer-token authentication.
//
// Tokens are HS256 JWTs carrying the user id as the subject. The
// LoadTokenUser middleware verifies the token and loads a fresh user
// document on every request, so role changes and deactivations take effect
// immediately instead of living on in an old token.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// TokenUser is what the middleware injects into r.Context() for handlers.
type TokenUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user and a "found?" flag.
func CurrentUser(r *http.Request) (*TokenUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*TokenUser)
	return u, ok
}

// UserFetcher loads the current user document for a verified token subject.
// The user store provides the implementation; keeping an interface here
// avoids an import cycle and lets handler tests skip the database.
type UserFetcher interface {
	FetchAuthUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// TokenManager issues and verifies bearer tokens.
type TokenManager struct {
	secret  []byte
	expiry  time.Duration
	fetcher UserFetcher
	log     *zap.Logger
}

// NewTokenManager builds a TokenManager from the configured signing secret
// and token lifetime.
func NewTokenManager(secret string, expiry time.Duration, logger *zap.Logger) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty; provide >=32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("jwt secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), expiry: expiry, log: logger}, nil
}

// SetUserFetcher wires the store-backed fetcher used by LoadTokenUser.
func (tm *TokenManager) SetUserFetcher(f UserFetcher) {
	tm.fetcher = f
}

// Issue signs a token for the given user. Claims: sub (user id hex), email,
// role, iat, exp.
func (tm *TokenManager) Issue(u *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID.Hex(),
		"email": u.Email,
		"role":  u.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(tm.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify parses and validates a token string and returns the subject
// (user id hex).
func (tm *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token missing subject")
	}
	return sub, nil
}

// LoadTokenUser injects the user into context when a valid bearer token is
// presented. Requests without an Authorization header continue anonymously
// (public reads rely on this); a header that is present but invalid is a
// hard 401, the client-side contract being "clear the session and re-login".
func (tm *TokenManager) LoadTokenUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		sub, err := tm.Verify(raw)
		if err != nil {
			webapi.Unauthorized(w, "Invalid or expired token.")
			return
		}
		oid, err := primitive.ObjectIDFromHex(sub)
		if err != nil {
			webapi.Unauthorized(w, "Invalid or expired token.")
			return
		}

		if tm.fetcher == nil {
			webapi.ServerError(w, tm.log, "auth: user fetcher not configured", fmt.Errorf("nil fetcher"))
			return
		}

		user, err := tm.fetcher.FetchAuthUser(r.Context(), oid)
		if err != nil {
			webapi.ServerError(w, tm.log, "auth: user lookup failed", err)
			return
		}
		if user == nil || !user.IsActive {
			webapi.Unauthorized(w, "Account is not active.")
			return
		}

		next.ServeHTTP(w, withUser(r, &TokenUser{
			ID:    user.ID.Hex(),
			Name:  user.FullName(),
			Email: user.Email,
			Role:  strings.ToLower(user.Role),
		}))
	})
}

// RequireSignedIn ensures a user is in context (set by LoadTokenUser) and
// returns 401 otherwise.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			webapi.Unauthorized(w, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the user in context has one of the allowed roles.
// Missing user → 401; wrong role → 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				webapi.Unauthorized(w, "")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				webapi.Forbidden(w, "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithTestUser injects a user directly into the request context.
// Handler tests use this to bypass the token middleware.
func WithTestUser(r *http.Request, u *TokenUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *TokenUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
