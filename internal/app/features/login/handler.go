// internal/app/features/login/handler.go
package login

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/oakbarrel/cellar/internal/app/store/users"
	"github.com/oakbarrel/cellar/internal/app/system/auth"
)

// Handler is the feature-level entry point for authentication endpoints.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

// NewHandler constructs a login handler bound to the user store and token
// manager.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Tokens: tokens,
		Log:    logger,
	}
}
