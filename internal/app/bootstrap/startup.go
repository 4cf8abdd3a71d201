// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	userstore "github.com/oakbarrel/cellar/internal/app/store/users"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail != "" {
		return ensureBootstrapAdmin(ctx, deps, appCfg.AdminEmail, appCfg.AdminPassword, logger)
	}
	return nil
}

// ensureBootstrapAdmin creates the configured admin account if no user with
// that email exists yet. An existing account is left untouched so a stale
// admin_password cannot clobber a live credential.
func ensureBootstrapAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	users := userstore.New(deps.CellarMongoDatabase)
	user, created, err := users.EnsureAdmin(ctx, email, password)
	if err != nil {
		logger.Error("bootstrap admin setup failed", zap.Error(err))
		return err
	}
	if created {
		logger.Info("bootstrap admin created", zap.String("email", user.Email))
	} else {
		logger.Info("bootstrap admin already exists", zap.String("email", user.Email))
	}
	return nil
}
