// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/app/system/limits"
)

// devJWTSecret is the development fallback; ValidateConfig rejects it
// outside dev.
const devJWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for Cellar.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: CELLAR_MONGO_URI, CELLAR_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "cellar", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Token authentication
	{Name: "jwt_secret", Default: devJWTSecret, Desc: "Bearer token signing secret (must be strong in production)"},
	{Name: "jwt_expiry", Default: "24h", Desc: "Bearer token lifetime (e.g., 24h, 30m)"},

	// File uploads
	{Name: "upload_dir", Default: "./uploads", Desc: "Local directory for uploaded files"},
	{Name: "upload_url", Default: "/files", Desc: "URL prefix for serving uploaded files"},
	{Name: "upload_max_bytes", Default: int(limits.DefaultMaxUploadSize), Desc: "Per-file upload size cap in bytes"},

	// CORS
	{Name: "cors_origin", Default: "*", Desc: "Allowed CORS origin for browser clients"},

	// Stock photo provider
	{Name: "stock_photo_api_key", Default: "", Desc: "Stock photo provider API key (blank disables live search)"},

	// Bootstrap admin
	{Name: "admin_email", Default: "", Desc: "Email of the bootstrap admin account (created on startup)"},
	{Name: "admin_password", Default: "", Desc: "Password for the bootstrap admin account"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CELLAR", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTExpiry: appValues.Duration("jwt_expiry", 24*time.Hour),

		UploadDir:      appValues.String("upload_dir"),
		UploadURL:      appValues.String("upload_url"),
		UploadMaxBytes: int64(appValues.Int("upload_max_bytes")),

		CORSOrigin: appValues.String("cors_origin"),

		StockPhotoAPIKey: appValues.String("stock_photo_api_key"),

		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env != "dev" && appCfg.JWTSecret == devJWTSecret {
		return fmt.Errorf("jwt_secret must be set outside dev")
	}
	if len(appCfg.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters")
	}

	if appCfg.UploadMaxBytes <= 0 {
		return fmt.Errorf("upload_max_bytes must be positive")
	}

	// An admin email without a password (or vice versa) is a likely
	// deployment mistake.
	if (appCfg.AdminEmail == "") != (appCfg.AdminPassword == "") {
		return fmt.Errorf("admin_email and admin_password must be set together")
	}

	return nil
}
