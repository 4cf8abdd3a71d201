// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, and shutdown timeouts. AppConfig
// is everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token authentication
	JWTSecret string        // Secret for signing bearer tokens (must be strong in production)
	JWTExpiry time.Duration // Token lifetime (e.g., 24h)

	// File upload configuration
	UploadDir      string // Local directory for uploaded files
	UploadURL      string // URL prefix for serving uploaded files (e.g., /files)
	UploadMaxBytes int64  // Per-file upload size cap in bytes

	// CORS
	CORSOrigin string // Allowed origin for browser clients ("*" in dev)

	// Stock photo provider (absence degrades to placeholder results)
	StockPhotoAPIKey string

	// Bootstrap admin account (created on startup when both are set)
	AdminEmail    string
	AdminPassword string
}
