// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	healthfeature "github.com/oakbarrel/cellar/internal/app/features/health"
	loginfeature "github.com/oakbarrel/cellar/internal/app/features/login"
	stockphotosfeature "github.com/oakbarrel/cellar/internal/app/features/stockphotos"
	uploadsfeature "github.com/oakbarrel/cellar/internal/app/features/uploads"
	vintagesfeature "github.com/oakbarrel/cellar/internal/app/features/vintages"
	wineriesfeature "github.com/oakbarrel/cellar/internal/app/features/wineries"
	winesfeature "github.com/oakbarrel/cellar/internal/app/features/wines"
	userstore "github.com/oakbarrel/cellar/internal/app/store/users"
	"github.com/oakbarrel/cellar/internal/app/system/auth"
	"github.com/oakbarrel/cellar/internal/app/system/stockphoto"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Cellar initializes the token manager, applies token-loading and CORS
// middleware, and mounts a feature router per API surface: auth, wineries,
// wines, vintages, uploads, and stock photo search.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.CellarMongoDatabase

	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTExpiry, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh user data per request so role changes and deactivated
	// accounts take effect without waiting for token expiry.
	tokens.SetUserFetcher(userstore.NewFetcher(db))

	// Local file storage for uploads, served under the upload URL prefix.
	fileStore, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.UploadDir,
		BaseURL:  appCfg.UploadURL,
	})
	if err != nil {
		logger.Error("upload storage init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{appCfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Global auth middleware: loads the bearer-token user into context so
	// handlers can call auth.CurrentUser(r).
	r.Use(tokens.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CellarMongoClient, logger)
	r.Get("/health", healthHandler.Serve)

	// Authentication
	loginHandler := loginfeature.NewHandler(db, tokens, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler))

	// Catalog
	wineriesHandler := wineriesfeature.NewHandler(db, logger)
	r.Mount("/wineries", wineriesfeature.Routes(wineriesHandler))

	winesHandler := winesfeature.NewHandler(db, logger)
	r.Mount("/wines", winesfeature.Routes(winesHandler))

	vintagesHandler := vintagesfeature.NewHandler(db, logger)
	r.Mount("/vintages", vintagesfeature.Routes(vintagesHandler))

	// File uploads and static serving of what was uploaded
	uploadsHandler := uploadsfeature.NewHandler(fileStore, appCfg.UploadMaxBytes, logger)
	r.Mount("/upload", uploadsfeature.Routes(uploadsHandler))
	r.Handle(appCfg.UploadURL+"/*", fileserver.Handler(appCfg.UploadURL, appCfg.UploadDir))

	// Stock photo search for editorial workflows
	photoClient := stockphoto.New(appCfg.StockPhotoAPIKey, logger)
	if !photoClient.Configured() {
		logger.Info("stock photo provider not configured; search returns placeholders")
	}
	stockphotosHandler := stockphotosfeature.NewHandler(photoClient, logger)
	r.Mount("/stockphotos", stockphotosfeature.Routes(stockphotosHandler))

	return r, nil
}
