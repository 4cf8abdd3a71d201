// internal/app/features/wines/handler.go
package wines

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	winerystore "github.com/oakbarrel/cellar/internal/app/store/wineries"
	winestore "github.com/oakbarrel/cellar/internal/app/store/wines"
)

// Handler is the feature-level entry point for Wines.
type Handler struct {
	Wines    *winestore.Store
	Wineries *winerystore.Store
	Log      *zap.Logger
}

// NewHandler constructs a Wines handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Wines:    winestore.New(db),
		Wineries: winerystore.New(db),
		Log:      logger,
	}
}
