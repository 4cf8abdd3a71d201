// internal/app/features/wineries/handler.go
package wineries

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	winerystore "github.com/oakbarrel/cellar/internal/app/store/wineries"
	winestore "github.com/oakbarrel/cellar/internal/app/store/wines"
)

// Handler is the feature-level entry point for Wineries.
type Handler struct {
	Wineries *winerystore.Store
	Wines    *winestore.Store
	Log      *zap.Logger
}

// NewHandler constructs a Wineries handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Wineries: winerystore.New(db),
		Wines:    winestore.New(db),
		Log:      logger,
	}
}
