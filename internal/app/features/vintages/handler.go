// internal/app/features/vintages/handler.go
package vintages

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	vintagestore "github.com/oakbarrel/cellar/internal/app/store/vintages"
	winerystore "github.com/oakbarrel/cellar/internal/app/store/wineries"
	winestore "github.com/oakbarrel/cellar/internal/app/store/wines"
)

// Handler is the feature-level entry point for Vintages.
type Handler struct {
	Vintages *vintagestore.Store
	Wines    *winestore.Store
	Wineries *winerystore.Store
	Log      *zap.Logger
}

// NewHandler constructs a Vintages handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Vintages: vintagestore.New(db),
		Wines:    winestore.New(db),
		Wineries: winerystore.New(db),
		Log:      logger,
	}
}
