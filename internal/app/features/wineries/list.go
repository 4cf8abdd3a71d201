// internal/app/features/wineries/list.go
package wineries

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oakbarrel/cellar/internal/app/system/paging"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// ServeList handles GET /wineries with optional ?status=, ?search=, and
// offset pagination. Newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	filter := bson.M{}
	if status := query.Get(r, "status"); status != "" {
		filter["status"] = status
	}
	if q := query.Get(r, "search"); q != "" {
		for k, v := range searchFilter(q) {
			filter[k] = v
		}
	}
	restrictToPublished(r, filter)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Wineries.Count(ctx, filter)
	if err != nil {
		webapi.ServerError(w, h.Log, "count wineries failed", err)
		return
	}

	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64())

	wineries, err := h.Wineries.Find(ctx, filter, find)
	if err != nil {
		webapi.ServerError(w, h.Log, "find wineries failed", err)
		return
	}
	if wineries == nil {
		wineries = []models.Winery{}
	}

	webapi.List(w, wineries, len(wineries), total, p.TotalPages(total), p.Page)
}
