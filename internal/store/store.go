package store

import (
	"context"
	"errors"

	"fieldroute/internal/model"
)

// Store persists computed routes and monitor adjustments so dispatch tools
// can review plans after the fact. The engine itself never reads it.
type Store interface {
	SaveRoute(ctx context.Context, route model.Route) error
	GetRoute(ctx context.Context, id string) (model.Route, error)
	ListRoutes(ctx context.Context, limit int) ([]model.Route, error)

	SaveAdjustment(ctx context.Context, adj model.Adjustment) error
	ListAdjustments(ctx context.Context, routeID string) ([]model.Adjustment, error)

	// RouteStats summarizes stored routes (count, distance/duration means).
	RouteStats(ctx context.Context) (map[string]any, error)
}

var ErrNotFound = errors.New("not found")
