package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fieldroute/internal/geo"
	"fieldroute/internal/model"
)

// ErrNoRoute is returned when the directions provider cannot produce a leg.
// It never invalidates a cached optimization result.
var ErrNoRoute = errors.New("no route found for this leg")

// DirectionsProvider supplies authoritative point-to-point travel estimates
// and turn-by-turn instructions. It is the only network boundary of the
// engine and must degrade gracefully rather than block the optimizer.
type DirectionsProvider interface {
	Leg(ctx context.Context, from, to model.Location) (model.Segment, error)
}

// Directions materializes a route into a per-leg driving itinerary. A
// provider failure surfaces as a recoverable error wrapping ErrNoRoute;
// without a provider, legs fall back to the straight-line travel model.
func (o *Optimizer) Directions(ctx context.Context, route model.Route, start *model.Location) ([]model.Segment, error) {
	if len(route.Waypoints) == 0 {
		return nil, nil
	}
	segments := make([]model.Segment, 0, len(route.Waypoints))
	current := start
	for _, wp := range route.Waypoints {
		if current == nil {
			cur := wp.Location
			current = &cur
			continue
		}
		seg, err := o.leg(ctx, *current, wp.Location)
		if err != nil {
			return segments, fmt.Errorf("leg %s -> %s: %w", current.ID, wp.Location.ID, err)
		}
		segments = append(segments, seg)
		cur := wp.Location
		current = &cur
	}
	return segments, nil
}

func (o *Optimizer) leg(ctx context.Context, from, to model.Location) (model.Segment, error) {
	if o.directions != nil {
		seg, err := o.directions.Leg(ctx, from, to)
		if err != nil {
			return model.Segment{}, fmt.Errorf("%w: %v", ErrNoRoute, err)
		}
		return seg, nil
	}
	km := geo.Between(from, to)
	travel := time.Duration(0)
	if o.eval.fallbackSpeed > 0 {
		travel = time.Duration(km / o.eval.fallbackSpeed * float64(time.Hour))
	}
	return model.Segment{From: from, To: to, DistanceKm: km, Travel: travel}, nil
}
