package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fieldroute/internal/metrics"
	"fieldroute/internal/model"
)

const (
	// lateThreshold is how far behind plan the agent must be before a
	// running-late re-plan is attempted.
	lateThreshold = 600 * time.Second
	// driftDelayRatio is the current-delay fraction of typical travel
	// time that counts as traffic drift.
	driftDelayRatio = 0.5
	// driftImprovement is the minimum relative gain a drift re-plan must
	// show before it is surfaced; guards against noisy small re-plans.
	driftImprovement = 0.10
)

// Monitor compares a route's plan against live position and traffic and
// decides whether to recommend re-optimization. Each check is a bounded,
// idempotent computation intended for a polling cadence of minutes.
type Monitor struct {
	opt *Optimizer
}

func NewMonitor(opt *Optimizer) *Monitor {
	return &Monitor{opt: opt}
}

// Check returns a recommended adjustment, or nil when the plan still holds.
// Re-optimization is a fresh Optimize call on the remaining stops, not an
// incremental repair of the existing route.
func (m *Monitor) Check(ctx context.Context, route model.Route, current *model.Location, completedIDs []string) (*model.Adjustment, error) {
	remaining := remainingWaypoints(route, completedIDs)
	if len(remaining) == 0 {
		return nil, nil
	}
	next := remaining[0]
	now := m.opt.now()

	// Running-late: past the next planned arrival by more than the threshold.
	if now.Sub(next.EstimatedArrival) > lateThreshold {
		adj, err := m.replan(ctx, route, remaining, current, model.Constraints{Mode: model.ModeTime}, model.AdjustRunningLate)
		if err != nil {
			return nil, err
		}
		if adj != nil {
			return adj, nil
		}
	}

	// Traffic-drift: refetch conditions for the remaining stops.
	locs := waypointLocations(remaining)
	estimate := m.opt.traffic.Estimate(locs, now)
	drifted := false
	for _, cond := range estimate.Conditions {
		if cond.Typical > 0 && float64(cond.CurrentDelay) > driftDelayRatio*float64(cond.Typical) {
			drifted = true
			break
		}
	}
	if !drifted {
		return nil, nil
	}
	adj, err := m.replan(ctx, route, remaining, current, model.Constraints{Mode: model.ModeTime, AvoidTraffic: true}, model.AdjustTrafficDrift)
	if err != nil || adj == nil {
		return nil, err
	}
	oldRemaining := remainingDuration(remaining)
	if float64(adj.NewRoute.TotalDuration) > (1-driftImprovement)*float64(oldRemaining) {
		return nil, nil
	}
	return adj, nil
}

func (m *Monitor) replan(ctx context.Context, route model.Route, remaining []model.Waypoint, current *model.Location, constraints model.Constraints, reason string) (*model.Adjustment, error) {
	newRoute, err := m.opt.Optimize(ctx, waypointLocations(remaining), nil, current, constraints)
	if err != nil {
		return nil, err
	}
	if len(newRoute.Waypoints) == 0 {
		return nil, nil
	}
	metrics.Adjustments.WithLabelValues(reason).Inc()
	return &model.Adjustment{
		ID:        uuid.New().String(),
		RouteID:   route.ID,
		Reason:    reason,
		NewRoute:  newRoute,
		TimeSaved: remainingDuration(remaining) - newRoute.TotalDuration,
		CreatedAt: m.opt.now(),
	}, nil
}

// remainingWaypoints returns waypoints not yet completed, in plan order.
func remainingWaypoints(route model.Route, completedIDs []string) []model.Waypoint {
	done := make(map[string]bool, len(completedIDs))
	for _, id := range completedIDs {
		done[id] = true
	}
	var out []model.Waypoint
	for _, wp := range route.Waypoints {
		if !done[wp.Location.ID] {
			out = append(out, wp)
		}
	}
	return out
}

func waypointLocations(wps []model.Waypoint) []model.Location {
	out := make([]model.Location, len(wps))
	for i, wp := range wps {
		out[i] = wp.Location
	}
	return out
}

// remainingDuration is the planned time from the first remaining arrival to
// the last remaining departure.
func remainingDuration(wps []model.Waypoint) time.Duration {
	if len(wps) == 0 {
		return 0
	}
	return wps[len(wps)-1].EstimatedDeparture.Sub(wps[0].EstimatedArrival)
}
