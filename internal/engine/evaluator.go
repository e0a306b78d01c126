package engine

import (
	"time"

	"fieldroute/internal/config"
	"fieldroute/internal/geo"
	"fieldroute/internal/model"
)

const kmPerMile = 1.609344

// Evaluator turns an ordered location sequence into a concrete timed route.
// Evaluate is deterministic and side-effect-free; all three solvers rely on
// it to compare candidates against a common schedule.
type Evaluator struct {
	taskDuration  time.Duration
	fallbackSpeed float64 // km/h
}

func NewEvaluator(cfg config.Engine) *Evaluator {
	return &Evaluator{
		taskDuration:  cfg.TaskDuration(),
		fallbackSpeed: cfg.FallbackSpeedMph * kmPerMile,
	}
}

// Evaluate walks the ordered list once, accumulating per-leg distance and
// traffic-adjusted travel time. Locations without a traffic condition fall
// back to a flat average-speed model. Efficiency is the straight-line chain
// distance over the traveled distance, 1.0 when nothing was traveled.
func (e *Evaluator) Evaluate(order []model.Location, analysis TaskAnalysis, traffic TrafficEstimate, start *model.Location, departAt time.Time) model.Route {
	route := model.Route{
		Waypoints:       make([]model.Waypoint, 0, len(order)),
		TrafficSeverity: traffic.Overall,
		Efficiency:      1.0,
		CreatedAt:       departAt,
	}
	if len(order) == 0 {
		return route
	}

	now := departAt
	current := start
	totalKm := 0.0
	for _, loc := range order {
		legKm := 0.0
		if current != nil {
			legKm = geo.Between(*current, loc)
		}
		travel := e.travelTime(legKm, traffic.Conditions[loc.ID])
		totalKm += legKm
		arrival := now.Add(travel)
		departure := arrival.Add(e.taskDuration)

		wp := model.Waypoint{
			Location:           loc,
			EstimatedArrival:   arrival,
			EstimatedDeparture: departure,
			TaskDuration:       e.taskDuration,
			Priority:           analysis.Priorities[loc.ID],
		}
		if w, ok := analysis.Windows[loc.ID]; ok {
			window := w
			wp.Window = &window
		}
		route.Waypoints = append(route.Waypoints, wp)

		now = departure
		cur := loc
		current = &cur
	}

	route.TotalDistanceKm = totalKm
	route.TotalDuration = now.Sub(departAt)
	if totalKm > 0 {
		route.Efficiency = geo.ChainDistanceKm(start, order) / totalKm
	}
	return route
}

// travelTime prefers the traffic-adjusted estimate when a condition exists,
// otherwise a flat average-speed model over the leg distance.
func (e *Evaluator) travelTime(legKm float64, cond model.TrafficCondition) time.Duration {
	if cond.Expected > 0 {
		return cond.Expected
	}
	if e.fallbackSpeed <= 0 {
		return 0
	}
	return time.Duration(legKm / e.fallbackSpeed * float64(time.Hour))
}
