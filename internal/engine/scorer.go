package engine

import (
	"fieldroute/internal/model"
)

// Score collapses an evaluated route into the single scalar cost all three
// solvers minimize, keeping cross-strategy comparisons meaningful.
//
// Base cost follows the requested mode: time in hours, distance in km, or
// the sum of both for balanced. Exceeding a max-duration constraint costs
// 100 per excess hour. Priority stops earn a bonus of 5 per stop remaining
// after them, so earlier visits are rewarded more. Low packing efficiency
// costs (1-efficiency)*50.
func Score(route model.Route, constraints model.Constraints) float64 {
	hours := route.TotalDuration.Hours()
	var cost float64
	switch constraints.Mode {
	case model.ModeTime:
		cost = hours
	case model.ModeDistance:
		cost = route.TotalDistanceKm
	default:
		cost = hours + route.TotalDistanceKm
	}

	if constraints.MaxDuration != nil && route.TotalDuration > *constraints.MaxDuration {
		excess := (route.TotalDuration - *constraints.MaxDuration).Hours()
		cost += excess * 100
	}

	for i, wp := range route.Waypoints {
		if constraints.HasPriority(wp.Location.ID) {
			remaining := len(route.Waypoints) - i - 1
			cost -= float64(remaining * 5)
		}
	}

	cost += (1 - route.Efficiency) * 50
	return cost
}
