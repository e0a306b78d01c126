package engine

import (
	"math"
	"time"

	"fieldroute/internal/geo"
	"fieldroute/internal/model"
)

// solveHeuristic builds a route greedily: at each step every unvisited
// candidate is scored with a one-step lookahead blending distance, travel
// time, priority and time-window fit, and the cheapest candidate is taken.
// O(n^2), chosen for the large-set strategy band. A bounded 2-opt pass then
// tries to untangle crossings, kept only when it scores strictly better.
func (o *Optimizer) solveHeuristic(in solveInput) []model.Location {
	remaining := append([]model.Location(nil), in.locations...)
	order := make([]model.Location, 0, len(remaining))
	current := in.start
	now := in.departAt

	for len(remaining) > 0 {
		bestIdx := 0
		bestScore := math.MaxFloat64
		for i, cand := range remaining {
			if s := o.lookaheadScore(current, cand, now, in); s < bestScore {
				bestScore = s
				bestIdx = i
			}
		}
		pick := remaining[bestIdx]
		if current != nil {
			now = now.Add(o.legTravel(geo.Between(*current, pick), in.traffic.Conditions[pick.ID]))
		}
		now = now.Add(o.eval.taskDuration)
		order = append(order, pick)
		cur := pick
		current = &cur
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	improved := improve2Opt(order, func(cand []model.Location) float64 { return o.scoreOrder(cand, in) })
	return improved
}

// lookaheadScore is the greedy step cost for visiting cand next. Travel
// time is weighted 10x distance; urgent and constraint-priority stops get
// flat bonuses; arriving outside the window is penalized per minute, late
// worse than early.
func (o *Optimizer) lookaheadScore(current *model.Location, cand model.Location, now time.Time, in solveInput) float64 {
	legKm := 0.0
	if current != nil {
		legKm = geo.Between(*current, cand)
	}
	travel := o.legTravel(legKm, in.traffic.Conditions[cand.ID])
	score := legKm + 10*travel.Minutes()

	priority := in.analysis.Priorities[cand.ID]
	score -= float64((5 - priority) * 100)

	if w, ok := in.analysis.Windows[cand.ID]; ok {
		arrival := now.Add(travel)
		if arrival.Before(w.Earliest) {
			score += 2 * w.Earliest.Sub(arrival).Minutes()
		} else if arrival.After(w.Latest) {
			score += 5 * arrival.Sub(w.Latest).Minutes()
		}
	}

	if in.constraints.HasPriority(cand.ID) {
		score -= 200
	}
	if in.constraints.AvoidTraffic {
		score += float64(in.traffic.Conditions[cand.ID].Severity) * 50
	}
	return score
}

// legTravel mirrors the evaluator's travel model for lookahead purposes.
func (o *Optimizer) legTravel(legKm float64, cond model.TrafficCondition) time.Duration {
	return o.eval.travelTime(legKm, cond)
}

// improve2Opt applies segment reversals while they strictly reduce the
// route cost, with a bounded number of sweeps.
func improve2Opt(order []model.Location, cost func([]model.Location) float64) []model.Location {
	n := len(order)
	if n < 4 {
		return order
	}
	best := append([]model.Location(nil), order...)
	bestCost := cost(best)
	for sweep := 0; sweep < 3; sweep++ {
		improved := false
		for i := 0; i < n-1; i++ {
			for k := i + 1; k < n; k++ {
				cand := twoOptSwap(best, i, k)
				if c := cost(cand); c < bestCost {
					best = cand
					bestCost = c
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
	return best
}

// twoOptSwap reverses the segment [i,k].
func twoOptSwap(order []model.Location, i, k int) []model.Location {
	out := make([]model.Location, len(order))
	copy(out, order[:i])
	pos := i
	for j := k; j >= i; j-- {
		out[pos] = order[j]
		pos++
	}
	copy(out[pos:], order[k+1:])
	return out
}
