package engine

import (
	"time"

	"fieldroute/internal/model"
)

// Strategy names reported in metrics and solver selection.
const (
	StrategyExhaustive = "exhaustive"
	StrategyGenetic    = "genetic"
	StrategyHeuristic  = "heuristic"
)

// solveInput carries the call-scoped context every solver needs to evaluate
// candidate orderings against the shared cost scalar.
type solveInput struct {
	locations   []model.Location
	analysis    TaskAnalysis
	traffic     TrafficEstimate
	start       *model.Location
	departAt    time.Time
	constraints model.Constraints
}

// selectStrategy picks a solver purely by stop count: small sets are solved
// exactly, mid-size sets by the genetic solver, large sets greedily.
func selectStrategy(stops int) string {
	switch {
	case stops <= 5:
		return StrategyExhaustive
	case stops <= 15:
		return StrategyGenetic
	default:
		return StrategyHeuristic
	}
}

// scoreOrder evaluates one candidate ordering and returns its cost.
func (o *Optimizer) scoreOrder(order []model.Location, in solveInput) float64 {
	route := o.eval.Evaluate(order, in.analysis, in.traffic, in.start, in.departAt)
	return Score(route, in.constraints)
}

// solveExhaustive scores permutations of the stop set and returns the best.
// The evaluation count is capped; for five stops the cap equals 5! so the
// search is exact at the strategy boundary, and the cap keeps a misdirected
// call from blowing up combinatorially. The input-order baseline is scored
// outside the cap budget so all n! permutations fit under it; the identity
// permutation re-surfaces as the recursion's first leaf.
func (o *Optimizer) solveExhaustive(in solveInput) []model.Location {
	best := append([]model.Location(nil), in.locations...)
	bestCost := o.scoreOrder(best, in)
	evaluated := 0

	var permute func(order []model.Location, k int) bool
	permute = func(order []model.Location, k int) bool {
		if evaluated >= o.cfg.ExhaustiveCap {
			return false
		}
		if k == len(order) {
			if cost := o.scoreOrder(order, in); cost < bestCost {
				bestCost = cost
				best = append([]model.Location(nil), order...)
			}
			evaluated++
			return true
		}
		for i := k; i < len(order); i++ {
			order[k], order[i] = order[i], order[k]
			more := permute(order, k+1)
			order[k], order[i] = order[i], order[k]
			if !more {
				return false
			}
		}
		return true
	}
	work := append([]model.Location(nil), in.locations...)
	permute(work, 0)
	return best
}
