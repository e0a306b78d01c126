package engine

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"

	"fieldroute/internal/config"
	"fieldroute/internal/metrics"
	"fieldroute/internal/model"
)

// Optimizer is the public entry point of the engine. It owns the route
// cache and collaborators and is safe for concurrent use: analysis and
// solving are call-scoped pure computation, only the cache is shared.
type Optimizer struct {
	cfg        config.Engine
	eval       *Evaluator
	traffic    *TrafficModel
	cache      RouteCache
	directions DirectionsProvider
	clock      clockz.Clock
	seed       int64

	solverCalls atomic.Int64
}

// New constructs an Optimizer with an in-memory cache. Collaborators are
// injected via the With* methods; everything has a working default.
func New(cfg config.Engine) *Optimizer {
	o := &Optimizer{
		cfg:     cfg,
		eval:    NewEvaluator(cfg),
		traffic: NewTrafficModel(cfg),
	}
	o.cache = NewMemoryCache(cfg.CacheTTL())
	return o
}

// WithCache replaces the route cache (e.g. Redis-backed).
func (o *Optimizer) WithCache(c RouteCache) *Optimizer {
	o.cache = c
	return o
}

// WithDirections sets the external directions provider.
func (o *Optimizer) WithDirections(p DirectionsProvider) *Optimizer {
	o.directions = p
	return o
}

// WithClock swaps the time source, used by tests to control time-of-day
// traffic and cache expiry.
func (o *Optimizer) WithClock(clock clockz.Clock) *Optimizer {
	o.clock = clock
	return o
}

// WithSeed fixes the genetic solver's random seed for reproducible runs.
func (o *Optimizer) WithSeed(seed int64) *Optimizer {
	o.seed = seed
	return o
}

func (o *Optimizer) now() time.Time {
	if o.clock != nil {
		return o.clock.Now()
	}
	return clockz.RealClock.Now()
}

// SolverCalls reports how many times a solver ran; cache hits do not count.
func (o *Optimizer) SolverCalls() int64 { return o.solverCalls.Load() }

// Optimize sequences the locations into a timed route. Empty input yields a
// canonical empty route without touching a solver. Identical requests within
// the cache TTL return the stored route unchanged. A solver that produces an
// unusable ordering falls back to evaluating the input order; the call never
// fails for non-empty input.
func (o *Optimizer) Optimize(ctx context.Context, locations []model.Location, tasks []model.Task, start *model.Location, constraints model.Constraints) (model.Route, error) {
	if len(locations) == 0 {
		return model.Route{
			ID:         uuid.New().String(),
			Waypoints:  []model.Waypoint{},
			Efficiency: 1.0,
			CreatedAt:  o.now(),
		}, nil
	}

	key := Fingerprint(locations, constraints)
	if route, ok := o.cache.Get(ctx, key); ok {
		metrics.CacheHits.Inc()
		return route, nil
	}
	metrics.CacheMisses.Inc()

	departAt := o.now()
	if constraints.PreferredStart != nil {
		departAt = *constraints.PreferredStart
	}

	in := solveInput{
		locations:   locations,
		analysis:    AnalyzeTasks(tasks, locations),
		traffic:     o.traffic.Estimate(locations, departAt),
		start:       start,
		departAt:    departAt,
		constraints: constraints,
	}

	strategy := selectStrategy(len(locations))
	started := time.Now()
	order := o.solve(strategy, in)
	metrics.SolverDuration.WithLabelValues(strategy).Observe(time.Since(started).Seconds())
	o.solverCalls.Add(1)

	if !samePermutation(order, locations) {
		// Defensive fallback: keep the input order rather than failing.
		order = locations
	}

	route := o.eval.Evaluate(order, in.analysis, in.traffic, start, departAt)
	route.ID = uuid.New().String()
	route.CreatedAt = o.now()
	o.cache.Put(ctx, key, route)
	metrics.OptimizeTotal.WithLabelValues(strategy).Inc()
	return route, nil
}

func (o *Optimizer) solve(strategy string, in solveInput) []model.Location {
	switch strategy {
	case StrategyExhaustive:
		return o.solveExhaustive(in)
	case StrategyGenetic:
		seed := o.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return o.solveGenetic(in, rand.New(rand.NewSource(seed)))
	default:
		return o.solveHeuristic(in)
	}
}

// samePermutation verifies the solver returned exactly the input set.
func samePermutation(order, locations []model.Location) bool {
	if len(order) != len(locations) {
		return false
	}
	seen := make(map[string]int, len(locations))
	for _, loc := range locations {
		seen[loc.ID]++
	}
	for _, loc := range order {
		seen[loc.ID]--
		if seen[loc.ID] < 0 {
			return false
		}
	}
	return true
}
