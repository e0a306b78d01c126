package engine

import (
	"math/rand"
	"sort"

	"fieldroute/internal/model"
)

type gaIndividual struct {
	order []model.Location
	cost  float64
}

// solveGenetic runs a minimizing order-based GA over the stop set: random
// initial population, elitism, tournament selection, order crossover and
// swap mutation. The random source is injected so tests can fix a seed.
func (o *Optimizer) solveGenetic(in solveInput, rng *rand.Rand) []model.Location {
	g := o.cfg.Genetic
	n := len(in.locations)

	pop := make([]gaIndividual, g.Population)
	for i := range pop {
		order := append([]model.Location(nil), in.locations...)
		rng.Shuffle(n, func(a, b int) { order[a], order[b] = order[b], order[a] })
		pop[i] = gaIndividual{order: order, cost: o.scoreOrder(order, in)}
	}
	sortByCost(pop)
	best := clone(pop[0])

	for gen := 0; gen < g.Generations; gen++ {
		next := make([]gaIndividual, 0, g.Population)
		for i := 0; i < g.Elite && i < len(pop); i++ {
			next = append(next, pop[i])
		}
		for len(next) < g.Population {
			p1 := tournament(pop, g.Tournament, rng)
			p2 := tournament(pop, g.Tournament, rng)
			child := orderCrossover(p1.order, p2.order, rng)
			if rng.Float64() < g.MutationPct && n > 1 {
				a, b := rng.Intn(n), rng.Intn(n)
				child[a], child[b] = child[b], child[a]
			}
			next = append(next, gaIndividual{order: child, cost: o.scoreOrder(child, in)})
		}
		pop = next
		sortByCost(pop)
		if pop[0].cost < best.cost {
			best = clone(pop[0])
		}
	}
	return best.order
}

func sortByCost(pop []gaIndividual) {
	sort.Slice(pop, func(a, b int) bool { return pop[a].cost < pop[b].cost })
}

func clone(ind gaIndividual) gaIndividual {
	return gaIndividual{order: append([]model.Location(nil), ind.order...), cost: ind.cost}
}

// tournament returns the fittest of k random picks.
func tournament(pop []gaIndividual, k int, rng *rand.Rand) gaIndividual {
	best := rng.Intn(len(pop))
	for i := 1; i < k; i++ {
		if c := rng.Intn(len(pop)); pop[c].cost < pop[best].cost {
			best = c
		}
	}
	return pop[best]
}

// orderCrossover copies a random contiguous slice from p1 and fills the
// remaining positions with p2's order, skipping duplicates (OX).
func orderCrossover(p1, p2 []model.Location, rng *rand.Rand) []model.Location {
	n := len(p1)
	if n < 2 {
		return append([]model.Location(nil), p1...)
	}
	lo := rng.Intn(n)
	hi := rng.Intn(n)
	if lo > hi {
		lo, hi = hi, lo
	}
	child := make([]model.Location, n)
	filled := make([]bool, n)
	used := make(map[string]bool, hi-lo+1)
	for i := lo; i <= hi; i++ {
		child[i] = p1[i]
		filled[i] = true
		used[p1[i].ID] = true
	}
	pos := (hi + 1) % n
	for _, loc := range p2 {
		if used[loc.ID] {
			continue
		}
		for filled[pos] {
			pos = (pos + 1) % n
		}
		child[pos] = loc
		filled[pos] = true
		pos = (pos + 1) % n
	}
	return child
}
