package engine

import (
	"testing"

	"fieldroute/internal/config"
	"fieldroute/internal/model"
)

func manyLocations(n int) []model.Location {
	locs := make([]model.Location, n)
	for i := range locs {
		locs[i] = model.Location{
			ID:        string(rune('a'+i%26)) + string(rune('0'+i/26)),
			Latitude:  38.8 + 0.03*float64(i%6),
			Longitude: -76.3 + 0.04*float64(i/6),
		}
	}
	return locs
}

func TestSolveHeuristicReturnsPermutation(t *testing.T) {
	o := New(config.Default())
	locs := manyLocations(20)
	in := solveInputFor(o, locs, nil, model.Constraints{Mode: model.ModeDistance})

	got := o.solveHeuristic(in)
	if !samePermutation(got, locs) {
		t.Fatalf("heuristic result is not a permutation of the input")
	}
}

func TestSolveHeuristicPrefersConstraintPriority(t *testing.T) {
	o := New(config.Default())
	// Two stops symmetric around the start; only the priority set breaks
	// the tie, so the priority stop goes first.
	locs := []model.Location{
		{ID: "plain", Latitude: 39.0, Longitude: -76.1},
		{ID: "vip", Latitude: 39.0, Longitude: -76.3},
	}
	start := &model.Location{ID: "s", Latitude: 39.0, Longitude: -76.2}
	in := solveInputFor(o, locs, start, model.Constraints{PriorityIDs: []string{"vip"}})

	got := o.solveHeuristic(in)
	if got[0].ID != "vip" {
		t.Errorf("first stop = %s, want the priority stop", got[0].ID)
	}
}

func TestSolveHeuristicAvoidTrafficSteersAway(t *testing.T) {
	o := New(config.Default())
	// Same geometry; the urban stop carries escalated severity, so with
	// avoid-traffic on it is deferred.
	locs := []model.Location{
		{ID: "downtown", Latitude: 40.75, Longitude: -73.98},
		{ID: "suburb", Latitude: 40.75, Longitude: -73.80},
	}
	start := &model.Location{ID: "s", Latitude: 40.75, Longitude: -73.89}
	in := solveInputFor(o, locs, start, model.Constraints{AvoidTraffic: true})

	got := o.solveHeuristic(in)
	if got[0].ID != "suburb" {
		t.Errorf("first stop = %s, want the calmer one", got[0].ID)
	}
}

func TestImprove2Opt(t *testing.T) {
	// Four points on a line, deliberately tangled: a-c-b-d.
	a := model.Location{ID: "a", Latitude: 39.0, Longitude: -76.0}
	b := model.Location{ID: "b", Latitude: 39.1, Longitude: -76.0}
	c := model.Location{ID: "c", Latitude: 39.2, Longitude: -76.0}
	d := model.Location{ID: "d", Latitude: 39.3, Longitude: -76.0}

	o := New(config.Default())
	in := solveInputFor(o, []model.Location{a, b, c, d}, &a, model.Constraints{Mode: model.ModeDistance})
	cost := func(order []model.Location) float64 { return o.scoreOrder(order, in) }

	tangled := []model.Location{a, c, b, d}
	improved := improve2Opt(tangled, cost)
	if cost(improved) > cost(tangled) {
		t.Error("2-opt should never make the route worse")
	}
	want := []string{"a", "b", "c", "d"}
	for i, loc := range improved {
		if loc.ID != want[i] {
			t.Fatalf("improved order = %v, want untangled a,b,c,d", improved)
		}
	}
}

func TestTwoOptSwap(t *testing.T) {
	order := []model.Location{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}
	got := twoOptSwap(order, 1, 3)
	want := []string{"a", "d", "c", "b", "e"}
	for i, loc := range got {
		if loc.ID != want[i] {
			t.Fatalf("swap = %v, want %v", got, want)
		}
	}
}
