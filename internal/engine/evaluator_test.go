package engine

import (
	"testing"
	"time"

	"fieldroute/internal/config"
	"fieldroute/internal/model"
)

func TestEvaluateTiming(t *testing.T) {
	cfg := config.Default()
	eval := NewEvaluator(cfg)
	tm := NewTrafficModel(cfg)

	order := []model.Location{
		{ID: "a", Latitude: 39.00, Longitude: -76.00},
		{ID: "b", Latitude: 39.05, Longitude: -76.00},
		{ID: "c", Latitude: 39.10, Longitude: -76.00},
	}
	start := &model.Location{ID: "s", Latitude: 38.95, Longitude: -76.00}
	departAt := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	route := eval.Evaluate(order, AnalyzeTasks(nil, order), tm.Estimate(order, departAt), start, departAt)

	if len(route.Waypoints) != 3 {
		t.Fatalf("waypoints = %d, want 3", len(route.Waypoints))
	}
	prev := departAt
	for i, wp := range route.Waypoints {
		if wp.EstimatedArrival.Before(prev) {
			t.Errorf("waypoint %d arrives %v before previous departure %v", i, wp.EstimatedArrival, prev)
		}
		if wp.EstimatedDeparture.Before(wp.EstimatedArrival) {
			t.Errorf("waypoint %d departs before arriving", i)
		}
		if wp.TaskDuration != cfg.TaskDuration() {
			t.Errorf("waypoint %d task duration = %v, want %v", i, wp.TaskDuration, cfg.TaskDuration())
		}
		prev = wp.EstimatedDeparture
	}
	last := route.Waypoints[2]
	if got := last.EstimatedDeparture.Sub(departAt); got != route.TotalDuration {
		t.Errorf("total duration = %v, want %v", route.TotalDuration, got)
	}
	if route.TotalDistanceKm <= 0 {
		t.Error("total distance should be positive")
	}
	// Straight-line legs in chain order are as short as the chain itself.
	if !almostEqual(route.Efficiency, 1.0) {
		t.Errorf("efficiency = %v, want 1.0", route.Efficiency)
	}
}

func TestEvaluateFallbackSpeed(t *testing.T) {
	cfg := config.Default()
	eval := NewEvaluator(cfg)

	// No traffic conditions: one degree of latitude at 25 mph.
	order := []model.Location{{ID: "a", Latitude: 40.0, Longitude: -76.0}}
	start := &model.Location{ID: "s", Latitude: 39.0, Longitude: -76.0}
	departAt := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	route := eval.Evaluate(order, AnalyzeTasks(nil, order), TrafficEstimate{}, start, departAt)
	travel := route.Waypoints[0].EstimatedArrival.Sub(departAt)
	wantHours := route.TotalDistanceKm / (25 * kmPerMile)
	if got := travel.Hours(); !almostEqual(got, wantHours) {
		t.Errorf("fallback travel = %v hours, want %v", got, wantHours)
	}
}

func TestEvaluateEmptyOrder(t *testing.T) {
	eval := NewEvaluator(config.Default())
	route := eval.Evaluate(nil, TaskAnalysis{}, TrafficEstimate{}, nil, time.Now())
	if len(route.Waypoints) != 0 || route.TotalDistanceKm != 0 || route.TotalDuration != 0 {
		t.Errorf("empty order produced non-empty route: %+v", route)
	}
	if !almostEqual(route.Efficiency, 1.0) {
		t.Errorf("efficiency = %v, want 1.0", route.Efficiency)
	}
}

func TestEvaluateAttachesWindows(t *testing.T) {
	cfg := config.Default()
	eval := NewEvaluator(cfg)
	order := []model.Location{{ID: "a", Latitude: 39.0, Longitude: -76.0}}
	due := time.Date(2026, 8, 24, 16, 0, 0, 0, time.UTC)
	analysis := AnalyzeTasks([]model.Task{{ID: "t1", LocationID: "a", DueDate: &due, Urgency: "high"}}, order)

	route := eval.Evaluate(order, analysis, TrafficEstimate{}, nil, due)
	wp := route.Waypoints[0]
	if wp.Window == nil {
		t.Fatal("waypoint should carry the derived window")
	}
	if wp.Priority != 2 {
		t.Errorf("priority = %d, want 2", wp.Priority)
	}
}
