package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"fieldroute/internal/model"
)

func TestMemoryRoutes(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.GetRoute(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	r1 := model.Route{ID: "r1", TotalDistanceKm: 10, TotalDuration: time.Hour}
	r2 := model.Route{ID: "r2", TotalDistanceKm: 20, TotalDuration: 2 * time.Hour}
	if err := m.SaveRoute(ctx, r1); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveRoute(ctx, r2); err != nil {
		t.Fatal(err)
	}

	got, err := m.GetRoute(ctx, "r1")
	if err != nil || got.ID != "r1" {
		t.Fatalf("get r1 = %+v, %v", got, err)
	}

	list, err := m.ListRoutes(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "r2" {
		t.Errorf("list = %v, want newest first", list)
	}

	if list, _ = m.ListRoutes(ctx, 1); len(list) != 1 {
		t.Errorf("limit ignored: %v", list)
	}

	// Saving again under the same id replaces, not duplicates.
	r1.TotalDistanceKm = 11
	if err := m.SaveRoute(ctx, r1); err != nil {
		t.Fatal(err)
	}
	if list, _ = m.ListRoutes(ctx, 10); len(list) != 2 {
		t.Errorf("upsert duplicated the route: %v", list)
	}
}

func TestMemoryAdjustments(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	adjs, err := m.ListAdjustments(ctx, "r1")
	if err != nil || len(adjs) != 0 {
		t.Fatalf("adjustments for unknown route = %v, %v", adjs, err)
	}

	if err := m.SaveAdjustment(ctx, model.Adjustment{ID: "a1", RouteID: "r1", Reason: model.AdjustRunningLate}); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveAdjustment(ctx, model.Adjustment{ID: "a2", RouteID: "r1", Reason: model.AdjustTrafficDrift}); err != nil {
		t.Fatal(err)
	}

	adjs, err = m.ListAdjustments(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if len(adjs) != 2 || adjs[0].ID != "a1" {
		t.Errorf("adjustments = %v", adjs)
	}
}

func TestMemoryRouteStats(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	stats, err := m.RouteStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats["routes"] != 0 {
		t.Errorf("empty stats = %v", stats)
	}

	_ = m.SaveRoute(ctx, model.Route{ID: "r1", TotalDistanceKm: 10, TotalDuration: time.Hour})
	_ = m.SaveRoute(ctx, model.Route{ID: "r2", TotalDistanceKm: 30, TotalDuration: 3 * time.Hour})

	stats, err = m.RouteStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats["routes"] != 2 {
		t.Errorf("routes = %v, want 2", stats["routes"])
	}
	if stats["avgDistanceKm"] != 20.0 {
		t.Errorf("avgDistanceKm = %v, want 20", stats["avgDistanceKm"])
	}
	if stats["avgDurationHours"] != 2.0 {
		t.Errorf("avgDurationHours = %v, want 2", stats["avgDurationHours"])
	}
}
