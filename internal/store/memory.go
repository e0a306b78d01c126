package store

import (
	"context"
	"sync"

	"fieldroute/internal/model"
)

// Memory is a simple in-memory store used when no DATABASE_URL is set.
type Memory struct {
	mu      sync.Mutex
	routes  map[string]model.Route
	order   []string // route ids in insertion order
	adjusts map[string][]model.Adjustment
}

func NewMemory() *Memory {
	return &Memory{
		routes:  map[string]model.Route{},
		adjusts: map[string][]model.Adjustment{},
	}
}

func (m *Memory) SaveRoute(_ context.Context, route model.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.routes[route.ID]; !ok {
		m.order = append(m.order, route.ID)
	}
	m.routes[route.ID] = route
	return nil
}

func (m *Memory) GetRoute(_ context.Context, id string) (model.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	route, ok := m.routes[id]
	if !ok {
		return model.Route{}, ErrNotFound
	}
	return route, nil
}

func (m *Memory) ListRoutes(_ context.Context, limit int) ([]model.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	out := []model.Route{}
	// newest first
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.routes[m.order[i]])
	}
	return out, nil
}

func (m *Memory) SaveAdjustment(_ context.Context, adj model.Adjustment) error {
	m.mu.Lock()
	m.adjusts[adj.RouteID] = append(m.adjusts[adj.RouteID], adj)
	m.mu.Unlock()
	return nil
}

func (m *Memory) ListAdjustments(_ context.Context, routeID string) ([]model.Adjustment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]model.Adjustment(nil), m.adjusts[routeID]...)
	return out, nil
}

func (m *Memory) RouteStats(_ context.Context) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.routes)
	stats := map[string]any{"routes": n}
	if n == 0 {
		return stats, nil
	}
	var km, hours float64
	for _, r := range m.routes {
		km += r.TotalDistanceKm
		hours += r.TotalDuration.Hours()
	}
	stats["avgDistanceKm"] = km / float64(n)
	stats["avgDurationHours"] = hours / float64(n)
	return stats, nil
}
