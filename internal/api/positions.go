package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"fieldroute/internal/model"
)

// PositionCache stores the latest reported agent position per route. The
// monitor uses it as the default current position when a check request does
// not carry one.
type PositionCache struct {
	mu sync.Mutex
	m  map[string]model.Position // routeId -> latest
}

func NewPositionCache() *PositionCache {
	return &PositionCache{m: map[string]model.Position{}}
}

// Upsert stores or updates the latest position for a route.
func (c *PositionCache) Upsert(pos model.Position) {
	if pos.RouteID == "" {
		return
	}
	c.mu.Lock()
	c.m[pos.RouteID] = pos
	c.mu.Unlock()
}

// Latest returns the most recent position for a route.
func (c *PositionCache) Latest(routeID string) (model.Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pos, ok := c.m[routeID]
	return pos, ok
}

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

// PositionsWSHandler handles GET /v1/positions/ws: a websocket stream of
// {routeId, lat, lng, ts} position reports from the field agent's device.
func (s *Server) PositionsWSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(1 << 16)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var pos model.Position
		if err := conn.ReadJSON(&pos); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		if pos.TS.IsZero() {
			pos.TS = time.Now().UTC()
		}
		s.Positions.Upsert(pos)
	}
}
