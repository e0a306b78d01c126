package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"fieldroute/internal/engine"
	"fieldroute/internal/model"
	"fieldroute/internal/store"
)

// OptimizeHandler handles POST /v1/optimize.
func (s *Server) OptimizeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, r, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if err := validateOptimizeRequest(&req); err != nil {
		fail(w, r, http.StatusBadRequest, "Invalid optimize request", err)
		return
	}
	route, err := s.Optimizer.Optimize(r.Context(), req.Locations, req.Tasks, req.Start, req.Constraints)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Optimize failed", err)
		return
	}
	if err := s.Store.SaveRoute(r.Context(), route); err != nil {
		log.Printf("save route %s: %v", route.ID, err)
	}
	respond(w, http.StatusOK, route)
}

// RoutesIndexHandler handles GET /v1/routes.
func (s *Server) RoutesIndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		fmt.Sscanf(v, "%d", &limit)
	}
	items, err := s.Store.ListRoutes(r.Context(), limit)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "List routes failed", err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"items": items})
}

// RouteByIDHandler handles /v1/routes/{id} and its sub-resources:
// GET {id}, POST {id}/directions, POST {id}/monitor, GET {id}/adjustments.
func (s *Server) RouteByIDHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/routes/")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		fail(w, r, http.StatusNotFound, "Not Found", errors.New("missing route id"))
		return
	}
	route, err := s.Store.GetRoute(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		fail(w, r, http.StatusNotFound, "Not Found", errors.New("no such route"))
		return
	}
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Get route failed", err)
		return
	}

	sub := ""
	if len(parts) == 2 {
		sub = parts[1]
	}
	switch {
	case sub == "" && r.Method == http.MethodGet:
		respond(w, http.StatusOK, route)
	case sub == "directions" && r.Method == http.MethodPost:
		s.directions(w, r, route)
	case sub == "monitor" && r.Method == http.MethodPost:
		s.monitor(w, r, route)
	case sub == "adjustments" && r.Method == http.MethodGet:
		items, err := s.Store.ListAdjustments(r.Context(), route.ID)
		if err != nil {
			fail(w, r, http.StatusInternalServerError, "List adjustments failed", err)
			return
		}
		respond(w, http.StatusOK, map[string]any{"items": items})
	default:
		fail(w, r, http.StatusNotFound, "Not Found", nil)
	}
}

func (s *Server) directions(w http.ResponseWriter, r *http.Request, route model.Route) {
	var body struct {
		Start *model.Location `json:"start,omitempty"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	segments, err := s.Optimizer.Directions(r.Context(), route, body.Start)
	if errors.Is(err, engine.ErrNoRoute) {
		// The optimization result stays valid; only the itinerary failed.
		fail(w, r, http.StatusBadGateway, "Directions unavailable", err)
		return
	}
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Directions failed", err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"segments": segments})
}

func (s *Server) monitor(w http.ResponseWriter, r *http.Request, route model.Route) {
	var req model.MonitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, r, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	current := req.Current
	if current == nil {
		// Fall back to the latest websocket position for this route.
		if pos, ok := s.Positions.Latest(route.ID); ok {
			current = &model.Location{ID: "current", Latitude: pos.Latitude, Longitude: pos.Longitude}
		}
	}
	adj, err := s.Monitor.Check(r.Context(), route, current, req.CompletedIDs)
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Monitor check failed", err)
		return
	}
	if adj == nil {
		respond(w, http.StatusOK, map[string]any{"adjustment": nil})
		return
	}
	if err := s.Store.SaveAdjustment(r.Context(), *adj); err != nil {
		log.Printf("save adjustment %s: %v", adj.ID, err)
	}
	respond(w, http.StatusOK, map[string]any{"adjustment": adj})
}

// StatsHandler handles GET /v1/admin/routes/stats.
func (s *Server) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.Store.RouteStats(r.Context())
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Stats failed", err)
		return
	}
	respond(w, http.StatusOK, stats)
}

// HealthHandler handles /healthz.
func (s *Server) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadyHandler handles /readyz.
func (s *Server) ReadyHandler(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ready"})
}
