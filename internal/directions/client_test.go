package directions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldroute/internal/model"
)

func TestClientLeg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/directions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "secret" {
			t.Errorf("auth header = %q", got)
		}
		if r.URL.Query().Get("fromLat") == "" || r.URL.Query().Get("toLng") == "" {
			t.Errorf("missing coordinates: %v", r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"distanceKm": 12.5, "travelSec": 900, "steps": ["head north", "turn left"]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	from := model.Location{ID: "a", Latitude: 39.0, Longitude: -76.0}
	to := model.Location{ID: "b", Latitude: 39.1, Longitude: -76.1}

	seg, err := c.Leg(context.Background(), from, to)
	if err != nil {
		t.Fatal(err)
	}
	if seg.DistanceKm != 12.5 {
		t.Errorf("distance = %v, want 12.5", seg.DistanceKm)
	}
	if seg.Travel != 15*time.Minute {
		t.Errorf("travel = %v, want 15m", seg.Travel)
	}
	if len(seg.Instructions) != 2 {
		t.Errorf("instructions = %v", seg.Instructions)
	}
	if seg.From.ID != "a" || seg.To.ID != "b" {
		t.Errorf("endpoints = %s -> %s", seg.From.ID, seg.To.ID)
	}
}

func TestClientLegErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no route", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.Leg(context.Background(), model.Location{ID: "a"}, model.Location{ID: "b"})
	if err == nil {
		t.Fatal("expected error on 4xx response")
	}
}

func TestMockLegs(t *testing.T) {
	m := NewMock([]MockLeg{
		{From: "a", To: "b", DistanceKm: 5, Travel: 10 * time.Minute},
	})
	seg, err := m.Leg(context.Background(), model.Location{ID: "a"}, model.Location{ID: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if seg.DistanceKm != 5 || seg.Travel != 10*time.Minute {
		t.Errorf("segment = %+v", seg)
	}
	if _, err := m.Leg(context.Background(), model.Location{ID: "b"}, model.Location{ID: "a"}); err == nil {
		t.Error("unseeded leg should fail")
	}
}
