// Package main runs a demo client: it optimizes a small route, then streams
// fake agent positions over the positions websocket.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type position struct {
	RouteID   string    `json:"routeId"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	TS        time.Time `json:"ts"`
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://localhost:%s", port)

	// Create a small demo route via optimize.
	body := []byte(`{
		"locations": [
			{"id": "plant-a", "name": "Plant A", "lat": 40.72, "lng": -74.00},
			{"id": "plant-b", "name": "Plant B", "lat": 40.76, "lng": -73.97},
			{"id": "plant-c", "name": "Plant C", "lat": 40.74, "lng": -73.99}
		],
		"start": {"id": "depot", "lat": 40.70, "lng": -74.01},
		"constraints": {"mode": "balanced"}
	}`)
	resp, err := http.Post(base+"/v1/optimize", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	var route struct {
		ID        string `json:"id"`
		Waypoints []struct {
			Location struct {
				Latitude  float64 `json:"lat"`
				Longitude float64 `json:"lng"`
			} `json:"location"`
		} `json:"waypoints"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		log.Fatal(err)
	}
	if route.ID == "" {
		log.Fatal("optimize returned no route")
	}
	log.Printf("Route ID: %s (%d stops)", route.ID, len(route.Waypoints))

	// Stream positions along the planned stops.
	u := url.URL{Scheme: "ws", Host: "localhost:" + port, Path: "/v1/positions/ws"}
	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = c.Close() }()

	for _, wp := range route.Waypoints {
		pos := position{
			RouteID:   route.ID,
			Latitude:  wp.Location.Latitude,
			Longitude: wp.Location.Longitude,
			TS:        time.Now().UTC(),
		}
		if err := c.WriteJSON(pos); err != nil {
			log.Fatal(err)
		}
		log.Printf("sent position %.4f,%.4f", pos.Latitude, pos.Longitude)
		time.Sleep(500 * time.Millisecond)
	}
}
