// Package directions adapts an external routing service to the engine's
// DirectionsProvider port.
package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"fieldroute/internal/model"
)

// Client calls an HTTP directions service for per-leg travel estimates and
// turn-by-turn instructions. Requests are rate limited and time out rather
// than blocking the optimizer.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 5 * time.Second},
		// Directions providers meter per-second; stay under 5 rps.
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
}

type legResponse struct {
	DistanceKm float64  `json:"distanceKm"`
	TravelSec  int      `json:"travelSec"`
	Steps      []string `json:"steps"`
}

// Leg fetches the driving leg between two locations.
func (c *Client) Leg(ctx context.Context, from, to model.Location) (model.Segment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return model.Segment{}, err
	}

	q := url.Values{}
	q.Set("fromLat", fmt.Sprintf("%f", from.Latitude))
	q.Set("fromLng", fmt.Sprintf("%f", from.Longitude))
	q.Set("toLat", fmt.Sprintf("%f", to.Latitude))
	q.Set("toLng", fmt.Sprintf("%f", to.Longitude))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/directions?"+q.Encode(), nil)
	if err != nil {
		return model.Segment{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Segment{}, fmt.Errorf("directions request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return model.Segment{}, fmt.Errorf("directions status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var leg legResponse
	if err := json.NewDecoder(resp.Body).Decode(&leg); err != nil {
		return model.Segment{}, fmt.Errorf("decode directions response: %w", err)
	}
	return model.Segment{
		From:         from,
		To:           to,
		DistanceKm:   leg.DistanceKm,
		Travel:       time.Duration(leg.TravelSec) * time.Second,
		Instructions: leg.Steps,
	}, nil
}
