package model

import "time"

// Location is a visitable building/site from the registry catalog.
// The engine treats it as immutable reference data.
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Task is a unit of work bound to a location for a single planning day.
type Task struct {
	ID            string     `json:"id"`
	LocationID    string     `json:"locationId"`
	Category      string     `json:"category,omitempty"` // inspection, maintenance, ...
	Urgency       string     `json:"urgency,omitempty"`  // critical, emergency, high, medium, low
	DueDate       *time.Time `json:"dueDate,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
}

// Optimization modes accepted in Constraints.Mode.
const (
	ModeTime     = "time"
	ModeDistance = "distance"
	ModeBalanced = "balanced"
)

// Constraints is the per-request configuration surface of the optimizer.
type Constraints struct {
	Mode           string         `json:"mode,omitempty"`
	AvoidTraffic   bool           `json:"avoidTraffic,omitempty"`
	MaxDuration    *time.Duration `json:"maxDurationSec,omitempty"`
	PriorityIDs    []string       `json:"priorityLocationIds,omitempty"`
	PreferredStart *time.Time     `json:"preferredStart,omitempty"`
}

// HasPriority reports whether id is in the priority set.
func (c Constraints) HasPriority(id string) bool {
	for _, p := range c.PriorityIDs {
		if p == id {
			return true
		}
	}
	return false
}

// TimeWindow is the acceptable arrival interval for a stop, derived from
// task due dates. Valid for one optimization call only.
type TimeWindow struct {
	Earliest  time.Time  `json:"earliest"`
	Latest    time.Time  `json:"latest"`
	Preferred *time.Time `json:"preferred,omitempty"`
}

// Severity buckets for traffic conditions, ordinal light..severe.
type Severity int

const (
	SeverityLight Severity = iota
	SeverityNormal
	SeverityModerate
	SeverityHeavy
	SeveritySevere
)

func (s Severity) String() string {
	switch s {
	case SeverityLight:
		return "light"
	case SeverityNormal:
		return "normal"
	case SeverityModerate:
		return "moderate"
	case SeverityHeavy:
		return "heavy"
	case SeveritySevere:
		return "severe"
	}
	return "unknown"
}

// TrafficCondition is the per-location traffic estimate for one call.
type TrafficCondition struct {
	LocationID   string        `json:"locationId"`
	Expected     time.Duration `json:"expectedSec"`
	Typical      time.Duration `json:"typicalSec"`
	CurrentDelay time.Duration `json:"currentDelaySec"`
	Severity     Severity      `json:"severity"`
}

// Waypoint is one stop placed within a concrete timed route.
type Waypoint struct {
	Location           Location      `json:"location"`
	EstimatedArrival   time.Time     `json:"estimatedArrival"`
	EstimatedDeparture time.Time     `json:"estimatedDeparture"`
	TaskDuration       time.Duration `json:"taskDurationSec"`
	Priority           int           `json:"priority"`
	Window             *TimeWindow   `json:"window,omitempty"`
}

// Route is an ordered, timed visiting plan over a location set.
type Route struct {
	ID              string        `json:"id"`
	Waypoints       []Waypoint    `json:"waypoints"`
	TotalDistanceKm float64       `json:"totalDistanceKm"`
	TotalDuration   time.Duration `json:"totalDurationSec"`
	Efficiency      float64       `json:"efficiency"`
	TrafficSeverity Severity      `json:"trafficSeverity"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// LocationIDs returns waypoint location ids in visiting order.
func (r Route) LocationIDs() []string {
	out := make([]string, len(r.Waypoints))
	for i, wp := range r.Waypoints {
		out[i] = wp.Location.ID
	}
	return out
}

// Segment is one leg of a materialized driving itinerary.
type Segment struct {
	From         Location      `json:"from"`
	To           Location      `json:"to"`
	DistanceKm   float64       `json:"distanceKm"`
	Travel       time.Duration `json:"travelSec"`
	Instructions []string      `json:"instructions,omitempty"`
}

// Adjustment reasons produced by the progress monitor.
const (
	AdjustRunningLate  = "running_late"
	AdjustTrafficDrift = "traffic_drift"
)

// Adjustment is a recommended mid-execution re-plan. TimeSaved may be
// negative; the caller decides whether to adopt the new route.
type Adjustment struct {
	ID        string        `json:"id"`
	RouteID   string        `json:"routeId"`
	Reason    string        `json:"reason"`
	NewRoute  Route         `json:"newRoute"`
	TimeSaved time.Duration `json:"timeSavedSec"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Position is a live agent position report from the websocket ingest.
type Position struct {
	RouteID   string    `json:"routeId"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	TS        time.Time `json:"ts"`
}

// OptimizeRequest is the HTTP request body for POST /v1/optimize.
type OptimizeRequest struct {
	Locations   []Location  `json:"locations"`
	Tasks       []Task      `json:"tasks"`
	Start       *Location   `json:"start,omitempty"`
	Constraints Constraints `json:"constraints"`
}

// MonitorRequest is the HTTP request body for POST /v1/routes/{id}/monitor.
type MonitorRequest struct {
	Current      *Location `json:"current,omitempty"`
	CompletedIDs []string  `json:"completedIds,omitempty"`
}
