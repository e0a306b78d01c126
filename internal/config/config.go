// Package config loads engine tuning from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Engine holds the tunable parameters of the optimization engine.
// The YAML file only needs to override what differs from the defaults.
type Engine struct {
	CacheTTLMinutes      int     `yaml:"cacheTTLMinutes"`
	TaskDurationMinutes  int     `yaml:"taskDurationMinutes"`
	TypicalTravelMinutes int     `yaml:"typicalTravelMinutes"`
	FallbackSpeedMph     float64 `yaml:"fallbackSpeedMph"`

	// Severity multipliers over the typical travel baseline.
	Multipliers struct {
		Light    float64 `yaml:"light"`
		Normal   float64 `yaml:"normal"`
		Moderate float64 `yaml:"moderate"`
		Heavy    float64 `yaml:"heavy"`
		Severe   float64 `yaml:"severe"`
	} `yaml:"multipliers"`

	// UrbanBox is the dense-urban region where severity escalates a step.
	UrbanBox struct {
		LatLo float64 `yaml:"latLo"`
		LngLo float64 `yaml:"lngLo"`
		LatHi float64 `yaml:"latHi"`
		LngHi float64 `yaml:"lngHi"`
	} `yaml:"urbanBox"`

	Genetic struct {
		Population  int     `yaml:"population"`
		Generations int     `yaml:"generations"`
		Elite       int     `yaml:"elite"`
		Tournament  int     `yaml:"tournament"`
		MutationPct float64 `yaml:"mutationPct"`
	} `yaml:"genetic"`

	ExhaustiveCap int `yaml:"exhaustiveCap"`
}

// CacheTTL returns the route cache freshness window.
func (e Engine) CacheTTL() time.Duration { return time.Duration(e.CacheTTLMinutes) * time.Minute }

// TaskDuration returns the assumed per-stop service time.
func (e Engine) TaskDuration() time.Duration {
	return time.Duration(e.TaskDurationMinutes) * time.Minute
}

// TypicalTravel returns the flat typical travel-time baseline.
func (e Engine) TypicalTravel() time.Duration {
	return time.Duration(e.TypicalTravelMinutes) * time.Minute
}

// Default returns the engine tuning used when no file is supplied.
func Default() Engine {
	var e Engine
	e.CacheTTLMinutes = 15
	e.TaskDurationMinutes = 30
	e.TypicalTravelMinutes = 15
	e.FallbackSpeedMph = 25
	e.Multipliers.Light = 0.8
	e.Multipliers.Normal = 1.0
	e.Multipliers.Moderate = 1.3
	e.Multipliers.Heavy = 1.6
	e.Multipliers.Severe = 2.0
	// Default dense-urban core: lower Manhattan box used by the demo data.
	e.UrbanBox.LatLo, e.UrbanBox.LngLo = 40.70, -74.02
	e.UrbanBox.LatHi, e.UrbanBox.LngHi = 40.80, -73.93
	e.Genetic.Population = 50
	e.Genetic.Generations = 100
	e.Genetic.Elite = 10
	e.Genetic.Tournament = 3
	e.Genetic.MutationPct = 0.1
	e.ExhaustiveCap = 120
	return e
}

// Load reads engine tuning from path, overlaying the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (Engine, error) {
	e := Default()
	if path == "" {
		return e, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return e, fmt.Errorf("read engine config: %w", err)
	}
	if err := yaml.Unmarshal(data, &e); err != nil {
		return e, fmt.Errorf("parse engine config: %w", err)
	}
	return e, nil
}

// FromEnv loads engine tuning from the path in ENGINE_CONFIG, if set.
func FromEnv() (Engine, error) {
	return Load(os.Getenv("ENGINE_CONFIG"))
}
