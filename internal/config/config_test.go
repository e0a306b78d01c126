package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	e := Default()
	if e.CacheTTL() != 15*time.Minute {
		t.Errorf("cache ttl = %v, want 15m", e.CacheTTL())
	}
	if e.TaskDuration() != 30*time.Minute {
		t.Errorf("task duration = %v, want 30m", e.TaskDuration())
	}
	if e.TypicalTravel() != 15*time.Minute {
		t.Errorf("typical travel = %v, want 15m", e.TypicalTravel())
	}
	if e.FallbackSpeedMph != 25 {
		t.Errorf("fallback speed = %v, want 25", e.FallbackSpeedMph)
	}
	if e.Multipliers.Light != 0.8 || e.Multipliers.Severe != 2.0 {
		t.Errorf("multipliers = %+v", e.Multipliers)
	}
	if e.Genetic.Population != 50 || e.Genetic.Generations != 100 {
		t.Errorf("genetic tuning = %+v", e.Genetic)
	}
	if e.ExhaustiveCap != 120 {
		t.Errorf("exhaustive cap = %d, want 120", e.ExhaustiveCap)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	body := "cacheTTLMinutes: 5\nmultipliers:\n  severe: 3.5\ngenetic:\n  population: 20\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	e, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if e.CacheTTL() != 5*time.Minute {
		t.Errorf("cache ttl = %v, want 5m", e.CacheTTL())
	}
	if e.Multipliers.Severe != 3.5 {
		t.Errorf("severe multiplier = %v, want 3.5", e.Multipliers.Severe)
	}
	if e.Genetic.Population != 20 {
		t.Errorf("population = %d, want 20", e.Genetic.Population)
	}
	// Untouched keys keep their defaults.
	if e.TaskDuration() != 30*time.Minute {
		t.Errorf("task duration = %v, want default", e.TaskDuration())
	}
}

func TestLoadEmptyPath(t *testing.T) {
	e, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if e != Default() {
		t.Error("empty path should return the defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should error")
	}
}
