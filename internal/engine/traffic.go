package engine

import (
	"time"

	"fieldroute/internal/config"
	"fieldroute/internal/geo"
	"fieldroute/internal/model"
)

// TrafficModel produces deterministic per-location traffic estimates from
// time-of-day and geography. It is a computed in-process model, not a live
// feed; the directions provider supplies authoritative point-to-point times
// when an itinerary is materialized.
type TrafficModel struct {
	typical time.Duration
	mult    map[model.Severity]float64
	urban   geo.Region
}

// TrafficEstimate is the output of one Estimate call.
type TrafficEstimate struct {
	Conditions map[string]model.TrafficCondition
	Overall    model.Severity
}

func NewTrafficModel(cfg config.Engine) *TrafficModel {
	return &TrafficModel{
		typical: cfg.TypicalTravel(),
		mult: map[model.Severity]float64{
			model.SeverityLight:    cfg.Multipliers.Light,
			model.SeverityNormal:   cfg.Multipliers.Normal,
			model.SeverityModerate: cfg.Multipliers.Moderate,
			model.SeverityHeavy:    cfg.Multipliers.Heavy,
			model.SeveritySevere:   cfg.Multipliers.Severe,
		},
		urban: geo.NewRegion(cfg.UrbanBox.LatLo, cfg.UrbanBox.LngLo, cfg.UrbanBox.LatHi, cfg.UrbanBox.LngHi),
	}
}

// Estimate computes a condition per location at the given time. Overall
// severity is the maximum bucket across all locations.
func (t *TrafficModel) Estimate(locations []model.Location, at time.Time) TrafficEstimate {
	base := severityForHour(at.Hour())
	out := TrafficEstimate{Conditions: make(map[string]model.TrafficCondition, len(locations)), Overall: base}
	if len(locations) == 0 {
		out.Overall = model.SeverityLight
		return out
	}
	out.Overall = model.SeverityLight
	for _, loc := range locations {
		sev := base
		if t.urban.Contains(loc) && sev < model.SeveritySevere {
			sev++
		}
		expected := time.Duration(float64(t.typical) * t.mult[sev])
		out.Conditions[loc.ID] = model.TrafficCondition{
			LocationID:   loc.ID,
			Expected:     expected,
			Typical:      t.typical,
			CurrentDelay: expected - t.typical,
			Severity:     sev,
		}
		if sev > out.Overall {
			out.Overall = sev
		}
	}
	return out
}

// severityForHour maps hour-of-day to a base severity bucket. Rush hours
// 07-09 and 17-19 are heavy, 10-16 moderate, 20-22 normal, else light.
func severityForHour(h int) model.Severity {
	switch {
	case (h >= 7 && h <= 9) || (h >= 17 && h <= 19):
		return model.SeverityHeavy
	case h >= 10 && h <= 16:
		return model.SeverityModerate
	case h >= 20 && h <= 22:
		return model.SeverityNormal
	default:
		return model.SeverityLight
	}
}
