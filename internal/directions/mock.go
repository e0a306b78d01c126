package directions

import (
	"context"
	"fmt"
	"time"

	"fieldroute/internal/model"
)

// MockLeg seeds one directed leg in a Mock provider.
type MockLeg struct {
	From, To   string
	DistanceKm float64
	Travel     time.Duration
	Steps      []string
}

// Mock serves pre-seeded legs; unknown pairs fail like a provider miss.
type Mock struct {
	m map[string]model.Segment
}

func NewMock(legs []MockLeg) *Mock {
	m := make(map[string]model.Segment, len(legs))
	for _, l := range legs {
		m[l.From+"|"+l.To] = model.Segment{DistanceKm: l.DistanceKm, Travel: l.Travel, Instructions: l.Steps}
	}
	return &Mock{m: m}
}

func (p *Mock) Leg(_ context.Context, from, to model.Location) (model.Segment, error) {
	seg, ok := p.m[from.ID+"|"+to.ID]
	if !ok {
		return model.Segment{}, fmt.Errorf("missing leg %q -> %q", from.ID, to.ID)
	}
	seg.From = from
	seg.To = to
	return seg, nil
}
