package api

import (
	"fmt"

	"fieldroute/internal/model"
)

func validateOptimizeRequest(req *model.OptimizeRequest) error {
	switch req.Constraints.Mode {
	case "", model.ModeTime, model.ModeDistance, model.ModeBalanced:
	default:
		return fmt.Errorf("invalid mode: %s", req.Constraints.Mode)
	}
	if req.Constraints.MaxDuration != nil && *req.Constraints.MaxDuration < 0 {
		return fmt.Errorf("maxDurationSec must be >= 0")
	}
	seen := map[string]bool{}
	for _, loc := range req.Locations {
		if loc.ID == "" {
			return fmt.Errorf("location id must be non-empty")
		}
		if seen[loc.ID] {
			return fmt.Errorf("duplicate location id: %s", loc.ID)
		}
		seen[loc.ID] = true
	}
	for _, t := range req.Tasks {
		if t.LocationID == "" {
			return fmt.Errorf("task %s: locationId must be non-empty", t.ID)
		}
	}
	return nil
}
