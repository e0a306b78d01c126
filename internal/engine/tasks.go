package engine

import (
	"strings"
	"time"

	"fieldroute/internal/model"
)

// TaskAnalysis is the per-call derivation of time windows, priorities and
// dependency edges from the raw task list.
type TaskAnalysis struct {
	// Windows maps location id to its derived arrival window.
	Windows map[string]model.TimeWindow
	// Priorities maps location id to urgency rank, 1 = most urgent.
	Priorities map[string]int
	// Dependencies maps a task id to the ids of tasks that should be
	// visited before it. Advisory input to scoring, not a hard ordering.
	Dependencies map[string][]string
}

// AnalyzeTasks derives scheduling inputs for one optimization call.
//
// Windows come from due dates: earliest is the start of the due day, latest
// the start of the next day, preferred the scheduled time when present.
// Maintenance at a location depends on any co-located inspection.
func AnalyzeTasks(tasks []model.Task, locations []model.Location) TaskAnalysis {
	a := TaskAnalysis{
		Windows:      map[string]model.TimeWindow{},
		Priorities:   map[string]int{},
		Dependencies: map[string][]string{},
	}
	for _, loc := range locations {
		a.Priorities[loc.ID] = 3
	}
	byLocation := map[string][]model.Task{}
	for _, task := range tasks {
		byLocation[task.LocationID] = append(byLocation[task.LocationID], task)
		if task.DueDate != nil {
			day := startOfDay(*task.DueDate)
			w := model.TimeWindow{Earliest: day, Latest: day.AddDate(0, 0, 1)}
			if task.ScheduledDate != nil {
				preferred := *task.ScheduledDate
				w.Preferred = &preferred
			}
			// Tightest window wins when several tasks share a location.
			if prev, ok := a.Windows[task.LocationID]; !ok || w.Latest.Before(prev.Latest) {
				a.Windows[task.LocationID] = w
			}
		}
		prev, ok := a.Priorities[task.LocationID]
		if rank := urgencyRank(task.Urgency); !ok || rank < prev {
			a.Priorities[task.LocationID] = rank
		}
	}
	// Maintenance must not be scheduled before its co-located inspection.
	for _, group := range byLocation {
		for _, insp := range group {
			if !strings.EqualFold(insp.Category, "inspection") {
				continue
			}
			for _, maint := range group {
				if maint.ID == insp.ID || !strings.EqualFold(maint.Category, "maintenance") {
					continue
				}
				a.Dependencies[maint.ID] = append(a.Dependencies[maint.ID], insp.ID)
			}
		}
	}
	return a
}

// urgencyRank maps urgency levels to integer rank, 1 most urgent, 4 least.
// Tasks without an urgency default to 3.
func urgencyRank(urgency string) int {
	switch strings.ToLower(urgency) {
	case "critical", "emergency":
		return 1
	case "high":
		return 2
	case "medium":
		return 3
	case "low":
		return 4
	default:
		return 3
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
