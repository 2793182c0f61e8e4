package engine

import (
	"sort"

	"github.com/ukydev/garagelog/internal/models"
)

// Task is an upcoming maintenance item derived for a vehicle.
type Task struct {
	VehicleID     string  `json:"vehicle_id"`
	ServiceKind   string  `json:"service_kind"`
	Description   string  `json:"description,omitempty"`
	DueInDistance float64 `json:"due_in_distance"` // clamped, never negative
	Priority      string  `json:"priority"`        // "high" or "medium"
}

// Tasks due within this distance are classified high priority.
const highPriorityDueDistance = 500

// DefaultRecurringRules are the fixed service intervals, in kilometers,
// measured from the latest completed service of each kind. A rule only fires
// once the vehicle's log contains a service of its kind.
var DefaultRecurringRules = []RecurringRule{
	{ServiceKind: models.ServiceOilChange, IntervalDistance: 10000},
	{ServiceKind: models.ServiceTireRotation, IntervalDistance: 8000},
	{ServiceKind: models.ServiceInspection, IntervalDistance: 20000},
}

// RecurringRule schedules a service kind at a fixed odometer interval.
type RecurringRule struct {
	ServiceKind      string
	IntervalDistance float64
}

// NextDueTask derives the task declared by the maintenance event with the
// latest timestamp. A vehicle with no maintenance events, or whose latest
// event declares no next-due odometer, yields no task; that is not an error
// and never a zero-valued task. The due distance is clamped at 0 for display.
func NextDueTask(maint []models.MaintenanceEvent, currentOdometer float64) (Task, bool) {
	latest, ok := latestMaintenance(maint)
	if !ok || latest.NextDueOdometer == nil || !isFinite(*latest.NextDueOdometer) {
		return Task{}, false
	}
	return Task{
		VehicleID:     latest.VehicleID,
		ServiceKind:   latest.ServiceKind,
		Description:   latest.Description,
		DueInDistance: clampDue(*latest.NextDueOdometer - currentOdometer),
		Priority:      priorityFor(clampDue(*latest.NextDueOdometer - currentOdometer)),
	}, true
}

// RecurringTasks derives tasks from the fixed rules. For each rule the latest
// service of that kind with a usable odometer anchors the next due reading.
func RecurringTasks(maint []models.MaintenanceEvent, currentOdometer float64, rules []RecurringRule) []Task {
	tasks := make([]Task, 0, len(rules))
	for _, rule := range rules {
		last, ok := latestMaintenanceOfKind(maint, rule.ServiceKind)
		if !ok || !ValidateMaintenance(last).Odometer {
			continue
		}
		due := clampDue(last.OdometerReading + rule.IntervalDistance - currentOdometer)
		tasks = append(tasks, Task{
			VehicleID:     last.VehicleID,
			ServiceKind:   rule.ServiceKind,
			DueInDistance: due,
			Priority:      priorityFor(due),
		})
	}
	return tasks
}

// sortTasks orders tasks by due distance ascending, with service kind as a
// deterministic tiebreak.
func sortTasks(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].DueInDistance != tasks[j].DueInDistance {
			return tasks[i].DueInDistance < tasks[j].DueInDistance
		}
		return tasks[i].ServiceKind < tasks[j].ServiceKind
	})
}

func priorityFor(dueInDistance float64) string {
	if dueInDistance < highPriorityDueDistance {
		return "high"
	}
	return "medium"
}

func clampDue(d float64) float64 {
	if !isFinite(d) || d < 0 {
		return 0
	}
	return d
}

func latestMaintenance(maint []models.MaintenanceEvent) (models.MaintenanceEvent, bool) {
	var latest models.MaintenanceEvent
	found := false
	for _, e := range maint {
		if !found || after(e, latest) {
			latest, found = e, true
		}
	}
	return latest, found
}

func latestMaintenanceOfKind(maint []models.MaintenanceEvent, kind string) (models.MaintenanceEvent, bool) {
	var latest models.MaintenanceEvent
	found := false
	for _, e := range maint {
		if e.ServiceKind != kind {
			continue
		}
		if !found || after(e, latest) {
			latest, found = e, true
		}
	}
	return latest, found
}

// after reports whether a is strictly later than b, with the event id as a
// deterministic tiebreak for equal timestamps.
func after(a, b models.MaintenanceEvent) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID.Hex() > b.ID.Hex()
}
