// Package engine computes derived vehicle usage metrics (fuel efficiency,
// cost aggregates, monthly trends, and maintenance predictions) from a
// point-in-time snapshot of a vehicle's event log. It performs no I/O of its
// own: the event store capability is injected, now is always an explicit
// argument, and the same snapshot with the same now always produces the same
// output. The input log may be unordered, sparse, and partially malformed;
// the engine excludes what it cannot use instead of failing.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/ukydev/garagelog/internal/models"
)

// EventStore supplies a consistent snapshot of a vehicle's events and the
// vehicle itself. Implementations must return db.ErrNotFound (wrapped or not)
// for unknown vehicles.
type EventStore interface {
	ListFuelEvents(ctx context.Context, vehicleID string) ([]models.FuelEvent, error)
	ListMaintenanceEvents(ctx context.Context, vehicleID string) ([]models.MaintenanceEvent, error)
	GetVehicle(ctx context.Context, vehicleID string) (*models.Vehicle, error)
}

// Engine computes reports, tasks, and activity feeds for vehicles. It is
// stateless and safe for concurrent use.
type Engine struct {
	store EventStore
}

// New creates an engine bound to the given event store.
func New(store EventStore) *Engine {
	return &Engine{store: store}
}

// ComputeReport builds the full dashboard report for a vehicle at the given
// instant. Store NotFound errors propagate to the caller unchanged.
func (e *Engine) ComputeReport(ctx context.Context, vehicleID string, now time.Time) (Report, error) {
	vehicle, fuel, maint, err := e.snapshot(ctx, vehicleID)
	if err != nil {
		return Report{}, err
	}
	return AssembleReport(*vehicle, fuel, maint, now), nil
}

// ComputeUpcomingTasks derives the vehicle's upcoming maintenance tasks: the
// task declared by the latest maintenance event, plus the fixed recurring
// rules for every other service kind, ordered by due distance ascending.
func (e *Engine) ComputeUpcomingTasks(ctx context.Context, vehicleID string, now time.Time) ([]Task, error) {
	vehicle, _, maint, err := e.snapshot(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(DefaultRecurringRules)+1)
	declared, hasDeclared := NextDueTask(maint, vehicle.CurrentOdometer)
	if hasDeclared {
		tasks = append(tasks, declared)
	}
	// An explicitly declared next-due reading overrides the recurring rule
	// for the same service kind.
	for _, t := range RecurringTasks(maint, vehicle.CurrentOdometer, DefaultRecurringRules) {
		if hasDeclared && t.ServiceKind == declared.ServiceKind {
			continue
		}
		tasks = append(tasks, t)
	}
	sortTasks(tasks)
	return tasks, nil
}

// ComputeRecentActivities returns the merged fuel/maintenance feed for a
// vehicle, newest first, each entry annotated with a relative-time label
// computed against the supplied now.
func (e *Engine) ComputeRecentActivities(ctx context.Context, vehicleID string, now time.Time, limit int) ([]Activity, error) {
	_, fuel, maint, err := e.snapshot(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return BuildActivities(fuel, maint, now, limit), nil
}

func (e *Engine) snapshot(ctx context.Context, vehicleID string) (*models.Vehicle, []models.FuelEvent, []models.MaintenanceEvent, error) {
	vehicle, err := e.store.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, nil, nil, err
	}
	fuel, err := e.store.ListFuelEvents(ctx, vehicleID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list fuel events: %w", err)
	}
	maint, err := e.store.ListMaintenanceEvents(ctx, vehicleID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list maintenance events: %w", err)
	}
	return vehicle, fuel, maint, nil
}
