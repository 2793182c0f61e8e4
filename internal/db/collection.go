package db

import (
	"context"
	"errors"

	"github.com/ukydev/garagelog/internal/models"
)

// ErrNotFound is returned for lookups of unknown vehicles or events. It
// surfaces to the API boundary as a 404 and is never retried internally.
var ErrNotFound = errors.New("not found")

// FuelEventCollection defines the interface for fuel event operations.
type FuelEventCollection interface {
	InsertFuelEvent(ctx context.Context, event models.FuelEvent) (string, error)
	ListFuelEvents(ctx context.Context, vehicleID string) ([]models.FuelEvent, error)
	FindFuelEventByID(ctx context.Context, id string) (*models.FuelEvent, error)
	UpdateFuelEvent(ctx context.Context, id string, event models.FuelEvent) error
	DeleteFuelEvent(ctx context.Context, id string) error
}

// MaintenanceEventCollection defines the interface for maintenance event operations.
type MaintenanceEventCollection interface {
	InsertMaintenanceEvent(ctx context.Context, event models.MaintenanceEvent) (string, error)
	ListMaintenanceEvents(ctx context.Context, vehicleID string) ([]models.MaintenanceEvent, error)
	DeleteMaintenanceEvent(ctx context.Context, id string) error
}

// VehicleCollection defines the interface for vehicle operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error)
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	UpdateVehicleOdometer(ctx context.Context, id string, odometer float64) error
}
