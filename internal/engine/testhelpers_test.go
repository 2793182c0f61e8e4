package engine

import (
	"fmt"
	"time"

	"github.com/ukydev/garagelog/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// oid builds a deterministic ObjectID for tests.
func oid(n int) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(fmt.Sprintf("%024x", n))
	if err != nil {
		panic(err)
	}
	return id
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func fuelEvent(n int, odometer, volume, unitCost float64, at string) models.FuelEvent {
	return models.FuelEvent{
		ID:              oid(n),
		VehicleID:       "veh-1",
		Timestamp:       ts(at),
		Volume:          volume,
		UnitCost:        unitCost,
		TotalCost:       roundTo(volume*unitCost, 2),
		OdometerReading: odometer,
	}
}

func maintEvent(n int, kind string, odometer, cost float64, at string) models.MaintenanceEvent {
	return models.MaintenanceEvent{
		ID:              oid(n),
		VehicleID:       "veh-1",
		ServiceKind:     kind,
		Timestamp:       ts(at),
		OdometerReading: odometer,
		Cost:            cost,
	}
}

func f64(v float64) *float64 { return &v }
