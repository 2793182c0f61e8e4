package engine

import "github.com/ukydev/garagelog/internal/models"

// FuelValidity flags which numeric fields of a fuel event are usable.
// A malformed field excludes the event from every aggregate that depends on
// that field; the event itself still appears in raw history listings.
type FuelValidity struct {
	Volume   bool
	Cost     bool
	Odometer bool
}

// ValidateFuel checks a fuel event's numeric fields. Volume must be a
// positive finite number, costs non-negative finite, odometer positive finite.
func ValidateFuel(e models.FuelEvent) FuelValidity {
	return FuelValidity{
		Volume:   isFinite(e.Volume) && e.Volume > 0,
		Cost:     isFinite(e.TotalCost) && e.TotalCost >= 0 && isFinite(e.UnitCost) && e.UnitCost >= 0,
		Odometer: isFinite(e.OdometerReading) && e.OdometerReading > 0,
	}
}

// MaintenanceValidity flags which numeric fields of a maintenance event are
// usable.
type MaintenanceValidity struct {
	Cost     bool
	Parts    bool
	Odometer bool
}

// ValidateMaintenance checks a maintenance event's numeric fields.
func ValidateMaintenance(e models.MaintenanceEvent) MaintenanceValidity {
	return MaintenanceValidity{
		Cost:     isFinite(e.Cost) && e.Cost >= 0,
		Parts:    isFinite(e.PartsCost) && e.PartsCost >= 0,
		Odometer: isFinite(e.OdometerReading) && e.OdometerReading > 0,
	}
}
