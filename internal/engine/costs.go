package engine

import (
	"time"

	"github.com/ukydev/garagelog/internal/models"
)

// Window is a time window with inclusive bounds. A zero Start or End leaves
// that side unbounded, so the zero Window means all-time.
type Window struct {
	Start time.Time
	End   time.Time
}

// AllTime is the unbounded window.
func AllTime() Window { return Window{} }

// LastDays returns the window covering the trailing number of days ending at
// now. The caller supplies now; the engine never reads the clock.
func LastDays(now time.Time, days int) Window {
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}

// CostSummary aggregates spending over a window. Totals carry full precision;
// the report assembler applies presentation rounding.
type CostSummary struct {
	TotalFuelCost        float64
	TotalMaintenanceCost float64
	TotalPartsCost       float64
	TotalVolume          float64
	CostPerDistance      Metric
	AverageUnitCost      Metric
}

// SummarizeCosts computes windowed cost totals over fuel and maintenance
// events. Events with a malformed cost or volume field are excluded from the
// aggregates that depend on that field. Both divisions are guarded: a zero
// current odometer or zero total volume yields Unavailable, never a division.
func SummarizeCosts(fuel []models.FuelEvent, maint []models.MaintenanceEvent, currentOdometer float64, w Window) CostSummary {
	var s CostSummary
	for _, e := range fuel {
		if !w.Contains(e.Timestamp) {
			continue
		}
		v := ValidateFuel(e)
		if v.Cost {
			s.TotalFuelCost += e.TotalCost
		}
		if v.Volume {
			s.TotalVolume += e.Volume
		}
	}
	for _, e := range maint {
		if !w.Contains(e.Timestamp) {
			continue
		}
		v := ValidateMaintenance(e)
		if v.Cost {
			s.TotalMaintenanceCost += e.Cost
		}
		if v.Parts {
			s.TotalPartsCost += e.PartsCost
		}
	}
	if isFinite(currentOdometer) && currentOdometer > 0 {
		s.CostPerDistance = metricOf((s.TotalFuelCost + s.TotalMaintenanceCost) / currentOdometer)
	}
	if s.TotalVolume > 0 {
		s.AverageUnitCost = metricOf(s.TotalFuelCost / s.TotalVolume)
	}
	return s
}
