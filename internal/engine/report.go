package engine

import (
	"sort"
	"time"

	"github.com/ukydev/garagelog/internal/models"
)

// Number of recent fuel events included in a report.
const recentFuelEventLimit = 10

// Rolling spend window, in days.
const spendingWindowDays = 30

// VehicleSummary is the report's view of the vehicle itself.
type VehicleSummary struct {
	ID              string  `json:"id"`
	Make            string  `json:"make"`
	Model           string  `json:"model"`
	Year            int     `json:"year"`
	CurrentOdometer float64 `json:"current_odometer"`
}

// TrendPoint is one month of the fuel consumption chart series.
type TrendPoint struct {
	Period string  `json:"period"`
	Volume float64 `json:"volume"`
}

// CategoryAmount is one slice of the cost breakdown.
type CategoryAmount struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// PricePoint is one fuel purchase on the unit-price chart series.
type PricePoint struct {
	Date     time.Time `json:"date"`
	UnitCost float64   `json:"unit_cost"`
}

// Report is the sanitized, presentation-ready dashboard aggregate. Every
// numeric field defaults to 0 and every sequence field to empty; NaN,
// infinity, and null never reach a caller. FuelEfficiency, CostPerDistance
// and AverageUnitCost stay tagged metrics because a caller must be able to
// tell "unavailable" apart from a measured 0.
type Report struct {
	Vehicle               VehicleSummary     `json:"vehicle"`
	RecentFuelEvents      []models.FuelEvent `json:"recent_fuel_events"`
	TotalFuelVolume       float64            `json:"total_fuel_volume"`
	TotalFuelSpend        float64            `json:"total_fuel_spend"`
	TotalMaintenanceSpend float64            `json:"total_maintenance_spend"`
	TotalSpend            float64            `json:"total_spend"`
	MonthlySpending       float64            `json:"monthly_spending"` // rolling 30 days ending at now
	FuelEfficiency        Metric             `json:"fuel_efficiency"`
	CostPerDistance       Metric             `json:"cost_per_distance"`
	AverageUnitCost       Metric             `json:"average_unit_cost"`
	FuelConsumptionTrend  []TrendPoint       `json:"fuel_consumption_trend"`
	MonthlyTrend          []TrendBucket      `json:"monthly_trend"`
	CostBreakdown         []CategoryAmount   `json:"cost_breakdown"`
	FuelPriceTrend        []PricePoint       `json:"fuel_price_trend"`
}

// AssembleReport composes the dashboard report from a snapshot of a vehicle's
// events. The assembler is the last line of defense: it applies presentation
// rounding (totals 0 decimals, volumes and efficiency and unit costs 1) and
// defaults everything unavailable or malformed, so internal sentinels never
// leak.
func AssembleReport(vehicle models.Vehicle, fuel []models.FuelEvent, maint []models.MaintenanceEvent, now time.Time) Report {
	sequenced := Sequence(fuel)
	lifetime := SummarizeCosts(fuel, maint, vehicle.CurrentOdometer, AllTime())
	rolling := SummarizeCosts(fuel, maint, vehicle.CurrentOdometer, LastDays(now, spendingWindowDays))
	buckets := MonthlyTrend(fuel, maint)

	consumption := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		consumption = append(consumption, TrendPoint{Period: b.Period, Volume: roundTo(sanitize(b.TotalVolume), 1)})
	}
	rounded := make([]TrendBucket, 0, len(buckets))
	for _, b := range buckets {
		rounded = append(rounded, TrendBucket{
			Period:      b.Period,
			TotalVolume: roundTo(sanitize(b.TotalVolume), 1),
			TotalSpend:  roundTo(sanitize(b.TotalSpend), 0),
		})
	}

	maintenanceOnly := lifetime.TotalMaintenanceCost - lifetime.TotalPartsCost
	if maintenanceOnly < 0 {
		maintenanceOnly = 0
	}

	return Report{
		Vehicle: VehicleSummary{
			ID:              vehicle.ID.Hex(),
			Make:            vehicle.Make,
			Model:           vehicle.Model,
			Year:            vehicle.Year,
			CurrentOdometer: roundTo(sanitize(vehicle.CurrentOdometer), 0),
		},
		RecentFuelEvents:      recentFuelEvents(fuel, recentFuelEventLimit),
		TotalFuelVolume:       roundTo(sanitize(lifetime.TotalVolume), 1),
		TotalFuelSpend:        roundTo(sanitize(lifetime.TotalFuelCost), 0),
		TotalMaintenanceSpend: roundTo(sanitize(lifetime.TotalMaintenanceCost), 0),
		TotalSpend:            roundTo(sanitize(lifetime.TotalFuelCost+lifetime.TotalMaintenanceCost), 0),
		MonthlySpending:       roundTo(sanitize(rolling.TotalFuelCost+rolling.TotalMaintenanceCost), 0),
		FuelEfficiency:        roundMetric(AggregateEfficiency(Samples(sequenced)), 1),
		CostPerDistance:       roundMetric(lifetime.CostPerDistance, 2),
		AverageUnitCost:       roundMetric(lifetime.AverageUnitCost, 1),
		FuelConsumptionTrend:  consumption,
		MonthlyTrend:          rounded,
		CostBreakdown: []CategoryAmount{
			{Category: "fuel", Value: roundTo(sanitize(lifetime.TotalFuelCost), 0)},
			{Category: "maintenance", Value: roundTo(sanitize(maintenanceOnly), 0)},
			{Category: "parts", Value: roundTo(sanitize(lifetime.TotalPartsCost), 0)},
		},
		FuelPriceTrend: fuelPriceTrend(sequenced),
	}
}

// recentFuelEvents returns the most recent limit events, newest first, with
// malformed numerics zeroed for display. Malformed events still appear here;
// they are only excluded from aggregates.
func recentFuelEvents(fuel []models.FuelEvent, limit int) []models.FuelEvent {
	out := make([]models.FuelEvent, len(fuel))
	copy(out, fuel)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Volume = sanitize(out[i].Volume)
		out[i].UnitCost = sanitize(out[i].UnitCost)
		out[i].TotalCost = sanitize(out[i].TotalCost)
		out[i].OdometerReading = sanitize(out[i].OdometerReading)
	}
	return out
}

// fuelPriceTrend emits unit prices in chronological order, skipping events
// whose cost fields are malformed.
func fuelPriceTrend(sequenced []models.FuelEvent) []PricePoint {
	points := make([]PricePoint, 0, len(sequenced))
	for _, e := range sequenced {
		if !ValidateFuel(e).Cost {
			continue
		}
		points = append(points, PricePoint{Date: e.Timestamp, UnitCost: roundTo(e.UnitCost, 1)})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

func roundMetric(m Metric, decimals int) Metric {
	if !m.Available {
		return Unavailable
	}
	return Metric{Value: roundTo(sanitize(m.Value), decimals), Available: true}
}
