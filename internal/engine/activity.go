package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/ukydev/garagelog/internal/models"
)

// Activity kinds.
const (
	ActivityFuel        = "fuel"
	ActivityMaintenance = "maintenance"
)

// Activity is one entry of the merged activity feed: a fuel or maintenance
// event annotated with a coarse relative-time label.
type Activity struct {
	EventID     string    `json:"event_id"`
	VehicleID   string    `json:"vehicle_id"`
	Kind        string    `json:"kind"` // "fuel" or "maintenance"
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"` // spend, 0 when malformed
	When        string    `json:"when"`   // relative-time label
}

// BuildActivities merges fuel and maintenance events into a single feed,
// newest first, bounded by limit. Malformed amounts display as 0; the events
// themselves are never dropped from the feed.
func BuildActivities(fuel []models.FuelEvent, maint []models.MaintenanceEvent, now time.Time, limit int) []Activity {
	activities := make([]Activity, 0, len(fuel)+len(maint))
	for _, e := range fuel {
		amount := 0.0
		if ValidateFuel(e).Cost {
			amount = e.TotalCost
		}
		activities = append(activities, Activity{
			EventID:     e.ID.Hex(),
			VehicleID:   e.VehicleID,
			Kind:        ActivityFuel,
			Timestamp:   e.Timestamp,
			Description: fuelDescription(e),
			Amount:      roundTo(amount, 2),
			When:        FormatRelative(e.Timestamp, now),
		})
	}
	for _, e := range maint {
		amount := 0.0
		if ValidateMaintenance(e).Cost {
			amount = e.Cost
		}
		activities = append(activities, Activity{
			EventID:     e.ID.Hex(),
			VehicleID:   e.VehicleID,
			Kind:        ActivityMaintenance,
			Timestamp:   e.Timestamp,
			Description: maintenanceDescription(e),
			Amount:      roundTo(amount, 2),
			When:        FormatRelative(e.Timestamp, now),
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		if !activities[i].Timestamp.Equal(activities[j].Timestamp) {
			return activities[i].Timestamp.After(activities[j].Timestamp)
		}
		return activities[i].EventID > activities[j].EventID
	})
	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}
	return activities
}

func fuelDescription(e models.FuelEvent) string {
	if e.Note != "" {
		return e.Note
	}
	if ValidateFuel(e).Volume {
		return fmt.Sprintf("Fuel purchase: %.1f L", e.Volume)
	}
	return "Fuel purchase"
}

func maintenanceDescription(e models.MaintenanceEvent) string {
	if e.Description != "" {
		return e.Description
	}
	if e.ServiceKind != "" {
		return "Service: " + e.ServiceKind
	}
	return "Maintenance"
}
