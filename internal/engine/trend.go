package engine

import (
	"sort"
	"time"

	"github.com/ukydev/garagelog/internal/models"
)

// TrendBucket aggregates one calendar month of events, keyed "YYYY-MM" by the
// event's own timestamp, never the time of report generation.
type TrendBucket struct {
	Period      string  `json:"period"` // "YYYY-MM"
	TotalVolume float64 `json:"total_volume"`
	TotalSpend  float64 `json:"total_spend"`
}

const periodLayout = "2006-01"

// PeriodKey returns the calendar-month bucket key for a timestamp.
func PeriodKey(t time.Time) string {
	return t.UTC().Format(periodLayout)
}

// MonthlyTrend partitions fuel and maintenance events into sparse calendar
// month buckets, ascending by key. Months with no events produce no bucket;
// chart consumers rely on that sparsity, so gaps are never zero-filled.
// Malformed fields are excluded from the sums they would feed.
func MonthlyTrend(fuel []models.FuelEvent, maint []models.MaintenanceEvent) []TrendBucket {
	byPeriod := make(map[string]*TrendBucket)
	bucket := func(key string) *TrendBucket {
		b, ok := byPeriod[key]
		if !ok {
			b = &TrendBucket{Period: key}
			byPeriod[key] = b
		}
		return b
	}

	for _, e := range fuel {
		v := ValidateFuel(e)
		if !v.Volume && !v.Cost {
			continue
		}
		b := bucket(PeriodKey(e.Timestamp))
		if v.Volume {
			b.TotalVolume += e.Volume
		}
		if v.Cost {
			b.TotalSpend += e.TotalCost
		}
	}
	for _, e := range maint {
		if !ValidateMaintenance(e).Cost {
			continue
		}
		bucket(PeriodKey(e.Timestamp)).TotalSpend += e.Cost
	}

	out := make([]TrendBucket, 0, len(byPeriod))
	for _, b := range byPeriod {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
