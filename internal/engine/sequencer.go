package engine

import (
	"sort"

	"github.com/ukydev/garagelog/internal/models"
)

// Sequence returns the vehicle's fuel events in ascending order by odometer
// reading, then timestamp, then event id. The event id tiebreak makes the
// order total, so any permutation of the same input set yields an identical
// sequence. Downstream computations read adjacent pairs and rely on this.
func Sequence(events []models.FuelEvent) []models.FuelEvent {
	out := make([]models.FuelEvent, len(events))
	copy(out, events)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		ka, kb := odometerKey(a), odometerKey(b)
		if ka != kb {
			return ka < kb
		}
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.ID.Hex() < b.ID.Hex()
	})
	return out
}

// odometerKey maps malformed odometer readings (NaN, Inf) to -1 so they sort
// first and, crucially, compare consistently. NaN in a sort comparator would
// break the total order the sequencer guarantees.
func odometerKey(e models.FuelEvent) float64 {
	if !isFinite(e.OdometerReading) {
		return -1
	}
	return e.OdometerReading
}
