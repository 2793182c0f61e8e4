package engine

import "github.com/ukydev/garagelog/internal/models"

// EfficiencySample is one usable segment between two consecutive odometer
// readings: the distance covered and the fill volume that covered it.
type EfficiencySample struct {
	Distance float64 `json:"distance"`
	Volume   float64 `json:"volume"`
	Ratio    float64 `json:"ratio"` // distance per unit of fuel
}

// Samples derives per-segment efficiency samples from a sequenced fuel event
// list. A segment contributes only when the odometer moved forward and the
// current event's volume is positive; anything else is omitted, never
// zero-filled or imputed. Events with a malformed odometer are skipped
// entirely and do not break the chain between their neighbors.
func Samples(sequenced []models.FuelEvent) []EfficiencySample {
	samples := make([]EfficiencySample, 0, len(sequenced))
	var prev models.FuelEvent
	havePrev := false
	for _, cur := range sequenced {
		if !ValidateFuel(cur).Odometer {
			continue
		}
		if havePrev {
			distance := cur.OdometerReading - prev.OdometerReading
			if distance > 0 && ValidateFuel(cur).Volume {
				samples = append(samples, EfficiencySample{
					Distance: distance,
					Volume:   cur.Volume,
					Ratio:    distance / cur.Volume,
				})
			}
		}
		prev, havePrev = cur, true
	}
	return samples
}

// AggregateEfficiency computes the distance-weighted aggregate efficiency
// over the given samples: sum of distances divided by sum of volumes. This
// deliberately is not an arithmetic mean of per-segment ratios, which would
// bias the result toward many small, noisy segments. With no usable samples
// the result is Unavailable, never 0.
func AggregateEfficiency(samples []EfficiencySample) Metric {
	if len(samples) == 0 {
		return Unavailable
	}
	var distance, volume float64
	for _, s := range samples {
		distance += s.Distance
		volume += s.Volume
	}
	if volume <= 0 {
		return Unavailable
	}
	return metricOf(distance / volume)
}
