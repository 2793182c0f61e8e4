package engine

import "math"

// Metric is an explicitly tagged numeric result. Available is false when the
// underlying data was insufficient to compute the value; callers must branch
// on it instead of reading the zero Value as a measurement.
type Metric struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
}

// Unavailable is the sentinel for metrics that cannot be computed.
var Unavailable = Metric{}

func metricOf(v float64) Metric {
	if !isFinite(v) {
		return Unavailable
	}
	return Metric{Value: v, Available: true}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundTo rounds v to the given number of decimal places. Presentation
// precision is applied only at the report boundary; intermediate values
// carry full precision.
func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// sanitize maps NaN and infinities to 0 so they can never reach a caller.
func sanitize(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}
