package aggregator

import (
	"math"
	"strconv"
)

const DistanceUnknownLabel = "Distance unknown"

// FormatDistance renders a distance for display. The meters/kilometers switch
// is decided on the raw value, so 999.6 renders as "1000 m" and 1000 as "1.0 km".
// Both branches round half away from zero.
func FormatDistance(meters *float64) string {
	if meters == nil || math.IsNaN(*meters) || math.IsInf(*meters, 0) {
		return DistanceUnknownLabel
	}

	m := *meters
	if m < 1000 {
		return strconv.FormatFloat(math.Round(m), 'f', 0, 64) + " m"
	}

	km := math.Round(m/100) / 10
	return strconv.FormatFloat(km, 'f', 1, 64) + " km"
}
