package render

import (
	"math"

	"codeberg.org/mutker/mqttviz/internal/telemetry"
)

const (
	minPad      = 0.5
	padFraction = 0.1
	minXSpan    = 10
)

// YRange returns the padded value axis for a chart of the given stats.
func YRange(stats telemetry.Stats) (lo, hi float64) {
	if !stats.Valid {
		return 0, 1
	}

	pad := math.Max(minPad, (stats.Max-stats.Min)*padFraction)

	return stats.Min - pad, stats.Max + pad
}

// XSpan is the upper bound of the sample index axis
func XSpan(n int) float64 {
	return float64(max(minXSpan, n-1))
}
