package telemetry

import "fmt"

const placeholder = "--"

// Stats summarizes a window. Valid is false when there was no data, in
// which case the numeric fields are zero and must not be displayed.
type Stats struct {
	Min   float64
	Max   float64
	Mean  float64
	Count int
	Valid bool
}

// ComputeStats returns min, max and arithmetic mean of the sample values.
func ComputeStats(samples []Sample) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	minValue := samples[0].Value
	maxValue := samples[0].Value
	var sum float64

	for _, s := range samples {
		if s.Value < minValue {
			minValue = s.Value
		}
		if s.Value > maxValue {
			maxValue = s.Value
		}
		sum += s.Value
	}

	return Stats{
		Min:   minValue,
		Max:   maxValue,
		Mean:  sum / float64(len(samples)),
		Count: len(samples),
		Valid: true,
	}
}

// Format renders the stats line with the given number of decimals,
// using "--" for every field when there is no data.
func (s Stats) Format(precision int) string {
	if !s.Valid {
		return fmt.Sprintf("Min: %s  Max: %s  Avg: %s", placeholder, placeholder, placeholder)
	}

	return fmt.Sprintf("Min: %.*f  Max: %.*f  Avg: %.*f",
		precision, s.Min, precision, s.Max, precision, s.Mean)
}

func (s Stats) String() string {
	return s.Format(2)
}
