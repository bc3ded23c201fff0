package render

import (
	"math"

	"codeberg.org/mutker/mqttviz/internal/errors"
)

const (
	gaugeTicks = 6
	// keeps the fraction finite if a caller bypasses NewGauge validation
	gaugeEpsilon = 1e-12
)

// Gauge maps values onto a half-circle dial. Angles are in radians with 0
// pointing straight up, positive to the left: Min sits at +pi/2 and Max at
// -pi/2.
type Gauge struct {
	Min float64
	Max float64
}

// Tick is one labelled mark on the dial
type Tick struct {
	Value    float64
	Fraction float64
	Angle    float64
}

func NewGauge(minValue, maxValue float64) (Gauge, error) {
	if !(minValue < maxValue) {
		return Gauge{}, errors.New().WithData(ErrInvalidGauge, [2]float64{minValue, maxValue})
	}

	return Gauge{Min: minValue, Max: maxValue}, nil
}

// Clamp limits v to [Min, Max]
func (g Gauge) Clamp(v float64) float64 {
	return math.Max(g.Min, math.Min(g.Max, v))
}

// Fraction is the clamped position of v on the scale, 0 at Min and 1 at Max
func (g Gauge) Fraction(v float64) float64 {
	return (g.Clamp(v) - g.Min) / (g.Max - g.Min + gaugeEpsilon)
}

// NeedleAngle is the dial angle for v
func (g Gauge) NeedleAngle(v float64) float64 {
	return angleOf(g.Fraction(v))
}

// Ticks returns evenly spaced marks from Min to Max inclusive
func (g Gauge) Ticks() []Tick {
	ticks := make([]Tick, gaugeTicks)
	step := (g.Max - g.Min) / float64(gaugeTicks-1)

	for i := range ticks {
		value := g.Min + float64(i)*step
		if i == gaugeTicks-1 {
			value = g.Max
		}
		frac := (value - g.Min) / (g.Max - g.Min)
		ticks[i] = Tick{Value: value, Fraction: frac, Angle: angleOf(frac)}
	}

	return ticks
}

func angleOf(frac float64) float64 {
	return math.Pi*(1-frac) - math.Pi/2
}
