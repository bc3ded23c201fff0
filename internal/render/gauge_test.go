package render_test

import (
	"math"
	"testing"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedleAngle(t *testing.T) {
	g, err := render.NewGauge(0, 100)
	require.NoError(t, err)

	tests := []struct {
		name  string
		value float64
		angle float64
	}{
		{"min", 0, math.Pi / 2},
		{"below min pins to min", -40, math.Pi / 2},
		{"midpoint", 50, 0},
		{"max", 100, -math.Pi / 2},
		{"above max pins to max", 250, -math.Pi / 2},
		{"quarter", 25, math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.angle, g.NeedleAngle(tt.value), 1e-9)
		})
	}
}

func TestGaugeTicks(t *testing.T) {
	g, err := render.NewGauge(0, 100)
	require.NoError(t, err)

	ticks := g.Ticks()
	require.Len(t, ticks, 6)

	for i, tick := range ticks {
		assert.InDelta(t, float64(i)*20, tick.Value, 1e-9)
		assert.InDelta(t, float64(i)*0.2, tick.Fraction, 1e-9)
	}
	assert.InDelta(t, math.Pi/2, ticks[0].Angle, 1e-9)
	assert.InDelta(t, -math.Pi/2, ticks[5].Angle, 1e-9)
}

func TestGaugeOffsetRange(t *testing.T) {
	g, err := render.NewGauge(-20, 60)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, g.Fraction(20), 1e-9)
	assert.InDelta(t, -20.0, g.Clamp(-100), 0)
	assert.InDelta(t, 60.0, g.Clamp(100), 0)
}

func TestNewGaugeRejectsEmptyRange(t *testing.T) {
	_, err := render.NewGauge(10, 10)
	assert.True(t, errors.HasCode(err, render.ErrInvalidGauge))

	_, err = render.NewGauge(math.NaN(), 10)
	assert.Error(t, err)
}
