package telemetry_test

import (
	"math/rand"
	"testing"
	"time"

	"codeberg.org/mutker/mqttviz/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatsEmpty(t *testing.T) {
	stats := telemetry.ComputeStats(nil)

	assert.False(t, stats.Valid)
	assert.Equal(t, "Min: --  Max: --  Avg: --", stats.String())
}

func TestComputeStatsOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		n := 1 + rng.Intn(50)
		in := make([]telemetry.Sample, n)
		var sum float64
		for i := range in {
			v := rng.Float64()*200 - 100
			in[i] = telemetry.NewSample(time.Time{}, v)
			sum += v
		}

		stats := telemetry.ComputeStats(in)
		require.True(t, stats.Valid)
		assert.LessOrEqual(t, stats.Min, stats.Mean+1e-9)
		assert.LessOrEqual(t, stats.Mean, stats.Max+1e-9)
		assert.InDelta(t, sum/float64(n), stats.Mean, 1e-9)
	}
}

func TestComputeStatsDeterministic(t *testing.T) {
	in := samples(0, 10)

	assert.Equal(t, telemetry.ComputeStats(in), telemetry.ComputeStats(in))
}

func TestStatsFormat(t *testing.T) {
	stats := telemetry.ComputeStats([]telemetry.Sample{
		telemetry.NewSample(time.Time{}, 21.5),
		telemetry.NewSample(time.Time{}, 23.5),
	})

	assert.Equal(t, "Min: 21.50  Max: 23.50  Avg: 22.50", stats.String())
	assert.Equal(t, "Min: 21.5  Max: 23.5  Avg: 22.5", stats.Format(1))
}
