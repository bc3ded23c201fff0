package telemetry_test

import (
	"testing"
	"time"

	"codeberg.org/mutker/mqttviz/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(from, to int) []telemetry.Sample {
	base := time.Unix(1_700_000_000, 0)
	out := make([]telemetry.Sample, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, telemetry.NewSample(base.Add(time.Duration(i)*time.Second), float64(i)))
	}

	return out
}

func TestWindowBoundedEviction(t *testing.T) {
	for _, capacity := range []int{1, 3, 10} {
		w := telemetry.NewWindow(capacity)
		pushed := samples(0, 25)

		for i, s := range pushed {
			w.Push(s)

			total := i + 1
			want := min(total, capacity)
			require.Equal(t, want, w.Len())
			assert.Equal(t, pushed[total-want:total], w.Snapshot())
		}
	}
}

func TestWindowScenario305Into300(t *testing.T) {
	w := telemetry.NewWindow(300)
	for _, s := range samples(0, 305) {
		w.Push(s)
	}

	values := w.Values()
	require.Len(t, values, 300)
	assert.InDelta(t, 5.0, values[0], 0)
	assert.InDelta(t, 304.0, values[299], 0)

	stats := telemetry.ComputeStats(w.Snapshot())
	assert.True(t, stats.Valid)
	assert.InDelta(t, 5.0, stats.Min, 0)
	assert.InDelta(t, 304.0, stats.Max, 0)
	assert.InDelta(t, 154.5, stats.Mean, 1e-9)
	assert.Equal(t, 300, stats.Count)
}

func TestWindowSnapshotIsCopy(t *testing.T) {
	w := telemetry.NewWindow(2)
	w.Push(telemetry.NewSample(time.Now(), 1))

	snap := w.Snapshot()
	snap[0].Value = 99

	latest, ok := w.Latest()
	require.True(t, ok)
	assert.InDelta(t, 1.0, latest.Value, 0)
}

func TestWindowLatestEmpty(t *testing.T) {
	w := telemetry.NewWindow(0)

	_, ok := w.Latest()
	assert.False(t, ok)
	assert.Equal(t, 1, w.Cap())
	assert.Empty(t, w.Snapshot())
}
