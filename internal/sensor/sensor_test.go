package sensor_test

import (
	"context"
	"testing"

	"codeberg.org/mutker/mqttviz/internal/config"
	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/logger"
	"codeberg.org/mutker/mqttviz/internal/payload"
	"codeberg.org/mutker/mqttviz/internal/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformRange(t *testing.T) {
	src, err := sensor.NewUniform(20, 30, 42)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		r, err := src.Read(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.Value, 20.0)
		assert.LessOrEqual(t, r.Value, 30.0)

		// What is published must parse back to the same value
		parsed, err := payload.ParseNumber([]byte(r.Text))
		require.NoError(t, err)
		assert.InDelta(t, r.Value, parsed, 1e-9)
	}
}

func TestUniformInvalidRange(t *testing.T) {
	_, err := sensor.NewUniform(30, 20, 1)
	assert.True(t, errors.HasCode(err, sensor.ErrInvalidRange))
}

func TestCounter(t *testing.T) {
	src := sensor.NewCounter()

	for i := 1; i <= 3; i++ {
		r, err := src.Read(context.Background())
		require.NoError(t, err)
		assert.InDelta(t, float64(i), r.Value, 0)
	}

	r, err := src.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Count: 4", r.Text)
}

func TestReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sensor.NewCounter().Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{Source: config.SourceCounter}
	src, err := sensor.FromConfig(cfg, logger.New("test"))
	require.NoError(t, err)
	assert.IsType(t, &sensor.Counter{}, src)

	cfg = &config.Config{Source: config.SourceUniform, TempMin: 20, TempMax: 30}
	src, err = sensor.FromConfig(cfg, logger.New("test"))
	require.NoError(t, err)
	assert.IsType(t, &sensor.Uniform{}, src)
	require.NoError(t, src.Close())

	_, err = sensor.FromConfig(&config.Config{Source: "thermocouple"}, logger.New("test"))
	assert.True(t, errors.HasCode(err, sensor.ErrSourceUnavailable))
}

func TestGPU(t *testing.T) {
	gpu, err := sensor.NewGPU(logger.New("test"))
	if err != nil {
		t.Skipf("NVML not available: %v", err)
	}
	defer gpu.Close()

	r, err := gpu.Read(context.Background())
	require.NoError(t, err)
	assert.Positive(t, r.Value)
}
