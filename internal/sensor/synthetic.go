package sensor

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/payload"
)

const precision = 2

// Uniform draws temperatures uniformly from [Min, Max], rounded to two
// decimals.
type Uniform struct {
	min, max float64
	mu       sync.Mutex
	rng      *rand.Rand
}

func NewUniform(minValue, maxValue float64, seed int64) (*Uniform, error) {
	if minValue > maxValue || math.IsNaN(minValue) || math.IsNaN(maxValue) {
		return nil, errors.New().WithData(ErrInvalidRange, [2]float64{minValue, maxValue})
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Uniform{
		min: minValue,
		max: maxValue,
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

func (u *Uniform) Read(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}

	u.mu.Lock()
	v := u.min + u.rng.Float64()*(u.max-u.min)
	u.mu.Unlock()

	v = math.Round(v*100) / 100
	return Reading{Value: v, Text: payload.FormatNumber(v, precision)}, nil
}

func (*Uniform) Close() error {
	return nil
}

// Counter yields "Count: 1", "Count: 2", ...
type Counter struct {
	mu sync.Mutex
	n  int
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Read(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++

	return Reading{Value: float64(c.n), Text: fmt.Sprintf("Count: %d", c.n)}, nil
}

func (*Counter) Close() error {
	return nil
}
