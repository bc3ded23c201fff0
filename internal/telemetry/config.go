package telemetry

import (
	"time"

	"codeberg.org/mutker/mqttviz/internal/errors"
)

const (
	defaultRefresh    = 200 * time.Millisecond
	defaultWindowSize = 300
	defaultQueueLimit = 4096
)

type Config struct {
	// Refresh is the period between render ticks
	Refresh time.Duration
	// WindowSize is the capacity of the rolling window
	WindowSize int
	// QueueLimit caps pending samples; 0 means unbounded
	QueueLimit int
	// FoldAll pushes every drained sample instead of only the latest
	FoldAll bool
}

func DefaultConfig() Config {
	return Config{
		Refresh:    defaultRefresh,
		WindowSize: defaultWindowSize,
		QueueLimit: defaultQueueLimit,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.Refresh <= 0 {
		return errFactory.WithData(ErrInvalidRefresh, c.Refresh)
	}
	if c.WindowSize <= 0 {
		return errFactory.WithData(ErrInvalidWindow, c.WindowSize)
	}
	if c.QueueLimit < 0 {
		return errFactory.WithData(ErrInvalidConfig, "queue limit must not be negative")
	}

	return nil
}
