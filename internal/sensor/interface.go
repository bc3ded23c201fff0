// Package sensor produces the readings published by the demo publishers.
package sensor

import "context"

// Reading is one value plus the exact text to publish for it
type Reading struct {
	Value float64
	Text  string
}

// Source yields readings on demand
type Source interface {
	Read(ctx context.Context) (Reading, error)
	Close() error
}
