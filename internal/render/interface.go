// Package render holds the display collaborators driven by the render
// tick: a terminal chart or gauge, a PNG line chart and a websocket feed.
package render

import "codeberg.org/mutker/mqttviz/internal/telemetry"

// Renderer is a telemetry.Renderer that owns resources
type Renderer interface {
	telemetry.Renderer
	Close() error
}
