package telemetry

import "codeberg.org/mutker/mqttviz/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig  = errors.ErrorCode("telemetry_invalid_config")
	ErrInvalidRefresh = errors.ErrorCode("telemetry_invalid_refresh")
	ErrInvalidWindow  = errors.ErrorCode("telemetry_invalid_window")

	// Render Errors
	ErrDrawFailed = errors.ErrorCode("telemetry_draw_failed")
	ErrDrawPanic  = errors.ErrorCode("telemetry_draw_panic")

	// Lifecycle Errors
	ErrAlreadyRunning = errors.ErrorCode("telemetry_ticker_already_running")
)
