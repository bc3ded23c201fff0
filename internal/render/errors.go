package render

import "codeberg.org/mutker/mqttviz/internal/errors"

const (
	ErrInvalidGauge  = errors.ErrorCode("render_invalid_gauge")
	ErrWriteFailed   = errors.ErrorCode("render_write_failed")
	ErrChartFailed   = errors.ErrorCode("render_chart_failed")
	ErrListenFailed  = errors.ErrorCode("render_listen_failed")
	ErrEncodeFailed  = errors.ErrorCode("render_encode_failed")
	ErrCloseFailed   = errors.ErrorCode("render_close_failed")
	ErrNoRenderers   = errors.ErrorCode("render_no_renderers")
	ErrMissingOutput = errors.ErrorCode("render_missing_output")
)
