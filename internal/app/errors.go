package app

import "codeberg.org/mutker/mqttviz/internal/errors"

const (
	ErrInvalidOptions = errors.ErrorCode("app_invalid_options")
	ErrDialFailed     = errors.ErrorCode("app_dial_failed")
	ErrNotStarted     = errors.ErrorCode("app_session_not_started")
	ErrReadFailed     = errors.ErrorCode("app_sensor_read_failed")
)
