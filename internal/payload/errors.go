package payload

import "codeberg.org/mutker/mqttviz/internal/errors"

const (
	ErrEmpty          = errors.ErrorCode("payload_empty")
	ErrInvalidNumber  = errors.ErrorCode("payload_invalid_number")
	ErrInvalidControl = errors.ErrorCode("payload_invalid_control")
	ErrNotObject      = errors.ErrorCode("payload_control_not_object")
	ErrMissingState   = errors.ErrorCode("payload_missing_state")
)
