package sensor

import (
	"codeberg.org/mutker/mqttviz/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const (
	ErrInvalidRange      = errors.ErrorCode("sensor_invalid_range")
	ErrInitFailed        = errors.ErrorCode("sensor_init_failed")
	ErrDeviceNotFound    = errors.ErrorCode("sensor_device_not_found")
	ErrTemperatureFailed = errors.ErrorCode("sensor_temperature_read_failed")
	ErrShutdownFailed    = errors.ErrorCode("sensor_shutdown_failed")
	ErrSourceUnavailable = errors.ErrorCode("sensor_source_unavailable")
	ErrReadAfterClose    = errors.ErrorCode("sensor_read_after_close")
)

// nvmlError represents an NVML-specific error
type nvmlError struct {
	ret nvml.Return
}

func (e nvmlError) Error() string {
	return nvml.ErrorString(e.ret)
}

// newNVMLError creates an error from an NVML return code
func newNVMLError(ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}
	return &nvmlError{ret: ret}
}
