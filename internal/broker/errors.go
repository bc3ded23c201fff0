package broker

import "codeberg.org/mutker/mqttviz/internal/errors"

const (
	ErrInvalidConfig  = errors.ErrorCode("broker_invalid_config")
	ErrConnectFailed  = errors.ErrorCode("broker_connect_failed")
	ErrConnectTimeout = errors.ErrorCode("broker_connect_timeout")
	ErrNotConnected   = errors.ErrorCode("broker_not_connected")
	ErrPublishFailed  = errors.ErrorCode("broker_publish_failed")
	ErrSubscribeFail  = errors.ErrorCode("broker_subscribe_failed")
)
