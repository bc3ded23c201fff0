package errors

// Common error codes
const (
	// Configuration errors
	ErrInvalidConfig     ErrorCode = "invalid_configuration"
	ErrReadConfig        ErrorCode = "read_config_failed"
	ErrBindFlags         ErrorCode = "bind_flags_failed"
	ErrInvalidInterval   ErrorCode = "invalid_interval"
	ErrInvalidWindowSize ErrorCode = "invalid_window_size"
	ErrInvalidGaugeRange ErrorCode = "invalid_gauge_range"
	ErrInvalidFoldPolicy ErrorCode = "invalid_fold_policy"
	ErrInvalidSource     ErrorCode = "invalid_source"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Application errors
	ErrMainLoop  ErrorCode = "main_loop_failed"
	ErrPublish   ErrorCode = "publish_failed"
	ErrSubscribe ErrorCode = "subscribe_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInvalidConfig:     "Invalid configuration",
	ErrReadConfig:        "Failed to read config file",
	ErrBindFlags:         "Failed to bind flags",
	ErrInvalidInterval:   "Invalid interval value",
	ErrInvalidWindowSize: "Invalid window size",
	ErrInvalidGaugeRange: "Invalid gauge range",
	ErrInvalidFoldPolicy: "Invalid fold policy",
	ErrInvalidSource:     "Invalid sensor source",
	ErrInvalidLogLevel:   "Invalid log level",
	ErrInitFailed:        "Initialization failed",
	ErrShutdownFailed:    "Shutdown failed",
	ErrMainLoop:          "Error in main loop",
	ErrPublish:           "Failed to publish message",
	ErrSubscribe:         "Failed to subscribe to topic",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
