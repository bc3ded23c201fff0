package config

// Option defines a configuration option that can be passed to Load
type Option func(*options) error

// options holds internal configuration options
type options struct {
	configPath string
	envPrefix  string
	defaults   map[string]any
}

// WithConfigFile specifies an explicit configuration file path
func WithConfigFile(path string) Option {
	return func(o *options) error {
		o.configPath = path
		return nil
	}
}

// WithEnvPrefix specifies a custom environment variable prefix
// Default is "MQTTVIZ"
func WithEnvPrefix(prefix string) Option {
	return func(o *options) error {
		o.envPrefix = prefix
		return nil
	}
}

// WithDefaults overrides built-in defaults for a single command, e.g. the
// gauge subscribes to a different topic and refreshes faster than the chart.
func WithDefaults(defaults map[string]any) Option {
	return func(o *options) error {
		if o.defaults == nil {
			o.defaults = make(map[string]any, len(defaults))
		}
		for k, v := range defaults {
			o.defaults[k] = v
		}
		return nil
	}
}

// LogLevel represents valid logging levels
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// IsValid returns whether the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		return true
	default:
		return false
	}
}

// String implements the Stringer interface
func (l LogLevel) String() string {
	return string(l)
}

// FoldPolicy selects how many drained samples a render tick folds into the window
type FoldPolicy string

const (
	// FoldLatest applies only the most recent sample per tick
	FoldLatest FoldPolicy = "latest"
	// FoldAll applies every drained sample in arrival order
	FoldAll FoldPolicy = "all"
)

func (p FoldPolicy) IsValid() bool {
	return p == FoldLatest || p == FoldAll
}

// Source names the reading generator used by publishers
type Source string

const (
	SourceUniform Source = "uniform"
	SourceCounter Source = "counter"
	SourceGPU     Source = "gpu"
)

func (s Source) IsValid() bool {
	switch s {
	case SourceUniform, SourceCounter, SourceGPU:
		return true
	default:
		return false
	}
}
