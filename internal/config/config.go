package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultBroker            = "tcp://broker.hivemq.com:1883"
	DefaultTopic             = "char/sensor/temperature"
	DefaultControlTopic      = "device/control/state"
	DefaultInterval          = 5 * time.Second
	DefaultRefresh           = 200 * time.Millisecond
	DefaultWindowSize        = 300
	DefaultQueueLimit        = 4096
	DefaultFoldPolicy        = FoldLatest
	DefaultSource            = SourceUniform
	DefaultTempMin           = 20.0
	DefaultTempMax           = 30.0
	DefaultGaugeMin          = 0.0
	DefaultGaugeMax          = 100.0
	DefaultChartEvery        = 5
	DefaultListen            = ""
	DefaultKeepAlive         = 60 * time.Second
	DefaultDisconnectQuiesce = 250 * time.Millisecond
	DefaultLogLevel          = "warning"

	defaultEnvPrefix  = "MQTTVIZ"
	defaultConfigName = "mqttviz"
	defaultConfigType = "toml"
)

type Config struct {
	Broker            string        `mapstructure:"broker"`
	ClientID          string        `mapstructure:"client_id"`
	Topic             string        `mapstructure:"topic"`
	ControlTopic      string        `mapstructure:"control_topic"`
	Interval          time.Duration `mapstructure:"interval"`
	Refresh           time.Duration `mapstructure:"refresh"`
	WindowSize        int           `mapstructure:"window_size"`
	QueueLimit        int           `mapstructure:"queue_limit"`
	FoldPolicy        FoldPolicy    `mapstructure:"fold_policy"`
	Source            Source        `mapstructure:"source"`
	TempMin           float64       `mapstructure:"temp_min"`
	TempMax           float64       `mapstructure:"temp_max"`
	GaugeMin          float64       `mapstructure:"gauge_min"`
	GaugeMax          float64       `mapstructure:"gauge_max"`
	ChartFile         string        `mapstructure:"chart_file"`
	ChartEvery        int           `mapstructure:"chart_every"`
	Listen            string        `mapstructure:"listen"`
	KeepAlive         time.Duration `mapstructure:"keep_alive"`
	DisconnectQuiesce time.Duration `mapstructure:"disconnect_quiesce"`
	LogLevel          string        `mapstructure:"log_level"`
	Debug             bool          `mapstructure:"debug"`
	Verbose           bool          `mapstructure:"verbose"`
}

func defaults() map[string]any {
	return map[string]any{
		"broker":             DefaultBroker,
		"client_id":          "",
		"topic":              DefaultTopic,
		"control_topic":      DefaultControlTopic,
		"interval":           DefaultInterval,
		"refresh":            DefaultRefresh,
		"window_size":        DefaultWindowSize,
		"queue_limit":        DefaultQueueLimit,
		"fold_policy":        string(DefaultFoldPolicy),
		"source":             string(DefaultSource),
		"temp_min":           DefaultTempMin,
		"temp_max":           DefaultTempMax,
		"gauge_min":          DefaultGaugeMin,
		"gauge_max":          DefaultGaugeMax,
		"chart_file":         "",
		"chart_every":        DefaultChartEvery,
		"listen":             DefaultListen,
		"keep_alive":         DefaultKeepAlive,
		"disconnect_quiesce": DefaultDisconnectQuiesce,
		"log_level":          DefaultLogLevel,
		"debug":              false,
		"verbose":            false,
	}
}

// Load merges defaults, the TOML config file, MQTTVIZ_* environment
// variables and the given command-line flags, in that order of precedence.
func Load(flags *pflag.FlagSet, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{envPrefix: defaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	for k, val := range defaults() {
		v.SetDefault(k, val)
	}
	for k, val := range o.defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, o); err != nil {
		return nil, err
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, bindErr)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	// --debug always wins; --verbose only raises the default level
	if config.Debug {
		config.LogLevel = string(LogLevelDebug)
	} else if config.Verbose && config.LogLevel == DefaultLogLevel {
		config.LogLevel = string(LogLevelInfo)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func readConfigFile(v *viper.Viper, o *options) error {
	errFactory := errors.New()

	path := o.configPath
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(defaultConfigType)
		if err := v.ReadInConfig(); err != nil {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
		return nil
	}

	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)
	v.AddConfigPath("/etc")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", defaultConfigName))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	return nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Broker == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "broker address is required")
	}
	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}
	if c.Refresh <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Refresh)
	}
	if c.WindowSize <= 0 {
		return errFactory.WithData(errors.ErrInvalidWindowSize, c.WindowSize)
	}
	if c.QueueLimit < 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, "queue_limit must not be negative")
	}
	if c.GaugeMin >= c.GaugeMax {
		return errFactory.WithData(errors.ErrInvalidGaugeRange, [2]float64{c.GaugeMin, c.GaugeMax})
	}
	if c.TempMin > c.TempMax {
		return errFactory.WithData(errors.ErrInvalidConfig, "temp_min must not exceed temp_max")
	}
	if !c.FoldPolicy.IsValid() {
		return errFactory.WithData(errors.ErrInvalidFoldPolicy, c.FoldPolicy)
	}
	if !c.Source.IsValid() {
		return errFactory.WithData(errors.ErrInvalidSource, c.Source)
	}
	if c.LogLevel == "warn" {
		c.LogLevel = string(LogLevelWarning)
	}
	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}
