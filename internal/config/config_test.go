package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/mqttviz/internal/config"
	"codeberg.org/mutker/mqttviz/internal/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "mqttviz.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	return configPath
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
broker = "tcp://localhost:1883"
client_id = "test-client"
topic = "lab/sensor/humidity"
interval = "3s"
refresh = "100ms"
window_size = 50
fold_policy = "all"
gauge_min = -10.0
gauge_max = 50.0
log_level = "debug"
`)

	// Set environment variable to point to the test config file
	t.Setenv("MQTTVIZ_CONFIG", configPath)

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "tcp://localhost:1883", cfg.Broker)
	assert.Equal(t, "test-client", cfg.ClientID)
	assert.Equal(t, "lab/sensor/humidity", cfg.Topic)
	assert.Equal(t, 3*time.Second, cfg.Interval)
	assert.Equal(t, 100*time.Millisecond, cfg.Refresh)
	assert.Equal(t, 50, cfg.WindowSize)
	assert.Equal(t, config.FoldAll, cfg.FoldPolicy)
	assert.InDelta(t, -10.0, cfg.GaugeMin, 1e-9)
	assert.InDelta(t, 50.0, cfg.GaugeMax, 1e-9)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDefaults(t *testing.T) {
	// Ensure no config file is used
	t.Setenv("MQTTVIZ_CONFIG", "")

	cfg, err := config.Load(nil)
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, config.DefaultBroker, cfg.Broker)
	assert.Equal(t, config.DefaultTopic, cfg.Topic)
	assert.Equal(t, config.DefaultControlTopic, cfg.ControlTopic)
	assert.Equal(t, config.DefaultInterval, cfg.Interval)
	assert.Equal(t, config.DefaultRefresh, cfg.Refresh)
	assert.Equal(t, config.DefaultWindowSize, cfg.WindowSize)
	assert.Equal(t, config.FoldLatest, cfg.FoldPolicy)
	assert.Equal(t, config.SourceUniform, cfg.Source)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
}

func TestLoadCommandDefaults(t *testing.T) {
	t.Setenv("MQTTVIZ_CONFIG", "")

	cfg, err := config.Load(nil, config.WithDefaults(map[string]any{
		"topic":   "char/sensor/humidity",
		"refresh": 100 * time.Millisecond,
	}))
	require.NoError(t, err)

	assert.Equal(t, "char/sensor/humidity", cfg.Topic)
	assert.Equal(t, 100*time.Millisecond, cfg.Refresh)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("MQTTVIZ_CONFIG", "")
	t.Setenv("MQTTVIZ_WINDOW_SIZE", "42")
	t.Setenv("MQTTVIZ_TOPIC", "env/topic")

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.WindowSize)
	assert.Equal(t, "env/topic", cfg.Topic)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	configPath := writeConfig(t, `
This is not a valid TOML file
`)
	t.Setenv("MQTTVIZ_CONFIG", configPath)

	_, err := config.Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read config file")
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestInvalidLogLevel(t *testing.T) {
	configPath := writeConfig(t, `
log_level = "invalid"
`)
	t.Setenv("MQTTVIZ_CONFIG", configPath)

	_, err := config.Load(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"zero window", "window_size = 0", errors.ErrInvalidWindowSize},
		{"inverted gauge", "gauge_min = 100.0\ngauge_max = 0.0", errors.ErrInvalidGaugeRange},
		{"unknown fold policy", `fold_policy = "some"`, errors.ErrInvalidFoldPolicy},
		{"unknown source", `source = "thermocouple"`, errors.ErrInvalidSource},
		{"zero refresh", `refresh = "0s"`, errors.ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MQTTVIZ_CONFIG", writeConfig(t, tt.content))

			_, err := config.Load(nil)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLogLevelFlag(t *testing.T) {
	t.Setenv("MQTTVIZ_CONFIG", "")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", config.DefaultLogLevel, "")
	flags.Int("window-size", config.DefaultWindowSize, "")
	require.NoError(t, flags.Parse([]string{"--log-level", "error", "--window-size", "10"}))

	cfg, err := config.Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel, "Expected LogLevel to be set by flag")
	assert.Equal(t, 10, cfg.WindowSize)
}

func TestVerboseFlagRaisesDefaultLevel(t *testing.T) {
	t.Setenv("MQTTVIZ_CONFIG", "")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "warning", cfg.LogLevel)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("verbose", false, "")
	flags.String("log-level", config.DefaultLogLevel, "")
	require.NoError(t, flags.Parse([]string{"--verbose"}))

	cfg, err = config.Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)

	// an explicit level is left alone
	require.NoError(t, flags.Parse([]string{"--verbose", "--log-level", "error"}))
	cfg, err = config.Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestDebugFlagOverridesLogLevel(t *testing.T) {
	t.Setenv("MQTTVIZ_CONFIG", "")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("debug", false, "")
	require.NoError(t, flags.Parse([]string{"--debug"}))

	cfg, err := config.Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}
