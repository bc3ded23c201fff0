package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/mqttviz/internal/app"
	"codeberg.org/mutker/mqttviz/internal/broker"
	"codeberg.org/mutker/mqttviz/internal/config"
	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:           "mqttviz",
	Short:         "Publish, subscribe and visualize sensor readings over MQTT",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a TOML config file")
	flags.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warning, error)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Bool("verbose", false, "Enable verbose logging")
	flags.String("broker", config.DefaultBroker, "MQTT broker URL")
	flags.String("client-id", "", "MQTT client ID (default mqttviz-<pid>)")
	flags.Duration("keep-alive", config.DefaultKeepAlive, "MQTT keep-alive period")
	flags.Duration("disconnect-quiesce", config.DefaultDisconnectQuiesce, "Time allowed for in-flight work on disconnect")

	rootCmd.AddCommand(pubCmd(), countCmd(), subCmd(), bidiCmd(), gaugeCmd(), chartCmd())
}

// setup loads the configuration for cmd, layering the command's own
// defaults under file, environment and flags, and initializes logging.
func setup(cmd *cobra.Command, defaults map[string]any) (*config.Config, error) {
	flags := cmd.Flags()

	opts := []config.Option{config.WithDefaults(defaults)}
	if path, _ := flags.GetString("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}

	cfg, err := config.Load(flags, opts...)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.LogLevel, logger.IsService()); err != nil {
		return nil, errors.New().Wrap(errors.ErrInitFailed, err)
	}
	logger.Debug().Str("command", cmd.Name()).Msg("Config loaded")

	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func brokerConfig(cfg *config.Config) broker.Config {
	bc := broker.DefaultConfig(cfg.Broker)
	bc.ClientID = cfg.ClientID
	bc.KeepAlive = cfg.KeepAlive
	bc.Quiesce = cfg.DisconnectQuiesce

	return bc
}

// run starts session, runs work (if any) until ctx ends, then shuts the
// session down. A refused or failed connection is logged and the command
// keeps running without data until interrupted.
func run(ctx context.Context, cfg *config.Config, s *app.Session, work func(context.Context) error) error {
	log := logger.New("session")

	if err := s.Start(ctx, app.BrokerDialer(brokerConfig(cfg), logger.New("broker"))); err != nil {
		log.Error().Err(err).Msg("Failed to connect to MQTT broker")
	}

	var err error
	if work != nil {
		if workErr := work(ctx); workErr != nil {
			err = errors.New().Wrap(errors.ErrMainLoop, workErr)
		}
	}
	if err == nil {
		<-ctx.Done()
	}

	logger.Info().Msg("Shutting down")
	if shutdownErr := s.Shutdown(); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("Shutdown failed")
	}

	return err
}

func addPipelineFlags(flags *pflag.FlagSet) {
	flags.Duration("refresh", config.DefaultRefresh, "Render tick period")
	flags.Int("window-size", config.DefaultWindowSize, "Number of samples kept for display")
	flags.Int("queue-limit", config.DefaultQueueLimit, "Pending samples kept between ticks (0 for unbounded)")
	flags.String("fold-policy", string(config.DefaultFoldPolicy), "Samples folded per tick (latest, all)")
	flags.String("listen", config.DefaultListen, "Also serve frames over websocket at this address")
}

func addPublishFlags(flags *pflag.FlagSet) {
	flags.Duration("interval", config.DefaultInterval, "Time between published readings")
	flags.String("source", string(config.DefaultSource), "Reading source (uniform, counter, gpu)")
	flags.Float64("temp-min", config.DefaultTempMin, "Lower bound of uniform readings")
	flags.Float64("temp-max", config.DefaultTempMax, "Upper bound of uniform readings")
}
