package main

import (
	"context"
	"os"
	"time"

	"codeberg.org/mutker/mqttviz/internal/app"
	"codeberg.org/mutker/mqttviz/internal/config"
	"codeberg.org/mutker/mqttviz/internal/logger"
	"codeberg.org/mutker/mqttviz/internal/sensor"
	"github.com/spf13/cobra"
)

const settleDelay = time.Second

func pubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pub",
		Short: "Publish a simulated temperature on a timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPublisher(cmd, nil)
		},
	}

	cmd.Flags().String("topic", config.DefaultTopic, "Topic to publish to")
	addPublishFlags(cmd.Flags())

	return cmd
}

func countCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Publish an incrementing counter on a timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPublisher(cmd, map[string]any{
				"topic":    "char/counter_topic",
				"interval": 3 * time.Second,
				"source":   string(config.SourceCounter),
			})
		},
	}

	cmd.Flags().String("topic", "char/counter_topic", "Topic to publish to")
	addPublishFlags(cmd.Flags())

	return cmd
}

func runPublisher(cmd *cobra.Command, defaults map[string]any) error {
	cfg, err := setup(cmd, defaults)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	pub, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer pub.Source.Close()

	s, err := app.NewSession(app.Options{Out: os.Stdout}, logger.New("session"))
	if err != nil {
		return err
	}

	return run(ctx, cfg, s, func(ctx context.Context) error {
		return pub.Run(ctx, s.Publisher())
	})
}

func newPublisher(cfg *config.Config) (*app.Publisher, error) {
	src, err := sensor.FromConfig(cfg, logger.New("sensor"))
	if err != nil {
		return nil, err
	}

	pub, err := app.NewPublisher(cfg.Topic, cfg.Interval, src, logger.New("publisher"))
	if err != nil {
		src.Close()
		return nil, err
	}
	pub.Settle = settleDelay
	pub.Out = os.Stdout

	return pub, nil
}
