package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/mutker/mqttviz/internal/app"
	"codeberg.org/mutker/mqttviz/internal/config"
	"codeberg.org/mutker/mqttviz/internal/logger"
	"github.com/spf13/cobra"
)

const (
	counterTopic = "char/counter_topic"
	bidiTopic    = "charlotte/sensor/temperature"
)

func subCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sub",
		Short: "Subscribe to a topic and print every message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd, map[string]any{"topic": counterTopic})
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			s, err := app.NewSession(app.Options{
				Topics: []string{cfg.Topic},
				Out:    os.Stdout,
			}, logger.New("session"))
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, "Starting client loop. Press Ctrl+C to stop.")

			return run(ctx, cfg, s, nil)
		},
	}

	cmd.Flags().String("topic", counterTopic, "Topic to subscribe to")

	return cmd
}

func bidiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bidi",
		Short: "Publish temperature and listen for device control commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd, map[string]any{"topic": bidiTopic})
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
			pub.Settle = 0

			s, err := app.NewSession(app.Options{
				Topics:       []string{cfg.ControlTopic},
				ControlTopic: cfg.ControlTopic,
				Out:          os.Stdout,
			}, logger.New("session"))
			if err != nil {
				return err
			}

			state, _ := cmd.Flags().GetString("send-state")

			return run(ctx, cfg, s, func(ctx context.Context) error {
				if state != "" {
					if err := app.SendControl(s.Publisher(), cfg.ControlTopic, state); err != nil {
						logger.Warn().Err(err).Str("state", state).Msg("Failed to send control command")
					}
				}
				return pub.Run(ctx, s.Publisher())
			})
		},
	}

	cmd.Flags().String("topic", bidiTopic, "Topic to publish to")
	cmd.Flags().String("control-topic", config.DefaultControlTopic, "Topic carrying JSON control commands")
	cmd.Flags().String("send-state", "", "Publish this device state to the control topic once connected")
	addPublishFlags(cmd.Flags())

	return cmd
}
