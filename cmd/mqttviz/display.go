package main

import (
	"os"
	"time"

	"codeberg.org/mutker/mqttviz/internal/app"
	"codeberg.org/mutker/mqttviz/internal/config"
	"codeberg.org/mutker/mqttviz/internal/logger"
	"codeberg.org/mutker/mqttviz/internal/render"
	"codeberg.org/mutker/mqttviz/internal/telemetry"
	"github.com/spf13/cobra"
)

const (
	humidityTopic = "char/sensor/humidity"
	gaugeRefresh  = 100 * time.Millisecond
	chartTitle    = "Temperature vs Time"
	chartYLabel   = "Temperature (°C)"
)

func gaugeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gauge",
		Short: "Show the latest reading of a topic on a gauge",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd, map[string]any{
				"topic":   humidityTopic,
				"refresh": gaugeRefresh,
			})
			if err != nil {
				return err
			}

			gauge, err := render.NewGauge(cfg.GaugeMin, cfg.GaugeMax)
			if err != nil {
				return err
			}

			term, err := render.NewTerminal(os.Stdout, render.ModeGauge, "Humidity Gauge (%)", gauge, render.WithUnit("%"))
			if err != nil {
				return err
			}

			return runDisplay(cmd, cfg, term, &gauge)
		},
	}

	cmd.Flags().String("topic", humidityTopic, "Topic to subscribe to")
	cmd.Flags().Float64("gauge-min", config.DefaultGaugeMin, "Lower end of the gauge scale")
	cmd.Flags().Float64("gauge-max", config.DefaultGaugeMax, "Upper end of the gauge scale")
	addPipelineFlags(cmd.Flags())

	return cmd
}

func chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Chart a topic's readings with min, max and average",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd, map[string]any{"topic": config.DefaultTopic})
			if err != nil {
				return err
			}

			term, err := render.NewTerminal(os.Stdout, render.ModeChart, "Real-Time Temperature (MQTT)", render.Gauge{})
			if err != nil {
				return err
			}

			var out render.Renderer = term
			if cfg.ChartFile != "" {
				chart, err := render.NewChart(cfg.ChartFile, chartTitle, chartYLabel, cfg.ChartEvery)
				if err != nil {
					return err
				}
				if out, err = render.NewMulti(term, chart); err != nil {
					return err
				}
			}

			return runDisplay(cmd, cfg, out, nil)
		},
	}

	cmd.Flags().String("topic", config.DefaultTopic, "Topic to subscribe to")
	cmd.Flags().String("chart-file", "", "Also write a PNG chart to this path")
	cmd.Flags().Int("chart-every", config.DefaultChartEvery, "Write the PNG chart every N redraws")
	addPipelineFlags(cmd.Flags())

	return cmd
}

// runDisplay subscribes to cfg.Topic and feeds the pipeline into out,
// adding a websocket broadcaster when listen is set.
func runDisplay(cmd *cobra.Command, cfg *config.Config, out render.Renderer, gauge *render.Gauge) error {
	if cfg.Listen != "" {
		ws, err := render.NewWebSocket(cfg.Listen, gauge, logger.New("websocket"))
		if err != nil {
			out.Close()
			return err
		}
		if out, err = render.NewMulti(out, ws); err != nil {
			return err
		}
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	pipeline := telemetry.Config{
		Refresh:    cfg.Refresh,
		WindowSize: cfg.WindowSize,
		QueueLimit: cfg.QueueLimit,
		FoldAll:    cfg.FoldPolicy == config.FoldAll,
	}

	s, err := app.NewSession(app.Options{
		Topics:   []string{cfg.Topic},
		Pipeline: &pipeline,
		Renderer: out,
		Out:      os.Stderr,
	}, logger.New("session"))
	if err != nil {
		out.Close()
		return err
	}

	return run(ctx, cfg, s, nil)
}
