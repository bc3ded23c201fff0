package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/telemetry"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth  = 820
	chartHeight = 480
	filePerm    = 0o644
	dirPerm     = 0o755
)

// Chart writes the window as a PNG line chart. Every is the number of
// frames between writes.
type Chart struct {
	path   string
	title  string
	yLabel string
	every  int
	frames int
}

func NewChart(path, title, yLabel string, every int) (*Chart, error) {
	if path == "" {
		return nil, errors.New().New(ErrMissingOutput)
	}
	if every < 1 {
		every = 1
	}

	return &Chart{
		path:   path,
		title:  title,
		yLabel: yLabel,
		every:  every,
	}, nil
}

func (c *Chart) Draw(_ context.Context, frame telemetry.Frame) error {
	c.frames++
	if (c.frames-1)%c.every != 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := RenderChartPNG(&buf, frame, c.title, c.yLabel); err != nil {
		return err
	}

	return writeFileAtomic(c.path, buf.Bytes())
}

// RenderChartPNG encodes frame as a line chart: sample index on X, value
// on Y, stats in the title.
func RenderChartPNG(w *bytes.Buffer, frame telemetry.Frame, title, yLabel string) error {
	xs := make([]float64, len(frame.Samples))
	ys := make([]float64, len(frame.Samples))
	for i, s := range frame.Samples {
		xs[i] = float64(i)
		ys[i] = s.Value
	}
	// a single point has no extent; draw it as a flat segment
	if len(xs) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}

	lo, hi := YRange(frame.Stats)

	graph := chart.Chart{
		Title:  title + "  " + frame.Stats.String(),
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  "Samples (most recent on the right)",
			Range: &chart.ContinuousRange{Min: 0, Max: XSpan(len(frame.Samples))},
		},
		YAxis: chart.YAxis{
			Name:  yLabel,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    yLabel,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: 2,
					StrokeColor: chart.ColorBlue,
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return errors.New().Wrap(ErrChartFailed, err)
	}

	return nil
}

func writeFileAtomic(path string, data []byte) error {
	errFactory := errors.New()

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errFactory.Wrap(ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".chart-*.png")
	if err != nil {
		return errFactory.Wrap(ErrWriteFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errFactory.Wrap(ErrWriteFailed, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return errFactory.Wrap(ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return errFactory.Wrap(ErrWriteFailed, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errFactory.Wrap(ErrWriteFailed, err)
	}

	return nil
}

func (*Chart) Close() error {
	return nil
}
