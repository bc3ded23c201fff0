package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/telemetry"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const defaultWidth = 60

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statsStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "250"})
	needleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	arcStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "240"})
)

// Mode selects what the terminal renderer draws
type Mode int

const (
	ModeChart Mode = iota
	ModeGauge
)

// Terminal prints each frame as a block of text. Chart mode prints a
// sparkline of the window with its stats; gauge mode prints a scale with
// the needle at the latest value.
type Terminal struct {
	out   io.Writer
	mode  Mode
	title string
	unit  string
	gauge Gauge
	width int
	mu    sync.Mutex
}

type TerminalOption func(*Terminal)

// WithWidth fixes the drawing width instead of probing the terminal
func WithWidth(width int) TerminalOption {
	return func(t *Terminal) {
		t.width = width
	}
}

// WithUnit sets the suffix printed after values
func WithUnit(unit string) TerminalOption {
	return func(t *Terminal) {
		t.unit = unit
	}
}

func NewTerminal(out io.Writer, mode Mode, title string, gauge Gauge, opts ...TerminalOption) (*Terminal, error) {
	if out == nil {
		return nil, errors.New().New(ErrMissingOutput)
	}

	t := &Terminal{
		out:   out,
		mode:  mode,
		title: title,
		gauge: gauge,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.width <= 0 {
		t.width = probeWidth(out)
	}

	return t, nil
}

func probeWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < 20 {
		return defaultWidth
	}

	return width - 2
}

func (t *Terminal) Draw(_ context.Context, frame telemetry.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var block string
	if t.mode == ModeGauge {
		block = t.renderGauge(frame)
	} else {
		block = t.renderChart(frame)
	}

	if _, err := io.WriteString(t.out, block+"\n"); err != nil {
		return errors.New().Wrap(ErrWriteFailed, err)
	}

	return nil
}

func (t *Terminal) renderChart(frame telemetry.Frame) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(t.title))
	b.WriteByte('\n')
	b.WriteString(Sparkline(frame.Samples, frame.Stats, t.width))
	b.WriteByte('\n')
	b.WriteString(statsStyle.Render(frame.Stats.String()))

	return b.String()
}

func (t *Terminal) renderGauge(frame telemetry.Frame) string {
	var b strings.Builder

	value := "--.-"
	if frame.Stats.Valid {
		value = fmt.Sprintf("%.2f", frame.Latest.Value)
	}
	if t.unit != "" {
		value += " " + t.unit
	}

	b.WriteString(titleStyle.Render(t.title))
	b.WriteString("  ")
	b.WriteString(needleStyle.Render(value))
	b.WriteByte('\n')

	width := t.width
	pos := -1
	if frame.Stats.Valid {
		pos = int(math.Round(t.gauge.Fraction(frame.Latest.Value) * float64(width-1)))
	}

	var arc strings.Builder
	for i := 0; i < width; i++ {
		if i == pos {
			arc.WriteString(needleStyle.Render("┃"))
			continue
		}
		arc.WriteString(arcStyle.Render("━"))
	}
	b.WriteString(arc.String())
	b.WriteByte('\n')
	b.WriteString(GaugeLabels(t.gauge, width))

	return b.String()
}

// Sparkline draws the most recent width samples as block characters,
// scaled to the padded chart range.
func Sparkline(samples []telemetry.Sample, stats telemetry.Stats, width int) string {
	if len(samples) == 0 || width <= 0 {
		return ""
	}
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	lo, hi := YRange(stats)
	top := len(sparkBlocks) - 1

	out := make([]rune, len(samples))
	for i, s := range samples {
		level := int(math.Round((s.Value - lo) / (hi - lo) * float64(top)))
		out[i] = sparkBlocks[max(0, min(top, level))]
	}

	return string(out)
}

// GaugeLabels lays the tick values out under a scale of the given width.
func GaugeLabels(g Gauge, width int) string {
	line := []rune(strings.Repeat(" ", width))

	for _, tick := range g.Ticks() {
		label := []rune(fmt.Sprintf("%.0f", tick.Value))
		start := int(math.Round(tick.Fraction*float64(width-1))) - len(label)/2
		start = max(0, min(width-len(label), start))
		for i, r := range label {
			if start+i >= 0 && start+i < width {
				line[start+i] = r
			}
		}
	}

	return strings.TrimRight(string(line), " ")
}

func (*Terminal) Close() error {
	return nil
}
