package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"codeberg.org/mutker/mqttviz/internal/broker"
	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/logger"
	"codeberg.org/mutker/mqttviz/internal/payload"
	"codeberg.org/mutker/mqttviz/internal/render"
	"codeberg.org/mutker/mqttviz/internal/telemetry"
)

// Options describe what a session subscribes to and what it does with
// the messages it receives.
type Options struct {
	// Topics are subscribed once the broker accepts the connection
	Topics []string
	// ControlTopic carries JSON device commands instead of readings
	ControlTopic string
	// Pipeline enables the live display; nil prints every message to Out
	Pipeline *telemetry.Config
	// Renderer draws pipeline frames; required with Pipeline
	Renderer render.Renderer
	Out      io.Writer
}

// Session is the state of one running command: the broker connection,
// the update channel fed from the network goroutine and the ticker that
// drains it. It is the broker.Handler for its own connection.
type Session struct {
	opts   Options
	logger logger.Logger
	now    func() time.Time

	conn     Connector
	input    *telemetry.Channel[telemetry.Sample]
	ticker   *telemetry.Ticker
	renderer render.Renderer

	mu        sync.Mutex
	connected atomic.Bool
	invalid   atomic.Uint64
	closed    bool
}

func NewSession(opts Options, log logger.Logger) (*Session, error) {
	errFactory := errors.New()

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	s := &Session{
		opts:   opts,
		logger: log,
		now:    time.Now,
	}

	if opts.Pipeline != nil {
		if opts.Renderer == nil {
			return nil, errFactory.WithMessage(ErrInvalidOptions, "pipeline needs a renderer")
		}

		s.input = telemetry.NewChannel[telemetry.Sample](opts.Pipeline.QueueLimit)
		ticker, err := telemetry.NewTicker(*opts.Pipeline, s.input, opts.Renderer, log.With("ticker"))
		if err != nil {
			return nil, err
		}
		s.ticker = ticker
		s.renderer = opts.Renderer
	}

	return s, nil
}

// Start starts the ticker, dials the broker and connects. A failed
// connection is returned but leaves the session usable for Shutdown.
func (s *Session) Start(ctx context.Context, dial Dialer) error {
	errFactory := errors.New()

	conn, err := dial(s)
	if err != nil {
		return errFactory.Wrap(ErrDialFailed, err)
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	if s.ticker != nil {
		if err := s.ticker.Start(ctx); err != nil {
			return err
		}
	}

	return conn.Connect(ctx)
}

func (s *Session) OnConnected(code byte) {
	if code != broker.CodeAccepted {
		s.logger.Error().
			Uint8("code", code).
			Str("reason", broker.CodeText(code)).
			Msg("Connection failed")
		return
	}

	s.connected.Store(true)
	fmt.Fprintln(s.opts.Out, "Connected to MQTT broker")

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return
	}

	for _, topic := range s.opts.Topics {
		if err := conn.Subscribe(topic); err != nil {
			s.logger.ErrorWithCode(errors.New().Wrap(errors.ErrSubscribe, err)).
				Str("topic", topic).
				Msg("Failed to subscribe")
			continue
		}
		fmt.Fprintf(s.opts.Out, "Subscribed to topic: %s\n", topic)
	}
}

// OnMessage runs on the broker's network goroutine. Readings are parsed
// here so only valid samples ever reach the channel.
func (s *Session) OnMessage(topic string, raw []byte) {
	switch {
	case s.opts.ControlTopic != "" && topic == s.opts.ControlTopic:
		s.handleControl(topic, raw)
	case s.input != nil:
		s.handleReading(topic, raw)
	default:
		fmt.Fprintf(s.opts.Out, "Received: [Topic: %s] %s\n", topic, raw)
	}
}

func (s *Session) handleReading(topic string, raw []byte) {
	value, err := payload.ParseNumber(raw)
	if err != nil {
		s.invalid.Add(1)
		s.logger.Warn().Err(err).Str("topic", topic).Msg("Dropping payload")
		return
	}

	s.input.Push(telemetry.NewSample(s.now(), value))
}

func (s *Session) handleControl(topic string, raw []byte) {
	fmt.Fprintf(s.opts.Out, "Received from %s: %s\n", topic, raw)

	control, err := payload.ParseControl(raw)
	if err != nil {
		s.invalid.Add(1)
		switch {
		case errors.HasCode(err, payload.ErrMissingState):
			s.logger.Debug().Str("topic", topic).Msg("Control message without state")
		case errors.HasCode(err, payload.ErrNotObject):
			fmt.Fprintln(s.opts.Out, "Control message is not a JSON object")
		default:
			fmt.Fprintln(s.opts.Out, "Non-JSON message received")
		}
		return
	}

	s.logger.Info().Str("state", control.State).Msg("Device command")
	fmt.Fprintf(s.opts.Out, "Device Command: State set to %s\n", control.State)
}

// Publisher returns the connection for publishing, or nil before Start
func (s *Session) Publisher() broker.Publisher {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	return s.conn
}

// Connected reports whether the broker accepted the connection
func (s *Session) Connected() bool {
	return s.connected.Load()
}

// Ticker is nil for sessions without a pipeline
func (s *Session) Ticker() *telemetry.Ticker {
	return s.ticker
}

// Invalid counts payloads dropped because they did not parse
func (s *Session) Invalid() uint64 {
	return s.invalid.Load()
}

// Shutdown stops the ticker before disconnecting so no redraw runs
// against a closed renderer. Safe to call more than once.
func (s *Session) Shutdown() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
	}

	if conn != nil {
		conn.Disconnect()
	}
	s.connected.Store(false)

	if s.renderer != nil {
		if err := s.renderer.Close(); err != nil {
			return errors.New().Wrap(errors.ErrShutdownFailed, err)
		}
	}

	s.logger.Debug().
		Uint64("invalid", s.invalid.Load()).
		Msg("Session closed")

	return nil
}
