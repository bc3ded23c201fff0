package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"codeberg.org/mutker/mqttviz/internal/broker"
	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/logger"
	"codeberg.org/mutker/mqttviz/internal/payload"
	"codeberg.org/mutker/mqttviz/internal/sensor"
)

// Publisher reads a sensor on a fixed interval and publishes each
// reading's text to one topic.
type Publisher struct {
	Topic    string
	Interval time.Duration
	// Settle delays the first reading so the connection can come up
	Settle time.Duration
	Source sensor.Source
	Out    io.Writer

	logger    logger.Logger
	published uint64
	failed    uint64
}

func NewPublisher(topic string, interval time.Duration, src sensor.Source, log logger.Logger) (*Publisher, error) {
	errFactory := errors.New()

	if topic == "" {
		return nil, errFactory.WithMessage(ErrInvalidOptions, "publish topic is required")
	}
	if interval <= 0 {
		return nil, errFactory.WithData(errors.ErrInvalidInterval, interval)
	}
	if src == nil {
		return nil, errFactory.WithMessage(ErrInvalidOptions, "sensor source is required")
	}

	return &Publisher{
		Topic:    topic,
		Interval: interval,
		Source:   src,
		Out:      io.Discard,
		logger:   log,
	}, nil
}

// Run publishes until ctx is cancelled. Read and publish failures are
// logged and the loop carries on with the next interval.
func (p *Publisher) Run(ctx context.Context, pub broker.Publisher) error {
	if pub == nil {
		return errors.New().New(ErrNotStarted)
	}

	if p.Settle > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(p.Settle):
		}
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		p.PublishOnce(ctx, pub)

		select {
		case <-ctx.Done():
			p.logger.Info().
				Uint64("published", p.published).
				Uint64("failed", p.failed).
				Msg("Publisher stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// PublishOnce reads and publishes a single reading
func (p *Publisher) PublishOnce(ctx context.Context, pub broker.Publisher) bool {
	errFactory := errors.New()

	reading, err := p.Source.Read(ctx)
	if err != nil {
		p.failed++
		p.logger.ErrorWithCode(errFactory.Wrap(ErrReadFailed, err)).Msg("Failed to read sensor")
		return false
	}

	if err := pub.Publish(p.Topic, []byte(reading.Text)); err != nil {
		p.failed++
		p.logger.ErrorWithCode(errFactory.Wrap(errors.ErrPublish, err)).
			Str("topic", p.Topic).
			Msg("Publish failed")
		return false
	}

	p.published++
	p.logger.Debug().Str("topic", p.Topic).Float64("value", reading.Value).Msg("Published reading")
	fmt.Fprintf(p.Out, "Published: %s\n", reading.Text)

	return true
}

// Published counts readings handed to the broker
func (p *Publisher) Published() uint64 {
	return p.published
}

// SendControl publishes a {"state": state} command to topic
func SendControl(pub broker.Publisher, topic, state string) error {
	errFactory := errors.New()

	if pub == nil {
		return errFactory.New(ErrNotStarted)
	}

	msg, err := payload.EncodeControl(payload.Control{State: state})
	if err != nil {
		return err
	}
	if err := pub.Publish(topic, msg); err != nil {
		return errFactory.Wrap(errors.ErrPublish, err)
	}

	return nil
}
