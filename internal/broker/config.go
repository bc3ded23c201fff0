package broker

import (
	"fmt"
	"os"
	"time"

	"codeberg.org/mutker/mqttviz/internal/errors"
)

const (
	defaultKeepAlive      = 60 * time.Second
	defaultConnectTimeout = 10 * time.Second
	defaultQuiesce        = 250 * time.Millisecond
)

type Config struct {
	URL            string
	ClientID       string
	KeepAlive      time.Duration
	ConnectTimeout time.Duration
	Quiesce        time.Duration
	QoS            byte
}

func DefaultConfig(url string) Config {
	return Config{
		URL:            url,
		KeepAlive:      defaultKeepAlive,
		ConnectTimeout: defaultConnectTimeout,
		Quiesce:        defaultQuiesce,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.URL == "" {
		return errFactory.WithMessage(ErrInvalidConfig, "broker URL is required")
	}
	if c.QoS > 2 {
		return errFactory.WithData(ErrInvalidConfig, fmt.Sprintf("qos %d", c.QoS))
	}

	return nil
}

// clientID falls back to a per-process identifier; a fixed ID would make
// two demos on a shared public broker disconnect each other.
func (c Config) clientID() string {
	if c.ClientID != "" {
		return c.ClientID
	}

	return fmt.Sprintf("mqttviz-%d", os.Getpid())
}
