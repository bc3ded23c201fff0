// Package app ties the broker client, the payload parsers, the telemetry
// pipeline and the renderers together into the sessions run by each
// mqttviz command.
package app

import (
	"context"

	"codeberg.org/mutker/mqttviz/internal/broker"
	"codeberg.org/mutker/mqttviz/internal/logger"
)

// Connector is a broker connection that has not been opened yet
type Connector interface {
	broker.Conn
	Connect(ctx context.Context) error
}

// Dialer builds a connection that reports to handler
type Dialer func(handler broker.Handler) (Connector, error)

// BrokerDialer returns a Dialer backed by the MQTT client
func BrokerDialer(cfg broker.Config, log logger.Logger) Dialer {
	return func(handler broker.Handler) (Connector, error) {
		return broker.New(cfg, handler, log)
	}
}
