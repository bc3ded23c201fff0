package broker

import (
	"context"
	"sync/atomic"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/logger"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Client is a connected MQTT session. Reconnects are left off: a lost
// connection is reported and the demo keeps running without data.
type Client struct {
	cfg       Config
	handler   Handler
	client    mqtt.Client
	logger    logger.Logger
	published atomic.Uint64
	received  atomic.Uint64
}

func New(cfg Config, handler Handler, log logger.Logger) (*Client, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, errFactory.WithMessage(ErrInvalidConfig, "handler is required")
	}

	c := &Client{
		cfg:     cfg,
		handler: handler,
		logger:  log,
	}
	c.client = mqtt.NewClient(c.options())

	return c, nil
}

func (c *Client) options() *mqtt.ClientOptions {
	return mqtt.NewClientOptions().
		AddBroker(c.cfg.URL).
		SetClientID(c.cfg.clientID()).
		SetKeepAlive(c.cfg.KeepAlive).
		SetConnectTimeout(c.cfg.ConnectTimeout).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetConnectRetry(false).
		SetOrderMatters(true).
		SetDefaultPublishHandler(c.onMessage).
		SetConnectionLostHandler(c.onConnectionLost)
}

// Connect dials the broker and reports the result to the handler. A
// refusal is returned as an error as well; nothing retries it.
func (c *Client) Connect(ctx context.Context) error {
	errFactory := errors.New()

	c.logger.Info().Str("broker", c.cfg.URL).Msg("Attempting to connect")

	token := c.client.Connect()

	select {
	case <-token.Done():
	case <-ctx.Done():
		c.handler.OnConnected(CodeTimeout)
		return errFactory.Wrap(ErrConnectTimeout, ctx.Err())
	}

	code := CodeAccepted
	if ct, ok := token.(*mqtt.ConnectToken); ok {
		code = ct.ReturnCode()
	}
	err := token.Error()
	if err != nil && code == CodeAccepted {
		code = CodeNetworkError
	}

	c.handler.OnConnected(code)

	if err != nil || code != CodeAccepted {
		return errFactory.WithData(ErrConnectFailed, struct {
			Code   byte
			Reason string
			Error  error
		}{
			Code:   code,
			Reason: CodeText(code),
			Error:  err,
		})
	}

	return nil
}

// Subscribe registers interest in topic; messages go to Handler.OnMessage.
func (c *Client) Subscribe(topic string) error {
	errFactory := errors.New()

	token := c.client.Subscribe(topic, c.cfg.QoS, c.onMessage)
	if !token.WaitTimeout(c.cfg.ConnectTimeout) {
		return errFactory.WithData(ErrSubscribeFail, topic)
	}
	if err := token.Error(); err != nil {
		return errFactory.Wrap(ErrSubscribeFail, err)
	}

	c.logger.Info().Str("topic", topic).Msg("Subscribed")

	return nil
}

// Publish sends payload without waiting for delivery.
func (c *Client) Publish(topic string, payload []byte) error {
	errFactory := errors.New()

	if !c.client.IsConnectionOpen() {
		return errFactory.WithData(ErrNotConnected, topic)
	}

	token := c.client.Publish(topic, c.cfg.QoS, false, payload)
	// QoS 0 tokens complete once the packet is queued
	if c.cfg.QoS == 0 && token.WaitTimeout(c.cfg.ConnectTimeout) && token.Error() != nil {
		return errFactory.Wrap(ErrPublishFailed, token.Error())
	}
	c.published.Add(1)

	return nil
}

// Disconnect closes the session, waiting at most Quiesce for in-flight work.
func (c *Client) Disconnect() {
	if !c.client.IsConnected() {
		return
	}

	c.client.Disconnect(uint(c.cfg.Quiesce.Milliseconds()))
	c.logger.Info().
		Uint64("published", c.published.Load()).
		Uint64("received", c.received.Load()).
		Msg("Disconnected from MQTT broker")
}

func (c *Client) onMessage(_ mqtt.Client, msg mqtt.Message) {
	c.received.Add(1)
	c.handler.OnMessage(msg.Topic(), msg.Payload())
}

func (c *Client) onConnectionLost(_ mqtt.Client, err error) {
	c.logger.Warn().Err(err).Msg("Connection to MQTT broker lost")
}
