package render_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"codeberg.org/mutker/mqttviz/internal/logger"
	"codeberg.org/mutker/mqttviz/internal/render"
	"codeberg.org/mutker/mqttviz/internal/telemetry"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFrameEmptyStatsAreNull(t *testing.T) {
	out, err := render.EncodeFrame(telemetry.Frame{}, nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{"samples":[],"stats":{"min":null,"max":null,"mean":null,"count":0},"dropped":0}`, string(out))
}

func TestEncodeFrameGauge(t *testing.T) {
	g, err := render.NewGauge(0, 100)
	require.NoError(t, err)

	out, err := render.EncodeFrame(frameOf(50), &g)
	require.NoError(t, err)

	var doc struct {
		Latest struct {
			V float64 `json:"v"`
		} `json:"latest"`
		Gauge struct {
			Fraction float64 `json:"fraction"`
			Angle    float64 `json:"angle"`
		} `json:"gauge"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.InDelta(t, 50.0, doc.Latest.V, 0)
	assert.InDelta(t, 0.5, doc.Gauge.Fraction, 1e-9)
	assert.InDelta(t, 0.0, doc.Gauge.Angle, 1e-9)
}

func TestWebSocketBroadcast(t *testing.T) {
	ws, err := render.NewWebSocket("127.0.0.1:0", nil, logger.New("test"))
	require.NoError(t, err)
	defer ws.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ws.Addr()+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return ws.Clients() == 1 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, ws.Draw(context.Background(), frameOf(21.5, 22.5)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var doc struct {
		Samples []struct {
			V float64 `json:"v"`
		} `json:"samples"`
		Stats struct {
			Count int `json:"count"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(msg, &doc))
	assert.Len(t, doc.Samples, 2)
	assert.Equal(t, 2, doc.Stats.Count)
}

type failing struct{ closed bool }

func (f *failing) Draw(context.Context, telemetry.Frame) error { return errors.New("boom") }
func (f *failing) Close() error {
	f.closed = true
	return nil
}

type counting struct{ draws int }

func (c *counting) Draw(context.Context, telemetry.Frame) error {
	c.draws++
	return nil
}
func (*counting) Close() error { return nil }

func TestMultiDrawsAll(t *testing.T) {
	f, c := &failing{}, &counting{}
	m, err := render.NewMulti(f, nil, c)
	require.NoError(t, err)

	assert.Error(t, m.Draw(context.Background(), frameOf(1)))
	assert.Equal(t, 1, c.draws)

	require.NoError(t, m.Close())
	assert.True(t, f.closed)

	_, err = render.NewMulti()
	assert.Error(t, err)
}
