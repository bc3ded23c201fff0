package render

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/logger"
	"codeberg.org/mutker/mqttviz/internal/telemetry"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	clientBuffer      = 8
	writeWait         = 2 * time.Second
	shutdownTimeout   = 2 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// wireFrame is the JSON document sent to websocket clients
type wireFrame struct {
	Latest  *wirePoint  `json:"latest,omitempty"`
	Samples []wirePoint `json:"samples"`
	Stats   wireStats   `json:"stats"`
	Gauge   *wireGauge  `json:"gauge,omitempty"`
	Dropped uint64      `json:"dropped"`
}

type wirePoint struct {
	Time  int64   `json:"t"`
	Value float64 `json:"v"`
}

type wireStats struct {
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Mean  *float64 `json:"mean"`
	Count int      `json:"count"`
}

type wireGauge struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Fraction float64 `json:"fraction"`
	Angle    float64 `json:"angle"`
}

// EncodeFrame renders frame as JSON. Stats are null when there is no data.
// A non-nil gauge adds the needle geometry for the latest value.
func EncodeFrame(frame telemetry.Frame, gauge *Gauge) ([]byte, error) {
	wf := wireFrame{
		Samples: make([]wirePoint, len(frame.Samples)),
		Stats:   wireStats{Count: frame.Stats.Count},
		Dropped: frame.Dropped,
	}
	for i, s := range frame.Samples {
		wf.Samples[i] = wirePoint{Time: s.Time.UnixMilli(), Value: s.Value}
	}

	if frame.Stats.Valid {
		st := frame.Stats
		wf.Stats.Min, wf.Stats.Max, wf.Stats.Mean = &st.Min, &st.Max, &st.Mean
		wf.Latest = &wirePoint{Time: frame.Latest.Time.UnixMilli(), Value: frame.Latest.Value}

		if gauge != nil {
			wf.Gauge = &wireGauge{
				Min:      gauge.Min,
				Max:      gauge.Max,
				Fraction: gauge.Fraction(frame.Latest.Value),
				Angle:    gauge.NeedleAngle(frame.Latest.Value),
			}
		}
	}

	out, err := json.Marshal(wf)
	if err != nil {
		return nil, errors.New().Wrap(ErrEncodeFailed, err)
	}

	return out, nil
}

// WebSocket serves /ws and pushes every frame to all connected clients.
// A client that falls behind by more than a few frames is disconnected so
// the render tick never waits on the network.
type WebSocket struct {
	server   *http.Server
	listener net.Listener
	upgrader websocket.Upgrader
	gauge    *Gauge
	logger   logger.Logger

	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool
	wg      sync.WaitGroup
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewWebSocket(addr string, gauge *Gauge, log logger.Logger) (*WebSocket, error) {
	errFactory := errors.New()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errFactory.Wrap(ErrListenFailed, err)
	}

	ws := &WebSocket{
		listener: ln,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		gauge:   gauge,
		logger:  log,
		clients: make(map[*wsClient]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ws.handle)
	ws.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		if err := ws.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Websocket server stopped")
		}
	}()

	log.Info().Str("addr", ln.Addr().String()).Msg("Serving frames on /ws")

	return ws, nil
}

// Addr returns the bound listen address
func (ws *WebSocket) Addr() string {
	return ws.listener.Addr().String()
}

func (ws *WebSocket) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ws.logger.Debug().Err(err).Msg("Websocket upgrade failed")
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, clientBuffer)}

	// registration and wg.Add happen under mu so Close cannot miss a client
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.closed {
		conn.Close()
		return
	}
	ws.clients[c] = struct{}{}
	ws.wg.Add(2)

	go ws.writer(c)
	go ws.reader(c)
}

func (ws *WebSocket) writer(c *wsClient) {
	defer ws.wg.Done()
	defer c.conn.Close()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			ws.drop(c)
			return
		}
	}

	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
}

// reader discards client input and notices disconnects
func (ws *WebSocket) reader(c *wsClient) {
	defer ws.wg.Done()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			ws.drop(c)
			return
		}
	}
}

func (ws *WebSocket) drop(c *wsClient) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if _, ok := ws.clients[c]; ok {
		delete(ws.clients, c)
		close(c.send)
	}
}

// Clients reports the number of connected clients
func (ws *WebSocket) Clients() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	return len(ws.clients)
}

func (ws *WebSocket) Draw(_ context.Context, frame telemetry.Frame) error {
	msg, err := EncodeFrame(frame, ws.gauge)
	if err != nil {
		return err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	for c := range ws.clients {
		select {
		case c.send <- msg:
		default:
			ws.logger.Debug().Msg("Dropping slow websocket client")
			delete(ws.clients, c)
			close(c.send)
		}
	}

	return nil
}

func (ws *WebSocket) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := ws.server.Shutdown(ctx)

	ws.mu.Lock()
	ws.closed = true
	for c := range ws.clients {
		delete(ws.clients, c)
		close(c.send)
	}
	ws.mu.Unlock()

	// hijacked connections are not closed by Shutdown; each writer closes
	// its own once the send channel is drained
	ws.wg.Wait()

	if err != nil {
		return errors.New().Wrap(ErrCloseFailed, err)
	}

	return nil
}
