package transport

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teranos/graphsync/apperrors"
	"github.com/teranos/graphsync/logger"
)

// WebSocket timeout constants: ping period comfortably inside the pong
// deadline, write deadline short enough to detect a dead peer fast.
const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second

	pingPeriod = 54 * time.Second

	// Frames carry a command name plus a handful of scalar/opaque args,
	// so a tight ceiling is appropriate.
	maxMessageSize = 256 * 1024
)

// WSConn adapts a gorilla/websocket.Conn to Conn. Reads happen on a single
// internal goroutine feeding a buffered channel (readPump); writes happen
// on a second goroutine draining a buffered channel (writePump) so that
// WriteFrame never blocks on the network and ticks a ping on its own
// schedule.
type WSConn struct {
	ws *websocket.Conn

	incoming chan readResult
	outgoing chan Frame
	closed   chan struct{}
}

type readResult struct {
	frame Frame
	err   error
}

// NewWSConn wraps an already-upgraded websocket connection and starts its
// read and write pumps. id is used only for log correlation.
func NewWSConn(ws *websocket.Conn, id string) *WSConn {
	c := &WSConn{
		ws:       ws,
		incoming: make(chan readResult, 1),
		outgoing: make(chan Frame, 64),
		closed:   make(chan struct{}),
	}
	go c.readPump(id)
	go c.writePump(id)
	return c
}

func (c *WSConn) readPump(id string) {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			logReadError(id, err)
			c.incoming <- readResult{err: err}
			return
		}

		var f Frame
		if err := json.Unmarshal(raw, &f); err != nil {
			logger.TransportDebugw("malformed frame", "client_id", id, "error", err.Error())
			continue
		}
		c.incoming <- readResult{frame: f}
	}
}

// logReadError logs close errors at Debug with the code, and logs a truly
// unexpected closure (not going-away, abnormal, or no-status) at Debug with
// the error text as well.
func logReadError(id string, err error) {
	if closeErr, ok := err.(*websocket.CloseError); ok {
		logger.TransportDebugw("websocket closed", "client_id", id, "code", closeErr.Code, "text", closeErr.Text)
	}
	if websocket.IsUnexpectedCloseError(err,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure,
		websocket.CloseNoStatusReceived,
	) {
		logger.TransportDebugw("websocket read error", "client_id", id, "error", err.Error())
	}
}

func (c *WSConn) writePump(id string) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.closed:
			return
		case f, ok := <-c.outgoing:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteJSON(f); err != nil {
				logger.TransportDebugw("frame write error", "client_id", id, "error", err.Error())
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadFrame returns the next frame decoded by the read pump, or the error
// that ended it. Respects ctx cancellation independently of the socket.
func (c *WSConn) ReadFrame(ctx context.Context) (Frame, error) {
	select {
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	case r, ok := <-c.incoming:
		if !ok {
			return Frame{}, apperrors.NewInternal("wsconn: read channel closed")
		}
		return r.frame, r.err
	}
}

// WriteFrame enqueues f for the write pump. Blocks only if the outgoing
// buffer (64 frames) is full, which indicates a stalled peer.
func (c *WSConn) WriteFrame(ctx context.Context, f Frame) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case c.outgoing <- f:
		return nil
	}
}

// Close stops the write pump and closes the underlying socket. Idempotent.
func (c *WSConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
	return c.ws.Close()
}
