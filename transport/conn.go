package transport

import "context"

// Conn is a full-duplex, ordered frame stream: one per connected
// participant. WSConn is the only production implementation; tests use a
// simple in-memory fake that records written frames in a slice.
type Conn interface {
	// ReadFrame blocks for the next inbound frame. It returns an error
	// (including context cancellation) exactly once, after which the
	// connection is dead and ReadFrame must not be called again.
	ReadFrame(ctx context.Context) (Frame, error)

	// WriteFrame enqueues an outbound frame. It may return before the
	// frame reaches the wire; callers that need FIFO ordering across
	// multiple writers must serialize their own calls (the session does
	// this by sending from its single actor goroutine).
	WriteFrame(ctx context.Context, f Frame) error

	// Close tears down the connection. Idempotent.
	Close() error
}
