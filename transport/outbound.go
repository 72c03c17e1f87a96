package transport

import (
	"context"

	"github.com/teranos/graphsync/session"
)

// SessionOutbound adapts a Conn to session.Outbound, so a session's
// fan-out helpers can address a network participant without knowing
// about websockets. ctx bounds how long a single WriteFrame may block on
// a stalled peer before the session treats the send as failed.
type SessionOutbound struct {
	ctx  context.Context
	conn Conn
}

// NewSessionOutbound wraps conn for use as a session.Outbound.
func NewSessionOutbound(ctx context.Context, conn Conn) *SessionOutbound {
	return &SessionOutbound{ctx: ctx, conn: conn}
}

// Send implements session.Outbound by writing a single frame.
func (o *SessionOutbound) Send(name string, args []interface{}, kwargs session.Kwargs) error {
	return o.conn.WriteFrame(o.ctx, Frame{Name: name, Args: args, Kwargs: kwargs})
}
