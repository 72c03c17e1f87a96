// Package server wires the session actor loop to the network: it
// upgrades incoming HTTP connections to WebSocket, registers each one as
// a session.Participant, and pumps decoded wire frames onto the
// session's single inbox channel.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/teranos/graphsync/internal/idgen"
	"github.com/teranos/graphsync/internal/namegen"
	"github.com/teranos/graphsync/logger"
	"github.com/teranos/graphsync/session"
	"github.com/teranos/graphsync/transport"
)

// Server owns one session and the inbox every connected participant's
// read pump feeds.
type Server struct {
	handlers session.Handlers
	inbox    chan session.Intent
	upgrader websocket.Upgrader

	mu   sync.Mutex
	done bool
}

// New wraps an already-constructed Handlers (ordinarily a *session.Model
// or an fsmodel.Model) and starts its actor loop on a background
// goroutine. ctx cancellation stops the actor loop and the server.
func New(ctx context.Context, handlers session.Handlers) *Server {
	s := &Server{
		handlers: handlers,
		inbox:    make(chan session.Intent, 256),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	go func() {
		if err := session.Run(ctx, s.inbox, s.handlers); err != nil {
			logger.SessionErrorw("session actor loop exited", "error", err)
		}
	}()
	return s
}

// Mux builds the HTTP handler exposing the WebSocket route and a health
// check.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// ServeWS upgrades the request to a WebSocket connection, registers a new
// participant, and drives its read pump until the connection closes.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.TransportDebugw("websocket upgrade failed", "error", err.Error())
		return
	}

	id := idgen.NewUserID()
	conn := transport.NewWSConn(ws, id)
	ctx := r.Context()

	participant := session.NewParticipant(id, namegen.Random(), transport.NewSessionOutbound(ctx, conn))

	if err := participant.Outbound.Send("auth", nil, session.Kwargs{
		"id":   participant.ID,
		"name": participant.DisplayName,
	}); err != nil {
		logger.TransportDebugw("auth handshake failed", "participant", id, "error", err.Error())
		return
	}

	s.inbox <- session.JoinIntent{Participant: participant}
	defer func() {
		s.inbox <- session.LeaveIntent{ParticipantID: id}
		conn.Close()
	}()

	s.readLoop(ctx, conn, participant)
}

func (s *Server) readLoop(ctx context.Context, conn transport.Conn, p *session.Participant) {
	for {
		frame, err := conn.ReadFrame(ctx)
		if err != nil {
			return
		}
		intent, ok := intentFromFrame(p, frame)
		if !ok {
			continue
		}
		s.inbox <- intent
	}
}
