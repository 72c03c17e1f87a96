package session

import (
	"context"

	"github.com/teranos/graphsync/apperrors"
	"github.com/teranos/graphsync/graph"
	"github.com/teranos/graphsync/logger"
)

// Handlers is the set of intent handlers an actor loop dispatches against.
// *Model implements it directly; a specialization (the filesystem
// materializer in package fsmodel) implements it by embedding *Model and
// overriding only the handlers whose semantics it changes — the Go method
// set resolves the override, so Run needs no knowledge of which concrete
// type it's driving.
type Handlers interface {
	CreateNode(origin *Origin, id string)
	RemoveNode(origin *Origin, id string)
	ChangeState(origin *Origin, id string, state map[string]interface{})
	AddLink(origin *Origin, key graph.LinkKey)
	RemoveLink(origin *Origin, key graph.LinkKey)
	AddParticipant(p *Participant)
	RemoveParticipant(id string)
	join(p *Participant)
}

// Intent is one unit of work submitted to a session's actor loop. The five
// concrete intent kinds below mirror the five protocol commands exactly;
// JoinIntent and LeaveIntent are administrative and never classified.
type Intent interface {
	apply(h Handlers)
}

// CreateNodeIntent requests that a node with ID come into existence.
type CreateNodeIntent struct {
	Origin *Origin
	ID     string
}

func (i CreateNodeIntent) apply(h Handlers) { h.CreateNode(i.Origin, i.ID) }

// RemoveNodeIntent requests that the node with ID, and every link incident
// to it, be removed.
type RemoveNodeIntent struct {
	Origin *Origin
	ID     string
}

func (i RemoveNodeIntent) apply(h Handlers) { h.RemoveNode(i.Origin, i.ID) }

// ChangeStateIntent requests that the node with ID take on a new opaque
// state value.
type ChangeStateIntent struct {
	Origin *Origin
	ID     string
	State  map[string]interface{}
}

func (i ChangeStateIntent) apply(h Handlers) { h.ChangeState(i.Origin, i.ID, i.State) }

// AddLinkIntent requests that a link between two named ports come into
// existence.
type AddLinkIntent struct {
	Origin *Origin
	Key    graph.LinkKey
}

func (i AddLinkIntent) apply(h Handlers) { h.AddLink(i.Origin, i.Key) }

// RemoveLinkIntent requests that an existing link be removed.
type RemoveLinkIntent struct {
	Origin *Origin
	Key    graph.LinkKey
}

func (i RemoveLinkIntent) apply(h Handlers) { h.RemoveLink(i.Origin, i.Key) }

// JoinIntent registers a new participant and replays the current graph to
// it as a sequence of createNode/changePorts/changeState/addLink frames, so
// the joining client's mirror starts from an identical snapshot.
type JoinIntent struct {
	Participant *Participant
}

func (i JoinIntent) apply(h Handlers) { h.join(i.Participant) }

// LeaveIntent deregisters a participant. It never fans out — the other
// participants simply stop hearing from the departed client.
type LeaveIntent struct {
	ParticipantID string
}

func (i LeaveIntent) apply(h Handlers) { h.RemoveParticipant(i.ParticipantID) }

// Run drains inbox on the calling goroutine until ctx is cancelled or an
// Apply handler panics with an *apperrors.Internal invariant violation. In
// the latter case Run logs the failure and returns the error — ending this
// session's actor loop is the caller's crash response (spec §5): other
// sessions are unaffected, and the calling server is responsible for
// disconnecting this session's participants.
//
// Only one goroutine may ever call Run for a given session, and h must be
// the only caller of its exported mutators; all other goroutines must
// submit Intents on inbox instead. h is ordinarily a *Model, or a
// specialization such as fsmodel.Model that embeds one.
func Run(ctx context.Context, inbox <-chan Intent, h Handlers) (err error) {
	for {
		select {
		case <-ctx.Done():
			return nil
		case in, ok := <-inbox:
			if !ok {
				return nil
			}
			if crashErr := dispatch(in, h); crashErr != nil {
				return crashErr
			}
		}
	}
}

func dispatch(in Intent, h Handlers) (crashErr error) {
	defer func() {
		if r := recover(); r != nil {
			internal, ok := r.(*apperrors.Internal)
			if !ok {
				panic(r)
			}
			logger.SessionErrorw("session crashed on invariant violation", "error", internal)
			crashErr = internal
		}
	}()
	in.apply(h)
	return nil
}
