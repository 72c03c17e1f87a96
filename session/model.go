// Package session implements the authoritative collaborative session: one
// in-memory graph, the set of connected participants, and the fan-out rules
// that turn a classified intent into the ordered set of outbound frames the
// protocol requires.
//
// A Model is single-writer: every exported mutator assumes it runs on the
// session's one actor goroutine (see Run). Callers outside that goroutine
// must route through an Intent sent on the inbox channel instead of calling
// the mutators directly — that discipline is what lets the graph and
// participant map stay lock-free.
package session

import (
	"github.com/teranos/graphsync/graph"
	"github.com/teranos/graphsync/graph/classify"
	"github.com/teranos/graphsync/logger"
)

// NodeFactory builds the Node a createNode(id) intent materializes when the
// classifier says Apply. The default factory returns a bare node with no
// ports; WithNodeFactory supplies another. The filesystem materializer does
// not use it: it overrides CreateNode itself.
type NodeFactory func(id string) *graph.Node

func defaultNodeFactory(id string) *graph.Node {
	return graph.NewNode(id)
}

// ChangeStateClassifier is the capability point a specialization overrides
// to add preconditions the base classify.ChangeState can't express. The
// filesystem materializer does not use it: it checks its own Root/path
// precondition inside its ChangeState override. The default ignores state
// entirely and defers to classify.ChangeState.
type ChangeStateClassifier func(g *graph.Graph, id string, state map[string]interface{}) classify.Result

func defaultChangeStateClassifier(g *graph.Graph, id string, _ map[string]interface{}) classify.Result {
	return classify.ChangeState(g, id)
}

// Model owns one session's graph and connected participants, and implements
// the five intent handlers the protocol defines.
type Model struct {
	graph        *graph.Graph
	participants map[string]*Participant
	order        []string // insertion order, for deterministic fan-out

	nodeFactory           NodeFactory
	changeStateClassifier ChangeStateClassifier
}

// Option configures a Model at construction time.
type Option func(*Model)

// WithNodeFactory overrides the default bare-node factory.
func WithNodeFactory(f NodeFactory) Option {
	return func(m *Model) { m.nodeFactory = f }
}

// WithChangeStateClassifier overrides the default state-blind classifier.
func WithChangeStateClassifier(f ChangeStateClassifier) Option {
	return func(m *Model) { m.changeStateClassifier = f }
}

// New constructs an empty session over a freshly created graph.
func New(opts ...Option) *Model {
	m := &Model{
		graph:                 graph.New(),
		participants:          make(map[string]*Participant),
		nodeFactory:           defaultNodeFactory,
		changeStateClassifier: defaultChangeStateClassifier,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Graph exposes the session's underlying storage for read-only inspection
// (snapshot dumps on join, tests). Mutating it outside a Model method
// defeats the single-writer discipline — don't.
func (m *Model) Graph() *graph.Graph { return m.graph }

// AddParticipant registers p and assigns it the current graph state; it
// does not itself send a snapshot — the caller's join handshake does that.
func (m *Model) AddParticipant(p *Participant) {
	if _, exists := m.participants[p.ID]; exists {
		return
	}
	m.participants[p.ID] = p
	m.order = append(m.order, p.ID)
}

// RemoveParticipant deregisters a participant; future fan-out simply skips
// it. Safe to call more than once.
func (m *Model) RemoveParticipant(id string) {
	if _, exists := m.participants[id]; !exists {
		return
	}
	delete(m.participants, id)
	for i, pid := range m.order {
		if pid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Participants returns a snapshot of connected participants in join order.
func (m *Model) Participants() []*Participant {
	out := make([]*Participant, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.participants[id])
	}
	return out
}

// callSelf sends name to origin's participant only (with the client's
// revision echoed back); every other participant receives a no-op "nop"
// carrying just the new revision. This is the Confirm/Cancel fan-out shape
// — replies that do not change graph state have no reason to reach anyone
// but the client that (redundantly, or mistakenly) issued the intent.
func (m *Model) callSelf(origin *Origin, name string, args ...interface{}) {
	rev := m.graph.Rev()
	for _, id := range m.order {
		p := m.participants[id]
		if origin != nil && origin.User == p {
			p.send(name, args, Kwargs{"rev": rev, "origin": origin.ClientRev})
			continue
		}
		if err := p.send("nop", nil, Kwargs{"rev": rev}); err != nil {
			logger.Warnw("fan-out to participant failed", "participant", id, "error", err)
		}
	}
}

// callAll sends name to every participant; origin's participant gets its
// client revision echoed, everyone else gets the plain message. This is the
// Apply fan-out shape — every participant's mirror must observe the same
// state change, in the same revision order.
func (m *Model) callAll(origin *Origin, name string, args ...interface{}) {
	rev := m.graph.Rev()
	for _, id := range m.order {
		p := m.participants[id]
		kw := Kwargs{"rev": rev}
		if origin != nil && origin.User == p {
			kw["origin"] = origin.ClientRev
		}
		if err := p.send(name, args, kw); err != nil {
			logger.Warnw("fan-out to participant failed", "participant", id, "error", err)
		}
	}
}

func (m *Model) currentRev() int64 { return m.graph.PeekRev() }

// FanOutAll exposes the all-shaped fan-out (the Apply shape) to
// specializations in other packages — the filesystem materializer's
// cascaded writes, in particular, need to emit it for intents the base
// handlers never see directly.
func (m *Model) FanOutAll(origin *Origin, name string, args ...interface{}) {
	m.callAll(origin, name, args...)
}

// FanOutSelf exposes the self-shaped fan-out (the Confirm/Cancel shape) to
// specializations in other packages.
func (m *Model) FanOutSelf(origin *Origin, name string, args ...interface{}) {
	m.callSelf(origin, name, args...)
}

// WirePorts renders a node's ports as the wire-format list of {name, title}
// records the protocol's changePorts message carries.
func WirePorts(ports []graph.Port) []map[string]string {
	return wirePorts(ports)
}

func wirePorts(ports []graph.Port) []map[string]string {
	out := make([]map[string]string, len(ports))
	for i, p := range ports {
		out[i] = map[string]string{"name": p.Name, "title": p.Title}
	}
	return out
}
