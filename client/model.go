package client

import (
	"github.com/teranos/graphsync/apperrors"
	"github.com/teranos/graphsync/graph"
)

// Model is the client-side counterpart of session.Model: it owns one
// Graph mirror and the single server-revision counter every incoming
// frame must match exactly, in order.
type Model struct {
	graph     *Graph
	serverRev int64
}

// New constructs a client model with an empty mirror, expecting the first
// incoming frame to carry revision 0.
func New() *Model {
	return &Model{graph: NewGraph()}
}

// Graph returns the client-side mirror.
func (m *Model) Graph() *Graph { return m.graph }

// ServerRev returns the next revision this model expects to receive.
func (m *Model) ServerRev() int64 { return m.serverRev }

func (m *Model) checkRev(rev int64) error {
	if rev != m.serverRev {
		return apperrors.NewInvalidRevision(rev, m.serverRev)
	}
	m.serverRev = rev + 1
	return nil
}

// Nop applies an incoming nop frame: it consumes a revision but otherwise
// does nothing, the self-shaped fan-out's message to every non-originator.
func (m *Model) Nop(rev int64) error {
	return m.checkRev(rev)
}

// ApplyCreateNode applies an incoming createNode frame.
func (m *Model) ApplyCreateNode(id string, rev int64, origin *int64) error {
	if err := m.checkRev(rev); err != nil {
		return err
	}
	return m.graph.NodeCreated(id, rev, origin)
}

// ApplyRemoveNode applies an incoming removeNode frame.
func (m *Model) ApplyRemoveNode(id string, rev int64, origin *int64) error {
	if err := m.checkRev(rev); err != nil {
		return err
	}
	return m.graph.NodeRemoved(id, rev, origin)
}

// ApplyChangeState applies an incoming changeState frame.
func (m *Model) ApplyChangeState(id string, state map[string]interface{}, rev int64, origin *int64) error {
	if err := m.checkRev(rev); err != nil {
		return err
	}
	return m.graph.StateChanged(id, state, rev, origin)
}

// ApplyChangePorts applies an incoming changePorts frame.
func (m *Model) ApplyChangePorts(id string, ports []map[string]string, rev int64, origin *int64) error {
	if err := m.checkRev(rev); err != nil {
		return err
	}
	return m.graph.PortsChanged(id, ports, rev, origin)
}

// ApplyAddLink applies an incoming addLink frame.
func (m *Model) ApplyAddLink(key graph.LinkKey, rev int64, origin *int64) error {
	if err := m.checkRev(rev); err != nil {
		return err
	}
	return m.graph.LinkAdded(key, rev, origin)
}

// ApplyRemoveLink applies an incoming removeLink frame.
func (m *Model) ApplyRemoveLink(key graph.LinkKey, rev int64, origin *int64) error {
	if err := m.checkRev(rev); err != nil {
		return err
	}
	return m.graph.LinkRemoved(key, rev, origin)
}

// CreateNode issues a local createNode(id) intent at the given client
// revision counter (the caller owns and increments its own local counter;
// the model only tracks it against the repo for later reconciliation).
func (m *Model) CreateNode(id string, localRev int64) { m.graph.CreateNode(id, localRev) }

// RemoveNode issues a local removeNode(id) intent.
func (m *Model) RemoveNode(id string, localRev int64) { m.graph.RemoveNode(id, localRev) }

// ChangeState issues a local changeState(id, state) intent.
func (m *Model) ChangeState(id string, state map[string]interface{}, localRev int64) {
	m.graph.ChangeState(id, state, localRev)
}

// AddLink issues a local addLink(...) intent.
func (m *Model) AddLink(key graph.LinkKey, localRev int64) { m.graph.AddLink(key, localRev) }

// RemoveLink issues a local removeLink(...) intent.
func (m *Model) RemoveLink(key graph.LinkKey, localRev int64) { m.graph.RemoveLink(key, localRev) }
