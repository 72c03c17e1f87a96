package client

import "github.com/teranos/graphsync/graph"

// Existence is the value a node/link repo stores: whether the entity was
// created or removed at that revision. A dedicated type reads better at
// call sites than a bare bool (the original Python used an Enum for the
// same reason).
type Existence bool

const (
	Created Existence = true
	Removed Existence = false
)

// Graph mirrors the server's authoritative graph structurally: one Repo
// per node, one per node's port list, one per node's state, one per link.
// Ports and state are tracked separately — unlike the original Python,
// which collapsed both into a single per-id repo and silently let a
// changePorts and a changeState on the same node clobber each other's
// conflict-branch bookkeeping.
type Graph struct {
	nodes  map[string]*Repo
	ports  map[string]*Repo
	states map[string]*Repo
	links  map[graph.LinkKey]*Repo
}

// NewGraph constructs an empty client-side mirror.
func NewGraph() *Graph {
	return &Graph{
		nodes:  make(map[string]*Repo),
		ports:  make(map[string]*Repo),
		states: make(map[string]*Repo),
		links:  make(map[graph.LinkKey]*Repo),
	}
}

func (g *Graph) nodeRepo(id string) *Repo { return repoFor(g.nodes, id) }
func (g *Graph) portRepo(id string) *Repo { return repoFor(g.ports, id) }
func (g *Graph) stateRepo(id string) *Repo { return repoFor(g.states, id) }
func (g *Graph) linkRepo(key graph.LinkKey) *Repo { return repoForKey(g.links, key) }

func repoFor(m map[string]*Repo, key string) *Repo {
	r, ok := m[key]
	if !ok {
		r = NewRepo()
		m[key] = r
	}
	return r
}

func repoForKey(m map[graph.LinkKey]*Repo, key graph.LinkKey) *Repo {
	r, ok := m[key]
	if !ok {
		r = NewRepo()
		m[key] = r
	}
	return r
}

// NodeRepo exposes a node's repo for read-only inspection (e.g. rendering
// a pending/confirmed indicator in a UI).
func (g *Graph) NodeRepo(id string) *Repo { return g.nodeRepo(id) }

// LinkRepo exposes a link's repo for read-only inspection.
func (g *Graph) LinkRepo(key graph.LinkKey) *Repo { return g.linkRepo(key) }

// --- outgoing: the client's own speculative intents -----------------------

// CreateNode records a local createNode(id) intent at rev.
func (g *Graph) CreateNode(id string, rev int64) { g.nodeRepo(id).Initiate(rev, Created) }

// RemoveNode records a local removeNode(id) intent at rev.
func (g *Graph) RemoveNode(id string, rev int64) { g.nodeRepo(id).Initiate(rev, Removed) }

// ChangeState records a local changeState(id, state) intent at rev.
func (g *Graph) ChangeState(id string, state map[string]interface{}, rev int64) {
	g.stateRepo(id).Initiate(rev, state)
}

// AddLink records a local addLink(...) intent at rev.
func (g *Graph) AddLink(key graph.LinkKey, rev int64) { g.linkRepo(key).Initiate(rev, Created) }

// RemoveLink records a local removeLink(...) intent at rev.
func (g *Graph) RemoveLink(key graph.LinkKey, rev int64) { g.linkRepo(key).Initiate(rev, Removed) }

// --- incoming: frames received from the server -----------------------------

func apply(r *Repo, rev int64, origin *int64, value interface{}) error {
	if origin != nil {
		return r.Resolve(rev, *origin, value)
	}
	r.Store(rev, value)
	return nil
}

// NodeCreated applies an incoming createNode frame.
func (g *Graph) NodeCreated(id string, rev int64, origin *int64) error {
	return apply(g.nodeRepo(id), rev, origin, Created)
}

// NodeRemoved applies an incoming removeNode frame.
func (g *Graph) NodeRemoved(id string, rev int64, origin *int64) error {
	return apply(g.nodeRepo(id), rev, origin, Removed)
}

// PortsChanged applies an incoming changePorts frame.
func (g *Graph) PortsChanged(id string, ports []map[string]string, rev int64, origin *int64) error {
	return apply(g.portRepo(id), rev, origin, ports)
}

// StateChanged applies an incoming changeState frame.
func (g *Graph) StateChanged(id string, state map[string]interface{}, rev int64, origin *int64) error {
	return apply(g.stateRepo(id), rev, origin, state)
}

// LinkAdded applies an incoming addLink frame.
func (g *Graph) LinkAdded(key graph.LinkKey, rev int64, origin *int64) error {
	return apply(g.linkRepo(key), rev, origin, Created)
}

// LinkRemoved applies an incoming removeLink frame.
func (g *Graph) LinkRemoved(key graph.LinkKey, rev int64, origin *int64) error {
	return apply(g.linkRepo(key), rev, origin, Removed)
}
