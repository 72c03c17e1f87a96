// Package graph implements the in-memory multigraph of nodes, ports and
// links that a collaborative session authoritatively owns. It is a pure,
// synchronous storage layer — no networking, no concurrency control — the
// single-writer discipline is enforced by the caller (the session actor
// loop, see package session).
package graph

import "github.com/teranos/graphsync/apperrors"

// Port is an immutable (name, title) pair. Identity is the name, which must
// be unique within a node.
type Port struct {
	Name  string
	Title string
}

// Node is a mutable entity: an ordered sequence of ports (insertion order
// significant, names unique per node) and an opaque state map the graph
// treats as data.
type Node struct {
	id       string
	ports    []Port
	portIdx  map[string]int // name -> index into ports; kept in lockstep
	state    map[string]interface{}
}

// NewNode creates an empty node with no ports and an empty state map.
func NewNode(id string) *Node {
	return &Node{
		id:      id,
		ports:   nil,
		portIdx: make(map[string]int),
		state:   map[string]interface{}{},
	}
}

// ID returns the node's opaque identifier.
func (n *Node) ID() string { return n.id }

// HasPort reports whether a port with the given name exists.
func (n *Node) HasPort(name string) bool {
	_, ok := n.portIdx[name]
	return ok
}

// Port returns the port with the given name and whether it exists.
func (n *Node) Port(name string) (Port, bool) {
	i, ok := n.portIdx[name]
	if !ok {
		return Port{}, false
	}
	return n.ports[i], true
}

// Ports returns a snapshot of the node's ports in insertion order.
func (n *Node) Ports() []Port {
	out := make([]Port, len(n.ports))
	copy(out, n.ports)
	return out
}

// addPort inserts port at index (append to the tail when index < 0 or
// index >= current length). It emits nothing; Graph.AddPort emits
// change:ports(id).
func (n *Node) addPort(port Port, index int) {
	if index < 0 || index > len(n.ports) {
		index = len(n.ports)
	}
	n.ports = append(n.ports, Port{})
	copy(n.ports[index+1:], n.ports[index:])
	n.ports[index] = port
	n.reindexPorts()
}

// removePort deletes the named port, updating both the ordered slice and
// the name index together so the two never drift out of sync.
func (n *Node) removePort(name string) {
	i, ok := n.portIdx[name]
	if !ok {
		return
	}
	n.ports = append(n.ports[:i], n.ports[i+1:]...)
	n.reindexPorts()
}

func (n *Node) reindexPorts() {
	n.portIdx = make(map[string]int, len(n.ports))
	for i, p := range n.ports {
		n.portIdx[p.Name] = i
	}
}

// State returns the node's current opaque state map.
func (n *Node) State() map[string]interface{} { return n.state }

func (n *Node) setState(state map[string]interface{}) {
	n.state = state
}

// LinkKey identifies a directed link by its 4-tuple of endpoint ids/ports.
type LinkKey struct {
	StartID   string
	StartName string
	EndID     string
	EndName   string
}

// Link is an immutable directed edge between two named ports.
type Link struct {
	Key LinkKey
}

// Graph holds the authoritative multigraph: nodes, links, and the two
// secondary link indices keyed by endpoint id that make node-removal
// cascades O(degree) instead of O(|links|).
type Graph struct {
	emitter *Emitter

	nodes map[string]*Node
	links map[LinkKey]*Link

	// linksByStart/linksByEnd preserve insertion order of links so cascaded
	// removal during RemoveNode is deterministic (spec §4.3).
	linksByStart map[string][]LinkKey
	linksByEnd   map[string][]LinkKey

	rev int64
}

// New creates an empty graph with rev starting at 0.
func New() *Graph {
	return &Graph{
		emitter:      newEmitter(),
		nodes:        make(map[string]*Node),
		links:        make(map[LinkKey]*Link),
		linksByStart: make(map[string][]LinkKey),
		linksByEnd:   make(map[string][]LinkKey),
	}
}

// On subscribes to a storage event name ("node:add", "node:remove",
// "link:add", "link:remove", "change:ports", "change:state"). It returns an
// unsubscribe func.
func (g *Graph) On(name string, fn func(args ...interface{})) func() {
	return g.emitter.On(name, fn)
}

// Rev returns the current revision then increments it (post-increment
// semantics). Every outbound protocol message consumes exactly one rev.
func (g *Graph) Rev() int64 {
	old := g.rev
	g.rev++
	return old
}

// PeekRev returns the current revision without consuming it, for read-only
// uses that are not themselves an outbound protocol message (a join
// snapshot replay, diagnostics).
func (g *Graph) PeekRev() int64 { return g.rev }

// NodeIDs returns every node id. Order is unspecified; callers that need a
// stable join-snapshot order should sort it themselves.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}

// LinkKeys returns every link key. Order is unspecified.
func (g *Graph) LinkKeys() []LinkKey {
	keys := make([]LinkKey, 0, len(g.links))
	for k := range g.links {
		keys = append(keys, k)
	}
	return keys
}

// HasNode reports whether id identifies an existing node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// GetNode returns the node for id, panicking (an Internal invariant
// violation) if it is absent — callers must check HasNode or rely on the
// classifier having already confirmed existence.
func (g *Graph) GetNode(id string) *Node {
	n, ok := g.nodes[id]
	if !ok {
		panic(apperrors.NewInternal("get_node: no such node %q", id))
	}
	return n
}

// AddNode inserts node and emits node:add(id).
func (g *Graph) AddNode(node *Node) {
	g.nodes[node.id] = node
	g.emitter.Notify("node:add", node.id)
}

// RemoveNode deletes the node identified by id and emits node:remove(id).
// The caller must have already removed every incident link.
func (g *Graph) RemoveNode(id string) {
	delete(g.nodes, id)
	g.emitter.Notify("node:remove", id)
}

// AddPort appends (or inserts at index, when >= 0) a port on the node and
// emits change:ports(id).
func (g *Graph) AddPort(id string, port Port, index int) {
	g.GetNode(id).addPort(port, index)
	g.emitter.Notify("change:ports", id)
}

// RemovePort removes the named port from the node and emits
// change:ports(id).
func (g *Graph) RemovePort(id string, name string) {
	g.GetNode(id).removePort(name)
	g.emitter.Notify("change:ports", id)
}

// SetState replaces the node's opaque state and emits change:state(id).
func (g *Graph) SetState(id string, state map[string]interface{}) {
	g.GetNode(id).setState(state)
	g.emitter.Notify("change:state", id)
}

// HasLink reports whether the 4-tuple key identifies an existing link.
func (g *Graph) HasLink(key LinkKey) bool {
	_, ok := g.links[key]
	return ok
}

// AddLink inserts link, updating all three indices atomically, and emits
// link:add(key).
func (g *Graph) AddLink(link *Link) {
	key := link.Key
	g.links[key] = link
	g.linksByStart[key.StartID] = append(g.linksByStart[key.StartID], key)
	g.linksByEnd[key.EndID] = append(g.linksByEnd[key.EndID], key)
	g.emitter.Notify("link:add", key)
}

// RemoveLink deletes the link identified by key from all three indices and
// emits link:remove(key).
func (g *Graph) RemoveLink(key LinkKey) {
	delete(g.links, key)
	g.linksByStart[key.StartID] = removeKey(g.linksByStart[key.StartID], key)
	g.linksByEnd[key.EndID] = removeKey(g.linksByEnd[key.EndID], key)
	g.emitter.Notify("link:remove", key)
}

func removeKey(keys []LinkKey, target LinkKey) []LinkKey {
	for i, k := range keys {
		if k == target {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

// FindLinksStartingWith returns a stable snapshot of links whose start id
// is id, in insertion order, so callers may remove links while iterating.
func (g *Graph) FindLinksStartingWith(id string) []LinkKey {
	keys := g.linksByStart[id]
	out := make([]LinkKey, len(keys))
	copy(out, keys)
	return out
}

// FindLinksEndingWith returns a stable snapshot of links whose end id is
// id, in insertion order, so callers may remove links while iterating.
func (g *Graph) FindLinksEndingWith(id string) []LinkKey {
	keys := g.linksByEnd[id]
	out := make([]LinkKey, len(keys))
	copy(out, keys)
	return out
}
