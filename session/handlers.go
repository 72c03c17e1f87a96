package session

import (
	"sort"

	"github.com/teranos/graphsync/graph"
	"github.com/teranos/graphsync/graph/classify"
)

// CreateNode classifies and, if applicable, applies a createNode(id) intent.
//
// Confirm (node already exists): the reply is fanned out self-shaped —
// origin sees createNode with its revision echoed, everyone else sees nop.
// Classify.CreateNode never returns Cancel for this intent.
//
// Apply: the node is built by the configured NodeFactory, inserted, and
// three messages are fanned out all-shaped in order: createNode(id),
// changePorts(id, ports), changeState(id, state) — so every mirror, the
// originator's included, observes the node the same way.
func (m *Model) CreateNode(origin *Origin, id string) {
	switch classify.CreateNode(m.graph, id) {
	case classify.Confirm:
		m.callSelf(origin, "createNode", id)
	default: // Apply
		node := m.nodeFactory(id)
		m.graph.AddNode(node)
		m.callAll(origin, "createNode", id)
		m.callAll(nil, "changePorts", id, wirePorts(node.Ports()))
		m.callAll(nil, "changeState", id, node.State())
	}
}

// RemoveNode classifies and, if applicable, applies a removeNode(id)
// intent.
//
// Confirm (node already absent): self-shaped fan-out of removeNode(id).
//
// Cancel: never returned by classify.RemoveNode (removing an absent node is
// always a Confirm, never a contradiction), so this branch is not reached;
// it fans out the inverse createNode(id) self-shaped and never mutates
// graph state.
//
// Apply: every link incident to the node (both directions) is removed
// first, each fanned out all-shaped as removeLink, then the node itself is
// removed and removeNode(id) is fanned out all-shaped.
func (m *Model) RemoveNode(origin *Origin, id string) {
	switch classify.RemoveNode(m.graph, id) {
	case classify.Confirm:
		m.callSelf(origin, "removeNode", id)
	case classify.Cancel:
		m.callSelf(origin, "createNode", id)
	default: // Apply
		for _, key := range m.graph.FindLinksStartingWith(id) {
			m.graph.RemoveLink(key)
			m.callAll(nil, "removeLink", key.StartID, key.StartName, key.EndID, key.EndName)
		}
		for _, key := range m.graph.FindLinksEndingWith(id) {
			m.graph.RemoveLink(key)
			m.callAll(nil, "removeLink", key.StartID, key.StartName, key.EndID, key.EndName)
		}
		m.graph.RemoveNode(id)
		m.callAll(origin, "removeNode", id)
	}
}

// ChangeState classifies and, if applicable, applies a changeState(id,
// state) intent. There is no Confirm outcome — any state value on an
// existing node is applicable, even if it equals the current state.
//
// Cancel (node absent): self-shaped fan-out of changeState(id, nil) — there
// is no state to echo back, so the originator is told the change did not
// happen by replaying a nil state at its own revision.
//
// Apply: state is replaced and changeState(id, state) is fanned out
// all-shaped, carrying the node's state as stored (not the request's raw
// argument) so a specialization that rewrites state on the way in is
// reflected faithfully to every mirror.
func (m *Model) ChangeState(origin *Origin, id string, state map[string]interface{}) {
	switch m.changeStateClassifier(m.graph, id, state) {
	case classify.Cancel:
		m.callSelf(origin, "changeState", id, nil)
	default: // Apply
		m.graph.SetState(id, state)
		m.callAll(origin, "changeState", id, m.graph.GetNode(id).State())
	}
}

// AddLink classifies and, if applicable, applies an addLink(...) intent.
//
// Cancel (missing endpoint node or port): self-shaped fan-out of the
// inverse removeLink(...), telling the originator the link it asked for
// cannot exist.
//
// Confirm (identical link already exists): self-shaped fan-out of
// addLink(...).
//
// Apply: the link is inserted and addLink(...) is fanned out all-shaped.
func (m *Model) AddLink(origin *Origin, key graph.LinkKey) {
	switch classify.AddLink(m.graph, key) {
	case classify.Cancel:
		m.callSelf(origin, "removeLink", key.StartID, key.StartName, key.EndID, key.EndName)
	case classify.Confirm:
		m.callSelf(origin, "addLink", key.StartID, key.StartName, key.EndID, key.EndName)
	default: // Apply
		m.graph.AddLink(&graph.Link{Key: key})
		m.callAll(origin, "addLink", key.StartID, key.StartName, key.EndID, key.EndName)
	}
}

// RemoveLink classifies and, if applicable, applies a removeLink(...)
// intent.
//
// Confirm (endpoint node, port, or the link itself already absent):
// self-shaped fan-out of removeLink(...).
//
// Cancel: never returned by classify.RemoveLink — removing a link that
// cannot exist is always a Confirm — so this branch is not reached; it
// fans out the inverse addLink(...) self-shaped.
//
// Apply: the link is deleted and removeLink(...) is fanned out all-shaped.
func (m *Model) RemoveLink(origin *Origin, key graph.LinkKey) {
	switch classify.RemoveLink(m.graph, key) {
	case classify.Confirm:
		m.callSelf(origin, "removeLink", key.StartID, key.StartName, key.EndID, key.EndName)
	case classify.Cancel:
		m.callSelf(origin, "addLink", key.StartID, key.StartName, key.EndID, key.EndName)
	default: // Apply
		m.graph.RemoveLink(key)
		m.callAll(origin, "removeLink", key.StartID, key.StartName, key.EndID, key.EndName)
	}
}

// join replays the current graph to p as a snapshot — one createNode,
// changePorts and changeState per existing node, then one addLink per
// existing link — before registering p for future fan-out. The replay
// messages are sent directly to p's outbound sink rather than through
// callAll/callSelf: they are not the result of a classified intent, no
// other participant is involved, and no revision is consumed (the join
// snapshot is stamped with the session's current revision, read-only).
func (m *Model) join(p *Participant) {
	rev := m.currentRev()

	ids := m.graph.NodeIDs()
	sort.Strings(ids)
	for _, id := range ids {
		node := m.graph.GetNode(id)
		send(p, "createNode", []interface{}{id}, rev)
		send(p, "changePorts", []interface{}{id, wirePorts(node.Ports())}, rev)
		send(p, "changeState", []interface{}{id, node.State()}, rev)
	}

	keys := m.graph.LinkKeys()
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].StartID != keys[j].StartID {
			return keys[i].StartID < keys[j].StartID
		}
		if keys[i].StartName != keys[j].StartName {
			return keys[i].StartName < keys[j].StartName
		}
		if keys[i].EndID != keys[j].EndID {
			return keys[i].EndID < keys[j].EndID
		}
		return keys[i].EndName < keys[j].EndName
	})
	for _, key := range keys {
		send(p, "addLink", []interface{}{key.StartID, key.StartName, key.EndID, key.EndName}, rev)
	}

	m.AddParticipant(p)
}

func send(p *Participant, name string, args []interface{}, rev int64) {
	_ = p.send(name, args, Kwargs{"rev": rev})
}
