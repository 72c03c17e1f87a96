// Package classify implements the conflict classifier: a set of pure
// predicates over graph state that decide, for each intent kind, whether
// the observed state already satisfies the intent's postcondition
// (Confirm), contradicts its precondition (Cancel), or whether the intent
// should be applied (Apply).
//
// Confirm is reserved for idempotent re-issuance of an intent; Cancel for
// contradiction. Neither is an error — both are ordinary control-flow
// outcomes the session fans out to participants (see package session).
package classify

import "github.com/teranos/graphsync/graph"

// Result is the three-valued classifier outcome.
type Result int

const (
	Apply Result = iota
	Confirm
	Cancel
)

func (r Result) String() string {
	switch r {
	case Apply:
		return "Apply"
	case Confirm:
		return "Confirm"
	case Cancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// CreateNode classifies a createNode(id) intent: Confirm if the node
// already exists, else Apply.
func CreateNode(g *graph.Graph, id string) Result {
	if g.HasNode(id) {
		return Confirm
	}
	return Apply
}

// RemoveNode classifies a removeNode(id) intent: Confirm if the node is
// already absent, else Apply.
func RemoveNode(g *graph.Graph, id string) Result {
	if !g.HasNode(id) {
		return Confirm
	}
	return Apply
}

// ChangeState classifies a changeState(id, state) intent: Cancel if the
// node is absent, else Apply. There is no Confirm case — any state value
// on an existing node is applicable.
func ChangeState(g *graph.Graph, id string) Result {
	if !g.HasNode(id) {
		return Cancel
	}
	return Apply
}

// AddLink classifies an addLink(...) intent: Cancel if either endpoint
// node or port is absent (the precondition for creation cannot be
// satisfied), Confirm if an identical link already exists, else Apply.
func AddLink(g *graph.Graph, key graph.LinkKey) Result {
	if !g.HasNode(key.StartID) {
		return Cancel
	}
	if !g.HasNode(key.EndID) {
		return Cancel
	}
	if !g.GetNode(key.StartID).HasPort(key.StartName) {
		return Cancel
	}
	if !g.GetNode(key.EndID).HasPort(key.EndName) {
		return Cancel
	}
	if g.HasLink(key) {
		return Confirm
	}
	return Apply
}

// RemoveLink classifies a removeLink(...) intent: Confirm if either
// endpoint node, either endpoint port, or the link itself is absent (the
// link cannot exist, so the postcondition is already met), else Apply.
//
// Note the asymmetry with AddLink: a missing node/port is a Cancel when
// creating a link (the precondition can't be satisfied) but a Confirm when
// removing one (the link necessarily doesn't exist either).
func RemoveLink(g *graph.Graph, key graph.LinkKey) Result {
	if !g.HasNode(key.StartID) {
		return Confirm
	}
	if !g.HasNode(key.EndID) {
		return Confirm
	}
	if !g.GetNode(key.StartID).HasPort(key.StartName) {
		return Confirm
	}
	if !g.GetNode(key.EndID).HasPort(key.EndName) {
		return Confirm
	}
	if !g.HasLink(key) {
		return Confirm
	}
	return Apply
}
