// Package fsmodel specializes session.Model into the filesystem
// materializer: a createNode always builds a fresh Root node, and a
// changeState on a Root node that supplies a new path walks the directory
// tree under that path and rebuilds the node's subgraph to mirror it. The
// directory walk itself is a one-shot os.ReadDir, not a long-lived watch.
package fsmodel

import (
	"os"
	"path/filepath"

	"github.com/teranos/graphsync/graph"
	"github.com/teranos/graphsync/internal/idgen"
	"github.com/teranos/graphsync/logger"
	"github.com/teranos/graphsync/session"
)

// Model overrides session.Model's CreateNode and ChangeState handlers;
// RemoveNode, AddLink and RemoveLink are inherited unchanged, since the
// materializer never alters their semantics.
type Model struct {
	*session.Model
}

// New constructs an empty filesystem-materializer session.
func New() *Model {
	return &Model{Model: session.New()}
}

// CreateNode ignores the classifier entirely: every createNode intent
// (re)builds a fresh Root node with a nil path and no ports, overwriting
// whatever was there. A session has exactly one root in practice, but
// nothing here enforces that — the protocol layer is expected to send at
// most one createNode per session.
func (m *Model) CreateNode(origin *session.Origin, id string) {
	node := graph.NewNode(id)
	m.Graph().AddNode(node)
	m.Graph().SetState(id, map[string]interface{}{
		"__type__": "Root",
		"path":     nil,
	})

	m.FanOutAll(origin, "createNode", id)
	m.FanOutAll(nil, "changePorts", id, session.WirePorts(node.Ports()))
	m.FanOutAll(nil, "changeState", id, m.Graph().GetNode(id).State())
}

// ChangeState accepts a new path on an existing Root node only — any other
// request (node absent, not a Root, attempting to change __type__, or
// omitting path) is refused with a self-shaped changeState(id, nil). On
// acceptance it cascades every node and link reachable from id, re-walks
// the new path from scratch, and reports the rebuilt ports and the node's
// final state (type preserved, path updated) to every participant.
func (m *Model) ChangeState(origin *session.Origin, id string, state map[string]interface{}) {
	if !m.acceptsPath(id, state) {
		m.FanOutSelf(origin, "changeState", id, nil)
		return
	}

	node := m.Graph().GetNode(id)
	finalState := cloneState(node.State())
	finalState["path"] = state["path"]

	nodeIDs, linkKeys := m.walk(id)
	for _, key := range linkKeys {
		m.Graph().RemoveLink(key)
		m.FanOutAll(nil, "removeLink", key.StartID, key.StartName, key.EndID, key.EndName)
	}
	for _, subID := range nodeIDs {
		if subID == id {
			continue
		}
		m.Graph().RemoveNode(subID)
		m.FanOutAll(nil, "removeNode", subID)
	}
	for _, port := range m.Graph().GetNode(id).Ports() {
		m.Graph().RemovePort(id, port.Name)
	}

	m.fillNode(state["path"].(string), id)

	m.FanOutAll(nil, "changePorts", id, session.WirePorts(m.Graph().GetNode(id).Ports()))
	m.Graph().SetState(id, finalState)
	m.FanOutAll(origin, "changeState", id, m.Graph().GetNode(id).State())
}

func (m *Model) acceptsPath(id string, state map[string]interface{}) bool {
	if !m.Graph().HasNode(id) {
		return false
	}
	old := m.Graph().GetNode(id).State()
	if typ, _ := old["__type__"].(string); typ != "Root" {
		return false
	}
	if _, hasType := state["__type__"]; hasType {
		return false
	}
	path, hasPath := state["path"]
	if !hasPath {
		return false
	}
	_, isString := path.(string)
	return isString
}

func cloneState(state map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(state))
	for k, v := range state {
		out[k] = v
	}
	return out
}

// walk returns every node reachable from id (id included) following
// outgoing links transitively, and every link encountered along the way,
// both in the deterministic order the traversal visits them — matching
// FSGraph.walk.
func (m *Model) walk(id string) (nodeIDs []string, linkKeys []graph.LinkKey) {
	seenNodes := map[string]bool{}
	seenLinks := map[graph.LinkKey]bool{}
	var visit func(string)
	visit = func(current string) {
		if seenNodes[current] {
			return
		}
		seenNodes[current] = true
		nodeIDs = append(nodeIDs, current)
		for _, key := range m.Graph().FindLinksStartingWith(current) {
			if !seenLinks[key] {
				seenLinks[key] = true
				linkKeys = append(linkKeys, key)
			}
			visit(key.EndID)
		}
	}
	visit(id)
	return nodeIDs, linkKeys
}

// fillNode materializes every directory entry under path as a child of
// rootID: a File or Folder node linked in via a port named after the
// entry, folders recursing before their own changePorts fan-out. Entries
// the OS refuses to read are logged and skipped rather than aborting the
// whole walk.
func (m *Model) fillNode(path, rootID string) {
	entries, err := os.ReadDir(path)
	if err != nil {
		logger.MaterializeDebugw("failed to read directory", "path", path, "error", err)
		return
	}

	for _, entry := range entries {
		childID := idgen.NewNodeID()
		m.Graph().AddNode(graph.NewNode(childID))
		m.FanOutAll(nil, "createNode", childID)

		subpath := filepath.Join(path, entry.Name())
		var state map[string]interface{}
		if entry.IsDir() {
			state = map[string]interface{}{"__type__": "Folder", "path": subpath}
			m.Graph().SetState(childID, state)
			m.fillNode(subpath, childID)
		} else {
			state = map[string]interface{}{"__type__": "File", "path": subpath}
			m.Graph().SetState(childID, state)
		}
		m.FanOutAll(nil, "changeState", childID, m.Graph().GetNode(childID).State())

		m.Graph().AddPort(childID, graph.Port{Name: "in"}, -1)
		m.Graph().AddPort(rootID, graph.Port{Name: entry.Name(), Title: entry.Name()}, -1)
		m.FanOutAll(nil, "changePorts", childID, session.WirePorts(m.Graph().GetNode(childID).Ports()))

		key := graph.LinkKey{StartID: rootID, StartName: entry.Name(), EndID: childID, EndName: "in"}
		m.Graph().AddLink(&graph.Link{Key: key})
		m.FanOutAll(nil, "addLink", key.StartID, key.StartName, key.EndID, key.EndName)
	}
}
