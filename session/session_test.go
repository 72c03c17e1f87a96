package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/graphsync/graph"
)

// recordingOutbound captures every frame sent to it, in order, for
// assertion. It never errors — session fan-out is not expected to fail in
// these tests.
type recordingOutbound struct {
	frames []frame
}

type frame struct {
	name   string
	args   []interface{}
	kwargs Kwargs
}

func (r *recordingOutbound) Send(name string, args []interface{}, kwargs Kwargs) error {
	r.frames = append(r.frames, frame{name: name, args: args, kwargs: kwargs})
	return nil
}

func newParticipant(id string) (*Participant, *recordingOutbound) {
	out := &recordingOutbound{}
	return NewParticipant(id, id, out), out
}

func TestCreateNodeApplyFansOutThreeMessagesToAllParticipants(t *testing.T) {
	m := New()
	alice, aliceOut := newParticipant("alice")
	bob, bobOut := newParticipant("bob")
	m.AddParticipant(alice)
	m.AddParticipant(bob)

	origin := &Origin{User: alice, ClientRev: 7}
	m.CreateNode(origin, "n1")

	require.Len(t, aliceOut.frames, 3)
	assert.Equal(t, "createNode", aliceOut.frames[0].name)
	assert.Equal(t, int64(7), aliceOut.frames[0].kwargs["origin"])
	assert.Equal(t, "changePorts", aliceOut.frames[1].name)
	assert.NotContains(t, aliceOut.frames[1].kwargs, "origin")
	assert.Equal(t, "changeState", aliceOut.frames[2].name)

	require.Len(t, bobOut.frames, 3)
	assert.Equal(t, "createNode", bobOut.frames[0].name)
	assert.NotContains(t, bobOut.frames[0].kwargs, "origin")

	assert.True(t, m.Graph().HasNode("n1"))
}

func TestCreateNodeConfirmFansOutSelfShaped(t *testing.T) {
	m := New()
	alice, aliceOut := newParticipant("alice")
	bob, bobOut := newParticipant("bob")
	m.AddParticipant(alice)
	m.AddParticipant(bob)
	m.CreateNode(nil, "n1")
	aliceOut.frames = nil
	bobOut.frames = nil

	origin := &Origin{User: alice, ClientRev: 3}
	m.CreateNode(origin, "n1")

	require.Len(t, aliceOut.frames, 1)
	assert.Equal(t, "createNode", aliceOut.frames[0].name)
	assert.Equal(t, int64(3), aliceOut.frames[0].kwargs["origin"])

	require.Len(t, bobOut.frames, 1)
	assert.Equal(t, "nop", bobOut.frames[0].name)
}

func TestRemoveNodeCascadesIncidentLinks(t *testing.T) {
	m := New()
	alice, aliceOut := newParticipant("alice")
	m.AddParticipant(alice)

	m.CreateNode(nil, "a")
	m.CreateNode(nil, "b")
	m.graph.AddPort("a", graph.Port{Name: "out"}, -1)
	m.graph.AddPort("b", graph.Port{Name: "in"}, -1)
	key := graph.LinkKey{StartID: "a", StartName: "out", EndID: "b", EndName: "in"}
	m.AddLink(nil, key)

	aliceOut.frames = nil
	m.RemoveNode(&Origin{User: alice, ClientRev: 1}, "a")

	require.False(t, m.Graph().HasLink(key))
	require.False(t, m.Graph().HasNode("a"))

	var names []string
	for _, f := range aliceOut.frames {
		names = append(names, f.name)
	}
	assert.Equal(t, []string{"removeLink", "removeNode"}, names)
}

func TestChangeStateCancelsOnMissingNode(t *testing.T) {
	m := New()
	alice, aliceOut := newParticipant("alice")
	m.AddParticipant(alice)

	m.ChangeState(&Origin{User: alice, ClientRev: 2}, "ghost", map[string]interface{}{"x": 1})

	require.Len(t, aliceOut.frames, 1)
	assert.Equal(t, "changeState", aliceOut.frames[0].name)
	assert.Nil(t, aliceOut.frames[0].args[1])
}

func TestAddLinkCancelsOnMissingEndpoint(t *testing.T) {
	m := New()
	alice, aliceOut := newParticipant("alice")
	m.AddParticipant(alice)
	m.CreateNode(nil, "a")
	m.graph.AddPort("a", graph.Port{Name: "out"}, -1)
	aliceOut.frames = nil

	key := graph.LinkKey{StartID: "a", StartName: "out", EndID: "missing", EndName: "in"}
	m.AddLink(&Origin{User: alice, ClientRev: 9}, key)

	require.Len(t, aliceOut.frames, 1)
	assert.Equal(t, "removeLink", aliceOut.frames[0].name)
	assert.False(t, m.Graph().HasLink(key))
}

func TestAddLinkThenRemoveLinkRoundTrips(t *testing.T) {
	m := New()
	alice, aliceOut := newParticipant("alice")
	m.AddParticipant(alice)
	m.CreateNode(nil, "a")
	m.CreateNode(nil, "b")
	m.graph.AddPort("a", graph.Port{Name: "out"}, -1)
	m.graph.AddPort("b", graph.Port{Name: "in"}, -1)
	key := graph.LinkKey{StartID: "a", StartName: "out", EndID: "b", EndName: "in"}
	aliceOut.frames = nil

	m.AddLink(&Origin{User: alice, ClientRev: 1}, key)
	require.True(t, m.Graph().HasLink(key))

	m.RemoveLink(&Origin{User: alice, ClientRev: 2}, key)
	assert.False(t, m.Graph().HasLink(key))

	m.RemoveLink(&Origin{User: alice, ClientRev: 3}, key)
	require.Len(t, aliceOut.frames, 3)
	assert.Equal(t, "removeLink", aliceOut.frames[2].name) // confirm of the second removal
}

func TestJoinReplaysSnapshotThenRegistersParticipant(t *testing.T) {
	m := New()
	m.CreateNode(nil, "a")
	m.CreateNode(nil, "b")
	m.graph.AddPort("a", graph.Port{Name: "out"}, -1)
	m.graph.AddPort("b", graph.Port{Name: "in"}, -1)
	m.AddLink(nil, graph.LinkKey{StartID: "a", StartName: "out", EndID: "b", EndName: "in"})

	newcomer, out := newParticipant("carol")
	m.join(newcomer)

	require.Len(t, out.frames, 7) // 2 nodes * 3 + 1 link
	assert.Equal(t, "createNode", out.frames[0].name)
	assert.Equal(t, "addLink", out.frames[6].name)
	assert.Contains(t, m.Participants(), newcomer)
}

func TestCustomNodeFactoryIsUsedOnApply(t *testing.T) {
	var used bool
	m := New(WithNodeFactory(func(id string) *graph.Node {
		used = true
		n := graph.NewNode(id)
		return n
	}))
	m.CreateNode(nil, "n1")
	assert.True(t, m.Graph().HasNode("n1"))
	assert.True(t, used)
}
