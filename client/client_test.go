package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/graphsync/graph"
)

func TestCellPanicsOnDoubleSetAndEmptyGet(t *testing.T) {
	c := &Cell{}
	assert.True(t, c.Empty())
	assert.Panics(t, func() { c.Get() })

	c.Set("x")
	assert.False(t, c.Empty())
	assert.Equal(t, "x", c.Get())
	assert.Panics(t, func() { c.Set("y") })
}

func TestBranchTop(t *testing.T) {
	b := NewBranch()
	_, ok := b.Top()
	assert.False(t, ok)

	b.Add(5, "a")
	b.Add(2, "b")
	top, ok := b.Top()
	require.True(t, ok)
	assert.Equal(t, int64(5), top)
}

func TestRepoResolveMatchesFIFOOrder(t *testing.T) {
	r := NewRepo()
	r.Initiate(1, Created)
	r.Initiate(2, Removed)

	require.NoError(t, r.Resolve(10, 1, Created))
	require.NoError(t, r.Resolve(11, 2, Removed))
	assert.Equal(t, 0, r.Pending())
}

func TestRepoResolveMismatchIsAnError(t *testing.T) {
	r := NewRepo()
	r.Initiate(1, Created)

	err := r.Resolve(10, 99, Created)
	assert.Error(t, err)
}

func TestApplyCreateNodeConsumesRevInOrder(t *testing.T) {
	m := New()
	require.NoError(t, m.ApplyCreateNode("n1", 0, nil))
	assert.Equal(t, int64(1), m.ServerRev())

	err := m.ApplyCreateNode("n2", 5, nil)
	assert.Error(t, err)
}

func TestApplyCreateNodeWithOriginResolvesLocalIntent(t *testing.T) {
	m := New()
	m.CreateNode("n1", 0) // local speculative write at local rev 0

	require.NoError(t, m.ApplyCreateNode("n1", 0, int64Ptr(0)))
	assert.Equal(t, 0, m.Graph().NodeRepo("n1").Pending())
}

func TestDispatchUnknownCommandIsInvalidCommand(t *testing.T) {
	m := New()
	err := m.Dispatch("bogus", nil, map[string]interface{}{"rev": int64(0)})
	assert.Error(t, err)
}

func TestDispatchAddLinkRoundTrip(t *testing.T) {
	m := New()
	key := graph.LinkKey{StartID: "a", StartName: "out", EndID: "b", EndName: "in"}

	err := m.Dispatch("addLink", []interface{}{"a", "out", "b", "in"}, map[string]interface{}{"rev": int64(0)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ServerRev())
	assert.Equal(t, 0, m.Graph().LinkRepo(key).Pending())
}

func int64Ptr(v int64) *int64 { return &v }
