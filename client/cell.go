// Package client implements the client-side graph mirror: the optimistic
// local copy of the server's authoritative graph, the conflict-branch
// bookkeeping that reconciles a server reply against the client's own
// speculative writes, and the revision-sequence verification that detects
// a desynchronized connection.
//
// Go has no sentinel "NOTHING" value distinct from every other value, so
// Cell tracks fill state with an explicit bool instead.
package client

import "github.com/teranos/graphsync/apperrors"

// Cell holds at most one write. Reading or overwriting an empty-vs-filled
// Cell incorrectly is a programming error, not a runtime condition a
// caller should recover from — both panic as *apperrors.Internal.
type Cell struct {
	filled bool
	value  interface{}
}

// Empty reports whether the cell has never been set.
func (c *Cell) Empty() bool { return !c.filled }

// Set fills the cell. Panics if the cell already holds a value — a given
// revision is written at most once.
func (c *Cell) Set(value interface{}) {
	if c.filled {
		panic(apperrors.NewInternal("cell: attempted to overwrite a filled cell"))
	}
	c.filled = true
	c.value = value
}

// Get returns the cell's value. Panics if the cell has never been set.
func (c *Cell) Get() interface{} {
	if !c.filled {
		panic(apperrors.NewInternal("cell: attempted to read an empty cell"))
	}
	return c.value
}
