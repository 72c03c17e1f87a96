package client

// Branch is a revision-indexed sequence of Cells: one value per revision
// number, written at most once per revision.
type Branch struct {
	cells map[int64]*Cell
}

// NewBranch constructs an empty branch.
func NewBranch() *Branch {
	return &Branch{cells: make(map[int64]*Cell)}
}

func (b *Branch) cell(rev int64) *Cell {
	c, ok := b.cells[rev]
	if !ok {
		c = &Cell{}
		b.cells[rev] = c
	}
	return c
}

// Add writes value at rev. Panics (via Cell.Set) if rev was already written.
func (b *Branch) Add(rev int64, value interface{}) {
	b.cell(rev).Set(value)
}

// Get reads the value written at rev. Panics (via Cell.Get) if rev was
// never written.
func (b *Branch) Get(rev int64) interface{} {
	return b.cell(rev).Get()
}

// Top returns the highest revision written to this branch, and false if
// the branch is empty.
func (b *Branch) Top() (int64, bool) {
	if len(b.cells) == 0 {
		return 0, false
	}
	var top int64
	first := true
	for rev := range b.cells {
		if first || rev > top {
			top = rev
			first = false
		}
	}
	return top, true
}
