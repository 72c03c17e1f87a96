package client

import "github.com/teranos/graphsync/apperrors"

// Repo tracks one entity's (a node's, a port list's, a state value's, a
// link's) observed history across two branches: Their (server-confirmed
// writes, both echoed and foreign) and a conflict branch holding the
// client's own speculative writes until the server confirms or cancels
// them. Unresolved holds, in FIFO order, the client revisions still
// awaiting resolution.
type Repo struct {
	Their      *Branch
	conflict   *Branch
	unresolved []int64
}

// NewRepo constructs an empty repo.
func NewRepo() *Repo {
	return &Repo{Their: NewBranch(), conflict: NewBranch()}
}

// Initiate records a speculative local write: value goes on the conflict
// branch at rev, and rev is queued as the next expected origin echo.
func (r *Repo) Initiate(rev int64, value interface{}) {
	r.conflict.Add(rev, value)
	r.unresolved = append(r.unresolved, rev)
}

// Store records a write the server made on some other participant's
// behalf (no origin echo expected) directly onto Their.
func (r *Repo) Store(rev int64, value interface{}) {
	r.Their.Add(rev, value)
}

// Resolve records the server's echo of one of this client's own writes:
// value goes on Their at rev, and origin must match the oldest unresolved
// revision in FIFO order — a mismatch means the server and client have
// diverged on which write is being acknowledged, and the connection can no
// longer be trusted.
func (r *Repo) Resolve(rev int64, origin int64, value interface{}) error {
	r.Their.Add(rev, value)
	if len(r.unresolved) == 0 {
		return apperrors.NewInvalidRevision(origin, -1)
	}
	expected := r.unresolved[0]
	r.unresolved = r.unresolved[1:]
	if expected != origin {
		return apperrors.NewInvalidRevision(origin, expected)
	}
	return nil
}

// Conflict returns the speculative branch holding this repo's own
// unconfirmed writes.
func (r *Repo) Conflict() *Branch { return r.conflict }

// Pending reports how many of this repo's own writes are still awaiting
// the server's echo.
func (r *Repo) Pending() int { return len(r.unresolved) }
