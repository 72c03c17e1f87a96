package apperrors

import "fmt"

// InvalidCommand reports an unknown wire command name (spec taxonomy item 4).
// The frame is dropped and the connection stays open.
type InvalidCommand struct {
	Name string
}

func (e *InvalidCommand) Error() string {
	return fmt.Sprintf("invalid command: %q", e.Name)
}

// NewInvalidCommand builds an InvalidCommand error for the given frame name.
func NewInvalidCommand(name string) error {
	return &InvalidCommand{Name: name}
}

// InvalidRevision reports that an incoming frame's revision did not match
// the client mirror's expected next revision (spec taxonomy item 3) — the
// connection is no longer trustworthy and must be torn down and rejoined.
type InvalidRevision struct {
	Got      int64
	Expected int64
}

func (e *InvalidRevision) Error() string {
	return fmt.Sprintf("expected revision %d but got %d", e.Expected, e.Got)
}

// NewInvalidRevision builds an InvalidRevision error.
func NewInvalidRevision(got, expected int64) error {
	return &InvalidRevision{Got: got, Expected: expected}
}

// Internal reports a structural invariant violation discovered inside an
// Apply path (spec taxonomy item 2) — a bug, not a classifier outcome.
// The session goroutine treats this as fatal and tears the session down.
type Internal struct {
	cause error
}

func (e *Internal) Error() string {
	return fmt.Sprintf("internal invariant violation: %v", e.cause)
}

func (e *Internal) Unwrap() error { return e.cause }

// NewInternal wraps a violated invariant as a fatal Internal error.
func NewInternal(format string, args ...interface{}) error {
	return &Internal{cause: AssertionFailedf(format, args...)}
}
