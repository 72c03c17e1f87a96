// Package idgen generates the opaque identifiers the protocol treats as
// unstructured strings: node ids and participant ids. Uniqueness, not
// structure, is the only contract a caller may rely on (spec §6.3).
package idgen

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewNodeID returns a fresh node identifier of the form "NODE-<32 hex chars>".
func NewNodeID() string {
	return "NODE-" + hex32()
}

// NewUserID returns a fresh participant identifier of the form
// "USER-<32 hex chars>".
func NewUserID() string {
	return "USER-" + hex32()
}

func hex32() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
