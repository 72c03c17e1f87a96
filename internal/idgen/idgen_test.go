package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNodeIDIsWellFormedAndUnique(t *testing.T) {
	a := NewNodeID()
	b := NewNodeID()

	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^NODE-[0-9a-f]{32}$`, a)
}

func TestNewUserIDIsWellFormedAndUnique(t *testing.T) {
	a := NewUserID()
	b := NewUserID()

	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^USER-[0-9a-f]{32}$`, a)
}
