package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTripsAsThreeElementArray(t *testing.T) {
	f := Frame{
		Name:   "createNode",
		Args:   []interface{}{"NODE-abc"},
		Kwargs: map[string]interface{}{"rev": float64(3)},
	}

	raw, err := json.Marshal(f)
	require.NoError(t, err)

	var generic []interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	require.Len(t, generic, 3)
	assert.Equal(t, "createNode", generic[0])

	var decoded Frame
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, f.Name, decoded.Name)
	assert.Equal(t, f.Args, decoded.Args)
	assert.Equal(t, f.Kwargs, decoded.Kwargs)
}

func TestFrameMarshalsNilArgsAndKwargsAsEmpty(t *testing.T) {
	raw, err := json.Marshal(Frame{Name: "nop"})
	require.NoError(t, err)
	assert.JSONEq(t, `["nop",[],{}]`, string(raw))
}
