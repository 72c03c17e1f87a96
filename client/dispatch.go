package client

import (
	"github.com/teranos/graphsync/apperrors"
	"github.com/teranos/graphsync/graph"
)

// Dispatch applies one decoded wire frame by command name. args holds the
// frame's positional arguments in protocol order; kwargs must carry "rev"
// (int64) and may carry "origin" (int64, present only on an echoed reply).
// An unrecognized name returns an *apperrors.InvalidCommand — the frame is
// dropped, the connection stays open (taxonomy item 4).
func (m *Model) Dispatch(name string, args []interface{}, kwargs map[string]interface{}) error {
	rev, ok := kwargInt64(kwargs, "rev")
	if !ok {
		return apperrors.NewInternal("dispatch: frame %q missing rev", name)
	}
	var origin *int64
	if _, has := kwargs["origin"]; has {
		o, ok := kwargInt64(kwargs, "origin")
		if !ok {
			return apperrors.NewInternal("dispatch: frame %q has non-integer origin", name)
		}
		origin = &o
	}

	switch name {
	case "nop":
		return m.Nop(rev)
	case "createNode":
		return m.ApplyCreateNode(args[0].(string), rev, origin)
	case "removeNode":
		return m.ApplyRemoveNode(args[0].(string), rev, origin)
	case "changeState":
		var state map[string]interface{}
		if args[1] != nil {
			state, _ = args[1].(map[string]interface{})
		}
		return m.ApplyChangeState(args[0].(string), state, rev, origin)
	case "changePorts":
		ports, _ := args[1].([]map[string]string)
		return m.ApplyChangePorts(args[0].(string), ports, rev, origin)
	case "addLink":
		return m.ApplyAddLink(linkKeyFromArgs(args), rev, origin)
	case "removeLink":
		return m.ApplyRemoveLink(linkKeyFromArgs(args), rev, origin)
	default:
		return apperrors.NewInvalidCommand(name)
	}
}

// kwargInt64 reads an integer kwarg that may have arrived as a Go int64
// (constructed in-process, e.g. tests) or a float64 (decoded from JSON,
// which has no distinct integer type).
func kwargInt64(kwargs map[string]interface{}, key string) (int64, bool) {
	switch v := kwargs[key].(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func linkKeyFromArgs(args []interface{}) graph.LinkKey {
	return graph.LinkKey{
		StartID:   args[0].(string),
		StartName: args[1].(string),
		EndID:     args[2].(string),
		EndName:   args[3].(string),
	}
}
