package server

import (
	"github.com/teranos/graphsync/graph"
	"github.com/teranos/graphsync/logger"
	"github.com/teranos/graphsync/session"
	"github.com/teranos/graphsync/transport"
)

// intentFromFrame decodes one inbound frame into the Intent it requests.
// The inbound vocabulary is nodeCreated/nodeRemoved/nodeStateChanged/
// linkAdded/linkRemoved, each carrying the client's local revision as the
// "rev" kwarg so the eventual reply can echo it back to this origin.
// An unrecognized name is logged and dropped (taxonomy item 4) — the
// connection stays open.
func intentFromFrame(p *session.Participant, f transport.Frame) (session.Intent, bool) {
	origin := &session.Origin{User: p, ClientRev: kwargInt64(f.Kwargs, "rev")}

	switch f.Name {
	case "nodeCreated":
		id, ok := argString(f.Args, 0)
		if !ok {
			return nil, false
		}
		return session.CreateNodeIntent{Origin: origin, ID: id}, true

	case "nodeRemoved":
		id, ok := argString(f.Args, 0)
		if !ok {
			return nil, false
		}
		return session.RemoveNodeIntent{Origin: origin, ID: id}, true

	case "nodeStateChanged":
		id, ok := argString(f.Args, 0)
		if !ok {
			return nil, false
		}
		var state map[string]interface{}
		if len(f.Args) > 1 {
			state, _ = f.Args[1].(map[string]interface{})
		}
		return session.ChangeStateIntent{Origin: origin, ID: id, State: state}, true

	case "linkAdded":
		key, ok := linkKeyFromArgs(f.Args)
		if !ok {
			return nil, false
		}
		return session.AddLinkIntent{Origin: origin, Key: key}, true

	case "linkRemoved":
		key, ok := linkKeyFromArgs(f.Args)
		if !ok {
			return nil, false
		}
		return session.RemoveLinkIntent{Origin: origin, Key: key}, true

	default:
		logger.Warnw("unknown inbound frame", "name", f.Name)
		return nil, false
	}
}

// kwargInt64 reads an integer kwarg that may have arrived either as a
// Go int64 (constructed in-process, e.g. in tests) or a float64 (decoded
// from JSON, which has no distinct integer type).
func kwargInt64(kwargs map[string]interface{}, key string) int64 {
	switch v := kwargs[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func argString(args []interface{}, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := args[i].(string)
	return s, ok
}

func linkKeyFromArgs(args []interface{}) (graph.LinkKey, bool) {
	if len(args) < 4 {
		return graph.LinkKey{}, false
	}
	startID, ok1 := args[0].(string)
	startName, ok2 := args[1].(string)
	endID, ok3 := args[2].(string)
	endName, ok4 := args[3].(string)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return graph.LinkKey{}, false
	}
	return graph.LinkKey{StartID: startID, StartName: startName, EndID: endID, EndName: endName}, true
}
