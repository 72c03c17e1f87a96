package graph

// Emitter is a deterministic-order publish/subscribe surface for storage
// events (node:add/remove, link:add/remove, change:ports, change:state).
//
// The reference Python implementation keeps a weak-reference set of bound
// methods so a dropped subscriber is forgotten automatically; Go has no
// weak references, so subscribers here are ordinary closures and must
// deregister explicitly via the returned unsubscribe func.
type Emitter struct {
	listeners map[string][]*subscription
	seq       int
}

type subscription struct {
	id int
	fn func(args ...interface{})
}

func newEmitter() *Emitter {
	return &Emitter{listeners: make(map[string][]*subscription)}
}

// On registers fn to be called, in registration order, whenever name is
// notified. It returns a func that deregisters fn.
func (e *Emitter) On(name string, fn func(args ...interface{})) (unsubscribe func()) {
	e.seq++
	sub := &subscription{id: e.seq, fn: fn}
	e.listeners[name] = append(e.listeners[name], sub)
	return func() {
		subs := e.listeners[name]
		for i, s := range subs {
			if s.id == sub.id {
				e.listeners[name] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every subscriber of name, in registration order.
func (e *Emitter) Notify(name string, args ...interface{}) {
	for _, sub := range e.listeners[name] {
		sub.fn(args...)
	}
}
