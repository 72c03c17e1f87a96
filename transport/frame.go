// Package transport implements the wire-level connection the protocol runs
// over: a JSON-framed, full-duplex, ordered byte stream with one
// websocket.Conn per participant.
package transport

import "encoding/json"

// Frame is one wire-level protocol message: a command name, its
// positional arguments, and its named arguments (always including "rev",
// optionally "origin"). On the wire it is the 3-element JSON array
// [name, args, kwargs], not an object — MarshalJSON/UnmarshalJSON encode
// that shape explicitly.
type Frame struct {
	Name   string
	Args   []interface{}
	Kwargs map[string]interface{}
}

// MarshalJSON encodes the frame as [name, args, kwargs].
func (f Frame) MarshalJSON() ([]byte, error) {
	args := f.Args
	if args == nil {
		args = []interface{}{}
	}
	kwargs := f.Kwargs
	if kwargs == nil {
		kwargs = map[string]interface{}{}
	}
	return json.Marshal([3]interface{}{f.Name, args, kwargs})
}

// UnmarshalJSON decodes a [name, args, kwargs] array into the frame.
func (f *Frame) UnmarshalJSON(data []byte) error {
	var raw [3]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &f.Name); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &f.Args); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &f.Kwargs)
}
