package session

// Kwargs is the ordered-by-convention bag of named wire arguments attached
// to an outbound frame: rev (always), origin (only on echoed replies), and
// any command-specific payload fields.
type Kwargs map[string]interface{}

// Outbound is a participant's per-client ordered message sink (spec §4.6).
// Implementations must preserve FIFO order with respect to the calls the
// session makes against them; the reference transport backs this with a
// buffered channel drained by one write-pump goroutine per connection.
type Outbound interface {
	Send(name string, args []interface{}, kwargs Kwargs) error
}

// Participant is a connected client: a stable opaque id plus its outbound
// sink. The zero value is not usable; construct with NewParticipant.
type Participant struct {
	ID          string
	DisplayName string
	Outbound    Outbound
}

// NewParticipant builds a Participant bound to the given outbound sink.
func NewParticipant(id, displayName string, out Outbound) *Participant {
	return &Participant{ID: id, DisplayName: displayName, Outbound: out}
}

func (p *Participant) send(name string, args []interface{}, kwargs Kwargs) error {
	return p.Outbound.Send(name, args, kwargs)
}

// Origin records who issued an intent and the local revision the client
// stamped it with, so the reply can echo the client's number back. A nil
// *Origin means the intent was generated internally by the session (e.g.
// the filesystem materializer's own cascaded writes) and never triggers an
// origin echo.
type Origin struct {
	User      *Participant
	ClientRev int64
}
