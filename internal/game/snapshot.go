package game

import "github.com/samdwyer/mazecrawl/internal/world"

// Snapshot is everything a display needs after a transition. Each snapshot
// handed out owns its visible grid; mutating it never affects the session.
type Snapshot struct {
	SessionID  string          `json:"sessionId"`
	Depth      int             `json:"depth"`      // Levels entered so far, starting at 1
	Visible    *world.Grid     `json:"-"`          // Fogged map, unexplored cells hidden
	Position   world.Position  `json:"position"`   // Player cell
	Facing     world.Direction `json:"facing"`     // Player facing
	Message    string          `json:"message"`    // Status line
	Outcome    Outcome         `json:"outcome"`    // What the last action did
	Encounters int             `json:"encounters"` // Battles triggered this session
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	if s.Visible != nil {
		s.Visible = s.Visible.Clone()
	}
	return s
}

// subscription is a latest-wins mailbox: it buffers one snapshot and a
// newer one replaces any the reader has not picked up yet.
type subscription struct {
	ch chan Snapshot
}

func newSubscription() *subscription {
	return &subscription{ch: make(chan Snapshot, 1)}
}

// offer delivers snap without blocking. Only the publisher sends, under the
// session lock, so after draining the buffer the send always succeeds.
func (s *subscription) offer(snap Snapshot) {
	select {
	case <-s.ch:
	default:
	}
	s.ch <- snap
}
