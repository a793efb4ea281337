package server

import (
	"context"
	"fmt"

	"github.com/samdwyer/mazecrawl/internal/game"
)

// Message types sent to the client.
const (
	TypeSnapshot = "snapshot"
	TypeBattle   = "battle"
)

// Actions a client may request.
const (
	ActionLeft    = "left"
	ActionRight   = "right"
	ActionForward = "forward"
)

// Command is a single player action sent by the client.
type Command struct {
	Action string `json:"action"`
}

// Message is the envelope for everything the server pushes.
type Message struct {
	Type     string        `json:"type"`
	Snapshot *SnapshotView `json:"snapshot,omitempty"`
}

// SnapshotView is the wire form of a game.Snapshot. The visible map is sent
// as one string per row using the tile glyphs; unexplored cells are spaces.
type SnapshotView struct {
	SessionID  string   `json:"sessionId"`
	Depth      int      `json:"depth"`
	Width      int      `json:"w"`
	Height     int      `json:"h"`
	Rows       []string `json:"rows"`
	X          int      `json:"x"`
	Y          int      `json:"y"`
	Facing     string   `json:"facing"`
	Message    string   `json:"message"`
	Outcome    string   `json:"outcome"`
	Encounters int      `json:"encounters"`
}

// NewSnapshotView converts a snapshot for the wire.
func NewSnapshotView(snap game.Snapshot) SnapshotView {
	view := SnapshotView{
		SessionID:  snap.SessionID,
		Depth:      snap.Depth,
		X:          snap.Position.X,
		Y:          snap.Position.Y,
		Facing:     snap.Facing.String(),
		Message:    snap.Message,
		Outcome:    snap.Outcome.String(),
		Encounters: snap.Encounters,
	}
	if snap.Visible != nil {
		view.Width = snap.Visible.Width
		view.Height = snap.Visible.Height
		view.Rows = make([]string, snap.Visible.Height)
		for y := range view.Rows {
			row := make([]rune, snap.Visible.Width)
			for x := range row {
				row[x] = snap.Visible.At(x, y).Rune()
			}
			view.Rows[y] = string(row)
		}
	}
	return view
}

// Apply runs the command against the session.
func (c Command) Apply(ctx context.Context, s *game.Session) (game.Outcome, error) {
	switch c.Action {
	case ActionLeft:
		return s.TurnLeft(ctx), nil
	case ActionRight:
		return s.TurnRight(ctx), nil
	case ActionForward:
		return s.MoveForward(ctx), nil
	default:
		return game.OutcomeBlocked, fmt.Errorf("unknown action %q", c.Action)
	}
}
