package game

import "github.com/samdwyer/mazecrawl/internal/world"

// Player is the explorer's place in the maze.
type Player struct {
	Pos    world.Position  // Current cell
	Facing world.Direction // Direction a forward move goes
}

// NewPlayer creates a player at pos facing north.
func NewPlayer(pos world.Position) Player {
	return Player{Pos: pos, Facing: world.North}
}

// TurnLeft rotates the player counter-clockwise.
func (p *Player) TurnLeft() {
	p.Facing = p.Facing.Left()
}

// TurnRight rotates the player clockwise.
func (p *Player) TurnRight() {
	p.Facing = p.Facing.Right()
}

// Ahead returns the cell directly in front of the player.
func (p Player) Ahead() world.Position {
	return p.Pos.Step(p.Facing)
}
