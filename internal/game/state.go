// Package game provides the dungeon session state machine and the terminal game loop.
package game

// State represents what the terminal front-end is currently showing.
type State int

const (
	// StateExplore is the default mode where the player walks the maze.
	StateExplore State = iota
	// StateBattle hands the screen to the battle placeholder until a key is pressed.
	StateBattle
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateBattle:
		return "battle"
	default:
		return "unknown"
	}
}
