// Package world provides maze generation and map management.
package world

// Tile represents a single map tile.
type Tile int

const (
	// TileUnexplored marks a cell the player has not seen yet.
	// It only ever appears in a visible grid.
	TileUnexplored Tile = iota - 1
	// TileWall represents an impassable wall tile.
	TileWall
	// TileFloor represents a passable corridor tile.
	TileFloor
	// TileDoor is the exit to the next level.
	TileDoor
	// TileEncounter starts a battle when stepped on.
	TileEncounter
	// TileTreasure is part of a treasure room or its entrance.
	TileTreasure
	// TileStart is where the player enters the level.
	TileStart
)

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileUnexplored:
		return "unexplored"
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileDoor:
		return "door"
	case TileEncounter:
		return "encounter"
	case TileTreasure:
		return "treasure"
	case TileStart:
		return "start"
	default:
		return "unknown"
	}
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	switch t {
	case TileUnexplored:
		return ' '
	case TileWall:
		return '#'
	case TileFloor:
		return '.'
	case TileDoor:
		return 'D'
	case TileEncounter:
		return 'E'
	case TileTreasure:
		return '$'
	case TileStart:
		return 'S'
	default:
		return '?'
	}
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	switch t {
	case TileFloor, TileDoor, TileEncounter, TileTreasure, TileStart:
		return true
	case TileWall, TileUnexplored:
		return false
	default:
		return false
	}
}
