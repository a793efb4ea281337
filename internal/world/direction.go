package world

// Direction is a cardinal facing. The constants are ordered clockwise.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// IsValid returns true if the direction is one of the four cardinals.
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Left rotates counter-clockwise. An invalid direction rotates to North.
func (d Direction) Left() Direction {
	switch d {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	default:
		return North
	}
}

// Right rotates clockwise. An invalid direction rotates to North.
func (d Direction) Right() Direction {
	switch d {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	default:
		return North
	}
}

// Delta returns the column and row offsets of one step in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
