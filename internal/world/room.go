package world

// roomRadius is the half-size of a treasure room; rooms are 3x3.
const roomRadius = 1

// Room represents a square treasure room carved off a dead end.
type Room struct {
	Center   Position // Middle cell of the room
	Entrance Position // Cell joining the room to the corridor it was grown from
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return abs(x-r.Center.X) <= roomRadius && abs(y-r.Center.Y) <= roomRadius
}

// TooClose returns true if the other room's centre is within spacing
// cells of this one on both axes.
func (r Room) TooClose(center Position, spacing int) bool {
	return r.Center.Chebyshev(center) < spacing
}
