package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazecrawl/internal/telemetry"
)

const (
	// Generation defaults
	DefaultLoopChance  = 20 // Percent chance to open a wall between two corridors
	DefaultMinRooms    = 3
	DefaultMaxRooms    = 5
	DefaultRoomSpacing = 5 // Minimum Chebyshev distance between room centres
)

var (
	// ErrInvalidDimensions is returned when a maze cannot be carved at the requested size.
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	// ErrInvalidOption is returned when a generator option is out of range.
	ErrInvalidOption = errors.New("invalid generator option")
)

// origin is where carving starts and where the player enters.
var origin = Position{X: 1, Y: 1}

// Maze is a generated level: the full grid plus where its special tiles ended up.
type Maze struct {
	*Grid
	Start     Position
	Door      Position
	Encounter Position // Where the encounter was placed; the tile may since have been consumed
	Rooms     []Room
	DeadEnds  int // Dead ends found after loop injection
}

type options struct {
	loopChance  int
	minRooms    int
	maxRooms    int
	roomSpacing int
}

// Option tunes maze generation.
type Option func(*options)

// WithLoopChance sets the percent chance that a wall separating two corridors is removed.
func WithLoopChance(percent int) Option {
	return func(o *options) { o.loopChance = percent }
}

// WithRoomCount sets the inclusive range the treasure room target is drawn from.
func WithRoomCount(minRooms, maxRooms int) Option {
	return func(o *options) {
		o.minRooms = minRooms
		o.maxRooms = maxRooms
	}
}

// WithRoomSpacing sets the minimum Chebyshev distance between room centres.
func WithRoomSpacing(n int) Option {
	return func(o *options) { o.roomSpacing = n }
}

func (o options) validate() error {
	if o.loopChance < 0 || o.loopChance > 100 {
		return fmt.Errorf("%w: loop chance %d outside 0-100", ErrInvalidOption, o.loopChance)
	}
	if o.minRooms < 0 || o.maxRooms < o.minRooms {
		return fmt.Errorf("%w: room count range %d-%d", ErrInvalidOption, o.minRooms, o.maxRooms)
	}
	if o.roomSpacing < 0 {
		return fmt.Errorf("%w: room spacing %d", ErrInvalidOption, o.roomSpacing)
	}
	return nil
}

// capRooms limits the room range to what a width x height interior could
// hold if every room's 3x3 block were packed edge to edge.
func (o *options) capRooms(width, height int) {
	limit := ((width - 2) / 3) * ((height - 2) / 3)
	o.maxRooms = min(o.maxRooms, limit)
	o.minRooms = min(o.minRooms, o.maxRooms)
}

// ValidateDimensions checks that a maze of the given size can be carved.
func ValidateDimensions(width, height int) error {
	if width < MinDimension || height < MinDimension {
		return fmt.Errorf("%w: %dx%d is smaller than %dx%d", ErrInvalidDimensions, width, height, MinDimension, MinDimension)
	}
	if width%2 == 0 || height%2 == 0 {
		return fmt.Errorf("%w: %dx%d must be odd on both axes", ErrInvalidDimensions, width, height)
	}
	return nil
}

// Generate carves a new maze. The result depends only on the dimensions,
// the options and the state of rng.
func Generate(ctx context.Context, width, height int, rng *rand.Rand, opts ...Option) (*Maze, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}

	o := options{
		loopChance:  DefaultLoopChance,
		minRooms:    DefaultMinRooms,
		maxRooms:    DefaultMaxRooms,
		roomSpacing: DefaultRoomSpacing,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, telemetry.SpanGenerate)
	defer span.End()

	startTime := time.Now()

	m := &Maze{Grid: NewGrid(width, height, TileWall)}

	m.carvePassages(rng)
	m.injectLoops(rng, o.loopChance)

	deadEnds := m.findDeadEnds()
	rng.Shuffle(len(deadEnds), func(i, j int) {
		deadEnds[i], deadEnds[j] = deadEnds[j], deadEnds[i]
	})
	m.DeadEnds = len(deadEnds)

	o.capRooms(width, height)
	target := o.minRooms + rng.Intn(o.maxRooms-o.minRooms+1)
	m.placeRooms(deadEnds, target, o.roomSpacing)

	m.placeSpecialTiles(deadEnds, rng)

	span.SetAttributes(
		attribute.Int("maze.width", width),
		attribute.Int("maze.height", height),
		attribute.Int("maze.dead_ends", m.DeadEnds),
		attribute.Int("maze.room_target", target),
		attribute.Int("maze.room_count", len(m.Rooms)),
		attribute.Int("maze.door_distance", m.Start.Manhattan(m.Door)),
		attribute.Int64("maze.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return m, nil
}

// carveFrame is one level of the depth-first search: a cell and the
// shuffled order its neighbours are tried in.
type carveFrame struct {
	pos  Position
	dirs [4]Direction
	next int
}

// carvePassages carves a perfect maze from origin with a randomized
// depth-first search. Cells are marked as floor when first carved, so the
// explicit stack visits them in the same order recursion would.
func (m *Maze) carvePassages(rng *rand.Rand) {
	newFrame := func(p Position) *carveFrame {
		f := &carveFrame{pos: p, dirs: [4]Direction{North, South, West, East}}
		rng.Shuffle(len(f.dirs), func(i, j int) {
			f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i]
		})
		return f
	}

	m.Set(origin.X, origin.Y, TileFloor)
	stack := []*carveFrame{newFrame(origin)}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.dirs[top.next]
		top.next++

		between := top.pos.Step(d)
		next := between.Step(d)
		if !m.isInterior(next) || m.At(next.X, next.Y) != TileWall {
			continue
		}

		m.Set(between.X, between.Y, TileFloor)
		m.Set(next.X, next.Y, TileFloor)
		stack = append(stack, newFrame(next))
	}
}

// injectLoops opens walls that separate two corridors, turning the
// perfect maze into one with cycles.
func (m *Maze) injectLoops(rng *rand.Rand, chance int) {
	if chance <= 0 {
		return
	}
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if m.Tiles[y][x] != TileWall {
				continue
			}
			horizontal := m.Tiles[y][x-1] != TileWall && m.Tiles[y][x+1] != TileWall
			vertical := m.Tiles[y-1][x] != TileWall && m.Tiles[y+1][x] != TileWall
			if (horizontal || vertical) && rng.Intn(100) < chance {
				m.Tiles[y][x] = TileFloor
			}
		}
	}
}

// findDeadEnds returns every open interior cell with exactly one open
// neighbour, in row-major order.
func (m *Maze) findDeadEnds() []Position {
	var deadEnds []Position
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if m.Tiles[y][x] != TileWall && m.openNeighbours(x, y) == 1 {
				deadEnds = append(deadEnds, Position{X: x, Y: y})
			}
		}
	}
	return deadEnds
}

// placeRooms grows up to target treasure rooms straight out of dead ends.
// Dead ends whose room would overlap the maze or crowd another room are skipped.
func (m *Maze) placeRooms(deadEnds []Position, target, spacing int) {
	for _, de := range deadEnds {
		if len(m.Rooms) >= target {
			return
		}

		open, ok := m.openDirection(de)
		if !ok {
			continue
		}
		away := open.Right().Right()
		entrance := de.Step(away)
		center := entrance.Step(away)

		if m.crowded(center, spacing) || !m.canCarveRoom(center) {
			continue
		}

		m.carveRoom(center)
		m.Set(entrance.X, entrance.Y, TileTreasure)
		m.Rooms = append(m.Rooms, Room{Center: center, Entrance: entrance})
	}
}

// openDirection returns the direction of the single corridor leading into a dead end.
func (m *Maze) openDirection(p Position) (Direction, bool) {
	for _, d := range [...]Direction{North, South, West, East} {
		n := p.Step(d)
		if m.At(n.X, n.Y) != TileWall {
			return d, true
		}
	}
	return North, false
}

func (m *Maze) crowded(center Position, spacing int) bool {
	for _, r := range m.Rooms {
		if r.TooClose(center, spacing) {
			return true
		}
	}
	return false
}

// canCarveRoom returns true if the 5x5 block around center is in bounds and solid wall.
func (m *Maze) canCarveRoom(center Position) bool {
	for y := center.Y - roomRadius - 1; y <= center.Y+roomRadius+1; y++ {
		for x := center.X - roomRadius - 1; x <= center.X+roomRadius+1; x++ {
			if !m.InBounds(x, y) || m.Tiles[y][x] != TileWall {
				return false
			}
		}
	}
	return true
}

// carveRoom fills the 3x3 block around center with treasure.
func (m *Maze) carveRoom(center Position) {
	for y := center.Y - roomRadius; y <= center.Y+roomRadius; y++ {
		for x := center.X - roomRadius; x <= center.X+roomRadius; x++ {
			m.Tiles[y][x] = TileTreasure
		}
	}
}

// placeSpecialTiles marks the start, puts the door on the dead end farthest
// from it and hides one encounter in the remaining corridors.
func (m *Maze) placeSpecialTiles(deadEnds []Position, rng *rand.Rand) {
	m.Start = origin
	m.Set(origin.X, origin.Y, TileStart)

	door, found := Position{}, false
	best := -1
	for _, de := range deadEnds {
		if m.At(de.X, de.Y) != TileFloor || m.openNeighbours(de.X, de.Y) != 1 {
			continue
		}
		if dist := de.Manhattan(m.Start); dist > best {
			door, best, found = de, dist, true
		}
	}
	if !found {
		floors := m.Find(TileFloor)
		if len(floors) > 0 {
			door, found = floors[rng.Intn(len(floors))], true
		}
	}
	if found {
		m.Door = door
		m.Set(door.X, door.Y, TileDoor)
	}

	if floors := m.Find(TileFloor); len(floors) > 0 {
		m.Encounter = floors[rng.Intn(len(floors))]
		m.Set(m.Encounter.X, m.Encounter.Y, TileEncounter)
	}
}

// isInterior returns true if p is inside the outer wall ring.
func (m *Maze) isInterior(p Position) bool {
	return p.X > 0 && p.X < m.Width-1 && p.Y > 0 && p.Y < m.Height-1
}
