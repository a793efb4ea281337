package world

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
)

func generate(t *testing.T, width, height int, seed int64, opts ...Option) *Maze {
	t.Helper()
	m, err := Generate(context.Background(), width, height, rand.New(rand.NewSource(seed)), opts...)
	if err != nil {
		t.Fatalf("Generate(%d, %d, seed %d) error: %v", width, height, seed, err)
	}
	return m
}

// openEdges counts orthogonally adjacent pairs of open cells.
func openEdges(g *Grid) (cells, edges int) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x] == TileWall {
				continue
			}
			cells++
			if g.At(x+1, y) != TileWall {
				edges++
			}
			if g.At(x, y+1) != TileWall {
				edges++
			}
		}
	}
	return cells, edges
}

func TestMazeReproducibility(t *testing.T) {
	seed := int64(12345)

	m1 := generate(t, DefaultWidth, DefaultHeight, seed)
	m2 := generate(t, DefaultWidth, DefaultHeight, seed)

	if len(m1.Rooms) != len(m2.Rooms) {
		t.Fatalf("Room count mismatch: %d != %d", len(m1.Rooms), len(m2.Rooms))
	}
	if m1.Door != m2.Door || m1.Encounter != m2.Encounter {
		t.Errorf("Special tiles mismatch: door %v/%v encounter %v/%v", m1.Door, m2.Door, m1.Encounter, m2.Encounter)
	}

	for y := 0; y < m1.Height; y++ {
		for x := 0; x < m1.Width; x++ {
			if m1.Tiles[y][x] != m2.Tiles[y][x] {
				t.Errorf("Tile mismatch at (%d,%d): %v != %v", x, y, m1.Tiles[y][x], m2.Tiles[y][x])
			}
		}
	}
}

func TestMazeDifferentSeeds(t *testing.T) {
	m1 := generate(t, DefaultWidth, DefaultHeight, 12345)
	m2 := generate(t, DefaultWidth, DefaultHeight, 54321)

	if m1.String() == m2.String() {
		t.Error("Mazes with different seeds should not be identical")
	}
}

func TestGenerateInvariants(t *testing.T) {
	sizes := []struct{ width, height int }{
		{5, 5},
		{7, 7},
		{9, 15},
		{25, 25},
		{41, 21},
	}

	for _, size := range sizes {
		for seed := int64(1); seed <= 25; seed++ {
			m := generate(t, size.width, size.height, seed)

			if err := Validate(m.Grid); err != nil {
				t.Errorf("%dx%d seed %d: %v", size.width, size.height, seed, err)
			}
			if m.Start != (Position{X: 1, Y: 1}) || m.At(1, 1) != TileStart {
				t.Errorf("%dx%d seed %d: start at %v, want (1,1)", size.width, size.height, seed, m.Start)
			}
			if got := m.Count(TileEncounter); got != 1 {
				t.Errorf("%dx%d seed %d: %d encounter tiles, want 1", size.width, size.height, seed, got)
			}
			if m.At(m.Door.X, m.Door.Y) != TileDoor {
				t.Errorf("%dx%d seed %d: Maze.Door %v is %v", size.width, size.height, seed, m.Door, m.At(m.Door.X, m.Door.Y))
			}
			if m.Count(TileUnexplored) != 0 {
				t.Errorf("%dx%d seed %d: generated grid contains unexplored tiles", size.width, size.height, seed)
			}

			// Outer ring stays solid
			for x := 0; x < m.Width; x++ {
				if m.Tiles[0][x] != TileWall || m.Tiles[m.Height-1][x] != TileWall {
					t.Fatalf("%dx%d seed %d: border opened at column %d", size.width, size.height, seed, x)
				}
			}
			for y := 0; y < m.Height; y++ {
				if m.Tiles[y][0] != TileWall || m.Tiles[y][m.Width-1] != TileWall {
					t.Fatalf("%dx%d seed %d: border opened at row %d", size.width, size.height, seed, y)
				}
			}
		}
	}
}

func TestPerfectMazeWithoutLoops(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m := generate(t, DefaultWidth, DefaultHeight, seed, WithLoopChance(0), WithRoomCount(0, 0))

		cells, edges := openEdges(m.Grid)
		if edges != cells-1 {
			t.Errorf("seed %d: %d open cells with %d edges, a tree has %d", seed, cells, edges, cells-1)
		}
		if err := Validate(m.Grid); err != nil {
			t.Errorf("seed %d: %v", seed, err)
		}
	}
}

func TestLoopInjectionKeepsConnectivity(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m := generate(t, DefaultWidth, DefaultHeight, seed, WithLoopChance(100), WithRoomCount(0, 0))

		cells, edges := openEdges(m.Grid)
		if edges <= cells-1 {
			t.Errorf("seed %d: expected cycles, got %d edges for %d cells", seed, edges, cells)
		}
		if err := Validate(m.Grid); err != nil {
			t.Errorf("seed %d: %v", seed, err)
		}
	}
}

func TestDoorIsFarthestDeadEnd(t *testing.T) {
	m := generate(t, 25, 25, 42)

	if m.Start != (Position{X: 1, Y: 1}) {
		t.Fatalf("Start = %v, want (1,1)", m.Start)
	}
	if m.openNeighbours(m.Door.X, m.Door.Y) != 1 {
		t.Fatalf("Door %v is not a dead end", m.Door)
	}

	doorDist := m.Door.Manhattan(m.Start)
	for _, de := range m.findDeadEnds() {
		if de == m.Start {
			continue
		}
		if d := de.Manhattan(m.Start); d > doorDist {
			t.Errorf("dead end %v is %d from start, door %v only %d", de, d, m.Door, doorDist)
		}
	}
}

func TestTreasureRooms(t *testing.T) {
	placed := 0
	for seed := int64(1); seed <= 20; seed++ {
		m := generate(t, DefaultWidth, DefaultHeight, seed)
		placed += len(m.Rooms)

		if len(m.Rooms) > DefaultMaxRooms {
			t.Errorf("seed %d: %d rooms, max %d", seed, len(m.Rooms), DefaultMaxRooms)
		}

		for i, r := range m.Rooms {
			for y := r.Center.Y - 1; y <= r.Center.Y+1; y++ {
				for x := r.Center.X - 1; x <= r.Center.X+1; x++ {
					if m.At(x, y) != TileTreasure {
						t.Errorf("seed %d: room %d cell (%d,%d) is %v", seed, i, x, y, m.At(x, y))
					}
				}
			}
			if m.At(r.Entrance.X, r.Entrance.Y) != TileTreasure {
				t.Errorf("seed %d: room %d entrance %v is %v", seed, i, r.Entrance, m.At(r.Entrance.X, r.Entrance.Y))
			}
			for j := i + 1; j < len(m.Rooms); j++ {
				if r.TooClose(m.Rooms[j].Center, DefaultRoomSpacing) {
					t.Errorf("seed %d: rooms %d and %d are too close", seed, i, j)
				}
			}
		}
	}

	if placed == 0 {
		t.Error("no treasure rooms placed across 20 seeds")
	}
}

func TestRoomCountOption(t *testing.T) {
	m := generate(t, DefaultWidth, DefaultHeight, 7, WithRoomCount(0, 0))
	if len(m.Rooms) != 0 {
		t.Errorf("WithRoomCount(0, 0) placed %d rooms", len(m.Rooms))
	}
	if m.Count(TileTreasure) != 0 {
		t.Errorf("WithRoomCount(0, 0) left %d treasure tiles", m.Count(TileTreasure))
	}
}

func TestRoomCountIsCappedBySize(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"unbounded max", 0, math.MaxInt},
		{"unbounded range", math.MaxInt - 1, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := generate(t, 9, 9, 3, WithRoomCount(tt.min, tt.max))
			if err := Validate(m.Grid); err != nil {
				t.Errorf("Validate: %v", err)
			}
			if len(m.Rooms) > 9 {
				t.Errorf("%d rooms in a 9x9 maze", len(m.Rooms))
			}
		})
	}
}

func TestGenerateInvalidDimensions(t *testing.T) {
	tests := []struct {
		width, height int
	}{
		{0, 0},
		{3, 25},
		{25, 3},
		{4, 25},
		{25, 24},
		{-5, 5},
	}

	for _, tt := range tests {
		_, err := Generate(context.Background(), tt.width, tt.height, rand.New(rand.NewSource(1)))
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Generate(%d, %d) error = %v, want ErrInvalidDimensions", tt.width, tt.height, err)
		}
	}
}

func TestGenerateInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"negative loop chance", WithLoopChance(-1)},
		{"loop chance over 100", WithLoopChance(101)},
		{"inverted room range", WithRoomCount(5, 3)},
		{"negative rooms", WithRoomCount(-1, 2)},
		{"negative spacing", WithRoomSpacing(-1)},
	}

	for _, tt := range tests {
		_, err := Generate(context.Background(), 25, 25, rand.New(rand.NewSource(1)), tt.opt)
		if !errors.Is(err, ErrInvalidOption) {
			t.Errorf("%s: error = %v, want ErrInvalidOption", tt.name, err)
		}
	}
}

func TestValidateDetectsBrokenGrids(t *testing.T) {
	g := NewGrid(5, 5, TileWall)
	g.Set(1, 1, TileStart)
	g.Set(2, 1, TileFloor)
	g.Set(3, 1, TileDoor)

	if err := Validate(g); err != nil {
		t.Fatalf("Validate() on connected grid: %v", err)
	}

	g.Set(3, 3, TileTreasure)
	if err := Validate(g); err == nil {
		t.Error("Validate() should reject an isolated treasure tile")
	}

	g.Set(3, 3, TileWall)
	g.Set(1, 3, TileDoor)
	if err := Validate(g); err == nil {
		t.Error("Validate() should reject two doors")
	}
}

func TestReachableStopsAtWalls(t *testing.T) {
	g := NewGrid(5, 5, TileWall)
	g.Set(1, 1, TileFloor)
	g.Set(2, 1, TileFloor)
	g.Set(3, 3, TileFloor)

	r := Reachable(g, Position{X: 1, Y: 1})
	if r.Size() != 2 {
		t.Errorf("Reachable size = %d, want 2", r.Size())
	}
	if r.Has(Position{X: 3, Y: 3}) {
		t.Error("Reachable crossed a wall")
	}

	if Reachable(g, Position{X: 0, Y: 0}).Size() != 0 {
		t.Error("Reachable from a wall should be empty")
	}
}

func TestDoorFallbackWithoutDeadEnds(t *testing.T) {
	// Every wall between corridors opens, so a 5x5 maze has no dead ends left
	for seed := int64(1); seed <= 10; seed++ {
		m := generate(t, 5, 5, seed, WithLoopChance(100))

		if len(m.findDeadEnds()) != 0 && m.openNeighbours(m.Door.X, m.Door.Y) != 1 {
			t.Errorf("seed %d: door %v skipped an available dead end", seed, m.Door)
		}
		if m.Door == m.Start {
			t.Errorf("seed %d: door placed on start", seed)
		}
		if err := Validate(m.Grid); err != nil {
			t.Errorf("seed %d: %v", seed, err)
		}
	}
}
