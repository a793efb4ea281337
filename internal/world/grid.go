package world

const (
	// Default maze dimensions. Both must be odd.
	DefaultWidth  = 25
	DefaultHeight = 25

	// MinDimension is the smallest width or height a maze can be carved in.
	MinDimension = 5
)

// Position is a cell coordinate: X is the column, Y is the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the neighbouring position one cell in direction d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the taxicab distance between two positions.
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Chebyshev returns the chessboard distance between two positions.
func (p Position) Chebyshev(o Position) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// Grid is a fixed-size map of tiles addressed Tiles[row][col].
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewGrid creates a grid with every cell set to fill.
func NewGrid(width, height int, fill Tile) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = fill
		}
	}

	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  tiles,
	}
}

// InBounds returns true if the position lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at the given position. Out-of-bounds reads are walls.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.Tiles[y][x]
}

// Set writes a tile. Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if g.InBounds(x, y) {
		g.Tiles[y][x] = t
	}
}

// IsPassable returns true if the given position can be walked on.
func (g *Grid) IsPassable(x, y int) bool {
	return g.At(x, y).IsPassable()
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([][]Tile, g.Height)
	for y := range g.Tiles {
		tiles[y] = make([]Tile, g.Width)
		copy(tiles[y], g.Tiles[y])
	}
	return &Grid{Width: g.Width, Height: g.Height, Tiles: tiles}
}

// Find returns every position holding tile t, in row-major order.
func (g *Grid) Find(t Tile) []Position {
	var found []Position
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x] == t {
				found = append(found, Position{X: x, Y: y})
			}
		}
	}
	return found
}

// Count returns how many cells hold tile t.
func (g *Grid) Count(t Tile) int {
	return len(g.Find(t))
}

// String renders the grid one row per line using Tile.Rune.
func (g *Grid) String() string {
	buf := make([]rune, 0, (g.Width+1)*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			buf = append(buf, g.Tiles[y][x].Rune())
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// openNeighbours counts the non-wall orthogonal neighbours of (x, y).
func (g *Grid) openNeighbours(x, y int) int {
	count := 0
	for _, d := range [...]Direction{North, East, South, West} {
		dx, dy := d.Delta()
		if g.At(x+dx, y+dy) != TileWall {
			count++
		}
	}
	return count
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
