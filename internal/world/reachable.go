package world

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Reachable returns every passable cell connected to from by orthogonal steps.
func Reachable(g *Grid, from Position) *mapset.Set[Position] {
	reachable := mapset.New[Position]()
	queue := []Position{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if !g.IsPassable(current.X, current.Y) || reachable.Has(current) {
			continue
		}

		reachable.Put(current)

		for _, d := range [...]Direction{North, East, South, West} {
			if n := current.Step(d); !reachable.Has(n) {
				queue = append(queue, n)
			}
		}
	}

	return &reachable
}

// Validate checks the structural guarantees of a generated grid: one start,
// one door, and every open cell reachable from the start.
func Validate(g *Grid) error {
	starts := g.Find(TileStart)
	if len(starts) != 1 {
		return fmt.Errorf("expected 1 start tile, found %d", len(starts))
	}
	if doors := g.Count(TileDoor); doors != 1 {
		return fmt.Errorf("expected 1 door tile, found %d", doors)
	}

	reachable := Reachable(g, starts[0])
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x].IsPassable() && !reachable.Has(Position{X: x, Y: y}) {
				return fmt.Errorf("%s tile at (%d,%d) is unreachable from start", g.Tiles[y][x], x, y)
			}
		}
	}
	return nil
}
