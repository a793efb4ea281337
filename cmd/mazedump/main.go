// Command mazedump prints generated mazes for eyeballing the generator.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gookit/color"

	"github.com/samdwyer/mazecrawl/internal/world"
)

var tileStyles = map[world.Tile]color.Style{
	world.TileWall:      {color.FgGray},
	world.TileFloor:     {color.FgDarkGray},
	world.TileDoor:      {color.FgYellow, color.OpBold},
	world.TileEncounter: {color.FgRed, color.OpBold},
	world.TileTreasure:  {color.FgLightYellow},
	world.TileStart:     {color.FgCyan, color.OpBold},
}

func main() {
	width := flag.Int("width", world.DefaultWidth, "Maze width (odd, >= 5)")
	height := flag.Int("height", world.DefaultHeight, "Maze height (odd, >= 5)")
	seed := flag.Int64("seed", 0, "Seed, 0 for random")
	count := flag.Int("n", 1, "Number of mazes to print")
	loops := flag.Int("loops", world.DefaultLoopChance, "Loop chance percent")
	plain := flag.Bool("plain", false, "Disable colour output")
	flag.Parse()

	if *plain {
		color.Disable()
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	for i := 0; i < *count; i++ {
		m, err := world.Generate(context.Background(), *width, *height, rng, world.WithLoopChance(*loops))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		color.Bold.Printf("maze %d/%d  seed %d  %dx%d\n", i+1, *count, *seed, *width, *height)
		printGrid(m.Grid)
		fmt.Printf("start %v  door %v (distance %d)  encounter %v  rooms %d  dead ends %d\n",
			m.Start, m.Door, m.Start.Manhattan(m.Door), m.Encounter, len(m.Rooms), m.DeadEnds)
		if err := world.Validate(m.Grid); err != nil {
			color.Error.Println("validation failed:", err)
		}
		fmt.Println()
	}
}

func printGrid(g *world.Grid) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			tile := g.At(x, y)
			glyph := string(tile.Rune())
			if style, ok := tileStyles[tile]; ok {
				glyph = style.Sprint(glyph)
			}
			fmt.Print(glyph)
		}
		fmt.Println()
	}
}
