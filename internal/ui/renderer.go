package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazecrawl/internal/world"
)

// Layout rows below the map
const (
	statusGap = 1
	helpText  = "←/a turn left  →/d turn right  ↑/w forward  q quit"
)

// View is what the renderer needs from a session snapshot.
type View struct {
	Visible  *world.Grid
	Position world.Position
	Facing   world.Direction
	Header   string
	Message  string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the fogged map, the player and the status lines.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	r.screen.DrawText(0, 0, v.Header, tcell.StyleDefault.Foreground(tcell.ColorSilver))

	top := 1
	for y := 0; y < v.Visible.Height; y++ {
		for x := 0; x < v.Visible.Width; x++ {
			tile := v.Visible.At(x, y)
			r.screen.SetContent(x, y+top, tile.Rune(), TileStyle(tile))
		}
	}

	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorAqua).
		Bold(true)
	r.screen.SetContent(v.Position.X, v.Position.Y+top, FacingRune(v.Facing), playerStyle)

	row := top + v.Visible.Height + statusGap
	r.screen.DrawText(0, row, v.Message, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	r.screen.DrawText(0, row+1, helpText, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))

	r.screen.Show()
}

// RenderBattle covers the screen while the battle screen has control.
func (r *Renderer) RenderBattle(encounters int) {
	r.screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	r.screen.DrawText(2, 1, "Battle!", style)
	r.screen.DrawText(2, 3, fmt.Sprintf("Encounter #%d", encounters), tcell.StyleDefault)
	r.screen.DrawText(2, 5, "Press any key to return to the dungeon.", tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
	r.screen.Show()
}

// TileStyle returns the display style for a tile type.
func TileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileFloor, world.TileStart:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileDoor:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	case world.TileEncounter:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case world.TileTreasure:
		return tcell.StyleDefault.Foreground(tcell.ColorGold)
	case world.TileUnexplored:
		return tcell.StyleDefault
	default:
		return tcell.StyleDefault
	}
}

// FacingRune returns an arrow pointing the way the player faces.
func FacingRune(d world.Direction) rune {
	switch d {
	case world.North:
		return '^'
	case world.East:
		return '>'
	case world.South:
		return 'v'
	case world.West:
		return '<'
	default:
		return '@'
	}
}
