package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazecrawl/internal/logger"
	"github.com/samdwyer/mazecrawl/internal/telemetry"
	"github.com/samdwyer/mazecrawl/internal/ui"
)

// Game drives a Session from the keyboard and draws it in the terminal.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	state    State
	running  bool
}

// New creates a new terminal game around an existing session.
func New(session *Session) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		session:  session,
		state:    StateExplore,
		running:  true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, telemetry.SpanRun)
	span.SetAttributes(attribute.String("session.id", g.session.ID()))
	defer span.End()

	for g.running {
		g.render()

		// Handle input (blocking)
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

func (g *Game) render() {
	if g.state == StateBattle {
		g.renderer.RenderBattle(g.session.Snapshot().Encounters)
		return
	}

	snap := g.session.Snapshot()
	g.renderer.Render(ui.View{
		Visible:  snap.Visible,
		Position: snap.Position,
		Facing:   snap.Facing,
		Header:   fmt.Sprintf("Depth %d  Facing %s  Battles %d", snap.Depth, snap.Facing, snap.Encounters),
		Message:  snap.Message,
	})
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized
		g.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return
	}

	// Any key ends the battle placeholder
	if g.state == StateBattle {
		g.state = StateExplore
		return
	}

	switch ev.Key() {
	case tcell.KeyUp:
		g.apply(g.session.MoveForward(ctx))
	case tcell.KeyLeft:
		g.apply(g.session.TurnLeft(ctx))
	case tcell.KeyRight:
		g.apply(g.session.TurnRight(ctx))

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			g.apply(g.session.MoveForward(ctx))
		case 'a', 'A':
			g.apply(g.session.TurnLeft(ctx))
		case 'd', 'D':
			g.apply(g.session.TurnRight(ctx))
		case 'q', 'Q':
			g.running = false
		}
	}
}

// apply switches screens when an action starts a battle.
func (g *Game) apply(outcome Outcome) {
	if outcome.StartsBattle() {
		logger.Log.WithField("session_id", g.session.ID()).Info("Battle started")
		g.state = StateBattle
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
