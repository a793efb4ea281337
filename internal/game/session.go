package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/mazecrawl/internal/logger"
	"github.com/samdwyer/mazecrawl/internal/telemetry"
	"github.com/samdwyer/mazecrawl/internal/world"
)

// Session is one player's run through a sequence of generated mazes.
// Every exported method is a single atomic transition; the session is safe
// for concurrent use.
type Session struct {
	mu sync.Mutex

	id     string
	cfg    Config
	rng    *rand.Rand
	tracer trace.Tracer
	log    *logrus.Entry

	maze       *world.Maze // Full map, hidden from the player
	visible    *world.Grid // Fog of war view
	player     Player
	message    string
	outcome    Outcome
	depth      int
	encounters int

	snapshot Snapshot
	subs     map[*subscription]struct{}
}

// NewSession validates cfg, generates the first level and places the player
// on its start tile.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		id:     uuid.NewString(),
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		tracer: telemetry.Tracer("session"),
		subs:   make(map[*subscription]struct{}),
	}
	if cfg.DisableTracing {
		s.tracer = telemetry.NoopTracer()
	}
	s.log = logger.Log.WithFields(logrus.Fields{
		"component":  "session",
		"session_id": s.id,
	})

	ctx, span := s.tracer.Start(ctx, telemetry.SpanStart)
	defer span.End()

	m, err := world.Generate(ctx, cfg.Width, cfg.Height, s.rng, cfg.generatorOptions()...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.enterLevel(m)
	s.message = message(msgEnter)
	s.outcome = OutcomeMoved
	s.publish()

	span.SetAttributes(
		attribute.String("session.id", s.id),
		attribute.Int64("session.seed", seed),
	)
	s.log.WithFields(logrus.Fields{
		"seed":   seed,
		"width":  cfg.Width,
		"height": cfg.Height,
	}).Info("Session started")

	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns a copy of the state published by the last transition.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// Subscribe returns a channel that receives a snapshot after every
// transition, starting with the current one. Slow readers only see the
// newest snapshot. Call the returned function to unsubscribe; it closes
// the channel.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	sub := newSubscription()

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	sub.offer(s.snapshot.Clone())
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, sub)
			close(sub.ch)
			s.mu.Unlock()
		})
	}
	return sub.ch, cancel
}

// TurnLeft rotates the player counter-clockwise.
func (s *Session) TurnLeft(ctx context.Context) Outcome {
	return s.turn(ctx, "left", (*Player).TurnLeft, msgTurnLeft)
}

// TurnRight rotates the player clockwise.
func (s *Session) TurnRight(ctx context.Context) Outcome {
	return s.turn(ctx, "right", (*Player).TurnRight, msgTurnRight)
}

func (s *Session) turn(ctx context.Context, side string, rotate func(*Player), msgID string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, span := s.tracer.Start(ctx, telemetry.SpanTurn)
	defer span.End()

	rotate(&s.player)
	s.message = message(msgID)
	s.outcome = OutcomeTurned
	s.publish()

	span.SetAttributes(
		attribute.String("turn.side", side),
		attribute.String("player.facing", s.player.Facing.String()),
	)
	return OutcomeTurned
}

// MoveForward tries to step one cell in the facing direction and applies
// the effect of the tile landed on. Walls and the map edge block the move.
// Reaching the door replaces the whole level before returning OutcomeExit.
func (s *Session) MoveForward(ctx context.Context) Outcome {
	outcome, snap := s.moveForward(ctx)

	if outcome.StartsBattle() && s.cfg.OnEncounter != nil {
		s.cfg.OnEncounter(snap)
	}
	return outcome
}

func (s *Session) moveForward(ctx context.Context) (Outcome, Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, telemetry.SpanMove)
	defer span.End()

	target := s.player.Ahead()
	tile := world.TileWall
	if s.player.Facing.IsValid() {
		tile = s.maze.At(target.X, target.Y)
	}

	var outcome Outcome
	switch tile {
	case world.TileWall, world.TileUnexplored:
		outcome = OutcomeBlocked
		s.message = message(msgBlocked)

	case world.TileFloor, world.TileStart:
		outcome = OutcomeMoved
		s.stepTo(target)
		s.message = message(msgWalked)

	case world.TileTreasure:
		outcome = OutcomeTreasure
		s.stepTo(target)
		s.message = message(msgTreasure)

	case world.TileEncounter:
		outcome = OutcomeEncounter
		s.encounters++
		if s.cfg.ConsumeEncounters {
			s.maze.Set(target.X, target.Y, world.TileFloor)
		}
		s.stepTo(target)
		s.message = message(msgAmbushed)

	case world.TileDoor:
		outcome = OutcomeExit
		if !s.regenerate(ctx) {
			outcome = OutcomeBlocked
			s.message = message(msgBlocked)
			break
		}
		s.message = message(msgExit)

	default:
		outcome = OutcomeBlocked
		s.message = message(msgBlocked)
	}

	s.outcome = outcome
	s.publish()

	span.SetAttributes(
		attribute.String("move.outcome", outcome.String()),
		attribute.String("move.tile", tile.String()),
		attribute.Int("player.x", s.player.Pos.X),
		attribute.Int("player.y", s.player.Pos.Y),
	)
	s.log.WithFields(logrus.Fields{
		"outcome": outcome.String(),
		"x":       s.player.Pos.X,
		"y":       s.player.Pos.Y,
		"facing":  s.player.Facing.String(),
	}).Debug("Player moved")

	return outcome, s.snapshot.Clone()
}

// RevealFogOfWar uncovers the 3x3 block of cells around center.
func (s *Session) RevealFogOfWar(center world.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reveal(center)
	s.publish()
}

// stepTo moves the player and uncovers the cells around the new position.
func (s *Session) stepTo(p world.Position) {
	s.player.Pos = p
	s.reveal(p)
}

// reveal copies the true tiles within one cell of center into the visible grid.
func (s *Session) reveal(center world.Position) {
	for y := center.Y - 1; y <= center.Y+1; y++ {
		for x := center.X - 1; x <= center.X+1; x++ {
			if s.visible.InBounds(x, y) {
				s.visible.Tiles[y][x] = s.maze.Tiles[y][x]
			}
		}
	}
}

// regenerate swaps in a fresh level. It returns false, leaving the current
// level untouched, if generation fails.
func (s *Session) regenerate(ctx context.Context) bool {
	ctx, span := s.tracer.Start(ctx, telemetry.SpanRegenerate)
	defer span.End()

	m, err := world.Generate(ctx, s.cfg.Width, s.cfg.Height, s.rng, s.cfg.generatorOptions()...)
	if err != nil {
		span.RecordError(err)
		s.log.WithError(err).Error("Failed to generate next level")
		return false
	}

	s.enterLevel(m)
	span.SetAttributes(attribute.Int("session.depth", s.depth))
	s.log.WithField("depth", s.depth).Info("Entered new level")
	return true
}

// enterLevel installs m as the current level with everything unexplored
// and the player on its start tile facing north.
func (s *Session) enterLevel(m *world.Maze) {
	if err := world.Validate(m.Grid); err != nil {
		s.log.WithError(err).Warn("Generated level failed validation")
	}

	s.maze = m
	s.visible = world.NewGrid(m.Width, m.Height, world.TileUnexplored)
	s.player = NewPlayer(m.Start)
	s.depth++
	s.reveal(m.Start)
}

// publish replaces the stored snapshot and pushes it to subscribers.
// Callers must hold s.mu.
func (s *Session) publish() {
	s.snapshot = Snapshot{
		SessionID:  s.id,
		Depth:      s.depth,
		Visible:    s.visible.Clone(),
		Position:   s.player.Pos,
		Facing:     s.player.Facing,
		Message:    s.message,
		Outcome:    s.outcome,
		Encounters: s.encounters,
	}
	for sub := range s.subs {
		sub.offer(s.snapshot.Clone())
	}
}
