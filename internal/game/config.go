package game

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/mazecrawl/internal/world"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvWidth             = "MAZECRAWL_WIDTH"
	EnvHeight            = "MAZECRAWL_HEIGHT"
	EnvSeed              = "MAZECRAWL_SEED"
	EnvLoopChance        = "MAZECRAWL_LOOP_CHANCE"
	EnvConsumeEncounters = "MAZECRAWL_CONSUME_ENCOUNTERS"
)

// Config holds session configuration options.
type Config struct {
	// Maze dimensions. Both must be odd and at least world.MinDimension.
	Width  int
	Height int

	// Seed for random number generation. Used for reproducible maze generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Percent chance for each wall between two corridors to be opened.
	LoopChance int

	// Inclusive range the per-level treasure room count is drawn from.
	MinRooms int
	MaxRooms int

	// ConsumeEncounters turns an encounter tile into floor once it has fired.
	// By default an encounter triggers again every time it is entered.
	ConsumeEncounters bool

	// OnEncounter, if set, is called after a move lands on an encounter.
	// It runs outside the session lock and may call back into the session.
	OnEncounter func(Snapshot)

	// DisableTracing swaps the session tracer for a no-op one.
	DisableTracing bool
}

// DefaultConfig returns the standard 25x25 configuration.
func DefaultConfig() Config {
	return Config{
		Width:      world.DefaultWidth,
		Height:     world.DefaultHeight,
		LoopChance: world.DefaultLoopChance,
		MinRooms:   world.DefaultMinRooms,
		MaxRooms:   world.DefaultMaxRooms,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by any MAZECRAWL_* variables set.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvWidth, &cfg.Width},
		{EnvHeight, &cfg.Height},
		{EnvLoopChance, &cfg.LoopChance},
	}
	for _, v := range ints {
		raw := os.Getenv(v.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", v.name, raw, err)
		}
		*v.dst = n
	}

	if raw := os.Getenv(EnvSeed); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvSeed, raw, err)
		}
		cfg.Seed = seed
	}

	if raw := os.Getenv(EnvConsumeEncounters); raw != "" {
		consume, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvConsumeEncounters, raw, err)
		}
		cfg.ConsumeEncounters = consume
	}

	return cfg, nil
}

// Validate rejects configurations no maze can be generated from.
func (c Config) Validate() error {
	if err := world.ValidateDimensions(c.Width, c.Height); err != nil {
		return fmt.Errorf("session config: %w", err)
	}
	if c.LoopChance < 0 || c.LoopChance > 100 {
		return fmt.Errorf("session config: %w: loop chance %d outside 0-100", world.ErrInvalidOption, c.LoopChance)
	}
	if c.MinRooms < 0 || c.MaxRooms < c.MinRooms {
		return fmt.Errorf("session config: %w: room count range %d-%d", world.ErrInvalidOption, c.MinRooms, c.MaxRooms)
	}
	return nil
}

// generatorOptions translates the config into world.Generate options.
func (c Config) generatorOptions() []world.Option {
	return []world.Option{
		world.WithLoopChance(c.LoopChance),
		world.WithRoomCount(c.MinRooms, c.MaxRooms),
	}
}
