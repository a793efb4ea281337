// Package main is the entry point for mazecrawl.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/samdwyer/mazecrawl/internal/game"
	"github.com/samdwyer/mazecrawl/internal/logger"
	"github.com/samdwyer/mazecrawl/internal/server"
	"github.com/samdwyer/mazecrawl/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	var (
		serveAddr = flag.String("serve", "", "Serve WebSocket sessions on this address instead of playing in the terminal")
		width     = flag.Int("width", 0, "Maze width, odd and >= 5 (overrides "+game.EnvWidth+")")
		height    = flag.Int("height", 0, "Maze height, odd and >= 5 (overrides "+game.EnvHeight+")")
		seed      = flag.Int64("seed", 0, "World seed, 0 for random (overrides "+game.EnvSeed+")")
		consume   = flag.Bool("consume-encounters", false, "Clear encounter tiles after they trigger")
		logFile   = flag.String("log-file", os.Getenv("MAZECRAWL_LOG_FILE"), "Log file for terminal mode (default: discard)")
	)
	flag.Parse()

	// The terminal UI owns stdout, so logs go to a file there
	var out io.Writer = os.Stdout
	if *serveAddr == "" {
		f, err := logger.OpenFile(*logFile)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		out = f
	}
	logger.Init(out)

	cfg, err := game.ConfigFromEnv()
	if err != nil {
		logger.Log.Fatalf("Invalid configuration: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "seed":
			cfg.Seed = *seed
		case "consume-encounters":
			cfg.ConsumeEncounters = *consume
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatalf("Invalid configuration: %v", err)
	}

	if dir := os.Getenv("MAZECRAWL_LOCALE_DIR"); dir != "" {
		game.ConfigureLocale(dir, os.Getenv("LANG"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Log.WithError(err).Warn("Telemetry setup failed, running without traces")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Log.WithError(err).Warn("Error shutting down telemetry")
				}
			}()
		}
	}

	if *serveAddr != "" {
		if err := server.New(cfg, *serveAddr).Run(ctx); err != nil {
			logger.Log.Fatalf("Server error: %v", err)
		}
		return
	}

	session, err := game.NewSession(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("Failed to start session: %v", err)
	}

	g, err := game.New(session)
	if err != nil {
		logger.Log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		logger.Log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv maps our Honeycomb variables onto the standard OTEL_* ones.
// It reports whether an exporter endpoint is configured at all.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_API_KEY")
	if apiKey != "" {
		dataset := os.Getenv("HONEYCOMB_DATASET")
		if dataset == "" {
			dataset = "mazecrawl"
		}
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
}
