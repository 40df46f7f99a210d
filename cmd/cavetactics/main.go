// Package main is the entry point for Cave Tactics.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/samdwyer/cavetactics/data"
	"github.com/samdwyer/cavetactics/internal/combat"
	"github.com/samdwyer/cavetactics/internal/game"
	"github.com/samdwyer/cavetactics/internal/gamedata"
	"github.com/samdwyer/cavetactics/internal/telemetry"
	"github.com/samdwyer/cavetactics/internal/ui"
	"github.com/samdwyer/cavetactics/internal/world"
)

func main() {
	// .env is optional; variables may be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	cfg, err := game.LoadConfig(os.Getenv("CAVETACTICS_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("telemetry setup failed, running without tracing", zap.Error(err))
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("telemetry shutdown", zap.Error(err))
			}
		}()
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("game exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "cavetactics: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *game.Config, logger *zap.Logger) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	tracer := telemetry.Tracer("game")
	initCtx, span := tracer.Start(ctx, "game.init")
	span.SetAttributes(
		attribute.Int64("seed", seed),
		attribute.String("level.path", cfg.Level.Path),
	)

	g, err := newGame(initCtx, cfg, rng, logger)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return err
	}
	span.SetAttributes(
		attribute.Int("level.width", g.Sim().Level.Width),
		attribute.Int("level.height", g.Sim().Level.Height),
		attribute.Int("level.mobs", len(g.Sim().Mobs)),
	)
	span.End()
	logger.Info("game ready", zap.Int64("seed", seed), zap.String("level", cfg.Level.Path))

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Close()

	loop := ui.NewLoop(screen, g, game.NewClock(cfg.Sim.Tick()), logger)
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// newGame loads or generates the level and builds the simulation over it.
func newGame(ctx context.Context, cfg *game.Config, rng *rand.Rand, logger *zap.Logger) (*game.Game, error) {
	reg, err := gamedata.LoadActorRegistry()
	if err != nil {
		return nil, fmt.Errorf("load actors: %w", err)
	}

	var lvl *world.Level
	switch cfg.Level.Path {
	case "":
		lvl, err = world.LoadLevel(ctx, data.FS(), data.DefaultLevel, reg)
	case game.LevelGenerate:
		d := world.NewDungeon(world.DefaultWidth, world.DefaultHeight, rng)
		d.Generate(ctx)
		lvl, err = d.ToLevel(reg, cfg.Level.Enemies)
	default:
		lvl, err = world.LoadLevel(ctx, os.DirFS("."), cfg.Level.Path, reg)
	}
	if err != nil {
		return nil, err
	}

	sim, err := game.NewSim(lvl, cfg.Sim, combat.NewRandDice(rng), logger)
	if err != nil {
		return nil, err
	}
	return game.New(sim, cfg.Sim, rng, logger), nil
}

// newLogger writes to the configured log file; the terminal belongs to the game.
func newLogger(cfg *game.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Debug {
		zc = zap.NewDevelopmentConfig()
	}
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}
	return zc.Build()
}

// setupOTelEnv derives the OTEL exporter variables from our own keys.
func setupOTelEnv() {
	apiKey := os.Getenv("CAVETACTICS_HONEYCOMB_API_KEY")
	if apiKey == "" {
		return
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	dataset := os.Getenv("CAVETACTICS_HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = "cavetactics"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
