package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/rpgcore/internal/config"
	"github.com/udisondev/rpgcore/internal/data"
	"github.com/udisondev/rpgcore/internal/db"
	"github.com/udisondev/rpgcore/internal/game/attr"
	"github.com/udisondev/rpgcore/internal/model"
	"github.com/udisondev/rpgcore/internal/sim"
	"github.com/udisondev/rpgcore/internal/world"
)

// saveTimeout bounds one persistence write, including writes made during shutdown.
const saveTimeout = 5 * time.Second

type saveRequest struct {
	id    model.EntityID
	attrs map[string]float64
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	// Load config FIRST to determine log level
	cfgPath := config.Path()
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("rpg server starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"storage", cfg.Storage,
		"tick_interval", cfg.Simulation.TickInterval)

	repo, closeRepo, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage, err)
	}
	defer closeRepo()

	catalog, err := data.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	ext := attr.NewStore()
	w := world.New(ext)
	simulation, err := sim.New(cfg.Simulation, w, ext)
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}
	w.SetClock(simulation.Now)
	w.OnCue(func(id model.EntityID, cue string) {
		slog.Debug("cue", "entity", id, "cue", cue)
	})
	w.OnHUD(func(snap model.HUDSnapshot) {
		slog.Debug("hud",
			"entity", snap.Entity,
			"health", snap.Health,
			"max_health", snap.MaxHealth,
			"overshield", snap.Overshield,
			"stacks", snap.Stacks,
			"cooldowns", snap.Cooldowns)
	})

	saves := make(chan saveRequest, cfg.Simulation.IngressSize)
	simulation.SetSink(func(id model.EntityID, attrs map[string]float64) {
		select {
		case saves <- saveRequest{id: id, attrs: attrs}:
		default:
			slog.Error("persistence queue full, attributes dropped", "entity", id, "attributes", len(attrs))
		}
	})

	joined, err := spawnEntities(ctx, w, simulation, catalog, repo)
	if err != nil {
		return fmt.Errorf("spawning entities: %w", err)
	}
	slog.Info("world initialized",
		"entities", w.Count(),
		"joined", len(joined),
		"regions", w.RegionCount())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(saves)
		err := simulation.Run(gctx)

		// Loop has stopped: this goroutine is the only writer again.
		for _, id := range joined {
			if lerr := simulation.Exec(sim.Leave{Entity: id}); lerr != nil {
				slog.Warn("leave on shutdown failed", "entity", id, "error", lerr)
			}
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("starting persistence worker", "storage", cfg.Storage)
		for req := range saves {
			saveCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			if err := repo.Save(saveCtx, req.id, req.attrs); err != nil {
				slog.Error("saving attributes failed", "entity", req.id, "error", err)
			}
			cancel()
		}
		slog.Info("persistence worker stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// spawnEntities creates the catalog's startup entities and joins them with
// their stored attributes.
func spawnEntities(ctx context.Context, w *world.World, simulation *sim.Simulation, catalog *data.Catalog, repo db.AttributeRepository) ([]model.EntityID, error) {
	var joined []model.EntityID
	for _, def := range catalog.Spawns() {
		items, err := catalog.Items(def.Items)
		if err != nil {
			return joined, fmt.Errorf("entity %s: %w", def.ID, err)
		}
		attrs, err := repo.Load(ctx, def.ID)
		if err != nil {
			return joined, err
		}

		id := w.Spawn(world.Spawn{
			ID:        def.ID,
			Name:      def.Name,
			Location:  def.Location,
			MaxHealth: def.MaxHealth,
		})
		if err := simulation.Exec(sim.Join{Entity: id, Attributes: attrs, Items: items}); err != nil {
			// Invalid abilities are skipped; the entity still joins.
			slog.Warn("join with invalid abilities", "entity", id, "error", err)
		}
		joined = append(joined, id)
	}
	return joined, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
