package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/roomserver/internal/ai"
	"github.com/udisondev/roomserver/internal/config"
	"github.com/udisondev/roomserver/internal/db"
	"github.com/udisondev/roomserver/internal/game/geo"
	"github.com/udisondev/roomserver/internal/game/quest"
	"github.com/udisondev/roomserver/internal/gameserver"
	"github.com/udisondev/roomserver/internal/login"
	"github.com/udisondev/roomserver/internal/messaging"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/room"
	"github.com/udisondev/roomserver/internal/spawn"
	"github.com/udisondev/roomserver/internal/task"
)

const ConfigPath = "config/roomserver.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("ROOMSERVER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGameServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("room server starting",
		"log_level", cfg.LogLevel,
		"bind", cfg.BindAddress,
		"port", cfg.Port,
		"rooms", cfg.Rooms.Count,
		"max_clients", cfg.MaxClients)

	// Credentials + GM notice log
	var (
		store    login.CredentialStore
		recorder task.NoticeRecorder
	)
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		notices := db.NewNoticeStore(database)
		logRecentNotices(ctx, notices)

		store = db.NewAccountStore(database, cfg.AutoCreateAccounts)
		recorder = notices
	} else {
		slog.Warn("database disabled, accounts are kept in memory")
		store = login.NewMemoryStore(cfg.AutoCreateAccounts)
	}

	// Notice bus
	bus, shutdownBus, err := openBus(cfg.Messaging)
	if err != nil {
		return err
	}
	defer shutdownBus()

	// World
	quests, err := quest.NewRegistry(quest.DefaultDefinitions()...)
	if err != nil {
		return fmt.Errorf("loading quests: %w", err)
	}

	var paths room.PathFinder
	if cfg.NavGrid.Enabled {
		grid, err := newNavGrid(cfg.NavGrid)
		if err != nil {
			return err
		}
		w, h := grid.Size()
		slog.Info("nav grid built", "width", w, "height", h, "obstacles", len(cfg.NavGrid.Obstacles))
		paths = grid
	}

	clients := gameserver.NewClientManager(cfg.MaxClients, cfg.ConnBufferSize)
	rooms := room.NewManager(cfg.Rooms.StartNumber, cfg.Rooms.Count, roomConfig(cfg), clients, paths, quests)

	queue := task.NewQueue(task.Config{
		Workers:       cfg.Tasks.Workers,
		QueueSize:     cfg.Tasks.QueueSize,
		Timeout:       cfg.Tasks.Timeout,
		NoticeSubject: cfg.Messaging.NoticeSubject,
	}, store, bus, recorder)

	proc := gameserver.NewProcessor(clients, rooms, queue, cfg.MaxUsers)

	g, gctx := errgroup.WithContext(ctx)

	if err := rooms.Start(gctx); err != nil {
		return fmt.Errorf("starting rooms: %w", err)
	}
	defer rooms.Stop()

	g.Go(func() error {
		slog.Info("starting task queue", "workers", cfg.Tasks.Workers)
		if err := queue.Run(gctx); err != nil {
			return fmt.Errorf("task queue: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return proc.Run(gctx)
	})

	g.Go(func() error {
		srv := gameserver.NewServer(cfg, clients, proc)
		if err := srv.Run(gctx); err != nil {
			return fmt.Errorf("room server: %w", err)
		}
		return nil
	})

	if cfg.WebSocket.Enabled {
		g.Go(func() error {
			ws := gameserver.NewWSServer(cfg, clients, proc)
			if err := ws.Run(gctx); err != nil {
				return fmt.Errorf("websocket server: %w", err)
			}
			return nil
		})
	}

	// Wait for all servers to finish
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}

	clients.CloseAll()
	slog.Info("room server stopped")
	return nil
}

// openBus returns the notice bus selected by cfg and its shutdown function.
func openBus(cfg config.MessagingConfig) (messaging.Bus, func(), error) {
	if !cfg.Enabled {
		bus := messaging.NewLocalBus()
		return bus, func() { _ = bus.Close() }, nil
	}

	url := cfg.URL
	var embedded *messaging.EmbeddedServer
	if cfg.Embedded {
		var err error
		embedded, err = messaging.NewEmbeddedServer(cfg.Host, cfg.Port)
		if err != nil {
			return nil, nil, fmt.Errorf("creating embedded nats: %w", err)
		}
		if err := embedded.Start(); err != nil {
			return nil, nil, fmt.Errorf("starting embedded nats: %w", err)
		}
		url = embedded.ClientURL()
		slog.Info("embedded nats started", "url", url)
	}

	bus, err := messaging.ConnectNats(url)
	if err != nil {
		if embedded != nil {
			embedded.Shutdown()
		}
		return nil, nil, fmt.Errorf("connecting to nats: %w", err)
	}
	slog.Info("nats connected", "url", url)

	return bus, func() {
		if err := bus.Close(); err != nil {
			slog.Warn("closing nats", "error", err)
		}
		if embedded != nil {
			embedded.Shutdown()
		}
	}, nil
}

func roomConfig(cfg config.GameServer) room.Config {
	spawns := make([]spawn.Point, 0, len(cfg.Spawns))
	for _, s := range cfg.Spawns {
		spawns = append(spawns, spawn.Point{
			ID:           s.ID,
			EnemyType:    model.EnemyType(s.EnemyType),
			Position:     model.Vec3{X: s.X, Y: s.Y, Z: s.Z},
			RespawnDelay: s.RespawnDelay,
		})
	}
	return room.Config{
		Capacity:      cfg.Rooms.Capacity,
		NpcsPerRoom:   cfg.Rooms.NpcsPerRoom,
		NotifyEntrant: cfg.Rooms.NotifyEntrant,
		TickInterval:  cfg.Rooms.TickInterval,
		SyncInterval:  cfg.Rooms.SyncInterval,
		Spawns:        spawns,
		PatrolBounds: ai.PatrolBounds{
			MinX: cfg.PatrolBounds.MinX,
			MaxX: cfg.PatrolBounds.MaxX,
			MinZ: cfg.PatrolBounds.MinZ,
			MaxZ: cfg.PatrolBounds.MaxZ,
		},
		RandomSeed: cfg.Rooms.RandomSeed,
	}
}

func newNavGrid(cfg config.NavGridConfig) (*geo.NavGrid, error) {
	rect := func(r config.RectConfig) geo.Rect {
		return geo.Rect{MinX: r.MinX, MinZ: r.MinZ, MaxX: r.MaxX, MaxZ: r.MaxZ}
	}
	obstacles := make([]geo.Rect, 0, len(cfg.Obstacles))
	for _, o := range cfg.Obstacles {
		obstacles = append(obstacles, rect(o))
	}
	grid, err := geo.NewNavGrid(rect(cfg.Area), cfg.CellSize, cfg.FloorY, obstacles)
	if err != nil {
		return nil, fmt.Errorf("building nav grid: %w", err)
	}
	return grid, nil
}

func logRecentNotices(ctx context.Context, notices *db.NoticeStore) {
	recent, err := notices.Recent(ctx, 5)
	if err != nil {
		slog.Warn("loading recent GM notices", "error", err)
		return
	}
	for _, n := range recent {
		slog.Info("recent GM notice", "from", n.UserID, "message", n.Message, "at", n.CreatedAt)
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
