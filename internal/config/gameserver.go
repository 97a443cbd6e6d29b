package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/udisondev/roomserver/internal/constants"
)

// RoomsConfig describes the fixed room pool.
type RoomsConfig struct {
	StartNumber int `yaml:"start_number"`
	Count       int `yaml:"count"`
	Capacity    int `yaml:"capacity"`     // users per room
	NpcsPerRoom int `yaml:"npcs_per_room"` // NPCs created at room start

	// NotifyEntrant includes the entering user in its own new-user broadcast.
	NotifyEntrant bool `yaml:"notify_entrant"`

	TickInterval time.Duration `yaml:"tick_interval"` // room simulation step
	SyncInterval time.Duration `yaml:"sync_interval"` // enemy position broadcast
	RandomSeed   uint64        `yaml:"random_seed"`   // 0 = time based
}

// SpawnConfig is one enemy spawn point, replicated in every room.
type SpawnConfig struct {
	ID           int64         `yaml:"id"`
	EnemyType    int32         `yaml:"enemy_type"` // 1 slime, 2 goblin, 3 wolf
	X            float32       `yaml:"x"`
	Y            float32       `yaml:"y"`
	Z            float32       `yaml:"z"`
	RespawnDelay time.Duration `yaml:"respawn_delay"`
}

// RectConfig is an XZ rectangle.
type RectConfig struct {
	MinX float32 `yaml:"min_x"`
	MinZ float32 `yaml:"min_z"`
	MaxX float32 `yaml:"max_x"`
	MaxZ float32 `yaml:"max_z"`
}

// NavGridConfig describes the walkable floor used for path requests.
// When disabled, paths are straight lines.
type NavGridConfig struct {
	Enabled   bool         `yaml:"enabled"`
	Area      RectConfig   `yaml:"area"`
	CellSize  float32      `yaml:"cell_size"`
	FloorY    float32      `yaml:"floor_y"`
	Obstacles []RectConfig `yaml:"obstacles"`
}

// WebSocketConfig enables the browser transport.
type WebSocketConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
	Path        string `yaml:"path"`
}

// TasksConfig sizes the async persistence queue.
type TasksConfig struct {
	Workers   int           `yaml:"workers"`
	QueueSize int           `yaml:"queue_size"`
	Timeout   time.Duration `yaml:"timeout"` // per task
}

// GameServer holds all configuration for the room server.
type GameServer struct {
	LogLevel string `yaml:"log_level"` // debug|info|warn|error

	// Network
	BindAddress string          `yaml:"bind_address"`
	Port        int             `yaml:"port"`
	WebSocket   WebSocketConfig `yaml:"websocket"`

	// Connections
	MaxClients     int           `yaml:"max_clients"`
	MaxUsers       int           `yaml:"max_users"` // logged-in limit, 0 = max_clients
	ConnBufferSize int           `yaml:"conn_buffer_size"`
	ReadChunkSize  int           `yaml:"read_chunk_size"`
	SendQueueSize  int           `yaml:"send_queue_size"` // per-client outbox capacity
	WriteTimeout   time.Duration `yaml:"write_timeout"`   // per-write deadline
	ReadTimeout    time.Duration `yaml:"read_timeout"`    // idle client disconnect, 0 = none

	// World
	Rooms        RoomsConfig   `yaml:"rooms"`
	Spawns       []SpawnConfig `yaml:"spawns"`
	PatrolBounds RectConfig    `yaml:"patrol_bounds"`
	NavGrid      NavGridConfig `yaml:"nav_grid"`

	// Persistence
	Database           DatabaseConfig  `yaml:"database"`
	AutoCreateAccounts bool            `yaml:"auto_create_accounts"`
	Tasks              TasksConfig     `yaml:"tasks"`
	Messaging          MessagingConfig `yaml:"messaging"`
}

// DefaultSpawns returns the field layout of the client scene: one of each enemy type.
func DefaultSpawns() []SpawnConfig {
	return []SpawnConfig{
		{ID: 1, EnemyType: 1, X: 20, Y: 0, Z: 60, RespawnDelay: 30 * time.Second},
		{ID: 2, EnemyType: 2, X: 25, Y: 0, Z: 70, RespawnDelay: 30 * time.Second},
		{ID: 3, EnemyType: 3, X: 22, Y: 0, Z: 80, RespawnDelay: 30 * time.Second},
	}
}

// DefaultGameServer returns GameServer config with sensible defaults.
func DefaultGameServer() GameServer {
	return GameServer{
		LogLevel:    "info",
		BindAddress: "0.0.0.0",
		Port:        11021,
		WebSocket: WebSocketConfig{
			Enabled:     false,
			BindAddress: "0.0.0.0",
			Port:        11022,
			Path:        "/ws",
		},
		MaxClients:     100,
		ConnBufferSize: constants.DefaultConnBufferSize,
		ReadChunkSize:  constants.DefaultReadChunkSize,
		SendQueueSize:  constants.DefaultSendQueueSize,
		WriteTimeout:   5 * time.Second,
		Rooms: RoomsConfig{
			StartNumber:   0,
			Count:         10,
			Capacity:      4,
			NpcsPerRoom:   1,
			NotifyEntrant: true,
			TickInterval:  33 * time.Millisecond,
			SyncInterval:  100 * time.Millisecond,
		},
		Spawns:       DefaultSpawns(),
		PatrolBounds: RectConfig{MinX: 17, MinZ: 50, MaxX: 30, MaxZ: 85},
		NavGrid: NavGridConfig{
			Enabled:  true,
			Area:     RectConfig{MinX: -50, MinZ: -50, MaxX: 100, MaxZ: 150},
			CellSize: 0.5,
		},
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "roomserver",
			Password: "roomserver",
			DBName:   "roomserver",
			SSLMode:  "disable",
		},
		AutoCreateAccounts: true,
		Tasks: TasksConfig{
			Workers:   2,
			QueueSize: 1024,
			Timeout:   5 * time.Second,
		},
		Messaging: MessagingConfig{
			Enabled:       false,
			Embedded:      true,
			URL:           "nats://127.0.0.1:4222",
			Host:          "127.0.0.1",
			Port:          4222,
			NoticeSubject: "roomserver.notice",
		},
	}
}

// LoadGameServer loads game server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGameServer(path string) (GameServer, error) {
	cfg := DefaultGameServer()
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the server cannot run with.
func (c GameServer) Validate() error {
	var errs []error

	if c.MaxClients <= 0 {
		errs = append(errs, fmt.Errorf("max_clients must be positive, got %d", c.MaxClients))
	}
	if c.MaxUsers < 0 || c.MaxUsers > c.MaxClients {
		errs = append(errs, fmt.Errorf("max_users must be in [0, max_clients], got %d", c.MaxUsers))
	}
	if c.ConnBufferSize < constants.PacketHeaderSize {
		errs = append(errs, fmt.Errorf("conn_buffer_size must be at least %d, got %d", constants.PacketHeaderSize, c.ConnBufferSize))
	}
	if c.ReadChunkSize <= 0 || c.ReadChunkSize > c.ConnBufferSize {
		errs = append(errs, fmt.Errorf("read_chunk_size must be in (0, conn_buffer_size], got %d", c.ReadChunkSize))
	}
	if c.Rooms.Count <= 0 {
		errs = append(errs, fmt.Errorf("rooms.count must be positive, got %d", c.Rooms.Count))
	}
	if c.Rooms.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("rooms.capacity must be positive, got %d", c.Rooms.Capacity))
	}
	if c.Rooms.TickInterval <= 0 || c.Rooms.SyncInterval <= 0 {
		errs = append(errs, errors.New("rooms.tick_interval and rooms.sync_interval must be positive"))
	}
	for _, s := range c.Spawns {
		if s.EnemyType < 1 || s.EnemyType > 3 {
			errs = append(errs, fmt.Errorf("spawn %d: unknown enemy_type %d", s.ID, s.EnemyType))
		}
	}
	if c.PatrolBounds.MaxX < c.PatrolBounds.MinX || c.PatrolBounds.MaxZ < c.PatrolBounds.MinZ {
		errs = append(errs, fmt.Errorf("patrol_bounds is empty: %+v", c.PatrolBounds))
	}
	if c.Tasks.Workers <= 0 || c.Tasks.QueueSize <= 0 {
		errs = append(errs, errors.New("tasks.workers and tasks.queue_size must be positive"))
	}
	if c.Messaging.Enabled && c.Messaging.NoticeSubject == "" {
		errs = append(errs, errors.New("messaging.notice_subject is required"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}

	return errors.Join(errs...)
}
