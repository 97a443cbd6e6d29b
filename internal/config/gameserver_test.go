package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGameServer_Valid(t *testing.T) {
	cfg := DefaultGameServer()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8096, cfg.ConnBufferSize)
	assert.Equal(t, 4, cfg.Rooms.Capacity)
	assert.True(t, cfg.Rooms.NotifyEntrant)
	assert.Len(t, cfg.Spawns, 3)
}

func TestLoadGameServer_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadGameServer(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultGameServer(), cfg)
}

func TestLoadGameServer_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gameserver.yaml")
	data := `
log_level: debug
port: 12000
max_clients: 16
rooms:
  count: 2
  capacity: 2
  notify_entrant: false
spawns:
  - id: 7
    enemy_type: 3
    x: 18
    z: 55
    respawn_delay: 5s
database:
  enabled: true
  host: db
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadGameServer(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 12000, cfg.Port)
	assert.Equal(t, 16, cfg.MaxClients)
	assert.Equal(t, 2, cfg.Rooms.Count)
	assert.False(t, cfg.Rooms.NotifyEntrant)
	assert.Equal(t, 33*time.Millisecond, cfg.Rooms.TickInterval, "unset keys keep defaults")
	require.Len(t, cfg.Spawns, 1)
	assert.Equal(t, int32(3), cfg.Spawns[0].EnemyType)
	assert.Equal(t, 5*time.Second, cfg.Spawns[0].RespawnDelay)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://roomserver:roomserver@db:5432/roomserver?sslmode=disable", cfg.Database.DSN())
}

func TestLoadGameServer_SampleConfig(t *testing.T) {
	cfg, err := LoadGameServer(filepath.Join("..", "..", "config", "roomserver.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.WebSocket.Enabled)
	assert.Equal(t, 0, cfg.MaxUsers)
	assert.Len(t, cfg.Spawns, 3)
}

func TestLoadGameServer_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "port: [1"},
		{"no clients", "max_clients: 0"},
		{"unknown enemy", "spawns:\n  - id: 1\n    enemy_type: 9\n"},
		{"bad log level", "log_level: loud"},
		{"users above clients", "max_clients: 4\nmax_users: 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "gameserver.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o600))

			_, err := LoadGameServer(path)
			assert.Error(t, err)
		})
	}
}
