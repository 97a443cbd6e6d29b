package room

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/roomserver/internal/ai"
	"github.com/udisondev/roomserver/internal/constants"
	"github.com/udisondev/roomserver/internal/game/quest"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
	"github.com/udisondev/roomserver/internal/spawn"
)

// recordingSender collects frames per connection.
type recordingSender struct {
	mu     sync.Mutex
	frames map[uint32][][]byte
}

func newRecordingSender() *recordingSender {
	return &recordingSender{frames: make(map[uint32][][]byte)}
}

func (s *recordingSender) Send(idx uint32, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[idx] = append(s.frames[idx], data)
	return nil
}

// of returns frames with id sent to idx.
func (s *recordingSender) of(idx uint32, id protocol.MessageID) [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out [][]byte
	for _, f := range s.frames[idx] {
		hdr, err := protocol.ParseHeader(f)
		if err == nil && hdr.ID == id {
			out = append(out, f)
		}
	}
	return out
}

func (s *recordingSender) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.frames)
}

// testSpawns places one slime per point, 2 units apart on X.
func testSpawns(n int) []spawn.Point {
	points := make([]spawn.Point, n)
	for i := range points {
		points[i] = spawn.Point{
			ID:           int64(i + 1),
			EnemyType:    model.EnemySlime,
			Position:     model.Vec3{X: 20 + float32(i)*2, Z: 60},
			RespawnDelay: time.Second,
		}
	}
	return points
}

func testConfig() Config {
	return Config{
		Capacity:      constants.TestRoomCapacity,
		NpcsPerRoom:   1,
		NotifyEntrant: true,
		TickInterval:  time.Hour, // тесты двигают симуляцию через Tick
		SyncInterval:  100 * time.Millisecond,
		Spawns:        testSpawns(3),
		PatrolBounds:  ai.DefaultPatrolBounds,
		RandomSeed:    42,
	}
}

func testRegistry(t *testing.T) *quest.Registry {
	t.Helper()
	reg, err := quest.NewRegistry(quest.DefaultDefinitions()...)
	require.NoError(t, err)
	return reg
}

// startedRoom returns a RUNNING room 0 whose loop never ticks on its own.
func startedRoom(t *testing.T, cfg Config) (*Room, *recordingSender) {
	t.Helper()
	sender := newRecordingSender()
	r := New(0, cfg, sender, nil, testRegistry(t))
	require.NoError(t, r.Start(t.Context()))
	t.Cleanup(r.Stop)
	return r, sender
}

func loggedIn(t *testing.T, idx uint32, userID string) *model.User {
	t.Helper()
	u := model.NewUser(idx, constants.DefaultConnBufferSize)
	require.True(t, u.SetLogin(userID))
	return u
}
