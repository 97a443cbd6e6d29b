package spawn

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/roomserver/internal/model"
)

// DefaultRespawnDelay is used when a spawn point does not set its own delay.
const DefaultRespawnDelay = 30 * time.Second

var (
	// ErrAlreadySpawned is returned when the spawner still holds a live enemy.
	ErrAlreadySpawned = errors.New("spawner already holds an enemy")

	// ErrRespawnPending is returned while the respawn countdown has not expired.
	ErrRespawnPending = errors.New("respawn countdown not expired")
)

// Point describes a fixed spawn location.
type Point struct {
	ID           int64
	EnemyType    model.EnemyType
	Position     model.Vec3
	RespawnDelay time.Duration
}

// State is the lifecycle stage of a spawner.
type State int32

const (
	// StateEmpty - never spawned
	StateEmpty State = iota
	// StateLive - holds a live enemy
	StateLive
	// StateWaiting - enemy died, countdown running
	StateWaiting
	// StateReady - countdown expired, waiting for SpawnEnemy
	StateReady
)

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateLive:
		return "LIVE"
	case StateWaiting:
		return "WAITING"
	case StateReady:
		return "READY"
	default:
		return "UNKNOWN"
	}
}

// Spawner produces one enemy at a time at its point and respawns it after death.
//
// Not safe for concurrent use: the owning room serialises access.
type Spawner struct {
	point Point

	enemyID  int64 // live enemy, valid in StateLive
	retired  int64 // last dead enemy, kept until the next spawn replaces it
	hasEnemy bool

	waiting   bool
	signaled  bool
	remaining float32 // seconds
}

// NewSpawner creates a spawner for p.
func NewSpawner(p Point) *Spawner {
	if p.RespawnDelay <= 0 {
		p.RespawnDelay = DefaultRespawnDelay
	}
	return &Spawner{point: p}
}

// Point returns the spawn point definition.
func (s *Spawner) Point() Point {
	return s.point
}

// State returns the current lifecycle stage.
func (s *Spawner) State() State {
	switch {
	case s.hasEnemy:
		return StateLive
	case s.waiting && s.signaled:
		return StateReady
	case s.waiting:
		return StateWaiting
	default:
		return StateEmpty
	}
}

// EnemyID returns the live enemy id.
func (s *Spawner) EnemyID() (int64, bool) {
	return s.enemyID, s.hasEnemy
}

// Retired returns the id of the enemy replaced by the last spawn, if any.
func (s *Spawner) Retired() (int64, bool) {
	return s.retired, s.retired != 0
}

// SpawnEnemy creates a new enemy with id at the spawn point and takes it as live.
// Clears the waiting state.
func (s *Spawner) SpawnEnemy(id int64) (*model.Enemy, error) {
	if s.hasEnemy {
		return nil, fmt.Errorf("spawn point %d: %w", s.point.ID, ErrAlreadySpawned)
	}
	if s.waiting && !s.signaled {
		return nil, fmt.Errorf("spawn point %d: %w", s.point.ID, ErrRespawnPending)
	}

	enemy, err := model.NewEnemy(id, s.point.EnemyType, s.point.Position)
	if err != nil {
		return nil, fmt.Errorf("spawn point %d: %w", s.point.ID, err)
	}

	s.enemyID = id
	s.hasEnemy = true
	s.waiting = false
	s.signaled = false
	s.remaining = 0

	slog.Debug("enemy spawned",
		"spawnID", s.point.ID,
		"enemyID", id,
		"type", s.point.EnemyType)

	return enemy, nil
}

// OnEnemyDeath releases the live enemy and starts the respawn countdown.
func (s *Spawner) OnEnemyDeath() {
	if !s.hasEnemy {
		return
	}

	s.retired = s.enemyID
	s.enemyID = 0
	s.hasEnemy = false
	s.waiting = true
	s.signaled = false
	s.remaining = float32(s.point.RespawnDelay.Seconds())

	slog.Debug("respawn scheduled",
		"spawnID", s.point.ID,
		"enemyID", s.retired,
		"delay", s.point.RespawnDelay)
}

// Tick advances the countdown by dt seconds.
// Returns true exactly once, on the tick the countdown reaches zero.
func (s *Spawner) Tick(dt float32) bool {
	if !s.waiting || s.signaled {
		return false
	}

	s.remaining -= dt
	if s.remaining > 0 {
		return false
	}

	s.remaining = 0
	s.signaled = true
	return true
}

// ForgetRetired drops the retired enemy id once the room removed its record.
func (s *Spawner) ForgetRetired() {
	s.retired = 0
}

// Release drops any enemy reference (room teardown).
func (s *Spawner) Release() {
	s.hasEnemy = false
	s.enemyID = 0
	s.retired = 0
	s.waiting = false
	s.signaled = false
	s.remaining = 0
}
