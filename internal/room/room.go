// Package room runs the authoritative simulation of one room: users, NPCs,
// enemies with their spawners, combat resolution and quest progress.
//
// All mutable state of a Room is guarded by a single mutex shared by the tick
// loop and commands invoked from the packet processor.
package room

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/udisondev/roomserver/internal/ai"
	"github.com/udisondev/roomserver/internal/game/quest"
	"github.com/udisondev/roomserver/internal/gameserver/serverpackets"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/spawn"
)

// ErrNotInitializing is returned by Start on a room that already started.
var ErrNotInitializing = errors.New("room is not initializing")

// Sender delivers a frame to a connection. Must not block.
type Sender interface {
	Send(connIdx uint32, data []byte) error
}

// PathFinder resolves walkable paths.
type PathFinder interface {
	FindPath(start, end model.Vec3) []model.Vec3
}

// State is the lifecycle stage of a room.
type State int32

const (
	StateInitializing State = iota
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "INITIALIZING"
	case StateRunning:
		return "RUNNING"
	case StateStopping:
		return "STOPPING"
	default:
		return "UNKNOWN"
	}
}

// Config is shared by every room of a manager.
type Config struct {
	Capacity      int
	NpcsPerRoom   int
	NotifyEntrant bool
	TickInterval  time.Duration
	SyncInterval  time.Duration
	Spawns        []spawn.Point
	PatrolBounds  ai.PatrolBounds
	RandomSeed    uint64 // 0 = time based
}

// Room is one simulated, capacity-bounded group of users, NPCs and enemies.
type Room struct {
	number int32
	cfg    Config
	sender Sender
	paths  PathFinder
	quests *quest.Registry

	mu          sync.Mutex
	state       State
	users       []*model.User
	npcs        []*model.Npc
	enemies     map[int64]*model.Enemy
	spawners    []*spawn.Spawner
	ai          *ai.TickManager
	progress    map[string]map[int32]*quest.Progress // userID → questID → record
	nextEnemyID int64
	syncElapsed float32
	rng         *rand.Rand

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a room in INITIALIZING state with its NPCs and spawners.
// paths may be nil: path requests then return a straight segment.
func New(number int32, cfg Config, sender Sender, paths PathFinder, quests *quest.Registry) *Room {
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	r := &Room{
		number:      number,
		cfg:         cfg,
		sender:      sender,
		paths:       paths,
		quests:      quests,
		enemies:     make(map[int64]*model.Enemy),
		ai:          ai.NewTickManager(),
		progress:    make(map[string]map[int32]*quest.Progress),
		nextEnemyID: int64(number)<<32 + 1,
		rng:         rand.New(rand.NewPCG(seed, uint64(number))),
	}

	for _, p := range cfg.Spawns {
		r.spawners = append(r.spawners, spawn.NewSpawner(p))
	}
	for range cfg.NpcsPerRoom {
		r.createNpcLocked()
	}

	return r
}

// Number returns the room number.
func (r *Room) Number() int32 {
	return r.number
}

// Capacity returns the maximum number of users.
func (r *Room) Capacity() int {
	return r.cfg.Capacity
}

// State returns the lifecycle stage.
func (r *Room) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// UserCount returns the number of users in the room.
func (r *Room) UserCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// EnemyCount returns the number of enemy records, live or retired.
func (r *Room) EnemyCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.enemies)
}

// Enemy returns a snapshot of an enemy's health and state.
func (r *Room) Enemy(id int64) (health int32, state model.EnemyState, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.enemies[id]
	if !ok {
		return 0, 0, false
	}
	return e.Health(), e.State(), true
}

// LiveEnemyIDs returns ids of live enemies in ascending order.
func (r *Room) LiveEnemyIDs() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.enemies))
	for _, e := range r.liveEnemiesLocked() {
		ids = append(ids, e.ID())
	}
	return ids
}

// Start spawns one enemy per spawner and starts the tick loop.
func (r *Room) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateInitializing {
		return fmt.Errorf("starting room %d in state %s: %w", r.number, r.state, ErrNotInitializing)
	}

	for _, sp := range r.spawners {
		if _, err := r.spawnLocked(sp); err != nil {
			slog.Error("initial spawn failed", "room", r.number, "spawnID", sp.Point().ID, "error", err)
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.state = StateRunning

	go r.run(loopCtx, r.done)

	slog.Debug("room started", "room", r.number, "enemies", len(r.enemies))
	return nil
}

// Stop ends the tick loop, waits for it and releases enemies and spawners.
func (r *Room) Stop() {
	r.mu.Lock()
	if r.state != StateRunning {
		r.state = StateStopping
		r.mu.Unlock()
		return
	}
	r.state = StateStopping
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	cancel()
	<-done

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ai.Clear()
	for _, sp := range r.spawners {
		sp.Release()
	}
	clear(r.enemies)

	slog.Debug("room stopped", "room", r.number)
}

func (r *Room) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			r.Tick(dt)
		}
	}
}

// Tick advances the simulation by dt seconds: enemy AI, spawner countdowns
// and the periodic enemy position sync.
func (r *Room) Tick(dt float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRunning {
		return
	}

	r.ai.TickAll(dt)

	for _, sp := range r.spawners {
		if !sp.Tick(dt) {
			continue
		}
		r.respawnLocked(sp)
	}

	r.syncElapsed += dt
	if r.syncElapsed >= float32(r.cfg.SyncInterval.Seconds()) {
		r.syncElapsed = 0
		for _, e := range r.liveEnemiesLocked() {
			r.broadcastLocked(serverpackets.EnemyPatrolUpdate{
				EnemyID:  e.ID(),
				Position: e.Position(),
				Rotation: e.Rotation(),
			}.Write(), 0, false)
		}
	}
}

// respawnLocked replaces the retired enemy of sp with a fresh one.
func (r *Room) respawnLocked(sp *spawn.Spawner) {
	if retired, ok := sp.Retired(); ok {
		delete(r.enemies, retired)
		sp.ForgetRetired()
		r.broadcastLocked(serverpackets.EnemyDespawnNotify{EnemyID: retired}.Write(), 0, false)
	}

	e, err := r.spawnLocked(sp)
	if err != nil {
		slog.Error("respawn failed", "room", r.number, "spawnID", sp.Point().ID, "error", err)
		return
	}
	r.broadcastLocked(serverpackets.NewEnemySpawnNotify(e).Write(), 0, false)
}

func (r *Room) spawnLocked(sp *spawn.Spawner) (*model.Enemy, error) {
	id := r.nextEnemyID
	e, err := sp.SpawnEnemy(id)
	if err != nil {
		return nil, err
	}
	r.nextEnemyID++

	r.enemies[id] = e
	ctrl := ai.NewPatrolAI(e, r.cfg.PatrolBounds, r.rng)
	ctrl.Start()
	r.ai.Register(id, ctrl)
	return e, nil
}

// liveEnemiesLocked returns live enemies ordered by id.
func (r *Room) liveEnemiesLocked() []*model.Enemy {
	live := make([]*model.Enemy, 0, len(r.enemies))
	for _, e := range r.enemies {
		if e.IsAlive() {
			live = append(live, e)
		}
	}
	slices.SortFunc(live, func(a, b *model.Enemy) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return live
}

// spawnerOfLocked returns the spawner holding enemy id as live.
func (r *Room) spawnerOfLocked(id int64) *spawn.Spawner {
	for _, sp := range r.spawners {
		if live, ok := sp.EnemyID(); ok && live == id {
			return sp
		}
	}
	return nil
}
