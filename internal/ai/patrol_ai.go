package ai

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/udisondev/roomserver/internal/model"
)

const (
	// arriveDistance — расстояние, на котором цель патруля считается достигнутой.
	arriveDistance float32 = 1.0

	// idleDuration — пауза в IDLE перед новым патрулём (секунды).
	idleDuration float32 = 2.0

	// minFacingLength — минимальная длина направления для поворота.
	minFacingLength float32 = 0.01
)

// PatrolBounds is the rectangle (XZ plane) enemies may walk in.
type PatrolBounds struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// DefaultPatrolBounds matches the field area of the client scene.
var DefaultPatrolBounds = PatrolBounds{MinX: 17, MaxX: 30, MinZ: 50, MaxZ: 85}

// Clamp returns p with X and Z limited to the bounds.
func (b PatrolBounds) Clamp(p model.Vec3) model.Vec3 {
	p.X = clamp(p.X, b.MinX, b.MaxX)
	p.Z = clamp(p.Z, b.MinZ, b.MaxZ)
	return p
}

// Contains reports whether p lies inside the bounds on X and Z.
func (b PatrolBounds) Contains(p model.Vec3) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PatrolAI drives an enemy through PATROL ↔ IDLE.
// CHASE and ATTACK are accepted but not acted upon yet.
//
// Called under the owning room's mutex; not safe for concurrent use.
type PatrolAI struct {
	enemy     *model.Enemy
	bounds    PatrolBounds
	rng       *rand.Rand
	isRunning atomic.Bool
}

// NewPatrolAI creates a patrol controller. rng is owned by the caller's room.
func NewPatrolAI(enemy *model.Enemy, bounds PatrolBounds, rng *rand.Rand) *PatrolAI {
	return &PatrolAI{
		enemy:  enemy,
		bounds: bounds,
		rng:    rng,
	}
}

// Start starts AI controller
func (ai *PatrolAI) Start() {
	ai.isRunning.Store(true)
}

// Stop stops AI controller
func (ai *PatrolAI) Stop() {
	ai.isRunning.Store(false)
}

// SetState sets AI state
func (ai *PatrolAI) SetState(state model.EnemyState) {
	old := ai.enemy.State()
	ai.enemy.SetState(state)

	if old != state && IsDebugEnabled() {
		slog.Debug("AI state changed",
			"enemyID", ai.enemy.ID(),
			"from", old,
			"to", ai.enemy.State())
	}
}

// CurrentState returns current AI state
func (ai *PatrolAI) CurrentState() model.EnemyState {
	return ai.enemy.State()
}

// Tick advances the state machine by dt seconds.
func (ai *PatrolAI) Tick(dt float32) {
	if !ai.isRunning.Load() {
		return
	}

	switch ai.enemy.State() {
	case model.EnemyPatrol:
		ai.patrol(dt)
	case model.EnemyIdle:
		ai.idle(dt)
	case model.EnemyChase, model.EnemyAttack:
		// no player tracking yet
	case model.EnemyDead:
		return
	}
}

func (ai *PatrolAI) patrol(dt float32) {
	e := ai.enemy
	pos := e.Position()

	// по прибытии сразу выбираем следующую точку, IDLE только через SetState
	target, ok := e.PatrolTarget()
	if !ok || pos.Distance(target) < arriveDistance {
		target = ai.pickTarget()
		e.SetPatrolTarget(target)
	}

	dir := target.Sub(pos).Normalize()
	pos = ai.bounds.Clamp(pos.Add(dir.Scale(e.Stats().MoveSpeed * dt)))
	e.SetPosition(pos)

	if dir.Length() > minFacingLength {
		e.SetRotation(model.YawQuaternion(dir.X, dir.Z))
	}
}

func (ai *PatrolAI) idle(dt float32) {
	e := ai.enemy
	e.SetIdleTimer(e.IdleTimer() + dt)
	if e.IdleTimer() >= idleDuration {
		e.SetIdleTimer(0)
		ai.SetState(model.EnemyPatrol)
	}
}

// pickTarget returns spawn ± U[-1,1)·patrolRange on X and Z, clamped to the bounds.
func (ai *PatrolAI) pickTarget() model.Vec3 {
	r := ai.enemy.Stats().PatrolRange
	target := ai.enemy.SpawnPosition()
	target.X += (ai.rng.Float32()*2 - 1) * r
	target.Z += (ai.rng.Float32()*2 - 1) * r
	return ai.bounds.Clamp(target)
}
