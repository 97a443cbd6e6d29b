package model

import "fmt"

// EnemyType — вид врага. Значения совпадают с клиентскими префабами.
type EnemyType int32

const (
	EnemySlime  EnemyType = 1
	EnemyGoblin EnemyType = 2
	EnemyWolf   EnemyType = 3
)

// String returns human-readable type name
func (t EnemyType) String() string {
	switch t {
	case EnemySlime:
		return "SLIME"
	case EnemyGoblin:
		return "GOBLIN"
	case EnemyWolf:
		return "WOLF"
	default:
		return fmt.Sprintf("EnemyType(%d)", int32(t))
	}
}

// EnemyStats — неизменяемые характеристики вида.
type EnemyStats struct {
	MaxHealth   int32
	Damage      int32
	MoveSpeed   float32
	PatrolRange float32
	DetectRange float32
}

var enemyStats = map[EnemyType]EnemyStats{
	EnemySlime:  {MaxHealth: 100, Damage: 10, MoveSpeed: 2.0, PatrolRange: 10, DetectRange: 5},
	EnemyGoblin: {MaxHealth: 150, Damage: 20, MoveSpeed: 3.0, PatrolRange: 15, DetectRange: 7},
	EnemyWolf:   {MaxHealth: 200, Damage: 30, MoveSpeed: 4.5, PatrolRange: 20, DetectRange: 10},
}

// StatsFor returns the stat line for t.
func StatsFor(t EnemyType) (EnemyStats, bool) {
	s, ok := enemyStats[t]
	return s, ok
}

// DamageResult — исход TakeDamage.
type DamageResult int32

const (
	DamageSurvived DamageResult = iota
	DamageDied
	DamageAlreadyDead
)

// Enemy — враг комнаты.
//
// Not safe for concurrent use: every access goes through the owning room's mutex.
type Enemy struct {
	id    int64
	typ   EnemyType
	stats EnemyStats

	health int32
	state  EnemyState

	position      Vec3
	rotation      Quaternion
	spawnPosition Vec3

	patrolTarget Vec3
	hasTarget    bool
	idleTimer    float32
}

// NewEnemy creates a live enemy in PATROL at pos.
func NewEnemy(id int64, typ EnemyType, pos Vec3) (*Enemy, error) {
	stats, ok := StatsFor(typ)
	if !ok {
		return nil, fmt.Errorf("new enemy %d: unknown type %d", id, typ)
	}
	return &Enemy{
		id:            id,
		typ:           typ,
		stats:         stats,
		health:        stats.MaxHealth,
		state:         EnemyPatrol,
		position:      pos,
		rotation:      IdentityQuaternion,
		spawnPosition: pos,
	}, nil
}

func (e *Enemy) ID() int64            { return e.id }
func (e *Enemy) Type() EnemyType      { return e.typ }
func (e *Enemy) Stats() EnemyStats    { return e.stats }
func (e *Enemy) Health() int32        { return e.health }
func (e *Enemy) MaxHealth() int32     { return e.stats.MaxHealth }
func (e *Enemy) State() EnemyState    { return e.state }
func (e *Enemy) Position() Vec3       { return e.position }
func (e *Enemy) Rotation() Quaternion { return e.rotation }
func (e *Enemy) SpawnPosition() Vec3  { return e.spawnPosition }

// IsAlive reports whether the enemy can still take damage.
func (e *Enemy) IsAlive() bool {
	return e.state != EnemyDead
}

// SetState changes the AI state. DEAD is terminal.
func (e *Enemy) SetState(s EnemyState) {
	if e.state == EnemyDead {
		return
	}
	e.state = s
}

func (e *Enemy) SetPosition(p Vec3)       { e.position = p }
func (e *Enemy) SetRotation(q Quaternion) { e.rotation = q }

// PatrolTarget returns the current patrol target, if any.
func (e *Enemy) PatrolTarget() (Vec3, bool) {
	return e.patrolTarget, e.hasTarget
}

// SetPatrolTarget sets the patrol target.
func (e *Enemy) SetPatrolTarget(p Vec3) {
	e.patrolTarget = p
	e.hasTarget = true
}

// ClearPatrolTarget drops the patrol target.
func (e *Enemy) ClearPatrolTarget() {
	e.hasTarget = false
}

// IdleTimer returns seconds spent in IDLE.
func (e *Enemy) IdleTimer() float32 {
	return e.idleTimer
}

// SetIdleTimer sets seconds spent in IDLE.
func (e *Enemy) SetIdleTimer(v float32) {
	e.idleTimer = v
}

// TakeDamage subtracts amount from health.
// Health is clamped at 0; reaching 0 moves the enemy to DEAD.
func (e *Enemy) TakeDamage(amount int32) DamageResult {
	if e.state == EnemyDead {
		return DamageAlreadyDead
	}
	if amount < 0 {
		amount = 0
	}

	e.health -= amount
	if e.health <= 0 {
		e.health = 0
		e.state = EnemyDead
		e.hasTarget = false
		return DamageDied
	}
	return DamageSurvived
}
