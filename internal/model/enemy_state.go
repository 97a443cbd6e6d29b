package model

// EnemyState — состояние конечного автомата врага.
type EnemyState int32

const (
	// EnemyIdle - enemy stands still before picking a new patrol target
	EnemyIdle EnemyState = iota
	// EnemyPatrol - enemy walks toward its patrol target
	EnemyPatrol
	// EnemyChase - reserved: enemy follows a detected player
	EnemyChase
	// EnemyAttack - reserved: enemy attacks a player in range
	EnemyAttack
	// EnemyDead - terminal until the spawner replaces the enemy
	EnemyDead
)

// String returns human-readable state name
func (s EnemyState) String() string {
	switch s {
	case EnemyIdle:
		return "IDLE"
	case EnemyPatrol:
		return "PATROL"
	case EnemyChase:
		return "CHASE"
	case EnemyAttack:
		return "ATTACK"
	case EnemyDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}
