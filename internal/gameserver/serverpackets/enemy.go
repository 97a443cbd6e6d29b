package serverpackets

import (
	"github.com/udisondev/roomserver/internal/gameserver/packet"
	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
)

// EnemySpawnNotify announces a live enemy.
type EnemySpawnNotify struct {
	EnemyID   int64
	EnemyType model.EnemyType
	Position  model.Vec3
	Rotation  model.Quaternion
	MaxHealth int32
	Health    int32
}

// NewEnemySpawnNotify snapshots e.
func NewEnemySpawnNotify(e *model.Enemy) EnemySpawnNotify {
	return EnemySpawnNotify{
		EnemyID:   e.ID(),
		EnemyType: e.Type(),
		Position:  e.Position(),
		Rotation:  e.Rotation(),
		MaxHealth: e.MaxHealth(),
		Health:    e.Health(),
	}
}

// Write serializes EnemySpawnNotify.
func (p EnemySpawnNotify) Write() []byte {
	return frame(protocol.EnemySpawnNotify, func(w *packet.Writer) {
		w.WriteLong(p.EnemyID)
		w.WriteInt(int32(p.EnemyType))
		writeVec3(w, p.Position)
		writeQuaternion(w, p.Rotation)
		w.WriteInt(p.MaxHealth)
		w.WriteInt(p.Health)
	})
}

// EnemyDespawnNotify removes an enemy record from clients.
type EnemyDespawnNotify struct {
	EnemyID int64
}

// Write serializes EnemyDespawnNotify.
func (p EnemyDespawnNotify) Write() []byte {
	return frame(protocol.EnemyDespawnNotify, func(w *packet.Writer) {
		w.WriteLong(p.EnemyID)
	})
}

// EnemyPatrolUpdate is the periodic position sync of a live enemy.
type EnemyPatrolUpdate struct {
	EnemyID  int64
	Position model.Vec3
	Rotation model.Quaternion
}

// Write serializes EnemyPatrolUpdate.
func (p EnemyPatrolUpdate) Write() []byte {
	return frame(protocol.EnemyPatrolUpdate, func(w *packet.Writer) {
		w.WriteLong(p.EnemyID)
		writeVec3(w, p.Position)
		writeQuaternion(w, p.Rotation)
	})
}

// EnemyDamageNotify reports damage applied to an enemy.
type EnemyDamageNotify struct {
	EnemyID    int64
	AttackerID int64
	Damage     int32
	Remaining  int32
}

// Write serializes EnemyDamageNotify.
func (p EnemyDamageNotify) Write() []byte {
	return frame(protocol.EnemyDamageNotify, func(w *packet.Writer) {
		w.WriteLong(p.EnemyID)
		w.WriteLong(p.AttackerID)
		w.WriteInt(p.Damage)
		w.WriteInt(p.Remaining)
	})
}

// EnemyDeathNotify reports a kill.
type EnemyDeathNotify struct {
	EnemyID  int64
	KillerID int64
}

// Write serializes EnemyDeathNotify.
func (p EnemyDeathNotify) Write() []byte {
	return frame(protocol.EnemyDeathNotify, func(w *packet.Writer) {
		w.WriteLong(p.EnemyID)
		w.WriteLong(p.KillerID)
	})
}
