package room

import (
	"log/slog"

	"github.com/udisondev/roomserver/internal/game/combat"
	"github.com/udisondev/roomserver/internal/gameserver/serverpackets"
	"github.com/udisondev/roomserver/internal/model"
)

// ProcessPlayerAttack resolves a melee swing from origin along direction.
// The live enemy with the lowest id inside the hit box takes MeleeDamage.
func (r *Room) ProcessPlayerAttack(attacker *model.User, origin, direction model.Vec3) {
	box, ok := combat.NewMeleeHitBox(origin, direction)
	if !ok {
		slog.Debug("attack without horizontal direction", "room", r.number, "attacker", attacker.UserID())
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	targets := combat.SelectTargets(box, r.liveEnemiesLocked())
	if len(targets) == 0 {
		return
	}
	r.applyDamageLocked(attacker, targets[0], combat.MeleeDamage)
}

// ProcessHitReport applies client-reported damage to enemyID.
func (r *Room) ProcessHitReport(attacker *model.User, enemyID int64, damage int32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.enemies[enemyID]
	if !ok {
		slog.Warn("hit report for unknown enemy", "room", r.number, "enemyID", enemyID, "attacker", attacker.UserID())
		return
	}
	if !e.IsAlive() {
		slog.Debug("hit report for dead enemy", "room", r.number, "enemyID", enemyID)
		return
	}
	r.applyDamageLocked(attacker, e, combat.ReportedDamage(damage))
}

// applyDamageLocked: TakeDamage → damage notify → on death: death notify,
// spawner countdown, AI removal, quest progress of the killer.
func (r *Room) applyDamageLocked(attacker *model.User, e *model.Enemy, damage int32) {
	result := e.TakeDamage(damage)
	if result == model.DamageAlreadyDead {
		return
	}

	r.broadcastLocked(serverpackets.EnemyDamageNotify{
		EnemyID:    e.ID(),
		AttackerID: attacker.UUID(),
		Damage:     damage,
		Remaining:  e.Health(),
	}.Write(), 0, false)

	if result != model.DamageDied {
		return
	}

	r.broadcastLocked(serverpackets.EnemyDeathNotify{
		EnemyID:  e.ID(),
		KillerID: attacker.UUID(),
	}.Write(), 0, false)

	if sp := r.spawnerOfLocked(e.ID()); sp != nil {
		sp.OnEnemyDeath()
	} else {
		slog.Warn("dead enemy has no spawner", "room", r.number, "enemyID", e.ID())
	}
	r.ai.Unregister(e.ID())

	slog.Info("enemy killed",
		"room", r.number,
		"enemyID", e.ID(),
		"type", e.Type(),
		"killer", attacker.UserID())

	r.recordKillLocked(attacker, e.Type())
}
