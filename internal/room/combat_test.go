package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/roomserver/internal/model"
	"github.com/udisondev/roomserver/internal/protocol"
	"github.com/udisondev/roomserver/internal/spawn"
)

func TestRoom_HitReportsKillEnemy(t *testing.T) {
	r, sender := startedRoom(t, testConfig())
	alice := loggedIn(t, 0, "alice")
	bob := loggedIn(t, 1, "bob")
	r.EnterUser(alice)
	r.EnterUser(bob)
	sender.reset()

	const enemyID = 1
	for range 3 {
		r.ProcessHitReport(alice, enemyID, 40)
	}

	for _, idx := range []uint32{0, 1} {
		dmg := sender.of(idx, protocol.EnemyDamageNotify)
		require.Len(t, dmg, 3)

		var remaining []int32
		for _, f := range dmg {
			rd := body(f)
			id, _ := rd.ReadLong()
			attacker, _ := rd.ReadLong()
			amount, _ := rd.ReadInt()
			left, _ := rd.ReadInt()
			assert.Equal(t, int64(enemyID), id)
			assert.Equal(t, int64(0), attacker)
			assert.Equal(t, int32(40), amount)
			remaining = append(remaining, left)
		}
		assert.Equal(t, []int32{60, 20, 0}, remaining)

		deaths := sender.of(idx, protocol.EnemyDeathNotify)
		require.Len(t, deaths, 1)
		rd := body(deaths[0])
		id, _ := rd.ReadLong()
		killer, _ := rd.ReadLong()
		assert.Equal(t, int64(enemyID), id)
		assert.Equal(t, int64(0), killer)
	}

	health, state, ok := r.Enemy(enemyID)
	require.True(t, ok, "dead record persists until respawn")
	assert.Zero(t, health)
	assert.Equal(t, model.EnemyDead, state)
	assert.Equal(t, []int64{2, 3}, r.LiveEnemyIDs())

	r.mu.Lock()
	assert.Equal(t, spawn.StateWaiting, r.spawners[0].State())
	assert.Equal(t, 2, r.ai.Count())
	r.mu.Unlock()
}

func TestRoom_HitReportOnDeadOrUnknownEnemy(t *testing.T) {
	r, sender := startedRoom(t, testConfig())
	u := loggedIn(t, 0, "a")
	r.EnterUser(u)

	r.ProcessHitReport(u, 1, 1000)
	sender.reset()

	r.ProcessHitReport(u, 1, 10)
	r.ProcessHitReport(u, 999, 10)

	assert.Empty(t, sender.of(0, protocol.EnemyDamageNotify))
	assert.Empty(t, sender.of(0, protocol.EnemyDeathNotify))
}

func TestRoom_HitReportDamageFloor(t *testing.T) {
	r, _ := startedRoom(t, testConfig())
	u := loggedIn(t, 0, "a")
	r.EnterUser(u)

	r.ProcessHitReport(u, 1, -50)

	health, _, _ := r.Enemy(1)
	assert.Equal(t, int32(99), health)
}

func TestRoom_RespawnReplacesRetiredEnemy(t *testing.T) {
	r, sender := startedRoom(t, testConfig())
	u := loggedIn(t, 0, "a")
	r.EnterUser(u)
	r.ProcessHitReport(u, 1, 1000)
	sender.reset()

	r.Tick(0.5)
	assert.Empty(t, sender.of(0, protocol.EnemySpawnNotify), "respawn delay not elapsed")

	r.Tick(0.6)

	spawns := sender.of(0, protocol.EnemySpawnNotify)
	require.Len(t, spawns, 1)
	newID, _ := body(spawns[0]).ReadLong()
	assert.Equal(t, int64(4), newID)

	despawns := sender.of(0, protocol.EnemyDespawnNotify)
	require.Len(t, despawns, 1)
	oldID, _ := body(despawns[0]).ReadLong()
	assert.Equal(t, int64(1), oldID)

	_, _, ok := r.Enemy(1)
	assert.False(t, ok)
	assert.Equal(t, 3, r.EnemyCount())

	r.Tick(5)
	assert.Len(t, sender.of(0, protocol.EnemySpawnNotify), 1, "one respawn per expiry")
}

func TestRoom_PlayerAttack(t *testing.T) {
	r, sender := startedRoom(t, testConfig())
	u := loggedIn(t, 0, "a")
	r.EnterUser(u)

	// Враг 1 стоит в (20, 0, 60): бьём с 1.5 единиц, лицом по +Z.
	r.ProcessPlayerAttack(u, model.Vec3{X: 20, Z: 58.5}, model.Vec3{Z: 1})

	health, _, _ := r.Enemy(1)
	assert.Equal(t, int32(75), health)
	health, _, _ = r.Enemy(2)
	assert.Equal(t, int32(100), health)
	assert.Len(t, sender.of(0, protocol.EnemyDamageNotify), 1)
}

func TestRoom_PlayerAttackPicksLowestID(t *testing.T) {
	cfg := testConfig()
	pos := model.Vec3{X: 20, Z: 60}
	cfg.Spawns = []spawn.Point{
		{ID: 1, EnemyType: model.EnemySlime, Position: pos, RespawnDelay: time.Second},
		{ID: 2, EnemyType: model.EnemySlime, Position: pos, RespawnDelay: time.Second},
	}
	r, _ := startedRoom(t, cfg)
	u := loggedIn(t, 0, "a")
	r.EnterUser(u)

	r.ProcessPlayerAttack(u, model.Vec3{X: 20, Z: 58.5}, model.Vec3{Z: 1})

	h1, _, _ := r.Enemy(1)
	h2, _, _ := r.Enemy(2)
	assert.Equal(t, int32(75), h1)
	assert.Equal(t, int32(100), h2)
}

func TestRoom_PlayerAttackMisses(t *testing.T) {
	r, sender := startedRoom(t, testConfig())
	u := loggedIn(t, 0, "a")
	r.EnterUser(u)

	r.ProcessPlayerAttack(u, model.Vec3{X: 20, Z: 58.5}, model.Vec3{Z: -1})
	r.ProcessPlayerAttack(u, model.Vec3{X: 20, Z: 58.5}, model.Vec3{Y: 1})

	assert.Empty(t, sender.of(0, protocol.EnemyDamageNotify))
}
