package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNpc(t *testing.T) {
	pos := Vec3{X: 1, Y: 2, Z: 3}
	npc := NewNpc(10042, pos)

	assert.Equal(t, int64(10042), npc.UUID())
	assert.Equal(t, "10042", npc.UserID())
	assert.Equal(t, pos, npc.Position())
	assert.Equal(t, IdentityQuaternion, npc.Rotation())
}

func TestNpc_SetPosition(t *testing.T) {
	npc := NewNpc(10000, Vec3{})
	npc.SetPosition(Vec3{X: 4})
	npc.SetRotation(YawQuaternion(1, 0))

	assert.Equal(t, Vec3{X: 4}, npc.Position())
	assert.Equal(t, YawQuaternion(1, 0), npc.Rotation())
}
