package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-5

func TestVec3_Normalize(t *testing.T) {
	v := Vec3{X: 3, Z: 4}.Normalize()
	assert.InDelta(t, 0.6, v.X, epsilon)
	assert.InDelta(t, 0.8, v.Z, epsilon)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3_Cross(t *testing.T) {
	// Unity: right = up × forward.
	assert.Equal(t, Vec3Right, Vec3Up.Cross(Vec3Forward))
}

func TestQuaternion_Rotate(t *testing.T) {
	// 90° yaw turns forward into right.
	q := YawQuaternion(1, 0)
	got := q.Rotate(Vec3Forward)

	assert.InDelta(t, 1, got.X, epsilon)
	assert.InDelta(t, 0, got.Y, epsilon)
	assert.InDelta(t, 0, got.Z, epsilon)

	assert.Equal(t, Vec3Forward, IdentityQuaternion.Rotate(Vec3Forward))
}

func TestYawQuaternion(t *testing.T) {
	q := YawQuaternion(0, 1)
	assert.InDelta(t, 0, q.Y, epsilon)
	assert.InDelta(t, 1, q.W, epsilon)

	q = YawQuaternion(0, -1)
	assert.InDelta(t, 1, math.Abs(float64(q.Y)), epsilon)
	assert.InDelta(t, 0, q.W, epsilon)
}
