package model

import "math"

// Vec3 — позиция или направление в пространстве клиента (Unity: Y вверх, левая система координат).
type Vec3 struct {
	X, Y, Z float32
}

// Quaternion — вращение (x, y, z, w).
type Quaternion struct {
	X, Y, Z, W float32
}

// IdentityQuaternion is the zero rotation.
var IdentityQuaternion = Quaternion{W: 1}

// Unit axes in client space.
var (
	Vec3Right   = Vec3{X: 1}
	Vec3Up      = Vec3{Y: 1}
	Vec3Forward = Vec3{Z: 1}
)

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns |v|.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns v / |v|, or the zero vector when |v| is zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Distance returns |v - o|.
func (v Vec3) Distance(o Vec3) float32 {
	return v.Sub(o).Length()
}

// Rotate applies rotation q to vector v (q * v * q⁻¹).
func (q Quaternion) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	// v' = v + 2w(u×v) + 2u×(u×v)
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// YawQuaternion returns a rotation about the Y axis that faces direction (dx, dz).
func YawQuaternion(dx, dz float32) Quaternion {
	angle := math.Atan2(float64(dx), float64(dz))
	return Quaternion{
		Y: float32(math.Sin(angle / 2)),
		W: float32(math.Cos(angle / 2)),
	}
}
