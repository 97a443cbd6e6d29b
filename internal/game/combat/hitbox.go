package combat

import (
	"cmp"
	"slices"

	"github.com/udisondev/roomserver/internal/model"
)

// Melee hit box dimensions (client units). Must match PlayerCombat on the client.
const (
	HitBoxWidth  float32 = 1.5
	HitBoxHeight float32 = 2.0
	HitBoxDepth  float32 = 2.0 // attack range
)

// HitBox is an oriented box placed in front of an attacker.
// The box is yawed only: the forward axis is flattened to the XZ plane.
type HitBox struct {
	Center  model.Vec3
	Right   model.Vec3
	Up      model.Vec3
	Forward model.Vec3

	HalfWidth  float32
	HalfHeight float32
	HalfDepth  float32
}

// NewMeleeHitBox builds the melee hit box for an attack at origin facing direction.
// ok is false when direction has no horizontal component.
func NewMeleeHitBox(origin, direction model.Vec3) (box HitBox, ok bool) {
	forward := model.Vec3{X: direction.X, Z: direction.Z}.Normalize()
	if forward == (model.Vec3{}) {
		return HitBox{}, false
	}

	up := model.Vec3Up
	return HitBox{
		Center:     origin.Add(forward.Scale(HitBoxDepth / 2)),
		Right:      up.Cross(forward),
		Up:         up,
		Forward:    forward,
		HalfWidth:  HitBoxWidth / 2,
		HalfHeight: HitBoxHeight / 2,
		HalfDepth:  HitBoxDepth / 2,
	}, true
}

// Contains reports whether p lies inside the box.
func (b HitBox) Contains(p model.Vec3) bool {
	d := p.Sub(b.Center)
	return abs(d.Dot(b.Right)) <= b.HalfWidth &&
		abs(d.Dot(b.Up)) <= b.HalfHeight &&
		abs(d.Dot(b.Forward)) <= b.HalfDepth
}

// Target is anything that can be hit.
type Target interface {
	ID() int64
	Position() model.Vec3
	IsAlive() bool
}

// SelectTargets returns the live targets inside box ordered by ascending id.
func SelectTargets[T Target](box HitBox, candidates []T) []T {
	var hits []T
	for _, c := range candidates {
		if c.IsAlive() && box.Contains(c.Position()) {
			hits = append(hits, c)
		}
	}
	slices.SortFunc(hits, func(a, b T) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return hits
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
