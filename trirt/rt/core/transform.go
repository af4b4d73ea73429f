package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a mesh in the world: M = T * R * S.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() *Transform {
	return &Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// SetEulerDegrees sets the rotation from X, Y, Z angles applied in that order.
func (t *Transform) SetEulerDegrees(x, y, z float32) {
	t.Rotation = mgl32.AnglesToQuat(mgl32.DegToRad(x), mgl32.DegToRad(y), mgl32.DegToRad(z), mgl32.XYZ)
}

func (t *Transform) ObjectToWorld() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// WorldToObject inverts the components separately; the rotation is assumed unit length.
func (t *Transform) WorldToObject() mgl32.Mat4 {
	invScale := mgl32.Scale3D(1.0/t.Scale.X(), 1.0/t.Scale.Y(), 1.0/t.Scale.Z())
	invRotate := t.Rotation.Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())

	return invScale.Mul4(invRotate).Mul4(invTranslate)
}

func (t *Transform) Point(p mgl32.Vec3) mgl32.Vec3 {
	return t.ObjectToWorld().Mul4x1(p.Vec4(1.0)).Vec3()
}

// Normal transforms a normal with the inverse transpose and renormalizes it.
func (t *Transform) Normal(n mgl32.Vec3) mgl32.Vec3 {
	nm := t.WorldToObject().Transpose()
	out := nm.Mul4x1(n.Vec4(0.0)).Vec3()
	if out.Len() == 0 {
		return out
	}
	return out.Normalize()
}
