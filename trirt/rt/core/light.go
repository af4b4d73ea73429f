package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Light is a point light.
type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// Radiance is the light color scaled by its intensity.
func (l Light) Radiance() mgl32.Vec3 {
	return l.Color.Mul(l.Intensity)
}

// FacingFactor is how much a surface faces a light travelling along lightDir.
// Both vectors must be unit length.
func FacingFactor(lightDir, normal mgl32.Vec3) float32 {
	ff := -lightDir.Dot(normal)
	if ff < 0 {
		return 0
	}
	return ff
}

// SpecularFactor is the Blinn-Phong half-vector term. It is zero for surfaces
// facing away from the light.
func SpecularFactor(toLight, normal, toCamera mgl32.Vec3, exponent float32) float32 {
	if normal.Dot(toLight) <= 0 {
		return 0
	}
	halfway := toLight.Add(toCamera)
	if halfway.Len() == 0 {
		return 0
	}
	spec := normal.Dot(halfway.Normalize())
	if spec <= 0 {
		return 0
	}
	return float32(math.Pow(float64(spec), float64(exponent)))
}
