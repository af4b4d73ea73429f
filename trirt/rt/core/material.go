package core

import "github.com/go-gl/mathgl/mgl32"

// Material holds the Blinn-Phong surface parameters used by the mesh shader.
type Material struct {
	BaseColor    mgl32.Vec3
	Specular     mgl32.Vec3
	Shininess    float32
	Reflectivity float32
	Emissive     mgl32.Vec3
}

func NewMaterial(baseColor mgl32.Vec3, reflectivity float32) Material {
	m := DefaultMaterial()
	m.BaseColor = baseColor
	m.Reflectivity = reflectivity
	return m
}

// Helper for default white
func DefaultMaterial() Material {
	return Material{
		BaseColor:    mgl32.Vec3{1, 1, 1},
		Specular:     mgl32.Vec3{1, 1, 1},
		Shininess:    30,
		Reflectivity: 0,
	}
}

// Mirror is a fully reflective material with no diffuse term.
func Mirror() Material {
	return Material{
		Specular:     mgl32.Vec3{1, 1, 1},
		Shininess:    60,
		Reflectivity: 1,
	}
}

// Modulate multiplies two colors component-wise.
func Modulate(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Saturate clamps each component to [0, 1].
func Saturate(c mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{mgl32.Clamp(c[0], 0, 1), mgl32.Clamp(c[1], 0, 1), mgl32.Clamp(c[2], 0, 1)}
}
