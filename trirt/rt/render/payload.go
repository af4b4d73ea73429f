package render

import (
	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Payload is what every shader returns. Valid is false when no shading was
// produced, for example when the trace depth ran out.
type Payload struct {
	Color mgl32.Vec3
	Valid bool
}

func Color(c mgl32.Vec3) Payload {
	return Payload{Color: c, Valid: true}
}

// RayGenShader turns a sample position in pixel units into a primary ray.
type RayGenShader func(x, y float32, width, height int) core.Ray

// MissShader shades rays that hit nothing.
type MissShader func(ray core.Ray) Payload

// SolidMiss returns a miss shader that always yields c.
func SolidMiss(c mgl32.Vec3) MissShader {
	return func(core.Ray) Payload {
		return Color(c)
	}
}
