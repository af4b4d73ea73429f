package meshrt

import (
	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// LightDef defines a point light instantiation.
type LightDef struct {
	Position  mgl32.Vec3 `json:"position"`
	Color     mgl32.Vec3 `json:"color"`
	Intensity float32    `json:"intensity"`
}

func (d LightDef) Light() core.Light {
	l := core.Light{Position: d.Position, Color: d.Color, Intensity: d.Intensity}
	if l.Color == (mgl32.Vec3{}) {
		l.Color = mgl32.Vec3{1, 1, 1}
	}
	if l.Intensity == 0 {
		l.Intensity = 1
	}
	return l
}
