package meshrt

import (
	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/gekko3d/meshrt/trirt/rt/render"
	"github.com/go-gl/mathgl/mgl32"
)

// reflection rays start this far off the surface
const reflectBias = 1e-4

// shade is the closest-hit program shared by all instances: ambient and
// emissive terms, Blinn-Phong per light, then a mirror bounce mixed in by
// the material's reflectivity. No shadow rays are cast.
func (s *Scene) shade(inst *Instance, tr *render.RayTracer, ray core.Ray, hit core.Intersection) render.Payload {
	v := inst.Mesh.Interpolate(hit)
	n := v.Normal
	dir := ray.Direction.Normalize()
	if n.Dot(dir) > 0 {
		n = n.Mul(-1)
	}

	if s.Mode == ShadeNormals {
		return render.Color(n.Add(mgl32.Vec3{1, 1, 1}).Mul(0.5))
	}

	mat := inst.Material
	toCamera := dir.Mul(-1)
	color := mat.Emissive.Add(core.Modulate(s.Ambient, mat.BaseColor))

	for _, l := range s.Lights {
		toLight := l.Position.Sub(v.Position)
		if toLight.Len() == 0 {
			continue
		}
		toLight = toLight.Normalize()
		diffuse := core.FacingFactor(toLight.Mul(-1), n)
		spec := core.SpecularFactor(toLight, n, toCamera, mat.Shininess)
		lit := mat.BaseColor.Mul(diffuse).Add(mat.Specular.Mul(spec))
		color = color.Add(core.Modulate(l.Radiance(), lit))
	}

	if mat.Reflectivity > 0 {
		bounce := core.NewRay(v.Position.Add(n.Mul(reflectBias)), core.Reflect(dir, n))
		if p := tr.TraceRay(bounce); p.Valid {
			color = color.Mul(1 - mat.Reflectivity).Add(p.Color.Mul(mat.Reflectivity))
		}
	}
	return render.Color(color)
}

// Sky is a vertical gradient used as the miss shader.
type Sky struct {
	Zenith  mgl32.Vec3 `json:"zenith"`
	Horizon mgl32.Vec3 `json:"horizon"`
	Ground  mgl32.Vec3 `json:"ground"`
}

func DefaultSky() Sky {
	return Sky{
		Zenith:  mgl32.Vec3{0.25, 0.45, 0.85},
		Horizon: mgl32.Vec3{0.8, 0.85, 0.9},
		Ground:  mgl32.Vec3{0.3, 0.28, 0.25},
	}
}

func (s Sky) Shade(ray core.Ray) render.Payload {
	d := ray.Direction
	if d.Len() == 0 {
		return render.Color(s.Horizon)
	}
	y := d.Normalize().Y()
	if y >= 0 {
		return render.Color(lerp(s.Horizon, s.Zenith, y))
	}
	return render.Color(lerp(s.Horizon, s.Ground, -y))
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}
