// Package meshrt renders scenes of triangle meshes on the CPU.
//
// A Scene holds mesh instances, lights and a camera. Render registers every
// instance with a render.Renderer, then shades each hit with Blinn-Phong
// lighting and mirror reflections; rays that escape see the sky.
package meshrt

import (
	"slices"

	"github.com/gekko3d/meshrt/logging"
	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/gekko3d/meshrt/trirt/rt/mesh"
	"github.com/gekko3d/meshrt/trirt/rt/render"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type ModelId string

func NewModelId() ModelId {
	return ModelId(uuid.NewString())
}

// Instance is a mesh baked into world space with its material.
type Instance struct {
	Id           ModelId
	Mesh         *mesh.Mesh
	Transform    core.Transform
	Material     core.Material
	BackfaceCull bool

	bounds core.Box
	scene  *Scene
	desc   *render.ModelDescriptor
}

func (inst *Instance) Bounds() core.Box {
	return inst.bounds
}

// Descriptor is the registration from the last build, nil before that.
func (inst *Instance) Descriptor() *render.ModelDescriptor {
	return inst.desc
}

func (inst *Instance) ClosestHit(tr *render.RayTracer, ray core.Ray, hit core.Intersection) render.Payload {
	return inst.scene.shade(inst, tr, ray, hit)
}

func (inst *Instance) IntersectBounds(ray core.Ray) bool {
	return inst.bounds.IntersectRay(ray)
}

type ShadeMode int

const (
	ShadePhong ShadeMode = iota
	// ShadeNormals colors hits by their world normal.
	ShadeNormals
)

// Scene is not safe for concurrent mutation. Render may be called again
// after changes; the renderer is rebuilt when the scene is dirty.
type Scene struct {
	Camera  *core.CameraState
	Lights  []core.Light
	Ambient mgl32.Vec3
	Sky     Sky
	Mode    ShadeMode

	instances []*Instance
	renderer  *render.Renderer
	log       logging.Logger
	dirty     bool
}

func NewScene(opts render.Options) *Scene {
	opts.Logger = logging.OrNop(opts.Logger)
	return &Scene{
		Camera:   core.NewCameraState(),
		Ambient:  mgl32.Vec3{0.05, 0.05, 0.05},
		Sky:      DefaultSky(),
		renderer: render.NewRenderer(opts),
		log:      opts.Logger,
	}
}

func (s *Scene) Renderer() *render.Renderer {
	return s.renderer
}

// AddMesh bakes m with tr (nil means identity) and adds it to the scene.
// m itself is not retained.
func (s *Scene) AddMesh(m *mesh.Mesh, tr *core.Transform, mat core.Material) ModelId {
	if tr == nil {
		tr = core.NewTransform()
	}
	world := m.Transformed(tr)
	inst := &Instance{
		Id:        NewModelId(),
		Mesh:      world,
		Transform: *tr,
		Material:  mat,
		bounds:    world.Bounds(),
		scene:     s,
	}
	s.instances = append(s.instances, inst)
	s.dirty = true
	return inst.Id
}

func (s *Scene) AddLight(l core.Light) {
	s.Lights = append(s.Lights, l)
}

// Remove drops an instance. The bool is false if id is unknown.
func (s *Scene) Remove(id ModelId) bool {
	i := slices.IndexFunc(s.instances, func(inst *Instance) bool { return inst.Id == id })
	if i < 0 {
		return false
	}
	s.instances = slices.Delete(s.instances, i, i+1)
	s.dirty = true
	return true
}

func (s *Scene) Instance(id ModelId) (*Instance, bool) {
	for _, inst := range s.instances {
		if inst.Id == id {
			return inst, true
		}
	}
	return nil, false
}

func (s *Scene) Instances() []*Instance {
	return slices.Clone(s.instances)
}

// MarkDirty forces the next Render to rebuild, e.g. after changing
// BackfaceCull on an instance.
func (s *Scene) MarkDirty() {
	s.dirty = true
}

// Build clears the renderer and registers every instance in order.
func (s *Scene) Build() error {
	if err := s.renderer.ClearScene(); err != nil {
		return err
	}
	for _, inst := range s.instances {
		d, err := s.renderer.RegisterModel(inst, inst.Mesh.Indices, inst.Mesh.View(), inst.BackfaceCull)
		if err != nil {
			return err
		}
		inst.desc = d
	}
	s.dirty = false
	s.log.Debugf("scene: built %s", s.renderer.SceneStats())
	return nil
}

// Render builds if needed and renders the scene from the camera.
func (s *Scene) Render(target render.Target) error {
	if s.dirty {
		if err := s.Build(); err != nil {
			return err
		}
	}
	return s.renderer.RenderScene(target, s.Camera.GenerateRay, s.Sky.Shade)
}

// Hit is a picked surface point.
type Hit struct {
	Id       ModelId
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
	Triangle int
}

// Raycast returns the nearest instance along ray.
func (s *Scene) Raycast(ray core.Ray) (Hit, bool) {
	if s.dirty {
		if err := s.Build(); err != nil {
			s.log.Errorf("scene: build failed: %v", err)
			return Hit{}, false
		}
	}
	d, in, ok := s.renderer.Raycast(ray)
	if !ok {
		return Hit{}, false
	}
	inst := d.Model.(*Instance)
	v := inst.Mesh.Interpolate(in)
	return Hit{
		Id:       inst.Id,
		Point:    v.Position,
		Normal:   v.Normal,
		Distance: in.Distance,
		Triangle: in.Triangle,
	}, true
}

// Pick casts a camera ray through pixel coordinates (x, y).
func (s *Scene) Pick(x, y float32, width, height int) (Hit, bool) {
	return s.Raycast(s.Camera.GenerateRay(x, y, width, height))
}
