package meshrt

import (
	"fmt"

	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/gekko3d/meshrt/trirt/rt/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneDef defines the initial state of a scene.
type SceneDef struct {
	Camera  CameraDef  `json:"camera"`
	Meshes  []MeshDef  `json:"meshes"`
	Lights  []LightDef `json:"lights"`
	Ambient mgl32.Vec3 `json:"ambient"`
	Sky     *Sky       `json:"sky,omitempty"`
}

type CameraDef struct {
	Position mgl32.Vec3 `json:"position"`
	// LookAt wins over Yaw/Pitch when set.
	LookAt *mgl32.Vec3 `json:"look_at,omitempty"`
	Yaw    float32     `json:"yaw"`
	Pitch  float32     `json:"pitch"`
	FOV    float32     `json:"fov"`
}

// MeshDef defines a procedural mesh instantiation.
type MeshDef struct {
	Shape  string    `json:"shape"` // "sphere", "cube", "plane", "quad"
	Params []float32 `json:"params,omitempty"`

	Position mgl32.Vec3 `json:"position"`
	// Euler angles in degrees, applied X, Y, Z.
	Rotation mgl32.Vec3 `json:"rotation"`
	Scale    mgl32.Vec3 `json:"scale"`

	Material     MaterialDef `json:"material"`
	BackfaceCull bool        `json:"backface_cull,omitempty"`
}

type MaterialDef struct {
	Color        mgl32.Vec3  `json:"color"`
	Specular     *mgl32.Vec3 `json:"specular,omitempty"`
	Shininess    float32     `json:"shininess,omitempty"`
	Reflectivity float32     `json:"reflectivity,omitempty"`
	Emissive     mgl32.Vec3  `json:"emissive,omitempty"`
}

func (d MaterialDef) Material() core.Material {
	m := core.NewMaterial(d.Color, d.Reflectivity)
	if d.Specular != nil {
		m.Specular = *d.Specular
	}
	if d.Shininess > 0 {
		m.Shininess = d.Shininess
	}
	m.Emissive = d.Emissive
	return m
}

func param(params []float32, i int, def float32) float32 {
	if i < len(params) {
		return params[i]
	}
	return def
}

// Build creates the mesh in object space.
func (d MeshDef) Build() (*mesh.Mesh, error) {
	origin := mgl32.Vec3{}
	switch d.Shape {
	case "sphere":
		// Params: [radius, stacks, slices]
		return mesh.Sphere(origin, param(d.Params, 0, 1), int(param(d.Params, 1, 16)), int(param(d.Params, 2, 24))), nil
	case "cube":
		// Params: [half]
		return mesh.Cube(origin, param(d.Params, 0, 1)), nil
	case "plane":
		// Params: [half]
		return mesh.Plane(origin, param(d.Params, 0, 1)), nil
	case "quad":
		// Params: [half], facing +Z
		h := param(d.Params, 0, 1)
		return mesh.Quad(
			mgl32.Vec3{-h, -h, 0},
			mgl32.Vec3{h, -h, 0},
			mgl32.Vec3{h, h, 0},
			mgl32.Vec3{-h, h, 0},
		), nil
	default:
		return nil, fmt.Errorf("unknown mesh shape %q", d.Shape)
	}
}

func (d MeshDef) Transform() *core.Transform {
	tr := core.NewTransform()
	tr.Position = d.Position
	tr.SetEulerDegrees(d.Rotation.X(), d.Rotation.Y(), d.Rotation.Z())
	if d.Scale != (mgl32.Vec3{}) {
		tr.Scale = d.Scale
	}
	return tr
}

// Load adds everything in def to the scene and sets up the camera.
func (s *Scene) Load(def *SceneDef) error {
	cam := core.NewCameraState()
	cam.Position = def.Camera.Position
	cam.Yaw = def.Camera.Yaw
	cam.Pitch = def.Camera.Pitch
	if def.Camera.FOV > 0 {
		cam.FOV = def.Camera.FOV
	}
	if def.Camera.LookAt != nil {
		cam.LookAt(*def.Camera.LookAt)
	}
	s.Camera = cam

	for i, md := range def.Meshes {
		m, err := md.Build()
		if err != nil {
			return fmt.Errorf("mesh %d: %w", i, err)
		}
		id := s.AddMesh(m, md.Transform(), md.Material.Material())
		s.instances[len(s.instances)-1].BackfaceCull = md.BackfaceCull
		s.log.Debugf("scene: mesh %d %s -> %s", i, md.Shape, id)
	}

	for _, ld := range def.Lights {
		s.AddLight(ld.Light())
	}
	s.Ambient = def.Ambient
	if def.Sky != nil {
		s.Sky = *def.Sky
	}
	return nil
}
