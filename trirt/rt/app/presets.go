package app

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/gekko3d/meshrt"
	"github.com/go-gl/mathgl/mgl32"
)

var presets = map[string]func() *meshrt.SceneDef{
	"spheres": spheresPreset,
	"mirrors": mirrorsPreset,
	"cubes":   cubesPreset,
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func vec(x, y, z float32) *mgl32.Vec3 {
	v := mgl32.Vec3{x, y, z}
	return &v
}

func floor(color mgl32.Vec3, reflectivity float32) meshrt.MeshDef {
	return meshrt.MeshDef{
		Shape:    "plane",
		Params:   []float32{12},
		Position: mgl32.Vec3{0, -1, -6},
		Material: meshrt.MaterialDef{Color: color, Reflectivity: reflectivity, Specular: vec(0.2, 0.2, 0.2)},
	}
}

// three spheres on a slightly reflective floor, the middle one a mirror
func spheresPreset() *meshrt.SceneDef {
	return &meshrt.SceneDef{
		Camera: meshrt.CameraDef{Position: mgl32.Vec3{0, 1.5, 2}, LookAt: vec(0, 0, -6), FOV: 60},
		Meshes: []meshrt.MeshDef{
			floor(mgl32.Vec3{0.6, 0.6, 0.6}, 0.2),
			{Shape: "sphere", Params: []float32{1, 24, 32}, Position: mgl32.Vec3{-2.5, 0, -6},
				Material: meshrt.MaterialDef{Color: mgl32.Vec3{0.9, 0.2, 0.2}}},
			{Shape: "sphere", Params: []float32{1, 24, 32}, Position: mgl32.Vec3{0, 0, -6},
				Material: meshrt.MaterialDef{Color: mgl32.Vec3{0.1, 0.1, 0.1}, Reflectivity: 0.9, Shininess: 80}},
			{Shape: "sphere", Params: []float32{1, 24, 32}, Position: mgl32.Vec3{2.5, 0, -6},
				Material: meshrt.MaterialDef{Color: mgl32.Vec3{0.2, 0.3, 0.9}}},
		},
		Lights: []meshrt.LightDef{
			{Position: mgl32.Vec3{-4, 6, 0}, Color: mgl32.Vec3{1, 0.95, 0.9}, Intensity: 0.8},
			{Position: mgl32.Vec3{5, 3, -2}, Color: mgl32.Vec3{0.6, 0.7, 1}, Intensity: 0.4},
		},
		Ambient: mgl32.Vec3{0.08, 0.08, 0.1},
	}
}

// two parallel mirrors with a sphere between them
func mirrorsPreset() *meshrt.SceneDef {
	mirror := meshrt.MaterialDef{Color: mgl32.Vec3{0.05, 0.05, 0.05}, Reflectivity: 0.85, Shininess: 120}
	return &meshrt.SceneDef{
		Camera: meshrt.CameraDef{Position: mgl32.Vec3{0.5, 0.8, -2}, LookAt: vec(-1, 0, -6), FOV: 70},
		Meshes: []meshrt.MeshDef{
			floor(mgl32.Vec3{0.5, 0.45, 0.4}, 0),
			{Shape: "quad", Params: []float32{4}, Position: mgl32.Vec3{-3, 1, -6}, Rotation: mgl32.Vec3{0, 90, 0}, Material: mirror},
			{Shape: "quad", Params: []float32{4}, Position: mgl32.Vec3{3, 1, -6}, Rotation: mgl32.Vec3{0, -90, 0}, Material: mirror},
			{Shape: "sphere", Params: []float32{0.8, 24, 32}, Position: mgl32.Vec3{0, -0.2, -6},
				Material: meshrt.MaterialDef{Color: mgl32.Vec3{0.95, 0.7, 0.1}}},
		},
		Lights: []meshrt.LightDef{
			{Position: mgl32.Vec3{0, 5, -4}, Intensity: 0.9},
		},
		Ambient: mgl32.Vec3{0.05, 0.05, 0.05},
	}
}

// a ring of rotated cubes around a central sphere
func cubesPreset() *meshrt.SceneDef {
	def := &meshrt.SceneDef{
		Camera: meshrt.CameraDef{Position: mgl32.Vec3{0, 4, 2}, LookAt: vec(0, 0, -6), FOV: 55},
		Meshes: []meshrt.MeshDef{
			floor(mgl32.Vec3{0.7, 0.7, 0.7}, 0.1),
			{Shape: "sphere", Params: []float32{1.2, 24, 32}, Position: mgl32.Vec3{0, 0.2, -6},
				Material: meshrt.MaterialDef{Color: mgl32.Vec3{0.9, 0.9, 0.9}, Reflectivity: 0.6}},
		},
		Lights: []meshrt.LightDef{
			{Position: mgl32.Vec3{3, 6, -2}, Intensity: 1},
		},
		Ambient: mgl32.Vec3{0.06, 0.06, 0.06},
	}

	colors := []mgl32.Vec3{{0.9, 0.3, 0.3}, {0.3, 0.9, 0.3}, {0.3, 0.3, 0.9}, {0.9, 0.9, 0.3}, {0.9, 0.3, 0.9}, {0.3, 0.9, 0.9}}
	for i, c := range colors {
		angle := float32(i) * 60
		rot := mgl32.Rotate3DY(mgl32.DegToRad(angle))
		pos := rot.Mul3x1(mgl32.Vec3{3, 0, 0}).Add(mgl32.Vec3{0, -0.5, -6})
		def.Meshes = append(def.Meshes, meshrt.MeshDef{
			Shape:        "cube",
			Params:       []float32{0.5},
			Position:     pos,
			Rotation:     mgl32.Vec3{0, angle + 20, 0},
			Material:     meshrt.MaterialDef{Color: c},
			BackfaceCull: true,
		})
	}
	return def
}

// SaveScene writes def as indented JSON.
func SaveScene(filename string, def *meshrt.SceneDef) error {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

func LoadScene(filename string) (*meshrt.SceneDef, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var def meshrt.SceneDef
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", filename, err)
	}
	return &def, nil
}
