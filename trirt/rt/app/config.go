package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/meshrt"
	"github.com/gekko3d/meshrt/logging"
	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/gekko3d/meshrt/trirt/rt/octree"
	"github.com/gekko3d/meshrt/trirt/rt/render"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config drives one offline render. Fields missing from a JSON file keep
// their DefaultConfig values.
type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Workers         int     `json:"workers"`
	Oversample      int     `json:"oversample"`
	WorkStealing    bool    `json:"work_stealing"`
	MaxTraceDepth   int     `json:"max_trace_depth"`
	BoundsPrecheck  bool    `json:"bounds_precheck"`
	AcceptBackFaces bool    `json:"accept_back_faces"`
	ExhaustToMiss   bool    `json:"exhaust_to_miss"`
	OctreeDepth     int     `json:"octree_depth"`
	SceneHalfSize   float32 `json:"scene_half_size"`

	// Preset names a built-in scene; Scene wins when both are set.
	Preset string           `json:"preset"`
	Scene  *meshrt.SceneDef `json:"scene,omitempty"`

	Output  string `json:"output"`
	Overlay bool   `json:"overlay"`
	Debug   bool   `json:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Width:         640,
		Height:        480,
		Oversample:    1,
		WorkStealing:  true,
		MaxTraceDepth: render.DefaultMaxTraceDepth,
		OctreeDepth:   octree.DefaultDepth,
		SceneHalfSize: octree.DefaultHalf,
		Preset:        "spheres",
		Output:        "out.png",
	}
}

// LoadConfig reads a JSON config on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Oversample < 1 || c.Oversample > 16:
		return fmt.Errorf("%w: oversample %d not in [1,16]", ErrInvalidConfig, c.Oversample)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case c.MaxTraceDepth < 1:
		return fmt.Errorf("%w: max trace depth %d", ErrInvalidConfig, c.MaxTraceDepth)
	case c.OctreeDepth < 1 || c.OctreeDepth > 8:
		return fmt.Errorf("%w: octree depth %d not in [1,8]", ErrInvalidConfig, c.OctreeDepth)
	case c.SceneHalfSize <= 0:
		return fmt.Errorf("%w: scene half size %f", ErrInvalidConfig, c.SceneHalfSize)
	case c.Output == "":
		return fmt.Errorf("%w: no output path", ErrInvalidConfig)
	}
	if c.Scene == nil {
		if _, ok := presets[c.Preset]; !ok {
			return fmt.Errorf("%w: unknown preset %q (have %v)", ErrInvalidConfig, c.Preset, PresetNames())
		}
	}
	return nil
}

// RenderOptions maps the config onto renderer options.
func (c Config) RenderOptions(log logging.Logger) render.Options {
	opts := render.DefaultOptions()
	opts.Workers = c.Workers
	opts.Oversample = c.Oversample
	opts.WorkStealing = c.WorkStealing
	opts.MaxTraceDepth = c.MaxTraceDepth
	opts.BoundsPrecheck = c.BoundsPrecheck
	if c.AcceptBackFaces {
		opts.FacePolicy = core.AcceptBackFaces
	}
	if c.ExhaustToMiss {
		opts.Exhaustion = render.ExhaustMiss
	}
	opts.Depth = c.OctreeDepth
	opts.Bounds = core.CubeBox(mgl32.Vec3{0, 0, 0}, c.SceneHalfSize)
	opts.Logger = log
	return opts
}

// SceneDef returns the inline scene or the named preset.
func (c Config) SceneDef() (*meshrt.SceneDef, error) {
	if c.Scene != nil {
		return c.Scene, nil
	}
	build, ok := presets[c.Preset]
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, c.Preset)
	}
	return build(), nil
}
