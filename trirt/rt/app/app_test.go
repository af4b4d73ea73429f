package app

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gekko3d/meshrt/logging"
	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/gekko3d/meshrt/trirt/rt/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig(preset string) Config {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24
	cfg.Workers = 2
	cfg.Preset = preset
	cfg.Output = filepath.Join(os.TempDir(), "unused.png")
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.True(t, cfg.WorkStealing)
	assert.Equal(t, render.DefaultMaxTraceDepth, cfg.MaxTraceDepth)

	opts := cfg.RenderOptions(nil)
	assert.Equal(t, core.RejectBackFaces, opts.FacePolicy)
	assert.Equal(t, render.ExhaustInvalid, opts.Exhaustion)
	assert.Equal(t, cfg.OctreeDepth, opts.Depth)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"width": 100, "preset": "cubes", "accept_back_faces": true, "exhaust_to_miss": true, "oversample": 2}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 480, cfg.Height, "missing fields keep defaults")
	assert.Equal(t, "cubes", cfg.Preset)
	require.NoError(t, cfg.Validate())

	opts := cfg.RenderOptions(nil)
	assert.Equal(t, core.AcceptBackFaces, opts.FacePolicy)
	assert.Equal(t, render.ExhaustMiss, opts.Exhaustion)
	assert.Equal(t, 2, opts.Oversample)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "bad.json")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"oversample zero", func(c *Config) { c.Oversample = 0 }},
		{"oversample too big", func(c *Config) { c.Oversample = 17 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"trace depth", func(c *Config) { c.MaxTraceDepth = 0 }},
		{"octree depth", func(c *Config) { c.OctreeDepth = 9 }},
		{"scene size", func(c *Config) { c.SceneHalfSize = 0 }},
		{"no output", func(c *Config) { c.Output = "" }},
		{"unknown preset", func(c *Config) { c.Preset = "teapots" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestInlineSceneWinsOverPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preset = "nope"
	cfg.Scene = mirrorsPreset()
	require.NoError(t, cfg.Validate())

	def, err := cfg.SceneDef()
	require.NoError(t, err)
	assert.Same(t, cfg.Scene, def)
}

func TestPresetsRender(t *testing.T) {
	assert.Equal(t, []string{"cubes", "mirrors", "spheres"}, PresetNames())

	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			a, err := NewApp(smallConfig(name), nil)
			require.NoError(t, err)
			defer a.Close()

			require.NoError(t, a.Render())
			require.NotNil(t, a.Image)
			assert.Equal(t, 32, a.Image.Bounds().Dx())
			assert.Equal(t, 24, a.Image.Bounds().Dy())

			ss := a.Scene.Renderer().SceneStats()
			assert.Zero(t, ss.Excluded, "preset geometry must fit the default bounds")
			assert.Equal(t, ss.Inserted, a.Profiler.Count("triangles"))
			assert.Equal(t, 32*24, a.Profiler.Count("samples"))
			assert.Greater(t, a.Profiler.Duration("render"), time.Duration(0))
		})
	}
}

func TestSceneFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, SaveScene(path, spheresPreset()))

	def, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, spheresPreset(), def)

	cfg := smallConfig("")
	cfg.Scene = def
	a, err := NewApp(cfg, nil)
	require.NoError(t, err)
	assert.Len(t, a.Scene.Instances(), len(def.Meshes))
}

func TestOverlayDrawsStats(t *testing.T) {
	cfg := smallConfig("spheres")
	cfg.Width, cfg.Height = 320, 200
	cfg.Overlay = true
	withText, err := NewApp(cfg, nil)
	require.NoError(t, err)
	defer withText.Close()
	require.NoError(t, withText.Render())

	cfg.Overlay = false
	noText, err := NewApp(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, noText.Render())

	assert.NotEqual(t, noText.Image.RGBAAt(6, 6), withText.Image.RGBAAt(6, 6))
	// far corner is untouched
	assert.Equal(t, noText.Image.RGBAAt(319, 199), withText.Image.RGBAAt(319, 199))
}

func TestTextRendererMeasure(t *testing.T) {
	tr, err := NewDefaultTextRenderer(12)
	require.NoError(t, err)
	defer tr.Close()

	assert.Equal(t, 0, tr.Measure(nil).X)
	one := tr.Measure([]string{"abc"})
	two := tr.Measure([]string{"abc", "abcdef"})
	assert.Greater(t, two.X, one.X)
	assert.Greater(t, two.Y, one.Y)

	_, err = NewTextRenderer([]byte("not a font"), 12)
	assert.Error(t, err)
}

func TestRunWritesPNG(t *testing.T) {
	var out, errOut bytes.Buffer
	log := logging.NewLogger(&out, &errOut, "test", true)

	cfg := smallConfig("mirrors")
	cfg.Output = filepath.Join(t.TempDir(), "out.png")
	a, err := NewApp(cfg, log)
	require.NoError(t, err)
	require.NoError(t, a.Run())

	f, err := os.Open(cfg.Output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())

	assert.Contains(t, out.String(), "INFO: rendered")
	assert.Contains(t, out.String(), "timings")
	assert.Greater(t, a.Profiler.Duration("encode"), time.Duration(0))
}

func TestEncodeBeforeRender(t *testing.T) {
	a, err := NewApp(smallConfig("cubes"), nil)
	require.NoError(t, err)
	assert.Error(t, a.Encode(&bytes.Buffer{}))
}

func TestProfilerScopes(t *testing.T) {
	p := NewProfiler()
	stop := p.Scope("b")
	time.Sleep(time.Millisecond)
	stop()
	p.BeginScope("a")
	p.EndScope("a")
	p.EndScope("never-started")
	p.SetCount("z", 3)
	p.SetCount("y", 1)

	lines := p.Lines()
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "b")
	assert.Contains(t, lines[1], "a")
	assert.Contains(t, lines[2], "y")
	assert.Contains(t, lines[3], "z")
	assert.GreaterOrEqual(t, p.Duration("b"), time.Millisecond)

	p.Reset()
	assert.Empty(t, p.Lines())
}
