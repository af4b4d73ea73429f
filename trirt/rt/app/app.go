// Package app renders a configured scene to a PNG file.
package app

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gekko3d/meshrt"
	"github.com/gekko3d/meshrt/logging"
	"github.com/gekko3d/meshrt/trirt/rt/render"
)

type App struct {
	Config   Config
	Log      logging.Logger
	Scene    *meshrt.Scene
	Profiler *Profiler
	Text     *TextRenderer

	// Image holds the last render.
	Image *image.RGBA
}

// NewApp validates cfg and loads its scene.
func NewApp(cfg Config, log logging.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log = logging.OrNop(log)

	def, err := cfg.SceneDef()
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Log:      log,
		Scene:    meshrt.NewScene(cfg.RenderOptions(log)),
		Profiler: NewProfiler(),
	}

	stop := a.Profiler.Scope("load")
	err = a.Scene.Load(def)
	stop()
	if err != nil {
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}

	if cfg.Overlay {
		a.Text, err = NewDefaultTextRenderer(13)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Render builds the scene and traces it into a.Image.
func (a *App) Render() error {
	stop := a.Profiler.Scope("build")
	err := a.Scene.Build()
	stop()
	if err != nil {
		return err
	}

	target := render.NewImageTarget(a.Config.Width, a.Config.Height)
	stop = a.Profiler.Scope("render")
	err = a.Scene.Render(target)
	stop()
	if err != nil {
		return err
	}
	a.Image = target.Img

	rs := a.Scene.Renderer().LastStats()
	ss := a.Scene.Renderer().SceneStats()
	a.Profiler.SetCount("triangles", ss.Inserted)
	a.Profiler.SetCount("culled", ss.Culled)
	a.Profiler.SetCount("samples", rs.Samples)
	a.Profiler.SetCount("steals", rs.Steals)
	a.Profiler.SetCount("invalid", rs.Invalid)
	a.Log.Infof("rendered %s", rs)
	a.Log.Debugf("scene %s", ss)

	if a.Text != nil {
		a.Text.DrawText(a.Image, image.Pt(4, 4), a.Profiler.Lines())
	}
	return nil
}

// Encode writes the last render as PNG.
func (a *App) Encode(w io.Writer) error {
	if a.Image == nil {
		return fmt.Errorf("nothing rendered")
	}
	defer a.Profiler.Scope("encode")()
	return png.Encode(w, a.Image)
}

func (a *App) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := a.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.Log.Infof("wrote %s (%d bytes)", path, buf.Len())
	return nil
}

// Run renders and writes Config.Output.
func (a *App) Run() error {
	if err := a.Render(); err != nil {
		return err
	}
	if err := a.WriteFile(a.Config.Output); err != nil {
		return err
	}
	if a.Log.DebugEnabled() {
		a.Log.Debugf("timings:\n%s", a.Profiler.GetStatsString())
	}
	return nil
}

func (a *App) Close() error {
	if a.Text != nil {
		return a.Text.Close()
	}
	return nil
}
