package render

import (
	"fmt"
	"time"
)

// RenderStats describes the last finished RenderScene call.
type RenderStats struct {
	Width    int
	Height   int
	Pixels   int
	Samples  int
	Workers  int
	Steals   int
	Invalid  int
	Duration time.Duration
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%dx%d pixels=%d samples=%d workers=%d steals=%d invalid=%d in %s",
		s.Width, s.Height, s.Pixels, s.Samples, s.Workers, s.Steals, s.Invalid, s.Duration)
}

// SceneStats describes the registered geometry.
type SceneStats struct {
	Models    int
	Triangles int
	Inserted  int
	Culled    int
	Excluded  int
	PerLevel  []int
}

func (s SceneStats) String() string {
	return fmt.Sprintf("models=%d triangles=%d inserted=%d culled=%d excluded=%d per-level=%v",
		s.Models, s.Triangles, s.Inserted, s.Culled, s.Excluded, s.PerLevel)
}
