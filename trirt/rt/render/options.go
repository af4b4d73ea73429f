package render

import (
	"github.com/gekko3d/meshrt/logging"
	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/gekko3d/meshrt/trirt/rt/octree"
	"github.com/go-gl/mathgl/mgl32"
)

const DefaultMaxTraceDepth = 5

// ExhaustionPolicy decides what a trace returns once the depth budget is spent.
type ExhaustionPolicy int

const (
	// ExhaustInvalid returns an invalid payload.
	ExhaustInvalid ExhaustionPolicy = iota
	// ExhaustMiss runs the miss shader without touching the index.
	ExhaustMiss
)

func (p ExhaustionPolicy) String() string {
	switch p {
	case ExhaustInvalid:
		return "invalid"
	case ExhaustMiss:
		return "miss"
	default:
		return "unknown"
	}
}

type Options struct {
	// Workers is the number of render goroutines including the caller.
	// Zero means runtime.NumCPU()-1.
	Workers int
	// Oversample is N for an NxN grid of samples per pixel.
	Oversample    int
	MaxTraceDepth int
	WorkStealing  bool
	// BoundsPrecheck runs every model's bounds test before querying the index.
	BoundsPrecheck bool

	FacePolicy core.FacePolicy
	Exhaustion ExhaustionPolicy

	Bounds core.Box
	Depth  int
	// Triangles of culling models whose normal points along CullDirection
	// are skipped at registration.
	CullDirection mgl32.Vec3

	Logger logging.Logger
}

func DefaultOptions() Options {
	return Options{
		Oversample:    1,
		MaxTraceDepth: DefaultMaxTraceDepth,
		WorkStealing:  true,
		FacePolicy:    core.RejectBackFaces,
		Exhaustion:    ExhaustInvalid,
		Bounds:        octree.DefaultBounds(),
		Depth:         octree.DefaultDepth,
		CullDirection: mgl32.Vec3{0, 0, -1},
	}
}

// withDefaults fills zero fields.
func (o Options) withDefaults() Options {
	if o.Oversample < 1 {
		o.Oversample = 1
	}
	if o.MaxTraceDepth < 1 {
		o.MaxTraceDepth = DefaultMaxTraceDepth
	}
	if o.Bounds == (core.Box{}) {
		o.Bounds = octree.DefaultBounds()
	}
	if o.Depth < 1 {
		o.Depth = octree.DefaultDepth
	}
	if o.CullDirection == (mgl32.Vec3{}) {
		o.CullDirection = mgl32.Vec3{0, 0, -1}
	}
	o.Logger = logging.OrNop(o.Logger)
	return o
}
