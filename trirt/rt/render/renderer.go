package render

import (
	"fmt"
	"math"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gekko3d/meshrt/logging"
	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/gekko3d/meshrt/trirt/rt/mesh"
	"github.com/gekko3d/meshrt/trirt/rt/octree"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Renderer owns the model registry and the octree over their triangles.
//
// Registration and ClearScene must not overlap a RenderScene call; when they
// do, the later call fails with ErrRenderInProgress instead of racing.
// Models, SceneStats, Raycast and Trace wait for a registration in progress.
// Shaders reach the scene through their RayTracer, not these methods.
type Renderer struct {
	opts Options
	log  logging.Logger

	// scene guards tree and models against readers outside RenderScene
	scene  sync.RWMutex
	tree   *octree.Tree[*ModelDescriptor]
	models []*ModelDescriptor

	busy atomic.Bool

	mu    sync.Mutex
	stats RenderStats
}

// NewRenderer builds the octree topology once; zero option fields take
// their defaults.
func NewRenderer(opts Options) *Renderer {
	opts = opts.withDefaults()
	r := &Renderer{
		opts: opts,
		log:  opts.Logger,
		tree: octree.New[*ModelDescriptor](opts.Bounds, opts.Depth),
	}
	r.log.Debugf("renderer: octree depth=%d nodes=%d bounds=%v..%v", opts.Depth, r.tree.NodeCount(), opts.Bounds.Min, opts.Bounds.Max)
	return r
}

func (r *Renderer) Options() Options {
	return r.opts
}

func (r *Renderer) acquire() error {
	if !r.busy.CompareAndSwap(false, true) {
		return ErrRenderInProgress
	}
	return nil
}

func (r *Renderer) release() {
	r.busy.Store(false)
}

// RegisterModel validates the buffers and inserts every triangle into the
// octree. Triangles outside the root box are excluded and counted.
func (r *Renderer) RegisterModel(owner Model, indices []int32, vertices mesh.PositionView, backfaceCull bool) (*ModelDescriptor, error) {
	if owner == nil {
		return nil, ErrNilModel
	}
	if vertices == nil {
		return nil, ErrNilVertices
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrIndexCount, len(indices))
	}
	vc := vertices.Len()
	for i, idx := range indices {
		if idx < 0 || int(idx) >= vc {
			return nil, fmt.Errorf("%w: indices[%d]=%d with %d vertices", ErrIndexOutOfRange, i, idx, vc)
		}
	}

	if err := r.acquire(); err != nil {
		return nil, err
	}
	defer r.release()

	r.scene.Lock()
	defer r.scene.Unlock()

	d := &ModelDescriptor{
		ID:           uuid.NewString(),
		Model:        owner,
		Indices:      indices,
		Vertices:     vertices,
		BackfaceCull: backfaceCull,
	}

	for i := 0; i < d.Triangles(); i++ {
		v1, v2, v3 := d.Triangle(i)
		if backfaceCull && core.FacesAlong(v1, v2, v3, r.opts.CullDirection) {
			d.Culled++
			continue
		}
		if !r.tree.Insert(d, octree.TriangleRef{Index: i, V1: v1, V2: v2, V3: v3}) {
			d.Excluded++
			continue
		}
		d.Inserted++
	}

	r.models = append(r.models, d)

	r.log.Debugf("renderer: model %s triangles=%d inserted=%d culled=%d", d.ID, d.Triangles(), d.Inserted, d.Culled)
	if d.Excluded > 0 {
		r.log.Warnf("renderer: model %s has %d triangles outside the scene bounds %v..%v", d.ID, d.Excluded, r.opts.Bounds.Min, r.opts.Bounds.Max)
	}
	return d, nil
}

// ClearScene drops every model and all stored triangles. The octree
// topology is kept.
func (r *Renderer) ClearScene() error {
	if err := r.acquire(); err != nil {
		return err
	}
	defer r.release()

	r.scene.Lock()
	defer r.scene.Unlock()
	r.models = nil
	r.tree.Clear()
	return nil
}

// Models returns the registered models in registration order.
func (r *Renderer) Models() []*ModelDescriptor {
	r.scene.RLock()
	defer r.scene.RUnlock()
	return slices.Clone(r.models)
}

func (r *Renderer) SceneStats() SceneStats {
	r.scene.RLock()
	defer r.scene.RUnlock()
	s := SceneStats{Models: len(r.models), PerLevel: r.tree.Stats().PerLevel}
	for _, d := range r.models {
		s.Triangles += d.Triangles()
		s.Inserted += d.Inserted
		s.Culled += d.Culled
		s.Excluded += d.Excluded
	}
	return s
}

func (r *Renderer) LastStats() RenderStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Raycast returns the nearest hit without shading.
func (r *Renderer) Raycast(ray core.Ray) (*ModelDescriptor, core.Intersection, bool) {
	r.scene.RLock()
	defer r.scene.RUnlock()
	return r.tree.Query(ray, r.opts.FacePolicy)
}

// Trace shades a single primary ray outside of a render pass. The primary
// ray does not spend any of the depth budget.
func (r *Renderer) Trace(ray core.Ray, miss MissShader) Payload {
	r.scene.RLock()
	defer r.scene.RUnlock()
	return r.trace(ray, r.newTracer(miss))
}

func (r *Renderer) newTracer(miss MissShader) *RayTracer {
	return &RayTracer{r: r, miss: miss, max: r.opts.MaxTraceDepth}
}

func (r *Renderer) trace(ray core.Ray, tr *RayTracer) Payload {
	if r.opts.BoundsPrecheck && !r.anyBounds(ray) {
		return tr.Miss(ray)
	}
	d, hit, ok := r.tree.Query(ray, r.opts.FacePolicy)
	if !ok {
		return tr.Miss(ray)
	}
	return d.Model.ClosestHit(tr, ray, hit)
}

func (r *Renderer) anyBounds(ray core.Ray) bool {
	for _, d := range r.models {
		if d.Model.IntersectBounds(ray) {
			return true
		}
	}
	return false
}

func (r *Renderer) workerCount(pixels int) int {
	w := r.opts.Workers
	if w <= 0 {
		w = runtime.NumCPU() - 1
	}
	w = max(w, 1)
	if pixels < w {
		return 1
	}
	return w
}

// RenderScene renders every pixel of target. rayGen is called with sample
// positions in pixel units; each sample gets a fresh RayTracer. Invalid
// input is rejected before anything is touched. There is no cancellation.
func (r *Renderer) RenderScene(target Target, rayGen RayGenShader, miss MissShader) error {
	if target == nil {
		return ErrNilTarget
	}
	if rayGen == nil || miss == nil {
		return ErrNilShader
	}
	width, height := target.Width(), target.Height()
	if width <= 0 || height <= 0 {
		return ErrEmptyTarget
	}
	pixels := width * height
	if uint64(pixels) > math.MaxUint32 {
		return fmt.Errorf("%w: %dx%d", ErrTargetTooLarge, width, height)
	}

	if err := r.acquire(); err != nil {
		return err
	}
	defer r.release()

	start := time.Now()
	workers := r.workerCount(pixels)
	n := r.opts.Oversample
	inv := 1 / float32(n)
	norm := 1 / float32(n*n)

	var invalid atomic.Int64
	sched := newSchedule(partition(pixels, workers), r.opts.WorkStealing)
	sched.run(func(_ int, idx int) {
		px, py := idx%width, idx/width
		var sum mgl32.Vec3
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				sx := float32(px) + (float32(i)+0.5)*inv
				sy := float32(py) + (float32(j)+0.5)*inv
				p := r.trace(rayGen(sx, sy, width, height), r.newTracer(miss))
				if !p.Valid {
					invalid.Add(1)
					continue
				}
				sum = sum.Add(p.Color)
			}
		}
		target.SetPixel(px, py, sum.Mul(norm))
	})

	stats := RenderStats{
		Width:    width,
		Height:   height,
		Pixels:   pixels,
		Samples:  pixels * n * n,
		Workers:  workers,
		Steals:   int(sched.steals.Load()),
		Invalid:  int(invalid.Load()),
		Duration: time.Since(start),
	}
	r.mu.Lock()
	r.stats = stats
	r.mu.Unlock()

	r.log.Debugf("renderer: %s", stats)
	return nil
}
