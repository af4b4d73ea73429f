package render

import (
	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/gekko3d/meshrt/trirt/rt/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// Model is the shading side of a registered mesh.
type Model interface {
	// ClosestHit shades the nearest hit on this model. It may cast more rays
	// through tr.
	ClosestHit(tr *RayTracer, ray core.Ray, hit core.Intersection) Payload
	// IntersectBounds is a cheap test used to skip the index for rays that
	// miss every model.
	IntersectBounds(ray core.Ray) bool
}

type ClosestHitFunc func(owner any, tr *RayTracer, ray core.Ray, hit core.Intersection) Payload

type BoundsFunc func(owner any, ray core.Ray) bool

// ModelFuncs adapts free functions sharing an owner handle to Model.
// A nil Hit shades nothing; a nil Bounds accepts every ray.
type ModelFuncs struct {
	Owner  any
	Hit    ClosestHitFunc
	Bounds BoundsFunc
}

func (m ModelFuncs) ClosestHit(tr *RayTracer, ray core.Ray, hit core.Intersection) Payload {
	if m.Hit == nil {
		return Payload{}
	}
	return m.Hit(m.Owner, tr, ray, hit)
}

func (m ModelFuncs) IntersectBounds(ray core.Ray) bool {
	if m.Bounds == nil {
		return true
	}
	return m.Bounds(m.Owner, ray)
}

// ModelDescriptor is a registered model. It references the caller's index and
// vertex buffers, which must stay unchanged until the scene is cleared.
type ModelDescriptor struct {
	ID           string
	Model        Model
	Indices      []int32
	Vertices     mesh.PositionView
	BackfaceCull bool

	// Build results.
	Inserted int
	Culled   int
	Excluded int
}

func (d *ModelDescriptor) Triangles() int {
	return len(d.Indices) / 3
}

func (d *ModelDescriptor) VertexCount() int {
	return d.Vertices.Len()
}

// Triangle resolves the positions of triangle i through the vertex view.
func (d *ModelDescriptor) Triangle(i int) (v1, v2, v3 mgl32.Vec3) {
	return d.Vertices.Position(int(d.Indices[3*i])),
		d.Vertices.Position(int(d.Indices[3*i+1])),
		d.Vertices.Position(int(d.Indices[3*i+2]))
}
