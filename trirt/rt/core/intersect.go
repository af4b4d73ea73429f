package core

import "github.com/go-gl/mathgl/mgl32"

// MinIntersectionDistance is the smallest accepted hit distance. Hits closer
// than this are ignored so secondary rays leaving a surface do not hit it again.
const MinIntersectionDistance = 1e-5

// FacePolicy decides what the kernel does with hits on the back of a triangle.
type FacePolicy uint8

const (
	// RejectBackFaces treats back-facing hits as misses.
	RejectBackFaces FacePolicy = iota
	// AcceptBackFaces reports back-facing hits with Intersection.Back set.
	AcceptBackFaces
)

func (p FacePolicy) String() string {
	switch p {
	case RejectBackFaces:
		return "reject-back"
	case AcceptBackFaces:
		return "accept-back"
	default:
		return "unknown"
	}
}

// Intersection describes a ray/triangle hit.
//
// U and V are the barycentric weights of the second and third vertex; the
// first vertex weighs 1-U-V, so the hit point is v1*(1-U-V) + v2*U + v3*V.
type Intersection struct {
	Triangle int
	Distance float32
	U, V     float32
	Back     bool
}

// W is the barycentric weight of the first vertex.
func (in Intersection) W() float32 {
	return 1 - in.U - in.V
}

// Point reconstructs the hit point from the triangle vertices.
func (in Intersection) Point(v1, v2, v3 mgl32.Vec3) mgl32.Vec3 {
	return Barycentric(v1, v2, v3, in.U, in.V)
}

// Barycentric combines three vectors with weights (1-u-v, u, v).
func Barycentric(a, b, c mgl32.Vec3, u, v float32) mgl32.Vec3 {
	return a.Mul(1 - u - v).Add(b.Mul(u)).Add(c.Mul(v))
}

// Intersect computes the hit of ray with the triangle (v1, v2, v3).
//
// Degenerate triangles, rays parallel to the plane, hits behind the origin or
// closer than MinIntersectionDistance and hits outside the triangle are misses.
// Triangle is left zero; callers that know the triangle index fill it in.
func Intersect(ray Ray, v1, v2, v3 mgl32.Vec3, policy FacePolicy) (Intersection, bool) {
	e1 := v2.Sub(v1)
	e2 := v3.Sub(v1)
	n := e1.Cross(e2)

	area2 := n.Len()
	if area2 == 0 {
		return Intersection{}, false
	}

	nd := n.Dot(ray.Direction)
	if nd == 0 {
		return Intersection{}, false
	}

	back := nd > 0
	if back && policy == RejectBackFaces {
		return Intersection{}, false
	}

	t := n.Dot(v1.Sub(ray.Origin)) / nd
	if t < MinIntersectionDistance {
		return Intersection{}, false
	}

	p := ray.At(t)

	// inside/outside against each edge
	cp0 := e1.Cross(p.Sub(v1))
	if n.Dot(cp0) <= 0 {
		return Intersection{}, false
	}
	cp1 := v3.Sub(v2).Cross(p.Sub(v2))
	if n.Dot(cp1) <= 0 {
		return Intersection{}, false
	}
	cp2 := v1.Sub(v3).Cross(p.Sub(v3))
	if n.Dot(cp2) <= 0 {
		return Intersection{}, false
	}

	// Sub-triangle opposite a vertex gives that vertex's weight.
	return Intersection{
		Distance: t,
		U:        cp2.Len() / area2,
		V:        cp0.Len() / area2,
		Back:     back,
	}, true
}

// FacesAlong reports whether the triangle's winding normal points along dir.
func FacesAlong(v1, v2, v3, dir mgl32.Vec3) bool {
	n := v2.Sub(v1).Cross(v3.Sub(v1))
	return n.Dot(dir) > 0
}
