package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned bounding box. Containment tests are inclusive.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func NewBox(minB, maxB mgl32.Vec3) Box {
	return Box{Min: minB, Max: maxB}
}

// CubeBox returns the cube centred on center with the given half extent.
func CubeBox(center mgl32.Vec3, half float32) Box {
	h := mgl32.Vec3{half, half, half}
	return Box{Min: center.Sub(h), Max: center.Add(h)}
}

// EmptyBox is inverted so that any Extend makes it valid.
func EmptyBox() Box {
	inf := float32(math.Inf(1))
	return Box{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func BoxFromPoints(points ...mgl32.Vec3) Box {
	b := EmptyBox()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

func (b Box) Extend(p mgl32.Vec3) Box {
	return Box{
		Min: mgl32.Vec3{min(b.Min.X(), p.X()), min(b.Min.Y(), p.Y()), min(b.Min.Z(), p.Z())},
		Max: mgl32.Vec3{max(b.Max.X(), p.X()), max(b.Max.Y(), p.Y()), max(b.Max.Z(), p.Z())},
	}
}

func (b Box) Union(o Box) Box {
	return b.Extend(o.Min).Extend(o.Max)
}

func (b Box) IsValid() bool {
	return b.Min.X() <= b.Max.X() && b.Min.Y() <= b.Max.Y() && b.Min.Z() <= b.Max.Z()
}

func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Box) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// ContainsTriangle reports whether all three vertices lie inside the box.
func (b Box) ContainsTriangle(v1, v2, v3 mgl32.Vec3) bool {
	return b.Contains(v1) && b.Contains(v2) && b.Contains(v3)
}

// Octant returns one eighth of the box. Bit 0 of i selects the upper X half,
// bit 1 the upper Y half and bit 2 the upper Z half.
func (b Box) Octant(i int) Box {
	mid := b.Center()
	o := Box{Min: b.Min, Max: mid}
	for axis := 0; axis < 3; axis++ {
		if i&(1<<axis) != 0 {
			o.Min[axis] = mid[axis]
			o.Max[axis] = b.Max[axis]
		}
	}
	return o
}

// Corners lists the eight box corners in Octant order.
func (b Box) Corners() [8]mgl32.Vec3 {
	var c [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				c[i][axis] = b.Max[axis]
			} else {
				c[i][axis] = b.Min[axis]
			}
		}
	}
	return c
}

// Transform returns the conservative box around the transformed corners.
func (b Box) Transform(m mgl32.Mat4) Box {
	if !b.IsValid() {
		return b
	}
	out := EmptyBox()
	for _, c := range b.Corners() {
		out = out.Extend(m.Mul4x1(c.Vec4(1.0)).Vec3())
	}
	return out
}

// IntersectRay is the slab test over the three axis pairs, restricted to the
// forward half of the ray (t >= 0).
func (b Box) IntersectRay(r Ray) bool {
	_, _, ok := b.RaySpan(r)
	return ok
}

// RaySpan returns the [tMin, tMax] overlap of the ray with the box.
func (b Box) RaySpan(r Ray) (float32, float32, bool) {
	const parallelEps = 1e-12
	tMin := float32(0)
	tMax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin[axis]
		d := r.Direction[axis]

		if d > -parallelEps && d < parallelEps {
			if o < b.Min[axis] || o > b.Max[axis] {
				return 0, 0, false
			}
			continue
		}

		inv := 1 / d
		t1 := (b.Min[axis] - o) * inv
		t2 := (b.Max[axis] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}
