package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sphere builds a UV sphere with outward facing triangles. The seam column
// is duplicated so UVs wrap cleanly; the pole rows emit one triangle per
// segment to avoid degenerate triangles.
func Sphere(center mgl32.Vec3, radius float32, stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)

	m := &Mesh{}
	for i := 0; i <= stacks; i++ {
		theta := math.Pi * float64(i) / float64(stacks)
		for j := 0; j <= slices; j++ {
			phi := 2 * math.Pi * float64(j) / float64(slices)
			n := mgl32.Vec3{
				float32(math.Sin(theta) * math.Cos(phi)),
				float32(math.Cos(theta)),
				float32(math.Sin(theta) * math.Sin(phi)),
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: center.Add(n.Mul(radius)),
				Normal:   n,
				UV:       mgl32.Vec2{float32(j) / float32(slices), float32(i) / float32(stacks)},
			})
		}
	}

	row := int32(slices + 1)
	for i := int32(0); i < int32(stacks); i++ {
		for j := int32(0); j < int32(slices); j++ {
			a := i*row + j
			b := (i+1)*row + j
			c := (i+1)*row + j + 1
			d := i*row + j + 1
			if i != 0 {
				m.Indices = append(m.Indices, a, d, c)
			}
			if i != int32(stacks)-1 {
				m.Indices = append(m.Indices, a, c, b)
			}
		}
	}
	return m
}

// Quad builds two triangles (a, b, c) and (a, c, d). The front face is the
// side from which a, b, c, d appear counter clockwise.
func Quad(a, b, c, d mgl32.Vec3) *Mesh {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() > 0 {
		n = n.Normalize()
	}
	return &Mesh{
		Vertices: []Vertex{
			{Position: a, Normal: n, UV: mgl32.Vec2{0, 0}},
			{Position: b, Normal: n, UV: mgl32.Vec2{1, 0}},
			{Position: c, Normal: n, UV: mgl32.Vec2{1, 1}},
			{Position: d, Normal: n, UV: mgl32.Vec2{0, 1}},
		},
		Indices: []int32{0, 1, 2, 0, 2, 3},
	}
}

// Plane is a horizontal square facing +Y.
func Plane(center mgl32.Vec3, half float32) *Mesh {
	return Quad(
		center.Add(mgl32.Vec3{-half, 0, -half}),
		center.Add(mgl32.Vec3{-half, 0, half}),
		center.Add(mgl32.Vec3{half, 0, half}),
		center.Add(mgl32.Vec3{half, 0, -half}),
	)
}

// cube faces: normal, then two in-plane axes with u x v == normal
var cubeFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

// Cube builds an axis aligned cube with flat shaded outward faces.
func Cube(center mgl32.Vec3, half float32) *Mesh {
	m := &Mesh{}
	for _, f := range cubeFaces {
		n, u, v := f[0], f[1], f[2]
		face := Quad(
			center.Add(n.Sub(u).Sub(v).Mul(half)),
			center.Add(n.Add(u).Sub(v).Mul(half)),
			center.Add(n.Add(u).Add(v).Mul(half)),
			center.Add(n.Sub(u).Add(v).Mul(half)),
		)
		m.Append(face)
	}
	return m
}
