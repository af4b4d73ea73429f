package mesh

import (
	"testing"

	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewsAgree(t *testing.T) {
	m := Sphere(mgl32.Vec3{1, 2, 3}, 2, 6, 8)
	floats := m.Interleaved()
	raw := PutFloat32s(floats)

	views := map[string]PositionView{
		"slice":  m.View(),
		"floats": Floats{Data: floats, Stride: VertexStride},
		"bytes":  Bytes{Data: raw, Stride: VertexStride * 4},
	}

	for name, view := range views {
		require.Equal(t, len(m.Vertices), view.Len(), name)
		for i := range m.Vertices {
			assert.Equal(t, m.Vertices[i].Position, view.Position(i), "%s vertex %d", name, i)
		}
	}
}

func TestViewsWithOffset(t *testing.T) {
	m := Cube(mgl32.Vec3{}, 1)
	floats := m.Interleaved()

	normals := Floats{Data: floats, Stride: VertexStride, Offset: 3}
	require.Equal(t, len(m.Vertices), normals.Len())
	for i, v := range m.Vertices {
		assert.Equal(t, v.Normal, normals.Position(i))
	}

	rawNormals := Bytes{Data: PutFloat32s(floats), Stride: VertexStride * 4, Offset: 12}
	require.Equal(t, len(m.Vertices), rawNormals.Len())
	assert.Equal(t, m.Vertices[5].Normal, rawNormals.Position(5))
}

func TestPackedViews(t *testing.T) {
	packed := Floats{Data: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}}
	assert.Equal(t, 3, packed.Len())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, packed.Position(2))

	assert.Equal(t, 0, Floats{Data: []float32{1, 2}}.Len())
	assert.Equal(t, 0, Bytes{Data: make([]byte, 11)}.Len())

	v := Vec3s{{1, 2, 3}}
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, v.Position(0))
}

func TestMalformedViewsAreEmpty(t *testing.T) {
	data := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	assert.Equal(t, 0, Floats{Data: data, Offset: -1}.Len())
	assert.Equal(t, 0, Bytes{Data: PutFloat32s(data), Offset: -4}.Len())
	assert.Equal(t, 0, Slice[Vertex]{Items: make([]Vertex, 3)}.Len())
}

func assertOutward(t *testing.T, m *Mesh, center mgl32.Vec3) {
	t.Helper()
	for i := 0; i < m.Triangles(); i++ {
		a, b, c := m.Triangle(i)
		centroid := a.Position.Add(b.Position).Add(c.Position).Mul(1.0 / 3)
		n := m.FaceNormal(i)
		require.NotZero(t, n.Len(), "triangle %d is degenerate", i)
		assert.Greater(t, n.Dot(centroid.Sub(center)), float32(0), "triangle %d faces inward", i)
	}
}

func TestSphere(t *testing.T) {
	center := mgl32.Vec3{0, 0, -5}
	m := Sphere(center, 1.5, 8, 12)

	assert.Equal(t, 9*13, len(m.Vertices))
	assert.Equal(t, 8*12*2-2*12, m.Triangles())

	for _, v := range m.Vertices {
		assert.InDelta(t, 1.5, v.Position.Sub(center).Len(), 1e-5)
		assert.InDelta(t, 1.0, v.Normal.Len(), 1e-5)
	}
	assertOutward(t, m, center)

	b := m.Bounds()
	assert.True(t, b.Min.ApproxEqualThreshold(mgl32.Vec3{-1.5, -1.5, -6.5}, 1e-3), "min %v", b.Min)
	assert.True(t, b.Max.ApproxEqualThreshold(mgl32.Vec3{1.5, 1.5, -3.5}, 1e-3), "max %v", b.Max)
}

func TestCubeAndPlane(t *testing.T) {
	m := Cube(mgl32.Vec3{2, 0, 0}, 0.5)
	assert.Equal(t, 24, len(m.Vertices))
	assert.Equal(t, 12, m.Triangles())
	assertOutward(t, m, mgl32.Vec3{2, 0, 0})
	assert.Equal(t, core.NewBox(mgl32.Vec3{1.5, -0.5, -0.5}, mgl32.Vec3{2.5, 0.5, 0.5}), m.Bounds())

	p := Plane(mgl32.Vec3{0, -1, 0}, 10)
	assert.Equal(t, 2, p.Triangles())
	for i := 0; i < p.Triangles(); i++ {
		assert.Equal(t, mgl32.Vec3{0, 1, 0}, p.FaceNormal(i))
	}
}

func TestCalculateNormals(t *testing.T) {
	m := Cube(mgl32.Vec3{}, 1)
	want := make([]mgl32.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		want[i] = v.Normal
		m.Vertices[i].Normal = mgl32.Vec3{}
	}
	m.CalculateNormals()
	for i, v := range m.Vertices {
		assert.True(t, v.Normal.ApproxEqual(want[i]), "vertex %d: %v != %v", i, v.Normal, want[i])
	}

	s := Sphere(mgl32.Vec3{}, 1, 16, 16)
	s.CalculateNormals()
	for i, v := range s.Vertices {
		if v.Normal.Len() == 0 {
			// one copy of each pole is never referenced
			continue
		}
		// the seam and pole copies only see part of the ring
		assert.Greater(t, v.Normal.Dot(v.Position), float32(0.7), "vertex %d", i)
	}
}

func TestInterpolate(t *testing.T) {
	m := Quad(
		mgl32.Vec3{-1, -1, -4},
		mgl32.Vec3{1, -1, -4},
		mgl32.Vec3{1, 1, -4},
		mgl32.Vec3{-1, 1, -4},
	)
	ray := core.NewRay(mgl32.Vec3{0.5, -0.5, 0}, mgl32.Vec3{0, 0, -1})

	var hit core.Intersection
	found := false
	for i := 0; i < m.Triangles(); i++ {
		a, b, c := m.Triangle(i)
		if h, ok := core.Intersect(ray, a.Position, b.Position, c.Position, core.RejectBackFaces); ok {
			h.Triangle = i
			hit, found = h, true
		}
	}
	require.True(t, found)
	assert.Equal(t, 0, hit.Triangle)

	v := m.Interpolate(hit)
	assert.True(t, v.Position.ApproxEqualThreshold(ray.At(hit.Distance), 1e-5), "position %v", v.Position)
	assert.True(t, v.Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}))
	assert.InDelta(t, 0.75, v.UV.X(), 1e-5)
	assert.InDelta(t, 0.25, v.UV.Y(), 1e-5)
}

func TestTransformed(t *testing.T) {
	m := Cube(mgl32.Vec3{}, 1)
	tr := core.NewTransform()
	tr.Position = mgl32.Vec3{0, 0, -10}
	tr.SetEulerDegrees(0, 90, 0)

	w := m.Transformed(tr)
	require.Equal(t, len(m.Vertices), len(w.Vertices))
	assert.Equal(t, m.Indices, w.Indices)

	b := w.Bounds()
	assert.True(t, b.Min.ApproxEqualThreshold(mgl32.Vec3{-1, -1, -11}, 1e-5), "min %v", b.Min)
	assert.True(t, b.Max.ApproxEqualThreshold(mgl32.Vec3{1, 1, -9}, 1e-5), "max %v", b.Max)

	// the source mesh is untouched
	assert.Equal(t, core.NewBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}), m.Bounds())
	assertOutward(t, w, tr.Position)
	for i, v := range w.Vertices {
		assert.True(t, v.Normal.ApproxEqualThreshold(tr.Normal(m.Vertices[i].Normal), 1e-5))
	}
}
