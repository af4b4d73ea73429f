package mesh

import (
	"slices"

	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the number of floats per vertex in Interleaved output:
// position (3), normal (3), uv (2).
const VertexStride = 8

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

func vertexPosition(v Vertex) mgl32.Vec3 {
	return v.Position
}

// Mesh is an indexed triangle list, three indices per triangle, counter
// clockwise when seen from the front.
type Mesh struct {
	Vertices []Vertex
	Indices  []int32
}

func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// View exposes the vertex positions without copying.
func (m *Mesh) View() Slice[Vertex] {
	return Slice[Vertex]{Items: m.Vertices, Pos: vertexPosition}
}

// Triangle returns the three vertices of triangle i.
func (m *Mesh) Triangle(i int) (Vertex, Vertex, Vertex) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// Interleaved packs the vertices as VertexStride floats each.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
		)
	}
	return out
}

func (m *Mesh) Bounds() core.Box {
	b := core.EmptyBox()
	for _, v := range m.Vertices {
		b = b.Extend(v.Position)
	}
	return b
}

// Transformed returns a copy of the mesh with positions and normals baked
// into world space.
func (m *Mesh) Transformed(tr *core.Transform) *Mesh {
	o2w := tr.ObjectToWorld()
	normalMat := tr.WorldToObject().Transpose()

	out := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  slices.Clone(m.Indices),
	}
	for i, v := range m.Vertices {
		n := normalMat.Mul4x1(v.Normal.Vec4(0)).Vec3()
		if n.Len() > 0 {
			n = n.Normalize()
		}
		out.Vertices[i] = Vertex{
			Position: o2w.Mul4x1(v.Position.Vec4(1)).Vec3(),
			Normal:   n,
			UV:       v.UV,
		}
	}
	return out
}

// Append merges other into m, offsetting its indices.
func (m *Mesh) Append(other *Mesh) {
	base := int32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, idx+base)
	}
}

// CalculateNormals replaces the vertex normals with area weighted averages
// of the adjacent face normals.
func (m *Mesh) CalculateNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = mgl32.Vec3{}
	}
	for t := 0; t < m.Triangles(); t++ {
		i1, i2, i3 := m.Indices[3*t], m.Indices[3*t+1], m.Indices[3*t+2]
		p1, p2, p3 := m.Vertices[i1].Position, m.Vertices[i2].Position, m.Vertices[i3].Position
		n := p2.Sub(p1).Cross(p3.Sub(p1))
		m.Vertices[i1].Normal = m.Vertices[i1].Normal.Add(n)
		m.Vertices[i2].Normal = m.Vertices[i2].Normal.Add(n)
		m.Vertices[i3].Normal = m.Vertices[i3].Normal.Add(n)
	}
	for i := range m.Vertices {
		if m.Vertices[i].Normal.Len() > 0 {
			m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
		}
	}
}

// Interpolate blends the attributes of the hit triangle at the hit's
// barycentric coordinates. The normal is renormalized.
func (m *Mesh) Interpolate(hit core.Intersection) Vertex {
	a, b, c := m.Triangle(hit.Triangle)
	w := hit.W()

	n := a.Normal.Mul(w).Add(b.Normal.Mul(hit.U)).Add(c.Normal.Mul(hit.V))
	if n.Len() > 0 {
		n = n.Normalize()
	}
	return Vertex{
		Position: core.Barycentric(a.Position, b.Position, c.Position, hit.U, hit.V),
		Normal:   n,
		UV:       a.UV.Mul(w).Add(b.UV.Mul(hit.U)).Add(c.UV.Mul(hit.V)),
	}
}

// FaceNormal is the unit geometric normal of triangle i.
func (m *Mesh) FaceNormal(i int) mgl32.Vec3 {
	a, b, c := m.Triangle(i)
	n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}
