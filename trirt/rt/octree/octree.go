package octree

import (
	"fmt"

	"github.com/gekko3d/meshrt/trirt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultDepth = 6
	DefaultHalf  = 20
)

// DefaultBounds is the root box used when none is configured: [-20,20]^3.
func DefaultBounds() core.Box {
	return core.CubeBox(mgl32.Vec3{0, 0, 0}, DefaultHalf)
}

// TriangleRef is one triangle of a model: its index in the model's index
// buffer (divided by three) and its positions resolved at insert time.
type TriangleRef struct {
	Index      int
	V1, V2, V3 mgl32.Vec3
}

type bucket[K comparable] struct {
	model K
	tris  []TriangleRef
}

// Node is one cell of the arena. Children of a node are contiguous starting
// at FirstChild; FirstChild is -1 for leaves.
type Node[K comparable] struct {
	Box        core.Box
	Level      int
	FirstChild int32

	buckets []bucket[K]
}

func (n *Node[K]) IsLeaf() bool {
	return n.FirstChild < 0
}

// Triangles returns the number of triangles stored directly in this node.
func (n *Node[K]) Triangles() int {
	c := 0
	for i := range n.buckets {
		c += len(n.buckets[i].tris)
	}
	return c
}

func (n *Node[K]) bucketFor(model K) *bucket[K] {
	// Models are usually inserted one after the other, so scan from the back.
	for i := len(n.buckets) - 1; i >= 0; i-- {
		if n.buckets[i].model == model {
			return &n.buckets[i]
		}
	}
	n.buckets = append(n.buckets, bucket[K]{model: model})
	return &n.buckets[len(n.buckets)-1]
}

// Tree is a fixed-depth octree over triangles grouped by model key K.
// The topology is built once; Clear only drops the stored triangles.
// A Tree is not safe for concurrent Insert, but any number of goroutines may
// Query it while no Insert or Clear is running.
type Tree[K comparable] struct {
	nodes []Node[K]
	depth int
	count int
}

// Stats describes how triangles are spread over the levels of a tree.
type Stats struct {
	Nodes     int
	Depth     int
	Triangles int
	PerLevel  []int
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d depth=%d triangles=%d per-level=%v", s.Nodes, s.Depth, s.Triangles, s.PerLevel)
}

// New builds the complete node topology for the given root box. Depth counts
// levels, so depth 1 is a lone root leaf. It panics if depth < 1 or the box
// is empty.
func New[K comparable](bounds core.Box, depth int) *Tree[K] {
	if depth < 1 {
		panic(fmt.Sprintf("octree: depth must be at least 1, got %d", depth))
	}
	if !bounds.IsValid() {
		panic("octree: invalid root bounds")
	}

	total := 0
	for l, n := 0, 1; l < depth; l, n = l+1, n*8 {
		total += n
	}

	nodes := make([]Node[K], 0, total)
	nodes = append(nodes, Node[K]{Box: bounds, Level: 0, FirstChild: -1})

	// Breadth-first: every node that is not on the last level gets 8 children.
	for i := 0; i < len(nodes); i++ {
		if nodes[i].Level == depth-1 {
			continue
		}
		first := int32(len(nodes))
		nodes[i].FirstChild = first
		for o := 0; o < 8; o++ {
			nodes = append(nodes, Node[K]{
				Box:        nodes[i].Box.Octant(o),
				Level:      nodes[i].Level + 1,
				FirstChild: -1,
			})
		}
	}

	return &Tree[K]{nodes: nodes, depth: depth}
}

func (t *Tree[K]) Bounds() core.Box {
	return t.nodes[0].Box
}

func (t *Tree[K]) Depth() int {
	return t.depth
}

// Len is the number of stored triangles.
func (t *Tree[K]) Len() int {
	return t.count
}

// Node exposes the arena for inspection.
func (t *Tree[K]) Node(i int) *Node[K] {
	return &t.nodes[i]
}

func (t *Tree[K]) NodeCount() int {
	return len(t.nodes)
}

// Insert stores ref under model at the deepest node whose box contains all
// three vertices. It returns false, storing nothing, when the root box does
// not contain the triangle.
func (t *Tree[K]) Insert(model K, ref TriangleRef) bool {
	_, ok := t.insert(model, ref)
	return ok
}

// insert returns the arena index of the node the triangle landed in.
func (t *Tree[K]) insert(model K, ref TriangleRef) (int, bool) {
	if !t.nodes[0].Box.ContainsTriangle(ref.V1, ref.V2, ref.V3) {
		return -1, false
	}

	idx := 0
	for {
		n := &t.nodes[idx]
		if n.IsLeaf() {
			break
		}
		next := -1
		for o := 0; o < 8; o++ {
			c := int(n.FirstChild) + o
			if t.nodes[c].Box.ContainsTriangle(ref.V1, ref.V2, ref.V3) {
				next = c
				break
			}
		}
		if next < 0 {
			// straddles a split plane
			break
		}
		idx = next
	}

	b := t.nodes[idx].bucketFor(model)
	b.tris = append(b.tris, ref)
	t.count++
	return idx, true
}

// Clear removes every triangle and keeps the topology.
func (t *Tree[K]) Clear() {
	for i := range t.nodes {
		t.nodes[i].buckets = nil
	}
	t.count = 0
}

// Query returns the nearest triangle hit along ray, together with the model
// it belongs to. Nodes the ray misses are skipped. On equal distances the
// first triangle found wins, which makes results independent of scheduling.
func (t *Tree[K]) Query(ray core.Ray, policy core.FacePolicy) (K, core.Intersection, bool) {
	var q query[K]
	q.policy = policy
	if t.count > 0 {
		t.query(0, ray, &q)
	}
	return q.model, q.hit, q.found
}

type query[K comparable] struct {
	policy core.FacePolicy
	model  K
	hit    core.Intersection
	found  bool
}

func (t *Tree[K]) query(idx int, ray core.Ray, q *query[K]) {
	n := &t.nodes[idx]

	tMin, _, ok := n.Box.RaySpan(ray)
	if !ok {
		return
	}
	if q.found && tMin > q.hit.Distance {
		return
	}

	for bi := range n.buckets {
		b := &n.buckets[bi]
		for _, tri := range b.tris {
			hit, ok := core.Intersect(ray, tri.V1, tri.V2, tri.V3, q.policy)
			if !ok {
				continue
			}
			if !q.found || hit.Distance < q.hit.Distance {
				hit.Triangle = tri.Index
				q.model = b.model
				q.hit = hit
				q.found = true
			}
		}
	}

	if n.IsLeaf() {
		return
	}
	for o := 0; o < 8; o++ {
		t.query(int(n.FirstChild)+o, ray, q)
	}
}

// Stats walks the arena and counts triangles per level.
func (t *Tree[K]) Stats() Stats {
	s := Stats{
		Nodes:    len(t.nodes),
		Depth:    t.depth,
		PerLevel: make([]int, t.depth),
	}
	for i := range t.nodes {
		c := t.nodes[i].Triangles()
		s.PerLevel[t.nodes[i].Level] += c
		s.Triangles += c
	}
	return s
}
