package render

import "github.com/gekko3d/meshrt/trirt/rt/core"

// RayTracer carries the recursion budget of one primary ray. Shaders receive
// it and cast secondary rays through TraceRay. It must not be shared between
// goroutines.
type RayTracer struct {
	r     *Renderer
	miss  MissShader
	depth int
	max   int
}

// Depth is the number of nested TraceRay calls on the stack. It is 0 inside
// the shader of the primary ray.
func (tr *RayTracer) Depth() int {
	return tr.depth
}

func (tr *RayTracer) MaxDepth() int {
	return tr.max
}

// Exhausted reports whether the next TraceRay would be refused.
func (tr *RayTracer) Exhausted() bool {
	return tr.depth >= tr.max
}

// TraceRay casts a secondary ray from a shader. It finds the nearest hit and
// runs the owning model's closest-hit shader, or the miss shader when nothing
// is hit. Each call spends one unit of the depth budget; once the budget is
// spent it resolves through the exhaustion policy without touching the index.
func (tr *RayTracer) TraceRay(ray core.Ray) Payload {
	if tr.Exhausted() {
		if tr.r.opts.Exhaustion == ExhaustMiss {
			return tr.Miss(ray)
		}
		return Payload{}
	}
	tr.depth++
	p := tr.r.trace(ray, tr)
	tr.depth--
	return p
}

// Miss runs the miss shader directly.
func (tr *RayTracer) Miss(ray core.Ray) Payload {
	if tr.miss == nil {
		return Payload{}
	}
	return tr.miss(ray)
}
