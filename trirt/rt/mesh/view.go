package mesh

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PositionView reads vertex positions out of a caller-owned buffer.
// Implementations never copy the buffer.
type PositionView interface {
	Len() int
	Position(i int) mgl32.Vec3
}

// Floats views interleaved float32 vertex data. Stride and Offset are counted
// in floats; a zero Stride means tightly packed positions. A negative Offset
// yields an empty view.
type Floats struct {
	Data   []float32
	Stride int
	Offset int
}

func (f Floats) stride() int {
	if f.Stride <= 0 {
		return 3
	}
	return f.Stride
}

func (f Floats) Len() int {
	if f.Offset < 0 {
		return 0
	}
	s := f.stride()
	n := len(f.Data) - f.Offset
	if n < 3 {
		return 0
	}
	// the last vertex only needs its position, not a full stride
	return (n-3)/s + 1
}

func (f Floats) Position(i int) mgl32.Vec3 {
	base := i*f.stride() + f.Offset
	return mgl32.Vec3{f.Data[base], f.Data[base+1], f.Data[base+2]}
}

// Bytes views raw little-endian vertex data such as a GPU-style vertex buffer.
// Stride and Offset are counted in bytes. A negative Offset yields an empty
// view.
type Bytes struct {
	Data   []byte
	Stride int
	Offset int
}

func (b Bytes) stride() int {
	if b.Stride <= 0 {
		return 12
	}
	return b.Stride
}

func (b Bytes) Len() int {
	if b.Offset < 0 {
		return 0
	}
	s := b.stride()
	n := len(b.Data) - b.Offset
	if n < 12 {
		return 0
	}
	return (n-12)/s + 1
}

func (b Bytes) Position(i int) mgl32.Vec3 {
	base := i*b.stride() + b.Offset
	return mgl32.Vec3{
		math.Float32frombits(binary.LittleEndian.Uint32(b.Data[base:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b.Data[base+4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b.Data[base+8:])),
	}
}

// Slice views a slice of arbitrary vertex structs through an accessor. It is
// empty without one.
type Slice[V any] struct {
	Items []V
	Pos   func(V) mgl32.Vec3
}

func (s Slice[V]) Len() int {
	if s.Pos == nil {
		return 0
	}
	return len(s.Items)
}

func (s Slice[V]) Position(i int) mgl32.Vec3 {
	return s.Pos(s.Items[i])
}

// Vec3s views a plain position slice.
type Vec3s []mgl32.Vec3

func (v Vec3s) Len() int {
	return len(v)
}

func (v Vec3s) Position(i int) mgl32.Vec3 {
	return v[i]
}

// PutFloat32s encodes floats little-endian, the layout Bytes reads.
func PutFloat32s(data []float32) []byte {
	buf := make([]byte, 4*len(data))
	for i, f := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
