// Package grass builds the blade-field mesh: thousands of fixed 9-vertex,
// 7-triangle blades scattered over a rectangle and packed into one buffer.
package grass

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	VerticesPerBlade = 9
	IndicesPerBlade  = 21
)

// bladeIndices is the local triangle list of one blade. Vertex pairs rise
// from the base and narrow towards the single tip vertex 8.
var bladeIndices = [IndicesPerBlade]uint32{
	0, 1, 2,
	1, 3, 2,
	2, 3, 4,
	3, 5, 4,
	4, 5, 6,
	5, 7, 6,
	6, 7, 8,
}

// bladeOutline holds each vertex as (fraction of width, fraction of height).
var bladeOutline = [VerticesPerBlade][2]float32{
	{0, 0},
	{1, 0},
	{1.0 / 8, 1.0 / 4},
	{7.0 / 8, 1.0 / 4},
	{1.0 / 4, 1.0 / 2},
	{3.0 / 4, 1.0 / 2},
	{3.0 / 8, 3.0 / 4},
	{5.0 / 8, 3.0 / 4},
	{1.0 / 2, 1},
}

// Blade is the constant size shared by every blade in a field.
type Blade struct {
	Height float32
	Width  float32
}

func DefaultBlade() Blade {
	return Blade{Height: 0.5, Width: 0.0625}
}

// Field describes where blades are scattered: Count blades with their base
// corner in [XStart, XStart+XBound) x [ZStart, ZStart+ZBound).
type Field struct {
	Count  int
	XStart float32
	ZStart float32
	XBound float32
	ZBound float32
}

func DefaultField() Field {
	return Field{Count: 30000, XStart: -3, ZStart: -3, XBound: 6, ZBound: 6}
}

func (f Field) sample(rng *rand.Rand) (x, z float32) {
	x = f.XStart + rng.Float32()*f.XBound
	z = f.ZStart + rng.Float32()*f.ZBound
	return x, z
}

// MeshData is the CPU-side blade buffer: xyz triples, a triangle list and
// per-vertex normals matching Positions.
type MeshData struct {
	Positions []float32
	Indices   []uint32
	Normals   []float32
}

func newMeshData(blades int) *MeshData {
	return &MeshData{
		Positions: make([]float32, blades*VerticesPerBlade*3),
		Indices:   make([]uint32, blades*IndicesPerBlade),
	}
}

func (m *MeshData) VertexCount() int {
	return len(m.Positions) / 3
}

func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns vertex i.
func (m *MeshData) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
}

// Validate checks that every index references an existing vertex and that
// the buffers have consistent lengths.
func (m *MeshData) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d is not a multiple of 3", len(m.Positions))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("indices length %d is not a multiple of 3", len(m.Indices))
	}
	if m.Normals != nil && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("normals length %d does not match positions length %d", len(m.Normals), len(m.Positions))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at slot %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// writeBlade fills blade slot i of m with a blade whose base corner is (x, 0, z).
func (m *MeshData) writeBlade(i int, x, z float32, blade Blade) {
	p := m.Positions[i*VerticesPerBlade*3:]
	for v, o := range bladeOutline {
		p[v*3] = x + o[0]*blade.Width
		p[v*3+1] = o[1] * blade.Height
		p[v*3+2] = z
	}

	offset := uint32(i * VerticesPerBlade)
	idx := m.Indices[i*IndicesPerBlade:]
	for k, local := range bladeIndices {
		idx[k] = offset + local
	}
}

// Build scatters field.Count blades using rng and returns the combined mesh
// with normals. The same rng state always yields the same mesh. A
// non-positive count gives an empty mesh.
func Build(field Field, blade Blade, rng *rand.Rand) *MeshData {
	if field.Count <= 0 {
		return &MeshData{}
	}
	m := newMeshData(field.Count)
	for i := 0; i < field.Count; i++ {
		x, z := field.sample(rng)
		m.writeBlade(i, x, z, blade)
	}
	m.Normals = ComputeNormals(m.Positions, m.Indices)
	return m
}

// BuildBlade returns a single blade at (x, 0, z) with local indices 0..8.
func BuildBlade(x, z float32, blade Blade) *MeshData {
	m := newMeshData(1)
	m.writeBlade(0, x, z, blade)
	m.Normals = ComputeNormals(m.Positions, m.Indices)
	return m
}
