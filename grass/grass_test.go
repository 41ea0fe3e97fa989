package grass

import (
	"math"
	"math/rand"
	"testing"
)

func TestBuildBladeShape(t *testing.T) {
	blade := DefaultBlade()
	m := BuildBlade(1, 2, blade)

	if m.VertexCount() != VerticesPerBlade {
		t.Fatalf("BuildBlade: expected %d vertices, got %d", VerticesPerBlade, m.VertexCount())
	}
	if m.TriangleCount() != 7 {
		t.Fatalf("BuildBlade: expected 7 triangles, got %d", m.TriangleCount())
	}

	// Base pair spans the full width at y=0, tip sits centred at full height
	base0, base1, tip := m.Position(0), m.Position(1), m.Position(8)
	if base0.X() != 1 || base0.Y() != 0 || base0.Z() != 2 {
		t.Errorf("base vertex 0: got %v", base0)
	}
	if base1.X() != 1+blade.Width || base1.Y() != 0 {
		t.Errorf("base vertex 1: got %v", base1)
	}
	if tip.X() != 1+blade.Width/2 || tip.Y() != blade.Height {
		t.Errorf("tip vertex: got %v", tip)
	}

	// Every pair narrows as it rises
	for pair := 1; pair < 4; pair++ {
		lo, hi := m.Position(pair*2), m.Position(pair*2+1)
		prevLo, prevHi := m.Position(pair*2-2), m.Position(pair*2-1)
		if hi.X()-lo.X() >= prevHi.X()-prevLo.X() {
			t.Errorf("pair %d is not narrower than pair %d", pair, pair-1)
		}
		if lo.Y() != float32(pair)*blade.Height/4 {
			t.Errorf("pair %d: expected y %v, got %v", pair, float32(pair)*blade.Height/4, lo.Y())
		}
	}

	expected := []uint32{0, 1, 2, 1, 3, 2, 2, 3, 4, 3, 5, 4, 4, 5, 6, 5, 7, 6, 6, 7, 8}
	for i, idx := range m.Indices {
		if idx != expected[i] {
			t.Errorf("index %d: expected %d, got %d", i, expected[i], idx)
		}
	}
}

func TestBuildIndicesOffsetPerBlade(t *testing.T) {
	field := Field{Count: 3, XStart: 0, ZStart: 0, XBound: 1, ZBound: 1}
	m := Build(field, DefaultBlade(), rand.New(rand.NewSource(1)))

	for b := 0; b < field.Count; b++ {
		for k := 0; k < IndicesPerBlade; k++ {
			got := m.Indices[b*IndicesPerBlade+k]
			want := uint32(b*VerticesPerBlade) + bladeIndices[k]
			if got != want {
				t.Fatalf("blade %d index %d: expected %d, got %d", b, k, want, got)
			}
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestBuildStaysInsideField(t *testing.T) {
	field := DefaultField()
	field.Count = 2000
	blade := DefaultBlade()
	m := Build(field, blade, rand.New(rand.NewSource(42)))

	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		if p.X() < field.XStart || p.Z() < field.ZStart {
			t.Fatalf("vertex %d at %v is before the field start", i, p)
		}
		if p.X() > field.XStart+field.XBound+blade.Width || p.Z() > field.ZStart+field.ZBound {
			t.Fatalf("vertex %d at %v is beyond the field", i, p)
		}
		if p.Y() < 0 || p.Y() > blade.Height {
			t.Fatalf("vertex %d: y %v outside [0, %v]", i, p.Y(), blade.Height)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	field := Field{Count: 500, XStart: -3, ZStart: -3, XBound: 6, ZBound: 6}
	a := Build(field, DefaultBlade(), rand.New(rand.NewSource(7)))
	b := Build(field, DefaultBlade(), rand.New(rand.NewSource(7)))
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("position %d differs for the same seed: %v vs %v", i, a.Positions[i], b.Positions[i])
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	m := Build(Field{Count: 0}, DefaultBlade(), rand.New(rand.NewSource(1)))
	if m.VertexCount() != 0 || m.TriangleCount() != 0 {
		t.Errorf("expected empty mesh, got %d vertices %d triangles", m.VertexCount(), m.TriangleCount())
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate on empty mesh: %v", err)
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	m := BuildBlade(0, 0, DefaultBlade())
	m.Indices[5] = VerticesPerBlade
	if err := m.Validate(); err == nil {
		t.Error("Validate: expected error for index past the last vertex")
	}
}

func TestComputeNormalsFacePlusZ(t *testing.T) {
	m := BuildBlade(0, 0, DefaultBlade())
	for i := 0; i < m.VertexCount(); i++ {
		nx, ny, nz := m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2]
		if math.Abs(float64(nx)) > 1e-6 || math.Abs(float64(ny)) > 1e-6 || math.Abs(float64(nz-1)) > 1e-6 {
			t.Errorf("vertex %d: expected normal (0,0,1), got (%v,%v,%v)", i, nx, ny, nz)
		}
	}
}

func TestComputeNormalsDegenerate(t *testing.T) {
	positions := []float32{0, 0, 0, 1, 0, 0, 2, 0, 0}
	normals := ComputeNormals(positions, []uint32{0, 1, 2})
	for i, n := range normals {
		if n != 0 {
			t.Errorf("normal component %d: expected 0 for collinear triangle, got %v", i, n)
		}
	}
}

func TestBuildParallelIndependentOfWorkers(t *testing.T) {
	field := DefaultField()
	field.Count = ChunkSize*2 + 17
	one := BuildParallel(field, DefaultBlade(), 99, 1)
	many := BuildParallel(field, DefaultBlade(), 99, 8)

	if len(one.Positions) != len(many.Positions) {
		t.Fatalf("length mismatch: %d vs %d", len(one.Positions), len(many.Positions))
	}
	for i := range one.Positions {
		if one.Positions[i] != many.Positions[i] {
			t.Fatalf("position %d differs between worker counts", i)
		}
	}
	if err := many.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestBuildParallelSingleWorkerMatchesPool(t *testing.T) {
	field := DefaultField()
	seq := BuildParallel(field, DefaultBlade(), 1234, 1)
	pooled := BuildParallel(field, DefaultBlade(), 1234, 2)

	diff := 0
	for i := range seq.Positions {
		if seq.Positions[i] != pooled.Positions[i] {
			diff++
		}
	}
	if diff != 0 {
		t.Errorf("one worker and two workers differ in %d of %d position floats", diff, len(seq.Positions))
	}
}

func BenchmarkBuild(b *testing.B) {
	field := DefaultField()
	for i := 0; i < b.N; i++ {
		_ = Build(field, DefaultBlade(), rand.New(rand.NewSource(int64(i))))
	}
}

func BenchmarkBuildParallel(b *testing.B) {
	field := DefaultField()
	for i := 0; i < b.N; i++ {
		_ = BuildParallel(field, DefaultBlade(), int64(i), 0)
	}
}
