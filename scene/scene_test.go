package scene

import (
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"grass-field/core"
)

func approxVec3(a, b mgl32.Vec3, eps float32) bool {
	return a.ApproxEqualThreshold(b, eps)
}

func TestArcRotateCameraPosition(t *testing.T) {
	c := NewArcRotateCamera("camera", -math.Pi/2, 1, 10, mgl32.Vec3{})
	got := c.Position()
	want := mgl32.Vec3{0, 10 * float32(math.Cos(1)), -10 * float32(math.Sin(1))}
	if !approxVec3(got, want, 1e-4) {
		t.Errorf("Position: expected %v, got %v", want, got)
	}
	if d := got.Len(); math.Abs(float64(d-10)) > 1e-4 {
		t.Errorf("distance to target: expected 10, got %v", d)
	}
}

func TestArcRotateCameraClamps(t *testing.T) {
	c := NewArcRotateCamera("camera", 0, 1, 10, mgl32.Vec3{})
	c.Orbit(0, 10)
	if c.Beta > c.UpperBetaLimit {
		t.Errorf("Beta %v above limit %v", c.Beta, c.UpperBetaLimit)
	}
	c.Orbit(0, -20)
	if c.Beta < c.LowerBetaLimit {
		t.Errorf("Beta %v below limit %v", c.Beta, c.LowerBetaLimit)
	}
	c.Zoom(100)
	if c.Radius != c.LowerRadiusLimit {
		t.Errorf("Zoom: expected radius clamped to %v, got %v", c.LowerRadiusLimit, c.Radius)
	}
	c.UpperRadiusLimit = 20
	c.Zoom(-100)
	if c.Radius != 20 {
		t.Errorf("Zoom out: expected radius 20, got %v", c.Radius)
	}
}

func TestArcRotateCameraProjectsTarget(t *testing.T) {
	c := NewArcRotateCamera("camera", -math.Pi/2, 1, 10, mgl32.Vec3{})
	c.UpdateAspectRatio(1280, 720)
	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	if math.Abs(float64(ndc.X())) > 1e-4 || math.Abs(float64(ndc.Y())) > 1e-4 {
		t.Errorf("target should project to screen centre, got %v", ndc)
	}
	if ndc.Z() < -1 || ndc.Z() > 1 {
		t.Errorf("target depth %v outside clip range", ndc.Z())
	}
}

func TestCreateGround(t *testing.T) {
	g := CreateGround("ground1", 6, 6, 2)
	if g.VertexCount() != 9 {
		t.Errorf("vertices: expected 9, got %d", g.VertexCount())
	}
	if g.IndexCount() != 24 {
		t.Errorf("indices: expected 24, got %d", g.IndexCount())
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if g.LocalAABB.Min != (mgl32.Vec3{-3, 0, -3}) || g.LocalAABB.Max != (mgl32.Vec3{3, 0, 3}) {
		t.Errorf("bounds: got %v", g.LocalAABB)
	}
	// First triangle must face +Y.
	p := func(i uint32) mgl32.Vec3 {
		return mgl32.Vec3{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]}
	}
	a, b, c := p(g.Indices[0]), p(g.Indices[1]), p(g.Indices[2])
	if n := b.Sub(a).Cross(c.Sub(a)); n.Y() <= 0 {
		t.Errorf("ground winding faces %v, expected +Y", n)
	}
}

func TestMeshSetGeometryBumpsVersion(t *testing.T) {
	m := NewMesh("m", []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, nil, []uint32{0, 1, 2})
	v := m.Version()
	m.SetGeometry([]float32{0, 0, 0, 2, 0, 0, 0, 2, 0}, nil, []uint32{0, 1, 2})
	if m.Version() == v {
		t.Error("SetGeometry did not change Version")
	}
	if m.LocalAABB.Max != (mgl32.Vec3{2, 2, 0}) {
		t.Errorf("AABB not recomputed: %v", m.LocalAABB)
	}
}

func TestMeshValidate(t *testing.T) {
	m := NewMesh("bad", []float32{0, 0, 0}, nil, []uint32{0, 0, 1})
	if err := m.Validate(); err == nil {
		t.Error("Validate: expected out-of-range index error")
	}
	m = NewMesh("bad", []float32{0, 0, 0, 1, 1, 1}, []float32{0, 1, 0}, nil)
	if err := m.Validate(); err == nil {
		t.Error("Validate: expected normal count error")
	}
}

func TestShaderMaterialValues(t *testing.T) {
	tex := NewSolidTexture("noise", 1, 2, 3, 255)
	m := NewShaderMaterial("shader", "v", "f", nil, []string{"time"}, []string{"noiseMap"})
	m.SetFloat("time", 1.5).
		SetVector2("maxPos", mgl32.Vec2{6, 6}).
		SetColor3("color1", core.Color3(0, 0.2, 0)).
		SetBool("useNoise", true).
		SetTexture("noiseMap", tex)

	if m.Float("time") != 1.5 {
		t.Errorf("time: got %v", m.Float("time"))
	}
	if v, ok := m.Value("maxPos"); !ok || v.(mgl32.Vec2) != (mgl32.Vec2{6, 6}) {
		t.Errorf("maxPos: got %v", v)
	}
	if !m.Bool("useNoise") {
		t.Error("useNoise: expected true")
	}
	if got := m.Textures(); len(got) != 1 || got[0] != tex {
		t.Errorf("Textures: got %v", got)
	}
	names := m.ValueNames()
	want := []string{"color1", "maxPos", "noiseMap", "time", "useNoise"}
	if len(names) != len(want) {
		t.Fatalf("ValueNames: expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ValueNames[%d]: expected %q, got %q", i, want[i], names[i])
		}
	}
	if !m.CullsBackFaces() {
		t.Error("new shader material should cull back faces")
	}
}

func TestSceneLookupAndCallbacks(t *testing.T) {
	s := NewScene()
	ground := CreateGround("ground1", 6, 6, 2)
	ground.Material = NewStandardMaterial("dirty dirt")
	s.AddMesh(ground)

	if s.GetMeshByName("ground1") != ground {
		t.Error("GetMeshByName: ground not found")
	}
	if s.GetMeshByName("grass") != nil {
		t.Error("GetMeshByName: unexpected match")
	}
	if s.GetMaterialByName("dirty dirt") == nil {
		t.Error("GetMaterialByName: dirt not found")
	}

	var order []int
	s.RegisterBeforeRender(func() { order = append(order, 1) })
	s.RegisterBeforeRender(func() { order = append(order, 2) })
	s.RunBeforeRender()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("before-render order: got %v", order)
	}

	disposed := 0
	s.OnDispose(func() { disposed++ })
	s.Dispose()
	s.Dispose()
	if disposed != 1 {
		t.Errorf("dispose hooks ran %d times, expected 1", disposed)
	}
	if !s.IsDisposed() {
		t.Error("IsDisposed: expected true after Dispose")
	}
	s.RunBeforeRender()
	if len(order) != 2 {
		t.Error("before-render callbacks ran after Dispose")
	}
}

func TestWorldMeshesBakeNodePosition(t *testing.T) {
	s := NewScene()
	ground := CreateGround("ground1", 6, 6, 2)
	ground.Material = NewStandardMaterial("dirty dirt")
	node := s.AddMesh(ground)
	node.Position = mgl32.Vec3{3, 0, 3}

	meshes := s.WorldMeshes()
	if len(meshes) != 1 {
		t.Fatalf("WorldMeshes: expected 1 mesh, got %d", len(meshes))
	}
	w := meshes[0]
	if !approxVec3(w.LocalAABB.Min, mgl32.Vec3{0, 0, 0}, 1e-5) || !approxVec3(w.LocalAABB.Max, mgl32.Vec3{6, 0, 6}, 1e-5) {
		t.Errorf("world bounds: got %v..%v", w.LocalAABB.Min, w.LocalAABB.Max)
	}
	if w.Material != ground.Material || w.IndexCount() != ground.IndexCount() {
		t.Error("WorldMeshes: material or indices not carried over")
	}
	if !approxVec3(mgl32.Vec3{w.Normals[0], w.Normals[1], w.Normals[2]}, mgl32.Vec3{0, 1, 0}, 1e-6) {
		t.Errorf("normal changed under translation: %v", w.Normals[:3])
	}
	if ground.Positions[0] != -3 {
		t.Errorf("source mesh modified: first x %v", ground.Positions[0])
	}
}

func TestArcRotateCameraFrame(t *testing.T) {
	c := NewArcRotateCamera("camera", -math.Pi/2, 1, 10, mgl32.Vec3{})
	box := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{6, 0.5, 6}}
	c.Frame(box)

	if !approxVec3(c.Target, mgl32.Vec3{3, 0.25, 3}, 1e-5) {
		t.Errorf("Frame target: got %v", c.Target)
	}
	halfDiag := box.Size().Len() / 2
	if c.Radius <= halfDiag {
		t.Errorf("Frame radius %v does not clear the box (half diagonal %v)", c.Radius, halfDiag)
	}
	if c.Beta != 1 || math.Abs(float64(c.Alpha)+math.Pi/2) > 1e-6 {
		t.Errorf("Frame changed the angles: alpha %v beta %v", c.Alpha, c.Beta)
	}
}

func TestNewTextureFromImageRepacks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Pix[img.PixOffset(1, 1)] = 200
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	tex := NewTextureFromImage("sub", sub)
	if tex.Width != 2 || tex.Height != 2 || len(tex.Pixels) != 16 {
		t.Fatalf("texture: got %dx%d with %d bytes", tex.Width, tex.Height, len(tex.Pixels))
	}
	if r, _, _, _ := tex.At(0, 0); r != 200 {
		t.Errorf("At(0,0): expected 200, got %d", r)
	}
	if r, _, _, _ := tex.At(2, 2); r != 200 {
		t.Errorf("At wraps: expected 200, got %d", r)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	c := NewArcRotateCamera("camera", -math.Pi/2, 1, 10, mgl32.Vec3{})
	for i := 0; i < b.N; i++ {
		c.Orbit(0.001, 0)
		_ = c.ViewProjectionMatrix()
	}
}
