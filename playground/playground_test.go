package playground

import (
	"context"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/qmuntal/gltf/modeler"

	"grass-field/grass"
	gfio "grass-field/io"
	"grass-field/scene"
	"grass-field/wind"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	p := filepath.Join(t.TempDir(), "noise.png")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	opts := DefaultOptions()
	opts.Field.Count = 500
	opts.Seed = 42
	opts.NoiseSource = p
	return opts
}

func TestCreateScene(t *testing.T) {
	opts := testOptions(t)
	var now float32 = 3.5
	opts.Clock = func() float32 { return now }

	s, err := CreateScene(context.Background(), opts)
	if err != nil {
		t.Fatalf("CreateScene: %v", err)
	}

	cam := s.Camera
	if cam == nil || cam.Radius != 10 || cam.Beta != 1 || math.Abs(float64(cam.Alpha)+math.Pi/2) > 1e-6 {
		t.Errorf("camera: got %+v", cam)
	}
	if len(s.Lights) != 1 || s.Lights[0].Intensity != 0.7 || s.Lights[0].Direction != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("light: got %+v", s.Lights)
	}

	ground := s.GetMeshByName(GroundName)
	if ground == nil {
		t.Fatal("ground missing")
	}
	dirt, ok := ground.Material.(*scene.StandardMaterial)
	if !ok || dirt.Name != DirtMaterialName || dirt.DiffuseColor != DirtColor {
		t.Errorf("ground material: got %+v", ground.Material)
	}
	if ground.VertexCount() != 9 {
		t.Errorf("ground subdivisions: expected 9 vertices, got %d", ground.VertexCount())
	}

	m := GrassMesh(s)
	if m == nil {
		t.Fatal("grass mesh missing")
	}
	if m.VertexCount() != 500*grass.VerticesPerBlade || m.IndexCount() != 500*grass.IndicesPerBlade {
		t.Errorf("grass mesh: %d vertices, %d indices", m.VertexCount(), m.IndexCount())
	}
	if err := m.Validate(); err != nil {
		t.Errorf("grass mesh: %v", err)
	}

	mat := WindMaterial(s)
	if mat == nil {
		t.Fatal("wind material missing")
	}
	if mat.BackFaceCulling {
		t.Error("wind material should render both faces")
	}
	if v, _ := mat.Value(wind.UniformMaxPos); v != (mgl32.Vec2{6, 6}) {
		t.Errorf("maxPos: got %v", v)
	}
	if v, _ := mat.Value(wind.UniformColor1); v != wind.RootColor {
		t.Errorf("color1: got %v", v)
	}
	if mat.Float(wind.UniformXPower) != 0.1 || mat.Float(wind.UniformZFreq) != 3 {
		t.Errorf("wind params not applied")
	}
	if mat.Texture(wind.SamplerNoiseMap) == nil {
		t.Error("noise texture not bound")
	}

	s.RunBeforeRender()
	if got := mat.Float(wind.UniformTime); got != 3.5 {
		t.Errorf("time after before-render: expected 3.5, got %v", got)
	}
	now = 4
	s.RunBeforeRender()
	if got := mat.Float(wind.UniformTime); got != 4 {
		t.Errorf("time after second frame: expected 4, got %v", got)
	}
}

func TestCreateSceneIsFresh(t *testing.T) {
	opts := testOptions(t)
	a, err := CreateScene(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := CreateScene(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if GrassMesh(a) == GrassMesh(b) || WindMaterial(a) == WindMaterial(b) {
		t.Error("CreateScene shared objects between calls")
	}
	pa, pb := GrassMesh(a).Positions, GrassMesh(b).Positions
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("same seed gave different geometry at %d", i)
		}
	}
}

func TestCreateSceneRejectsBadOptions(t *testing.T) {
	opts := testOptions(t)
	opts.Field.XBound = 0
	if _, err := CreateScene(context.Background(), opts); err == nil {
		t.Error("expected error for zero field bound")
	}
	opts = testOptions(t)
	opts.Field.Count = -1
	if _, err := CreateScene(context.Background(), opts); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestCreateSceneZeroBlades(t *testing.T) {
	opts := testOptions(t)
	opts.Field.Count = 0
	s, err := CreateScene(context.Background(), opts)
	if err != nil {
		t.Fatalf("CreateScene: %v", err)
	}
	if m := GrassMesh(s); m == nil || m.VertexCount() != 0 {
		t.Errorf("expected empty grass mesh, got %v", m)
	}
}

func TestRegenerateAndToggleNoise(t *testing.T) {
	opts := testOptions(t)
	s, err := CreateScene(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	m := GrassMesh(s)
	v := m.Version()
	first := m.Positions[0]

	opts.Seed = 7
	if err := Regenerate(s, opts); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if m.Version() == v {
		t.Error("Regenerate did not replace geometry")
	}
	if m.Positions[0] == first {
		t.Error("new seed produced the same first vertex")
	}

	if on := ToggleNoise(s); on {
		t.Error("ToggleNoise: expected noise off after first toggle")
	}
	if on := ToggleNoise(s); !on {
		t.Error("ToggleNoise: expected noise on after second toggle")
	}

	if err := Regenerate(scene.NewScene(), opts); err == nil {
		t.Error("Regenerate on empty scene: expected error")
	}
}

func TestStopwatch(t *testing.T) {
	now := time.Unix(0, 0)
	w := newStopwatch(func() time.Time { return now })

	now = now.Add(2 * time.Second)
	if got := w.Seconds(); got != 2 {
		t.Errorf("running: expected 2, got %v", got)
	}
	if !w.Toggle() {
		t.Error("Toggle: expected paused")
	}
	now = now.Add(5 * time.Second)
	if got := w.Seconds(); got != 2 {
		t.Errorf("paused: expected 2, got %v", got)
	}
	w.Toggle()
	now = now.Add(time.Second)
	if got := w.Seconds(); got != 3 {
		t.Errorf("resumed: expected 3, got %v", got)
	}
}

func TestExportNonCentredField(t *testing.T) {
	opts := testOptions(t)
	opts.Field = grass.Field{Count: 200, XStart: 0, ZStart: 0, XBound: 6, ZBound: 6}

	s, err := CreateScene(context.Background(), opts)
	if err != nil {
		t.Fatalf("CreateScene: %v", err)
	}
	doc, err := gfio.BuildDocument(s.WorldMeshes()...)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	for _, m := range doc.Meshes {
		pos, err := modeler.ReadPosition(doc, doc.Accessors[m.Primitives[0].Attributes["POSITION"]], nil)
		if err != nil {
			t.Fatalf("%s: ReadPosition: %v", m.Name, err)
		}
		for i, p := range pos {
			if p[0] < 0 || p[0] > 6.1 || p[2] < 0 || p[2] > 6 {
				t.Fatalf("%s: vertex %d at %v is outside the field [0,6]x[0,6]", m.Name, i, p)
			}
		}
	}
}

func TestFrameGrass(t *testing.T) {
	opts := testOptions(t)
	opts.Field = grass.Field{Count: 300, XStart: 10, ZStart: 20, XBound: 4, ZBound: 4}

	s, err := CreateScene(context.Background(), opts)
	if err != nil {
		t.Fatalf("CreateScene: %v", err)
	}
	if !FrameGrass(s) {
		t.Fatal("FrameGrass: nothing framed")
	}
	c := s.Camera.Target
	if c.X() < 10 || c.X() > 14.1 || c.Z() < 20 || c.Z() > 24 {
		t.Errorf("camera target %v is not over the field", c)
	}
	if FrameGrass(scene.NewScene()) {
		t.Error("FrameGrass: expected false for a scene without grass")
	}
}

func TestBuildGrassIgnoresWorkerCount(t *testing.T) {
	opts := DefaultOptions()
	opts.Field.Count = grass.ChunkSize*2 + 5
	opts.Seed = 1234

	opts.Workers = 1
	one := BuildGrass(opts)
	opts.Workers = 4
	four := BuildGrass(opts)
	for i := range one.Positions {
		if one.Positions[i] != four.Positions[i] {
			t.Fatalf("position %d differs between 1 and 4 workers", i)
		}
	}
}
