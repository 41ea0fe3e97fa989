// Package playground assembles the grass scene: camera, light, dirt ground,
// the wind shader material and the blade mesh. CreateScene builds a fresh
// scene on every call and keeps no state between calls.
package playground

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"grass-field/core"
	"grass-field/grass"
	"grass-field/noise"
	"grass-field/scene"
	"grass-field/wind"
)

// Names of the objects CreateScene adds.
const (
	CameraName         = "Camera"
	LightName          = "light1"
	GroundName         = "ground1"
	DirtMaterialName   = "dirty dirt"
	GrassName          = "grass"
	ShaderMaterialName = "shader"
	NoiseTextureName   = "noise"
)

var DirtColor = core.Color3(0.25, 0.25, 0.0)

type Options struct {
	Field   grass.Field
	Blade   grass.Blade
	Seed    int64 // 0 picks a time-based seed
	Workers int   // 1 builds on the calling goroutine, <= 0 uses every CPU
	Wind    wind.Params

	UseNoise    bool
	NoiseSource string // URL or file path; empty means generated
	NoiseSize   int    // max texture side after loading, 0 keeps the original

	// Clock returns the seconds fed to the time uniform. Nil uses seconds
	// since CreateScene.
	Clock func() float32
}

func DefaultOptions() Options {
	return Options{
		Field:       grass.DefaultField(),
		Blade:       grass.DefaultBlade(),
		Wind:        wind.DefaultParams(),
		UseNoise:    true,
		NoiseSource: noise.DefaultURL,
		NoiseSize:   512,
	}
}

func (o Options) Validate() error {
	if o.Field.Count < 0 {
		return fmt.Errorf("blade count %d is negative", o.Field.Count)
	}
	if o.Field.XBound <= 0 || o.Field.ZBound <= 0 {
		return fmt.Errorf("field bounds %vx%v must be positive", o.Field.XBound, o.Field.ZBound)
	}
	if o.Blade.Height <= 0 || o.Blade.Width <= 0 {
		return fmt.Errorf("blade size %vx%v must be positive", o.Blade.Width, o.Blade.Height)
	}
	return nil
}

// CreateScene builds the grass scene. ctx bounds the noise texture fetch.
func CreateScene(ctx context.Context, opts Options) (*scene.Scene, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("playground: %w", err)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	s := scene.NewScene()

	camera := scene.NewArcRotateCamera(CameraName, -math.Pi/2, 1, 10, mgl32.Vec3{})
	s.SetCamera(camera)

	light := scene.NewHemisphericLight(LightName, mgl32.Vec3{0, 1, 0})
	light.Intensity = 0.7
	s.AddLight(light)

	f := opts.Field
	AddGround(s, f)

	img := noise.Fit(noise.Resolve(ctx, opts.NoiseSource, opts.Seed), opts.NoiseSize)
	noiseTex := scene.NewTextureFromImage(NoiseTextureName, img)

	mat := NewWindMaterial(opts, noiseTex)

	data := BuildGrass(opts)
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("playground: grass mesh: %w", err)
	}
	grassMesh := scene.NewMesh(GrassName, data.Positions, data.Normals, data.Indices)
	grassMesh.Material = mat
	s.AddMesh(grassMesh)

	clock := opts.Clock
	if clock == nil {
		start := time.Now()
		clock = func() float32 { return float32(time.Since(start).Seconds()) }
	}
	s.RegisterBeforeRender(func() {
		mat.SetFloat(wind.UniformTime, clock())
	})

	fmt.Printf("[Grass] %d blades, %d vertices, %d triangles (seed %d)\n",
		f.Count, data.VertexCount(), data.TriangleCount(), opts.Seed)
	return s, nil
}

// NewGround is the dirt plane under a field, centred on the origin.
func NewGround(f grass.Field) *scene.Mesh {
	ground := scene.CreateGround(GroundName, f.XBound, f.ZBound, 2)
	dirt := scene.NewStandardMaterial(DirtMaterialName)
	dirt.DiffuseColor = DirtColor
	dirt.SpecularPower = 1e9
	ground.Material = dirt
	return ground
}

// AddGround adds the dirt plane to s, centred under the field.
func AddGround(s *scene.Scene, f grass.Field) *scene.Node {
	node := s.AddMesh(NewGround(f))
	node.Position = mgl32.Vec3{f.XStart + f.XBound/2, 0, f.ZStart + f.ZBound/2}
	return node
}

// NewWindMaterial builds the double-sided wind shader material. noiseTex
// may be nil when the material is only used for export.
func NewWindMaterial(opts Options, noiseTex *scene.Texture) *scene.ShaderMaterial {
	f := opts.Field
	mat := scene.NewShaderMaterial(ShaderMaterialName,
		wind.VertexSource, wind.FragmentSource,
		wind.Attributes, wind.Uniforms, wind.Samplers)
	mat.BackFaceCulling = false
	if noiseTex != nil {
		mat.SetTexture(wind.SamplerNoiseMap, noiseTex)
	}
	mat.SetColor3(wind.UniformColor1, wind.RootColor).
		SetColor3(wind.UniformColor2, wind.TipColor).
		SetVector2(wind.UniformMaxPos, mgl32.Vec2{f.XBound, f.ZBound}).
		SetBool(wind.UniformUseNoise, opts.UseNoise && noiseTex != nil).
		SetFloat(wind.UniformTime, 0)
	ApplyWind(mat, opts.Wind)
	return mat
}

// BuildGrass generates the blade mesh for opts. The layout depends only on
// the seed, not on Workers.
func BuildGrass(opts Options) *grass.MeshData {
	return grass.BuildParallel(opts.Field, opts.Blade, opts.Seed, opts.Workers)
}

// ApplyWind writes p into the wind uniforms of mat.
func ApplyWind(mat *scene.ShaderMaterial, p wind.Params) {
	mat.SetFloat(wind.UniformXPower, p.XPower).
		SetFloat(wind.UniformZPower, p.ZPower).
		SetFloat(wind.UniformXFreq, p.XFreq).
		SetFloat(wind.UniformZFreq, p.ZFreq)
}

// GrassMesh returns the blade mesh of a scene built by CreateScene.
func GrassMesh(s *scene.Scene) *scene.Mesh {
	return s.GetMeshByName(GrassName)
}

// WindMaterial returns the wind shader material of a scene built by
// CreateScene.
func WindMaterial(s *scene.Scene) *scene.ShaderMaterial {
	m, _ := s.GetMaterialByName(ShaderMaterialName).(*scene.ShaderMaterial)
	return m
}

// Regenerate rebuilds the blade mesh in place with opts.Seed.
func Regenerate(s *scene.Scene, opts Options) error {
	m := GrassMesh(s)
	if m == nil {
		return fmt.Errorf("playground: scene has no %q mesh", GrassName)
	}
	data := BuildGrass(opts)
	if err := data.Validate(); err != nil {
		return fmt.Errorf("playground: grass mesh: %w", err)
	}
	m.SetGeometry(data.Positions, data.Normals, data.Indices)
	fmt.Printf("[Grass] regenerated %d blades (seed %d)\n", opts.Field.Count, opts.Seed)
	return nil
}

// FrameGrass points the camera at the centre of the blade mesh and pulls
// back until the whole field fits. It reports false if there is nothing to
// frame.
func FrameGrass(s *scene.Scene) bool {
	m := GrassMesh(s)
	if m == nil || s.Camera == nil || m.VertexCount() == 0 {
		return false
	}
	s.Camera.Frame(m.LocalAABB)
	return true
}

// ToggleNoise flips the useNoise uniform and returns the new state.
func ToggleNoise(s *scene.Scene) bool {
	mat := WindMaterial(s)
	if mat == nil {
		return false
	}
	on := !mat.Bool(wind.UniformUseNoise)
	mat.SetBool(wind.UniformUseNoise, on)
	return on
}
