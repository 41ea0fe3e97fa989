package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"grass-field/core"
)

// Material is anything a mesh can be drawn with.
type Material interface {
	MaterialName() string
	CullsBackFaces() bool
}

// StandardMaterial is lit by the scene's hemispheric lights.
type StandardMaterial struct {
	Name            string
	DiffuseColor    core.Color
	SpecularColor   core.Color
	SpecularPower   float32
	BackFaceCulling bool
}

func NewStandardMaterial(name string) *StandardMaterial {
	return &StandardMaterial{
		Name:            name,
		DiffuseColor:    core.ColorWhite,
		SpecularColor:   core.ColorWhite,
		SpecularPower:   64,
		BackFaceCulling: true,
	}
}

func (m *StandardMaterial) MaterialName() string { return m.Name }
func (m *StandardMaterial) CullsBackFaces() bool { return m.BackFaceCulling }

// ShaderMaterial draws with custom GLSL. Uniform values are stored by name
// and pushed by the backend every frame; worldViewProjection is filled in
// automatically when it is listed in Uniforms.
type ShaderMaterial struct {
	Name            string
	VertexSource    string
	FragmentSource  string
	Attributes      []string
	Uniforms        []string
	Samplers        []string
	BackFaceCulling bool

	values map[string]interface{}

	// GPUData is set by the renderer backend (e.g. *opengl.ShaderProgram).
	GPUData interface{}
}

func NewShaderMaterial(name, vertexSource, fragmentSource string, attributes, uniforms, samplers []string) *ShaderMaterial {
	return &ShaderMaterial{
		Name:            name,
		VertexSource:    vertexSource,
		FragmentSource:  fragmentSource,
		Attributes:      attributes,
		Uniforms:        uniforms,
		Samplers:        samplers,
		BackFaceCulling: true,
		values:          make(map[string]interface{}),
	}
}

func (m *ShaderMaterial) MaterialName() string { return m.Name }
func (m *ShaderMaterial) CullsBackFaces() bool { return m.BackFaceCulling }

func (m *ShaderMaterial) SetFloat(name string, v float32) *ShaderMaterial {
	m.values[name] = v
	return m
}

func (m *ShaderMaterial) SetVector2(name string, v mgl32.Vec2) *ShaderMaterial {
	m.values[name] = v
	return m
}

func (m *ShaderMaterial) SetColor3(name string, c core.Color) *ShaderMaterial {
	m.values[name] = c
	return m
}

func (m *ShaderMaterial) SetBool(name string, v bool) *ShaderMaterial {
	m.values[name] = v
	return m
}

func (m *ShaderMaterial) SetTexture(name string, t *Texture) *ShaderMaterial {
	m.values[name] = t
	return m
}

// Value returns the stored value for name: float32, mgl32.Vec2, core.Color,
// bool or *Texture.
func (m *ShaderMaterial) Value(name string) (interface{}, bool) {
	v, ok := m.values[name]
	return v, ok
}

func (m *ShaderMaterial) Float(name string) float32 {
	v, _ := m.values[name].(float32)
	return v
}

func (m *ShaderMaterial) Bool(name string) bool {
	v, _ := m.values[name].(bool)
	return v
}

func (m *ShaderMaterial) Texture(name string) *Texture {
	t, _ := m.values[name].(*Texture)
	return t
}

// ValueNames lists every set value in a stable order.
func (m *ShaderMaterial) ValueNames() []string {
	names := make([]string, 0, len(m.values))
	for k := range m.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Textures returns the bound textures in sampler order.
func (m *ShaderMaterial) Textures() []*Texture {
	var out []*Texture
	for _, s := range m.Samplers {
		if t := m.Texture(s); t != nil {
			out = append(out, t)
		}
	}
	return out
}
