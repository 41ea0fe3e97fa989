package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"grass-field/core"
	"grass-field/scene"
)

// Matrices the renderer fills in for every shader material that declares
// them.
const (
	worldViewProjection = "worldViewProjection"
	world               = "world"
	viewProjection      = "viewProjection"
)

// ShaderProgram is a linked ShaderMaterial with its uniform locations.
type ShaderProgram struct {
	ID       uint32
	uniforms map[string]int32
	units    map[string]int32 // sampler name -> texture unit
}

func (p *ShaderProgram) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (p *ShaderProgram) setMatrix(name string, m mgl32.Mat4) {
	if loc := p.location(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// ensureProgram compiles mat on first use and caches the result.
func (r *Renderer) ensureProgram(mat *scene.ShaderMaterial) (*ShaderProgram, error) {
	if prog, ok := r.programs[mat]; ok {
		return prog, nil
	}

	id, err := newProgram(mat.VertexSource, mat.FragmentSource, mat.Attributes...)
	if err != nil {
		return nil, fmt.Errorf("shader material %q: %w", mat.Name, err)
	}

	prog := &ShaderProgram{
		ID:       id,
		uniforms: make(map[string]int32),
		units:    make(map[string]int32),
	}
	for _, name := range mat.Uniforms {
		prog.uniforms[name] = gl.GetUniformLocation(id, gl.Str(cstr(name)))
	}
	gl.UseProgram(id)
	for i, name := range mat.Samplers {
		loc := gl.GetUniformLocation(id, gl.Str(cstr(name)))
		prog.uniforms[name] = loc
		prog.units[name] = int32(i)
		if loc >= 0 {
			gl.Uniform1i(loc, int32(i))
		}
	}

	r.programs[mat] = prog
	mat.GPUData = prog
	fmt.Printf("[Shader] compiled %q (%d uniforms, %d samplers)\n", mat.Name, len(mat.Uniforms), len(mat.Samplers))
	return prog, nil
}

// applyShaderMaterial pushes every stored value of mat. Values for names
// the program does not declare are skipped.
func (r *Renderer) applyShaderMaterial(prog *ShaderProgram, mat *scene.ShaderMaterial) error {
	for _, name := range mat.ValueNames() {
		loc := prog.location(name)
		if loc < 0 {
			continue
		}
		v, _ := mat.Value(name)
		switch val := v.(type) {
		case float32:
			gl.Uniform1f(loc, val)
		case bool:
			var i int32
			if val {
				i = 1
			}
			gl.Uniform1i(loc, i)
		case mgl32.Vec2:
			gl.Uniform2f(loc, val.X(), val.Y())
		case mgl32.Vec3:
			gl.Uniform3f(loc, val.X(), val.Y(), val.Z())
		case core.Color:
			gl.Uniform3f(loc, val.R, val.G, val.B)
		case mgl32.Mat4:
			gl.UniformMatrix4fv(loc, 1, false, &val[0])
		case *scene.Texture:
			unit, ok := prog.units[name]
			if !ok || val == nil {
				continue
			}
			if err := r.ensureTexture(val); err != nil {
				return fmt.Errorf("shader material %q: %w", mat.Name, err)
			}
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			gl.BindTexture(gl.TEXTURE_2D, val.GLID)
		default:
			return fmt.Errorf("shader material %q: unsupported value type %T for %q", mat.Name, v, name)
		}
	}
	return nil
}

func (r *Renderer) ensureTexture(tex *scene.Texture) error {
	if tex.GLID != 0 {
		return nil
	}
	if err := UploadTexture(tex); err != nil {
		return err
	}
	r.textures[tex] = struct{}{}
	return nil
}

// ReleaseMaterial deletes the program compiled for mat.
func (r *Renderer) ReleaseMaterial(mat *scene.ShaderMaterial) {
	if prog, ok := r.programs[mat]; ok {
		gl.DeleteProgram(prog.ID)
		delete(r.programs, mat)
		mat.GPUData = nil
	}
}
