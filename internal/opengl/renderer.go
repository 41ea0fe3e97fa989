package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"grass-field/core"
	"grass-field/scene"
)

const maxLights = 4

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh. Positions
// and normals live in separate buffers bound to locations 0 and 1.
type GPUMesh struct {
	VAO         uint32
	PositionVBO uint32
	NormalVBO   uint32
	EBO         uint32
	IndexCount  int32
	VertexCount int32
	HasIndices  bool

	version uint64
}

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	program uint32

	// Vertex transform uniforms
	mvpLoc   int32
	modelLoc int32

	// Hemispheric lights
	lightCountLoc     int32
	lightDirLoc       [maxLights]int32
	lightDiffuseLoc   [maxLights]int32
	lightSpecularLoc  [maxLights]int32
	lightGroundLoc    [maxLights]int32
	lightIntensityLoc [maxLights]int32

	cameraPosLoc int32

	// Material uniforms
	matDiffuseLoc       int32
	matSpecularLoc      int32
	matSpecularPowerLoc int32

	viewportW int32
	viewportH int32

	// Render state
	wireframe bool
	culling   bool

	view mgl32.Mat4
	proj mgl32.Mat4

	gpuMeshes map[*scene.Mesh]*GPUMesh
	programs  map[*scene.ShaderMaterial]*ShaderProgram
	textures  map[*scene.Texture]struct{}
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// vertex shader: MVP + model transform, world-space position and normal to fragment.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;

uniform mat4 mvp;
uniform mat4 model;

out vec3 fragNormal;
out vec3 fragWorldPos;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    fragWorldPos  = worldPos.xyz;
    fragNormal    = mat3(model) * inNormal;
    gl_Position   = mvp * vec4(inPosition, 1.0);
}
` + "\x00"

// fragment shader: hemispheric diffuse (sky/ground blend by N.L) plus a
// Blinn-Phong highlight from the sky direction.
const fragSrc = `
#version 410 core
in vec3 fragNormal;
in vec3 fragWorldPos;

const int MAX_LIGHTS = 4;

uniform int   lightCount;
uniform vec3  lightDir[MAX_LIGHTS];
uniform vec3  lightDiffuse[MAX_LIGHTS];
uniform vec3  lightSpecular[MAX_LIGHTS];
uniform vec3  lightGround[MAX_LIGHTS];
uniform float lightIntensity[MAX_LIGHTS];

uniform vec3  cameraPos;
uniform vec3  matDiffuse;
uniform vec3  matSpecular;
uniform float matSpecularPower;

out vec4 outColor;

void main() {
    vec3 N = normalize(fragNormal);
    if (!gl_FrontFacing) {
        N = -N;
    }
    vec3 V = normalize(cameraPos - fragWorldPos);

    vec3 diffuse  = vec3(0.0);
    vec3 specular = vec3(0.0);
    for (int i = 0; i < lightCount; i++) {
        vec3 L = normalize(lightDir[i]);
        float ndl = dot(N, L) * 0.5 + 0.5;
        diffuse += mix(lightGround[i], lightDiffuse[i], ndl) * lightIntensity[i];

        vec3 H = normalize(V + L);
        float spec = pow(max(dot(N, H), 0.0), max(matSpecularPower, 1.0));
        specular += lightSpecular[i] * spec * lightIntensity[i];
    }

    outColor = vec4(matDiffuse * diffuse + matSpecular * specular, 1.0);
}
` + "\x00"

// ── Constructor ───────────────────────────────────────────────────────────────

// NewRenderer initialises the GL function pointers for the current context
// and compiles the standard material program.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("standard shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)

	r := &Renderer{
		program: prog,

		mvpLoc:   gl.GetUniformLocation(prog, gl.Str("mvp\x00")),
		modelLoc: gl.GetUniformLocation(prog, gl.Str("model\x00")),

		lightCountLoc: gl.GetUniformLocation(prog, gl.Str("lightCount\x00")),
		cameraPosLoc:  gl.GetUniformLocation(prog, gl.Str("cameraPos\x00")),

		matDiffuseLoc:       gl.GetUniformLocation(prog, gl.Str("matDiffuse\x00")),
		matSpecularLoc:      gl.GetUniformLocation(prog, gl.Str("matSpecular\x00")),
		matSpecularPowerLoc: gl.GetUniformLocation(prog, gl.Str("matSpecularPower\x00")),

		view: mgl32.Ident4(),
		proj: mgl32.Ident4(),

		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
		programs:  make(map[*scene.ShaderMaterial]*ShaderProgram),
		textures:  make(map[*scene.Texture]struct{}),
	}

	for i := 0; i < maxLights; i++ {
		r.lightDirLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("lightDir[%d]\x00", i)))
		r.lightDiffuseLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("lightDiffuse[%d]\x00", i)))
		r.lightSpecularLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("lightSpecular[%d]\x00", i)))
		r.lightGroundLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("lightGround[%d]\x00", i)))
		r.lightIntensityLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("lightIntensity[%d]\x00", i)))
	}

	return r, nil
}

// ── Viewport ──────────────────────────────────────────────────────────────────

func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (r *Renderer) Viewport() (width, height int) {
	return int(r.viewportW), int(r.viewportH)
}

// ── Frame ─────────────────────────────────────────────────────────────────────

// BeginFrame clears the default framebuffer and loads the per-frame light
// and camera state into the standard program.
func (r *Renderer) BeginFrame(clear core.Color, lights []*scene.HemisphericLight, camPos mgl32.Vec3, view, proj mgl32.Mat4) {
	r.view = view
	r.proj = proj

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.Uniform3f(r.cameraPosLoc, camPos.X(), camPos.Y(), camPos.Z())

	n := 0
	for _, l := range lights {
		if l == nil || n >= maxLights {
			continue
		}
		d := l.Direction
		gl.Uniform3f(r.lightDirLoc[n], d.X(), d.Y(), d.Z())
		gl.Uniform3f(r.lightDiffuseLoc[n], l.Diffuse.R, l.Diffuse.G, l.Diffuse.B)
		gl.Uniform3f(r.lightSpecularLoc[n], l.Specular.R, l.Specular.G, l.Specular.B)
		gl.Uniform3f(r.lightGroundLoc[n], l.GroundColor.R, l.GroundColor.G, l.GroundColor.B)
		gl.Uniform1f(r.lightIntensityLoc[n], l.Intensity)
		n++
	}
	gl.Uniform1i(r.lightCountLoc, int32(n))
}

// ── Wireframe ─────────────────────────────────────────────────────────────────

// SetWireframe toggles wireframe rendering mode.
func (r *Renderer) SetWireframe(enabled bool) {
	r.wireframe = enabled
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (r *Renderer) IsWireframe() bool {
	return r.wireframe
}

func (r *Renderer) setCulling(enabled bool) {
	if enabled == r.culling {
		return
	}
	r.culling = enabled
	if enabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

// ── DrawMesh ──────────────────────────────────────────────────────────────────

// DrawMesh draws mesh with its material. A nil material draws with a white
// StandardMaterial.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, mvp, model mgl32.Mat4) error {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return nil
	}

	switch mat := mesh.Material.(type) {
	case *scene.ShaderMaterial:
		prog, err := r.ensureProgram(mat)
		if err != nil {
			return err
		}
		r.setCulling(mat.BackFaceCulling)
		gl.UseProgram(prog.ID)
		prog.setMatrix(worldViewProjection, mvp)
		prog.setMatrix(world, model)
		prog.setMatrix(viewProjection, r.proj.Mul4(r.view))
		if err := r.applyShaderMaterial(prog, mat); err != nil {
			return err
		}
	case *scene.StandardMaterial:
		r.setCulling(mat.BackFaceCulling)
		r.applyStandard(mat, mvp, model)
	default:
		def := scene.NewStandardMaterial("default")
		r.setCulling(def.BackFaceCulling)
		r.applyStandard(def, mvp, model)
	}

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, gpu.VertexCount)
	}
	gl.BindVertexArray(0)
	return nil
}

func (r *Renderer) applyStandard(mat *scene.StandardMaterial, mvp, model mgl32.Mat4) {
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0])
	gl.UniformMatrix4fv(r.modelLoc, 1, false, &model[0])
	gl.Uniform3f(r.matDiffuseLoc, mat.DiffuseColor.R, mat.DiffuseColor.G, mat.DiffuseColor.B)
	gl.Uniform3f(r.matSpecularLoc, mat.SpecularColor.R, mat.SpecularColor.G, mat.SpecularColor.B)
	gl.Uniform1f(r.matSpecularPowerLoc, mat.SpecularPower)
}

// ── Release ───────────────────────────────────────────────────────────────────

// ReleaseMesh frees the GPU buffers of mesh. The next draw re-uploads it.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.PositionVBO)
		if gpu.NormalVBO != 0 {
			gl.DeleteBuffers(1, &gpu.NormalVBO)
		}
		if gpu.HasIndices {
			gl.DeleteBuffers(1, &gpu.EBO)
		}
		delete(r.gpuMeshes, mesh)
		mesh.GPUData = nil
	}
}

// ReleaseTexture frees a texture uploaded through a shader material.
func (r *Renderer) ReleaseTexture(tex *scene.Texture) {
	if _, ok := r.textures[tex]; ok {
		DeleteTexture(tex)
		delete(r.textures, tex)
	}
}

// ReleaseAll frees every mesh, material program and texture, keeping the
// standard program. Used when a scene is disposed.
func (r *Renderer) ReleaseAll() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	for mat := range r.programs {
		r.ReleaseMaterial(mat)
	}
	for tex := range r.textures {
		r.ReleaseTexture(tex)
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	r.ReleaseAll()
	gl.DeleteProgram(r.program)
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// ensureUploaded uploads vertex/index data if not already done, and again
// whenever the mesh geometry version changes.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		if gpu.version == mesh.Version() {
			return gpu
		}
		r.ReleaseMesh(mesh)
	}
	if len(mesh.Positions) == 0 {
		return nil
	}

	gpu := &GPUMesh{
		IndexCount:  int32(len(mesh.Indices)),
		VertexCount: int32(mesh.VertexCount()),
		HasIndices:  len(mesh.Indices) > 0,
		version:     mesh.Version(),
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.BindVertexArray(gpu.VAO)

	gl.GenBuffers(1, &gpu.PositionVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.PositionVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Positions)*4, gl.Ptr(mesh.Positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))

	if len(mesh.Normals) == len(mesh.Positions) {
		gl.GenBuffers(1, &gpu.NormalVBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, gpu.NormalVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Normals)*4, gl.Ptr(mesh.Normals), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
	} else {
		gl.DisableVertexAttribArray(1)
		gl.VertexAttrib3f(1, 0, 1, 0)
	}

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

// ── Shader helpers ────────────────────────────────────────────────────────────

// newProgram links a vertex/fragment pair. attribs, if given, are bound to
// locations 0, 1, ... before linking.
func newProgram(vertSrc, fragSrc string, attribs ...string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	for i, name := range attribs {
		gl.BindAttribLocation(prog, uint32(i), gl.Str(cstr(name)))
	}
	gl.LinkProgram(prog)

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(cstr(src))
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}

// cstr appends the NUL terminator gl.Str and gl.Strs expect, once.
func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
