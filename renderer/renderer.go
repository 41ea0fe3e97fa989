package renderer

import (
	"fmt"

	"grass-field/core"
	"grass-field/internal/opengl"
	"grass-field/scene"
)

// RenderEngine is the high-level renderer that drives the OpenGL backend.
type RenderEngine struct {
	gl     *opengl.Renderer
	window *core.Window
	Scene  *scene.Scene

	// Per-frame stats (populated during Render)
	lastObjects   int
	lastVertices  int
	lastTriangles int
}

func NewRenderEngine(window *core.Window) (*RenderEngine, error) {
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	fbW, fbH := window.GetFramebufferSize()
	glRenderer.SetViewport(fbW, fbH)

	fmt.Println("Render engine initialized (OpenGL)")
	return &RenderEngine{
		gl:     glRenderer,
		window: window,
	}, nil
}

// SetScene makes s the active scene. Disposing s releases everything the
// backend uploaded for it.
func (re *RenderEngine) SetScene(s *scene.Scene) {
	if re.Scene != nil && re.Scene != s {
		re.gl.ReleaseAll()
	}
	re.Scene = s
	if s == nil {
		return
	}
	if s.Camera != nil {
		w, h := re.gl.Viewport()
		s.Camera.UpdateAspectRatio(float32(w), float32(h))
	}
	s.OnDispose(func() {
		re.gl.ReleaseAll()
		if re.Scene == s {
			re.Scene = nil
		}
	})
}

// Render runs the scene's before-render callbacks and draws every visible
// mesh into the back buffer.
func (re *RenderEngine) Render() error {
	if re.Scene == nil || re.Scene.Camera == nil {
		return fmt.Errorf("no scene or camera")
	}
	if re.Scene.IsDisposed() {
		return fmt.Errorf("scene is disposed")
	}

	re.Scene.RunBeforeRender()

	cam := re.Scene.Camera
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	vp := proj.Mul4(view)

	re.gl.BeginFrame(re.Scene.ClearColor, re.Scene.Lights, cam.Position(), view, proj)

	objects, vertices, triangles := 0, 0, 0
	for _, node := range re.Scene.GetVisibleNodes() {
		model := node.WorldMatrix()
		mvp := vp.Mul4(model)
		if err := re.gl.DrawMesh(node.Mesh, mvp, model); err != nil {
			return fmt.Errorf("draw %q: %w", node.Mesh.Name, err)
		}

		objects++
		vertices += node.Mesh.VertexCount()
		triangles += node.Mesh.IndexCount() / 3
	}

	re.lastObjects = objects
	re.lastVertices = vertices
	re.lastTriangles = triangles
	return nil
}

// Present swaps buffers. Call after Render() and any screenshot capture.
func (re *RenderEngine) Present() {
	re.window.SwapBuffers()
}

func (re *RenderEngine) Resize(width, height int) {
	re.gl.SetViewport(width, height)
	if re.Scene != nil && re.Scene.Camera != nil {
		re.Scene.Camera.UpdateAspectRatio(float32(width), float32(height))
	}
}

func (re *RenderEngine) SetWireframe(enabled bool) {
	re.gl.SetWireframe(enabled)
}

// IsWireframe returns whether wireframe mode is currently active.
func (re *RenderEngine) IsWireframe() bool {
	return re.gl.IsWireframe()
}

func (re *RenderEngine) Destroy() {
	re.gl.Destroy()
}

// DrawStats returns stats from the most recent Render call.
func (re *RenderEngine) DrawStats() (objects, vertices, triangles int) {
	return re.lastObjects, re.lastVertices, re.lastTriangles
}
