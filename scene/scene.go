// Package scene is the host-side object model: a node graph with meshes,
// one arc-rotate camera, hemispheric lights and per-frame callbacks.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"grass-field/core"
)

// HemisphericLight lights from Direction with Diffuse and from the
// opposite hemisphere with GroundColor.
type HemisphericLight struct {
	Name        string
	Direction   mgl32.Vec3
	Intensity   float32
	Diffuse     core.Color
	Specular    core.Color
	GroundColor core.Color
}

func NewHemisphericLight(name string, direction mgl32.Vec3) *HemisphericLight {
	return &HemisphericLight{
		Name:        name,
		Direction:   direction.Normalize(),
		Intensity:   1,
		Diffuse:     core.ColorWhite,
		Specular:    core.ColorWhite,
		GroundColor: core.ColorBlack,
	}
}

// Scene manages a collection of nodes and the active camera
type Scene struct {
	Root       *Node
	Camera     *ArcRotateCamera
	Lights     []*HemisphericLight
	ClearColor core.Color

	beforeRender []func()
	onDispose    []func()
	disposed     bool
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("Root"),
		Lights:     make([]*HemisphericLight, 0),
		ClearColor: core.Color{R: 0.2, G: 0.2, B: 0.3, A: 1.0},
	}
}

func (s *Scene) SetCamera(camera *ArcRotateCamera) {
	s.Camera = camera
}

func (s *Scene) AddLight(light *HemisphericLight) {
	s.Lights = append(s.Lights, light)
}

// AddMesh attaches mesh under the root in its own node.
func (s *Scene) AddMesh(mesh *Mesh) *Node {
	node := NewNode(mesh.Name)
	node.Mesh = mesh
	s.Root.AddChild(node)
	return node
}

// GetMeshByName returns the first mesh called name, or nil.
func (s *Scene) GetMeshByName(name string) *Mesh {
	var found *Mesh
	s.Root.Traverse(func(n *Node) {
		if found == nil && n.Mesh != nil && n.Mesh.Name == name {
			found = n.Mesh
		}
	})
	return found
}

// GetMaterialByName searches the materials bound to meshes.
func (s *Scene) GetMaterialByName(name string) Material {
	var found Material
	s.Root.Traverse(func(n *Node) {
		if found == nil && n.Mesh != nil && n.Mesh.Material != nil && n.Mesh.Material.MaterialName() == name {
			found = n.Mesh.Material
		}
	})
	return found
}

// Meshes lists every mesh in traversal order.
func (s *Scene) Meshes() []*Mesh {
	var out []*Mesh
	s.Root.Traverse(func(n *Node) {
		if n.Mesh != nil {
			out = append(out, n.Mesh)
		}
	})
	return out
}

// WorldMeshes returns a copy of every mesh with its node transform baked
// into the positions and normals, for writers that have no node hierarchy.
// Materials are shared with the originals.
func (s *Scene) WorldMeshes() []*Mesh {
	var out []*Mesh
	s.Root.Traverse(func(n *Node) {
		if n.Mesh != nil {
			out = append(out, n.Mesh.Transformed(n.WorldMatrix()))
		}
	})
	return out
}

// GetVisibleNodes returns all nodes with meshes that are visible
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node
	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.Mesh != nil && node.Mesh.Visible {
			visible = append(visible, node)
		}
	})
	return visible
}

// RegisterBeforeRender adds fn to the callbacks run at the start of every
// frame, in registration order.
func (s *Scene) RegisterBeforeRender(fn func()) {
	s.beforeRender = append(s.beforeRender, fn)
}

func (s *Scene) RunBeforeRender() {
	if s.disposed {
		return
	}
	for _, fn := range s.beforeRender {
		fn()
	}
}

// OnDispose adds fn to the hooks run once by Dispose.
func (s *Scene) OnDispose(fn func()) {
	s.onDispose = append(s.onDispose, fn)
}

// Dispose runs the dispose hooks and drops all callbacks. Safe to call
// more than once.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, fn := range s.onDispose {
		fn()
	}
	s.onDispose = nil
	s.beforeRender = nil
}

func (s *Scene) IsDisposed() bool { return s.disposed }
