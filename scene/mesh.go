package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Mesh holds CPU-side geometry as flat xyz arrays plus a triangle list.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name      string
	Positions []float32
	Normals   []float32
	Indices   []uint32
	Material  Material
	Visible   bool

	LocalAABB AABB

	// version increments on SetGeometry so the backend knows to re-upload.
	version uint64

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	GPUData interface{}
}

// NewMesh builds a Mesh and pre-computes its local-space AABB. normals may
// be nil for meshes drawn without lighting.
func NewMesh(name string, positions, normals []float32, indices []uint32) *Mesh {
	m := &Mesh{Name: name, Visible: true}
	m.SetGeometry(positions, normals, indices)
	return m
}

// SetGeometry swaps the vertex data in place, keeping the material and
// scene membership.
func (m *Mesh) SetGeometry(positions, normals []float32, indices []uint32) {
	m.Positions = positions
	m.Normals = normals
	m.Indices = indices
	m.LocalAABB = computeLocalAABB(positions)
	m.version++
}

// Version identifies the current geometry.
func (m *Mesh) Version() uint64 { return m.version }

func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

func (m *Mesh) IndexCount() int { return len(m.Indices) }

// Transformed returns a copy of m with positions multiplied by world and
// normals by its upper 3x3, renormalised.
func (m *Mesh) Transformed(world mgl32.Mat4) *Mesh {
	pos := make([]float32, len(m.Positions))
	for i := 0; i+2 < len(pos); i += 3 {
		p := world.Mul4x1(mgl32.Vec4{m.Positions[i], m.Positions[i+1], m.Positions[i+2], 1})
		pos[i], pos[i+1], pos[i+2] = p[0], p[1], p[2]
	}

	var normals []float32
	if m.Normals != nil {
		normals = make([]float32, len(m.Normals))
		rot := world.Mat3()
		for i := 0; i+2 < len(normals); i += 3 {
			n := rot.Mul3x1(mgl32.Vec3{m.Normals[i], m.Normals[i+1], m.Normals[i+2]})
			if l := n.Len(); l > 0 {
				n = n.Mul(1 / l)
			}
			normals[i], normals[i+1], normals[i+2] = n[0], n[1], n[2]
		}
	}

	out := NewMesh(m.Name, pos, normals, append([]uint32(nil), m.Indices...))
	out.Material = m.Material
	out.Visible = m.Visible
	return out
}

// Validate checks the array shapes the backend relies on.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("mesh %q: position array length %d is not a multiple of 3", m.Name, len(m.Positions))
	}
	if m.Normals != nil && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("mesh %q: %d normals for %d positions", m.Name, len(m.Normals)/3, len(m.Positions)/3)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: index count %d is not a multiple of 3", m.Name, len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("mesh %q: index %d at %d out of range (%d vertices)", m.Name, idx, i, n)
		}
	}
	return nil
}

func computeLocalAABB(positions []float32) AABB {
	if len(positions) < 3 {
		return AABB{}
	}
	min := mgl32.Vec3{positions[0], positions[1], positions[2]}
	max := min
	for i := 3; i+2 < len(positions); i += 3 {
		for a := 0; a < 3; a++ {
			v := positions[i+a]
			if v < min[a] {
				min[a] = v
			}
			if v > max[a] {
				max[a] = v
			}
		}
	}
	return AABB{Min: min, Max: max}
}
