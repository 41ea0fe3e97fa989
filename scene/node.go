package scene

import "github.com/go-gl/mathgl/mgl32"

// Node represents an object in the scene graph
type Node struct {
	Name     string
	Position mgl32.Vec3
	Parent   *Node
	Children []*Node
	Mesh     *Mesh
	Visible  bool
}

func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Children: make([]*Node, 0),
		Visible:  true,
	}
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// WorldMatrix is the accumulated translation of n and its ancestors.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	local := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	if n.Parent != nil {
		return n.Parent.WorldMatrix().Mul4(local)
	}
	return local
}

// Traverse visits all nodes in the graph
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}
