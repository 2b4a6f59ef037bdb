package gfx

import "github.com/go-gl/mathgl/mgl32"

// Node is anything that can live in a scene graph.
type Node interface {
	Object() *Object3D
}

// Object3D holds the transform, visibility and children shared by all nodes.
type Object3D struct {
	Name     string
	Position Vec3
	Rotation Euler
	Scale    Vec3
	Visible  bool

	parent   Node
	children []Node
}

func newObject3D(name string) Object3D {
	return Object3D{Name: name, Scale: V3(1, 1, 1), Visible: true}
}

func (o *Object3D) Object() *Object3D { return o }

// SetScalar sets a uniform scale.
func (o *Object3D) SetScalar(s float32) { o.Scale = V3(s, s, s) }

// Matrix returns the local transform T·R·S.
func (o *Object3D) Matrix() Mat4 {
	return mgl32.Translate3D(o.Position.X, o.Position.Y, o.Position.Z).
		Mul4(o.Rotation.Matrix()).
		Mul4(mgl32.Scale3D(o.Scale.X, o.Scale.Y, o.Scale.Z))
}

// Parent returns the node this object was added to, or nil.
func (o *Object3D) Parent() Node { return o.parent }

// Children returns the direct children in insertion order.
func (o *Object3D) Children() []Node { return o.children }

// Add appends child nodes. A node already attached elsewhere is moved.
func (o *Object3D) Add(self Node, nodes ...Node) {
	for _, n := range nodes {
		if n == nil || n == self {
			continue
		}
		obj := n.Object()
		if obj.parent != nil {
			obj.parent.Object().Remove(n)
		}
		obj.parent = self
		o.children = append(o.children, n)
	}
}

// Remove detaches a child. It reports whether the child was found.
func (o *Object3D) Remove(n Node) bool {
	for i, c := range o.children {
		if c != n {
			continue
		}
		o.children = append(o.children[:i], o.children[i+1:]...)
		n.Object().parent = nil
		return true
	}
	return false
}

// Contains reports whether n is a direct child.
func (o *Object3D) Contains(n Node) bool {
	for _, c := range o.children {
		if c == n {
			return true
		}
	}
	return false
}

// Mesh is a drawable geometry/material pair.
type Mesh struct {
	Object3D
	Geometry *Geometry
	Material *Material
}

// NewMesh creates a visible mesh at the origin.
func NewMesh(name string, g *Geometry, m *Material) *Mesh {
	return &Mesh{Object3D: newObject3D(name), Geometry: g, Material: m}
}

// Group is an empty node used to parent other nodes.
type Group struct {
	Object3D
}

func NewGroup(name string) *Group {
	return &Group{Object3D: newObject3D(name)}
}

// Add attaches nodes to the group.
func (g *Group) Add(nodes ...Node) { g.Object3D.Add(g, nodes...) }

// Add attaches nodes to the mesh.
func (m *Mesh) Add(nodes ...Node) { m.Object3D.Add(m, nodes...) }

// DirectionalLight lights the scene from Position towards Target.
type DirectionalLight struct {
	Object3D
	Color     Color
	Intensity float32
	Target    Vec3
}

func NewDirectionalLight(c Color, intensity float32) *DirectionalLight {
	l := &DirectionalLight{Object3D: newObject3D("directional-light"), Color: c, Intensity: intensity}
	l.Position = V3(0, 1, 0)
	return l
}

// Direction returns the unit vector from the surface towards the light.
func (l *DirectionalLight) Direction() Vec3 {
	return Normalize(l.Position.Sub(l.Target))
}
