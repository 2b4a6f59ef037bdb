package gfx

import "github.com/go-gl/mathgl/mgl32"

// Scene is the root of a scene graph.
type Scene struct {
	Object3D
	Background Color
}

// NewScene creates an empty scene with a black background.
func NewScene() *Scene {
	return &Scene{Object3D: newObject3D("scene"), Background: Black}
}

// Add attaches nodes to the scene root in order.
func (s *Scene) Add(nodes ...Node) { s.Object3D.Add(s, nodes...) }

// Traverse calls fn for every node below the root, depth first in insertion order,
// with the node's world matrix. Returning false from fn skips the node's children.
func (s *Scene) Traverse(fn func(n Node, world Mat4) bool) {
	if s == nil {
		return
	}
	var walk func(children []Node, parent Mat4)
	walk = func(children []Node, parent Mat4) {
		for _, n := range children {
			obj := n.Object()
			world := parent.Mul4(obj.Matrix())
			if !fn(n, world) {
				continue
			}
			walk(obj.children, world)
		}
	}
	walk(s.children, mgl32.Ident4())
}

// Camera is a perspective camera.
//
// Changes to FOV, Aspect, Near or Far take effect after UpdateProjectionMatrix.
type Camera struct {
	Object3D

	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32

	Target Vec3
	Up     Vec3

	projection Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float32) *Camera {
	c := &Camera{
		Object3D: newObject3D("camera"),
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Target:   V3(0, 0, -1),
		Up:       V3(0, 1, 0),
	}
	c.UpdateProjectionMatrix()
	return c
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target Vec3) { c.Target = target }

// UpdateProjectionMatrix recomputes the projection from the current fields.
func (c *Camera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the projection computed by the last
// UpdateProjectionMatrix call.
func (c *Camera) ProjectionMatrix() Mat4 { return c.projection }

// View returns the camera view matrix.
func (c *Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	target := c.Target
	if target == c.Position {
		target = c.Position.Add(V3(0, 0, -1))
	}
	return mgl32.LookAtV(c.Position.GL(), target.GL(), up.GL())
}
