package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneAddKeepsOrder(t *testing.T) {
	s := NewScene()
	a := NewMesh("a", nil, nil)
	b := NewMesh("b", nil, nil)
	cam := NewPerspectiveCamera(75, 1, 0.1, 100)
	s.Add(a, b, cam)

	require.Len(t, s.Children(), 3)
	assert.Same(t, a, s.Children()[0])
	assert.Same(t, cam, s.Children()[2])
	assert.True(t, s.Contains(cam))
	assert.Same(t, s, a.Parent())

	assert.True(t, s.Remove(a))
	assert.False(t, s.Contains(a))
	assert.Nil(t, a.Parent())
	assert.False(t, s.Remove(a))
}

func TestTraverseComposesParentTransforms(t *testing.T) {
	s := NewScene()
	g := NewGroup("g")
	g.Position = V3(1, 0, 0)
	child := NewMesh("child", nil, nil)
	child.Position = V3(0, 2, 0)
	g.Add(child)
	s.Add(g)

	var got Vec3
	s.Traverse(func(n Node, world Mat4) bool {
		if n == Node(child) {
			got = TransformPoint(world, Vec3{})
		}
		return true
	})
	assert.Equal(t, V3(1, 2, 0), got)
}

func TestTraverseSkipsChildrenWhenAsked(t *testing.T) {
	s := NewScene()
	g := NewGroup("g")
	g.Add(NewMesh("hidden", nil, nil))
	s.Add(g)

	var names []string
	s.Traverse(func(n Node, _ Mat4) bool {
		names = append(names, n.Object().Name)
		return false
	})
	assert.Equal(t, []string{"g"}, names)
}

func TestReparentMovesNode(t *testing.T) {
	s := NewScene()
	g := NewGroup("g")
	m := NewMesh("m", nil, nil)
	s.Add(g, m)
	g.Add(m)

	assert.False(t, s.Contains(m))
	assert.True(t, g.Contains(m))
}

func TestCameraProjectionUpdatesOnlyOnRequest(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 100)
	before := cam.ProjectionMatrix()
	cam.Aspect = 2
	assert.Equal(t, before, cam.ProjectionMatrix())
	cam.UpdateProjectionMatrix()
	after := cam.ProjectionMatrix()
	assert.InDelta(t, before[0]/2, after[0], 1e-6)
	assert.Equal(t, before[5], after[5])
}
