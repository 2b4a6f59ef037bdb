package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphereGeometryLayout(t *testing.T) {
	g := NewSphereGeometry(1, 99, 99)
	assert.Len(t, g.Vertices, 100*100)
	// Pole rows contribute one triangle per segment, the rest two.
	assert.Equal(t, 99*(2*99-2), g.Triangles())

	for _, v := range g.Vertices {
		assert.InDelta(t, 1, v.Pos.Len(), 1e-4)
		assert.InDelta(t, 1, v.Normal.Len(), 1e-4)
	}
	for _, i := range g.Indices {
		assert.Less(t, int(i), len(g.Vertices))
	}
}

func TestSphereGeometryFacesOutward(t *testing.T) {
	g := NewSphereGeometry(2, 8, 8)
	for i := 0; i < len(g.Indices); i += 3 {
		a := g.Vertices[g.Indices[i]].Pos
		b := g.Vertices[g.Indices[i+1]].Pos
		c := g.Vertices[g.Indices[i+2]].Pos
		n := Cross(b.Sub(a), c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		assert.Greater(t, Dot(n, centroid), float32(0), "triangle %d", i/3)
	}
}

func TestGeometryCenter(t *testing.T) {
	g := &Geometry{Vertices: []Vertex{{Pos: V3(1, 1, 1)}, {Pos: V3(3, 5, 2)}}}
	g.Center()
	b := g.BoundingBox()
	assert.Equal(t, V3(0, 0, 0), b.Center())
	assert.Equal(t, V3(2, 4, 1), b.Size())
}
