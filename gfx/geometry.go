package gfx

import "github.com/chewxy/math32"

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	UV     Vec2
}

// Geometry is an indexed triangle list with counter-clockwise front faces.
//
// Geometry is referenced by pointer and may be shared by many meshes.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// Triangles returns the number of triangles.
func (g *Geometry) Triangles() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

// BoundingBox returns the box around all vertices.
func (g *Geometry) BoundingBox() Box3 {
	var b Box3
	if g == nil {
		return b
	}
	for _, v := range g.Vertices {
		b.Expand(v.Pos)
	}
	return b
}

// Translate moves every vertex by d.
func (g *Geometry) Translate(d Vec3) {
	if g == nil {
		return
	}
	for i := range g.Vertices {
		g.Vertices[i].Pos = g.Vertices[i].Pos.Add(d)
	}
}

// Center moves the geometry so its bounding box is centered on the origin.
func (g *Geometry) Center() {
	b := g.BoundingBox()
	if b.Empty() {
		return
	}
	g.Translate(b.Center().Mul(-1))
}

// NewSphereGeometry builds a UV sphere.
//
// Vertices are laid out in (heightSegments+1) rows of (widthSegments+1); the seam
// column is duplicated so the texture wraps once around the equator and the
// poles get a half-segment UV offset.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	g := &Geometry{
		Vertices: make([]Vertex, 0, (widthSegments+1)*(heightSegments+1)),
		Indices:  make([]uint32, 0, widthSegments*heightSegments*6),
	}

	grid := make([][]uint32, heightSegments+1)
	var index uint32
	for iy := 0; iy <= heightSegments; iy++ {
		row := make([]uint32, widthSegments+1)
		v := float32(iy) / float32(heightSegments)

		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}

		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			theta := v * math32.Pi

			p := Vec3{
				X: -radius * math32.Cos(phi) * math32.Sin(theta),
				Y: radius * math32.Cos(theta),
				Z: radius * math32.Sin(phi) * math32.Sin(theta),
			}
			g.Vertices = append(g.Vertices, Vertex{
				Pos:    p,
				Normal: Normalize(p),
				UV:     Vec2{X: u + uOffset, Y: 1 - v},
			})
			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}
