package gfx

import (
	"errors"

	"github.com/chewxy/math32"
)

var (
	ErrEmptyText = errors.New("gfx: text produced no shapes")
	ErrNilFont   = errors.New("gfx: nil font")
)

// PathOp is an outline drawing command.
type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo
	CubeTo
)

// PathSegment is one outline command. LineTo and MoveTo use P[0]; QuadTo uses
// P[0] (control) and P[1]; CubeTo uses all three points.
type PathSegment struct {
	Op PathOp
	P  [3]Vec2
}

// Glyph is a character outline in font units with Y pointing up.
type Glyph struct {
	Advance float32
	Path    []PathSegment
}

// Font supplies glyph outlines.
type Font interface {
	// Resolution is the number of font units per em.
	Resolution() float32
	// LineHeight is the baseline-to-baseline distance in font units.
	LineHeight() float32
	Glyph(r rune) (Glyph, bool)
}

// TextOptions controls text extrusion.
type TextOptions struct {
	Size          float32 // em size in scene units
	Height        float32 // extrusion depth
	CurveSegments int     // points per curve

	BevelEnabled   bool
	BevelThickness float32
	BevelSize      float32
	BevelOffset    float32
	BevelSegments  int
}

// DefaultTextOptions mirrors the common defaults for extruded text.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Size:           100,
		Height:         50,
		CurveSegments:  12,
		BevelThickness: 10,
		BevelSize:      8,
		BevelSegments:  3,
	}
}

// shape is an outer contour (counter-clockwise) with its holes (clockwise).
type shape struct {
	outer []Vec2
	holes [][]Vec2
}

// NewTextGeometry builds an extruded, optionally bevelled mesh for text.
//
// Glyphs are laid out left to right from the origin; '\n' starts a new line.
// Runes missing from the font fall back to '?', then are skipped. The result is
// a non-indexed-style geometry (each triangle owns its vertices) with flat
// normals.
func NewTextGeometry(text string, font Font, opt TextOptions) (*Geometry, error) {
	if font == nil {
		return nil, ErrNilFont
	}
	if opt.CurveSegments < 1 {
		opt.CurveSegments = 1
	}
	res := font.Resolution()
	if res <= 0 {
		res = 1
	}
	scale := opt.Size / res

	var shapes []shape
	var offX, offY float32
	for _, r := range text {
		if r == '\n' {
			offX = 0
			offY -= font.LineHeight() * scale
			continue
		}
		g, ok := font.Glyph(r)
		if !ok {
			if g, ok = font.Glyph('?'); !ok {
				continue
			}
		}
		contours := flattenGlyph(g, scale, Vec2{X: offX, Y: offY}, opt.CurveSegments)
		shapes = append(shapes, buildShapes(contours)...)
		offX += g.Advance * scale
	}
	if len(shapes) == 0 {
		return nil, ErrEmptyText
	}

	geo := &Geometry{}
	for _, s := range shapes {
		extrudeShape(geo, s, opt)
	}
	if len(geo.Indices) == 0 {
		return nil, ErrEmptyText
	}
	return geo, nil
}

func flattenGlyph(g Glyph, scale float32, off Vec2, segs int) [][]Vec2 {
	var contours [][]Vec2
	var cur []Vec2
	var pen Vec2
	tr := func(p Vec2) Vec2 { return p.Mul(scale).Add(off) }
	flush := func() {
		if n := len(cur); n > 1 && cur[0] == cur[n-1] {
			cur = cur[:n-1]
		}
		if len(cur) >= 3 {
			contours = append(contours, cur)
		}
		cur = nil
	}

	for _, s := range g.Path {
		switch s.Op {
		case MoveTo:
			flush()
			pen = s.P[0]
			cur = append(cur, tr(pen))
		case LineTo:
			pen = s.P[0]
			cur = append(cur, tr(pen))
		case QuadTo:
			p0, p1, p2 := pen, s.P[0], s.P[1]
			for i := 1; i <= segs; i++ {
				t := float32(i) / float32(segs)
				mt := 1 - t
				p := p0.Mul(mt * mt).Add(p1.Mul(2 * mt * t)).Add(p2.Mul(t * t))
				cur = append(cur, tr(p))
			}
			pen = p2
		case CubeTo:
			p0, p1, p2, p3 := pen, s.P[0], s.P[1], s.P[2]
			for i := 1; i <= segs; i++ {
				t := float32(i) / float32(segs)
				mt := 1 - t
				p := p0.Mul(mt * mt * mt).
					Add(p1.Mul(3 * mt * mt * t)).
					Add(p2.Mul(3 * mt * t * t)).
					Add(p3.Mul(t * t * t))
				cur = append(cur, tr(p))
			}
			pen = p3
		}
	}
	flush()
	return contours
}

// buildShapes pairs contours into outers and holes by nesting depth: a contour
// inside an even number of others is an outer, otherwise it is a hole of the
// smallest outer containing it.
func buildShapes(contours [][]Vec2) []shape {
	depth := make([]int, len(contours))
	for i, c := range contours {
		for j, o := range contours {
			if i != j && pointInPolygon(c[0], o) {
				depth[i]++
			}
		}
	}

	var shapes []shape
	outerOf := make(map[int]int)
	for i, c := range contours {
		if depth[i]%2 != 0 {
			continue
		}
		if signedArea(c) < 0 {
			c = reversed(c)
		}
		outerOf[i] = len(shapes)
		shapes = append(shapes, shape{outer: c})
	}
	for i, c := range contours {
		if depth[i]%2 == 0 {
			continue
		}
		parent := -1
		var parentArea float32
		for j, si := range outerOf {
			if !pointInPolygon(c[0], contours[j]) {
				continue
			}
			a := math32.Abs(signedArea(contours[j]))
			if parent < 0 || a < parentArea {
				parent, parentArea = si, a
			}
		}
		if parent < 0 {
			continue
		}
		if signedArea(c) > 0 {
			c = reversed(c)
		}
		shapes[parent].holes = append(shapes[parent].holes, c)
	}
	return shapes
}

// bevelVectors returns, per vertex, the outward miter direction for a contour
// whose solid side is on the left.
func bevelVectors(c []Vec2) []Vec2 {
	n := len(c)
	out := make([]Vec2, n)
	edgeNormal := func(a, b Vec2) Vec2 {
		d := b.Sub(a)
		l := d.Len()
		if l == 0 {
			return Vec2{}
		}
		return Vec2{X: d.Y / l, Y: -d.X / l}
	}
	for i := range c {
		n1 := edgeNormal(c[(i+n-1)%n], c[i])
		n2 := edgeNormal(c[i], c[(i+1)%n])
		sum := n1.Add(n2)
		den := 1 + n1.X*n2.X + n1.Y*n2.Y
		if den < 0.1 {
			l := sum.Len()
			if l == 0 {
				out[i] = n1
				continue
			}
			out[i] = sum.Mul(1 / l)
			continue
		}
		out[i] = sum.Mul(1 / den)
	}
	return out
}

type extrudeLayer struct {
	z, offset float32
}

func extrudeLayers(opt TextOptions) []extrudeLayer {
	if !opt.BevelEnabled || opt.BevelSegments < 1 {
		return []extrudeLayer{{0, 0}, {opt.Height, 0}}
	}
	var layers []extrudeLayer
	segs := opt.BevelSegments
	for b := 0; b <= segs; b++ {
		t := float32(b) / float32(segs)
		z := opt.BevelThickness * math32.Cos(t*math32.Pi/2)
		bs := opt.BevelSize*math32.Sin(t*math32.Pi/2) + opt.BevelOffset
		layers = append(layers, extrudeLayer{z: -z, offset: bs})
	}
	layers = append(layers, extrudeLayer{z: opt.Height, offset: opt.BevelSize + opt.BevelOffset})
	for b := segs - 1; b >= 0; b-- {
		t := float32(b) / float32(segs)
		z := opt.BevelThickness * math32.Cos(t*math32.Pi/2)
		bs := opt.BevelSize*math32.Sin(t*math32.Pi/2) + opt.BevelOffset
		layers = append(layers, extrudeLayer{z: opt.Height + z, offset: bs})
	}
	return layers
}

func extrudeShape(geo *Geometry, s shape, opt TextOptions) {
	pts, tris := triangulate(s.outer, s.holes)
	if len(tris) == 0 {
		return
	}

	contours := append([][]Vec2{s.outer}, s.holes...)
	bevels := make([][]Vec2, len(contours))
	flatBevel := make([]Vec2, 0, len(pts))
	for i, c := range contours {
		bevels[i] = bevelVectors(c)
		flatBevel = append(flatBevel, bevels[i]...)
	}
	layers := extrudeLayers(opt)

	at := func(p, bv Vec2, l extrudeLayer) Vec3 {
		q := p.Add(bv.Mul(l.offset))
		return Vec3{X: q.X, Y: q.Y, Z: l.z}
	}

	front, back := layers[0], layers[len(layers)-1]
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := tris[i], tris[i+1], tris[i+2]
		addFace(geo,
			at(pts[c], flatBevel[c], front),
			at(pts[b], flatBevel[b], front),
			at(pts[a], flatBevel[a], front))
		addFace(geo,
			at(pts[a], flatBevel[a], back),
			at(pts[b], flatBevel[b], back),
			at(pts[c], flatBevel[c], back))
	}

	for ci, c := range contours {
		n := len(c)
		for li := 0; li+1 < len(layers); li++ {
			l0, l1 := layers[li], layers[li+1]
			for i := 0; i < n; i++ {
				j := (i + 1) % n
				a := at(c[i], bevels[ci][i], l0)
				b := at(c[j], bevels[ci][j], l0)
				cc := at(c[j], bevels[ci][j], l1)
				d := at(c[i], bevels[ci][i], l1)
				addFace(geo, a, b, cc)
				addFace(geo, a, cc, d)
			}
		}
	}
}

func addFace(geo *Geometry, a, b, c Vec3) {
	n := Normalize(Cross(b.Sub(a), c.Sub(a)))
	if n == (Vec3{}) {
		return
	}
	base := uint32(len(geo.Vertices))
	geo.Vertices = append(geo.Vertices,
		Vertex{Pos: a, Normal: n},
		Vertex{Pos: b, Normal: n},
		Vertex{Pos: c, Normal: n},
	)
	geo.Indices = append(geo.Indices, base, base+1, base+2)
}
