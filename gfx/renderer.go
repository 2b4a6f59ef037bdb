package gfx

import (
	"github.com/chewxy/math32"
	"golang.org/x/sync/errgroup"
)

// Renderer is a fixed-pipeline software renderer.
//
// Pipeline: scene traversal → vertex transform → near-plane clipping → face
// culling → banded rasterization with a depth buffer. Create it once and reuse it;
// scratch buffers survive between frames.
type Renderer struct {
	// Workers is the number of horizontal bands rasterized concurrently.
	// Values below 2 rasterize on the calling goroutine.
	Workers int

	width, height int
	pixelRatio    float32

	depth  []float32
	verts  []clipVertex
	prims  []primitive
	lights []lightInfo
	info   RenderInfo
}

// RenderInfo reports what the last Render call drew.
type RenderInfo struct {
	Meshes    int
	Triangles int
}

// NewRenderer creates a renderer with a pixel ratio of 1 and no size.
func NewRenderer() *Renderer {
	return &Renderer{pixelRatio: 1}
}

// SetSize sets the logical (CSS pixel) size of the drawing surface.
func (r *Renderer) SetSize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.width, r.height = w, h
}

// SetPixelRatio sets the device pixels per logical pixel.
func (r *Renderer) SetPixelRatio(p float32) {
	if p <= 0 {
		p = 1
	}
	r.pixelRatio = p
}

func (r *Renderer) Size() (w, h int) { return r.width, r.height }
func (r *Renderer) PixelRatio() float32 { return r.pixelRatio }
func (r *Renderer) Info() RenderInfo { return r.info }

// DrawingBufferSize returns the size in device pixels.
func (r *Renderer) DrawingBufferSize() (w, h int) {
	return int(math32.Floor(float32(r.width) * r.pixelRatio)), int(math32.Floor(float32(r.height) * r.pixelRatio))
}

type lightInfo struct {
	dir   Vec3
	color colorf
}

type clipVertex struct {
	pos Vec4
	uv  Vec2
	n   Vec3
}

// primitive is a screen-space triangle. Attributes are premultiplied by 1/w for
// perspective-correct interpolation.
type primitive struct {
	x, y, z, iw [3]float32
	uv          [3]Vec2
	n           [3]Vec3

	minX, minY, maxX, maxY int

	mat  *Material
	flat Color
	// constant is set when the shaded color does not vary over the triangle.
	constant bool
}

// Render draws the scene from cam into t.
func (r *Renderer) Render(t Target, s *Scene, cam *Camera) {
	if r == nil {
		return
	}
	r.info = RenderInfo{}
	if t == nil || s == nil || cam == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(s.Background)

	if cap(r.depth) < w*h {
		r.depth = make([]float32, w*h)
	}
	r.depth = r.depth[:w*h]
	for i := range r.depth {
		r.depth[i] = 1
	}

	view := cam.View()
	proj := cam.ProjectionMatrix()

	r.lights = r.lights[:0]
	r.prims = r.prims[:0]
	s.Traverse(func(n Node, world Mat4) bool {
		if !n.Object().Visible {
			return false
		}
		if l, ok := n.(*DirectionalLight); ok {
			pos := TransformPoint(world, Vec3{})
			r.lights = append(r.lights, lightInfo{
				dir:   Normalize(pos.Sub(l.Target)),
				color: toColorf(l.Color).scale(l.Intensity),
			})
		}
		return true
	})
	s.Traverse(func(n Node, world Mat4) bool {
		if !n.Object().Visible {
			return false
		}
		if m, ok := n.(*Mesh); ok {
			r.collectMesh(m, world, view, proj, w, h)
		}
		return true
	})

	r.rasterize(t, w, h)
}

func (r *Renderer) collectMesh(m *Mesh, world, view, proj Mat4, w, h int) {
	g, mat := m.Geometry, m.Material
	if g == nil || mat == nil || len(g.Vertices) == 0 || len(g.Indices) < 3 {
		return
	}
	r.info.Meshes++

	mv := view.Mul4(world)
	mvp := proj.Mul4(mv)

	if cap(r.verts) < len(g.Vertices) {
		r.verts = make([]clipVertex, len(g.Vertices))
	}
	verts := r.verts[:len(g.Vertices)]
	for i, v := range g.Vertices {
		cv := clipVertex{
			pos: mvp.Mul4x1(v.Pos.GL().Vec4(1)),
			uv:  v.UV,
		}
		switch mat.Shading {
		case ShadingStandard:
			cv.n = Normalize(TransformDir(world, v.Normal))
		case ShadingMatcap:
			cv.n = Normalize(TransformDir(mv, v.Normal))
		}
		verts[i] = cv
	}

	var poly [4]clipVertex
	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0, i1, i2 := int(g.Indices[i]), int(g.Indices[i+1]), int(g.Indices[i+2])
		if i0 >= len(verts) || i1 >= len(verts) || i2 >= len(verts) {
			continue
		}
		n := clipNear(verts[i0], verts[i1], verts[i2], &poly)
		for k := 1; k+1 < n; k++ {
			r.addTriangle(poly[0], poly[k], poly[k+1], mat, w, h)
		}
	}
}

// clipNear clips a triangle against the near plane (z >= -w) and writes the
// resulting convex polygon (0, 3 or 4 vertices) to out.
func clipNear(a, b, c clipVertex, out *[4]clipVertex) int {
	in := [3]clipVertex{a, b, c}
	var d [3]float32
	inside := 0
	for i, v := range in {
		d[i] = v.pos.Z() + v.pos.W()
		if d[i] >= 0 {
			inside++
		}
	}
	if inside == 3 {
		out[0], out[1], out[2] = a, b, c
		return 3
	}
	if inside == 0 {
		return 0
	}
	n := 0
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if d[i] >= 0 {
			out[n] = in[i]
			n++
		}
		if (d[i] >= 0) != (d[j] >= 0) {
			out[n] = lerpClip(in[i], in[j], d[i]/(d[i]-d[j]))
			n++
		}
	}
	return n
}

func lerpClip(a, b clipVertex, t float32) clipVertex {
	return clipVertex{
		pos: a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
		uv: a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
		n:  a.n.Add(b.n.Sub(a.n).Mul(t)),
	}
}

func (r *Renderer) addTriangle(a, b, c clipVertex, mat *Material, w, h int) {
	var p primitive
	for k, v := range [3]clipVertex{a, b, c} {
		x, y, z, vw := v.pos.Elem()
		if vw <= 0 {
			return
		}
		iw := 1 / vw
		p.x[k] = (x*iw*0.5 + 0.5) * float32(w)
		p.y[k] = (1 - (y*iw*0.5 + 0.5)) * float32(h)
		p.z[k] = z*iw*0.5 + 0.5
		p.iw[k] = iw
		p.uv[k] = v.uv.Mul(iw)
		p.n[k] = v.n.Mul(iw)
	}

	// Counter-clockwise in NDC is clockwise on screen (y points down).
	area := (p.x[1]-p.x[0])*(p.y[2]-p.y[0]) - (p.y[1]-p.y[0])*(p.x[2]-p.x[0])
	if area == 0 {
		return
	}
	switch mat.Side {
	case FrontSide:
		if area > 0 {
			return
		}
	case BackSide:
		if area < 0 {
			return
		}
	}

	minX := math32.Floor(math32.Min(p.x[0], math32.Min(p.x[1], p.x[2])))
	maxX := math32.Ceil(math32.Max(p.x[0], math32.Max(p.x[1], p.x[2])))
	minY := math32.Floor(math32.Min(p.y[0], math32.Min(p.y[1], p.y[2])))
	maxY := math32.Ceil(math32.Max(p.y[0], math32.Max(p.y[1], p.y[2])))
	if maxX < 0 || maxY < 0 || minX >= float32(w) || minY >= float32(h) {
		return
	}
	p.minX = int(math32.Max(minX, 0))
	p.minY = int(math32.Max(minY, 0))
	p.maxX = int(math32.Min(maxX, float32(w-1)))
	p.maxY = int(math32.Min(maxY, float32(h-1)))

	p.mat = mat
	if mat.Shading == ShadingBasic && mat.Map == nil {
		p.flat = mat.Color
		p.constant = true
	}
	r.prims = append(r.prims, p)
	r.info.Triangles++
}

func (r *Renderer) rasterize(t Target, w, h int) {
	workers := r.Workers
	if workers > h {
		workers = h
	}
	if workers < 2 {
		r.rasterizeBand(t, w, 0, h)
		return
	}

	band := (h + workers - 1) / workers
	var g errgroup.Group
	for y0 := 0; y0 < h; y0 += band {
		y0, y1 := y0, y0+band
		if y1 > h {
			y1 = h
		}
		g.Go(func() error {
			r.rasterizeBand(t, w, y0, y1)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *Renderer) rasterizeBand(t Target, w, y0, y1 int) {
	for i := range r.prims {
		p := &r.prims[i]
		if p.maxY < y0 || p.minY >= y1 {
			continue
		}
		if p.mat.Wireframe {
			r.drawEdge(t, w, y0, y1, p, 0, 1)
			r.drawEdge(t, w, y0, y1, p, 1, 2)
			r.drawEdge(t, w, y0, y1, p, 2, 0)
			continue
		}
		r.fillTriangle(t, w, y0, y1, p)
	}
}

func (r *Renderer) fillTriangle(t Target, w, y0, y1 int, p *primitive) {
	minY, maxY := p.minY, p.maxY
	if minY < y0 {
		minY = y0
	}
	if maxY >= y1 {
		maxY = y1 - 1
	}

	area := edgeFn(p.x[0], p.y[0], p.x[1], p.y[1], p.x[2], p.y[2])
	invArea := 1 / area

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := p.minX; x <= p.maxX; x++ {
			px := float32(x) + 0.5
			b0 := edgeFn(p.x[1], p.y[1], p.x[2], p.y[2], px, py) * invArea
			b1 := edgeFn(p.x[2], p.y[2], p.x[0], p.y[0], px, py) * invArea
			b2 := 1 - b0 - b1
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}
			z := b0*p.z[0] + b1*p.z[1] + b2*p.z[2]
			if !r.depthTest(w, x, y, z) {
				continue
			}
			if p.constant {
				t.SetPixel(x, y, p.flat)
				continue
			}
			t.SetPixel(x, y, r.shade(p, b0, b1, b2))
		}
	}
}

// drawEdge draws the edge between vertices i and j, restricted to rows [y0,y1).
//
// Samples are pulled half a pixel toward the triangle's centroid before they
// pick a pixel, so silhouette edges stay inside the area a fill would cover.
func (r *Renderer) drawEdge(t Target, w, y0, y1 int, p *primitive, i, j int) {
	dx := p.x[j] - p.x[i]
	dy := p.y[j] - p.y[i]
	steps := int(math32.Ceil(math32.Max(math32.Abs(dx), math32.Abs(dy))))
	if steps < 1 {
		steps = 1
	}
	cx := (p.x[0] + p.x[1] + p.x[2]) / 3
	cy := (p.y[0] + p.y[1] + p.y[2]) / 3
	for s := 0; s <= steps; s++ {
		f := float32(s) / float32(steps)
		sx, sy := p.x[i]+dx*f, p.y[i]+dy*f
		if l := math32.Sqrt((cx-sx)*(cx-sx) + (cy-sy)*(cy-sy)); l > 0.5 {
			sx += (cx - sx) / l * 0.5
			sy += (cy - sy) / l * 0.5
		}
		x := int(math32.Floor(sx))
		y := int(math32.Floor(sy))
		if y < y0 || y >= y1 || x < 0 || x >= w {
			continue
		}
		var b [3]float32
		b[i] = 1 - f
		b[j] = f
		z := b[0]*p.z[0] + b[1]*p.z[1] + b[2]*p.z[2]
		if !r.depthTest(w, x, y, z) {
			continue
		}
		if p.constant {
			t.SetPixel(x, y, p.flat)
			continue
		}
		t.SetPixel(x, y, r.shade(p, b[0], b[1], b[2]))
	}
}

func (r *Renderer) shade(p *primitive, b0, b1, b2 float32) Color {
	iw := b0*p.iw[0] + b1*p.iw[1] + b2*p.iw[2]
	if iw == 0 {
		return p.mat.Color
	}
	inv := 1 / iw

	mat := p.mat
	base := toColorf(mat.Color)
	if mat.Map != nil {
		u := (b0*p.uv[0].X + b1*p.uv[1].X + b2*p.uv[2].X) * inv
		v := (b0*p.uv[0].Y + b1*p.uv[1].Y + b2*p.uv[2].Y) * inv
		base = base.mul(toColorf(mat.Map.Sample(u, v)))
	}

	switch mat.Shading {
	case ShadingStandard:
		n := Normalize(p.n[0].Mul(b0).Add(p.n[1].Mul(b1)).Add(p.n[2].Mul(b2)).Mul(inv))
		var lit colorf
		for _, l := range r.lights {
			d := Dot(n, l.dir)
			if d <= 0 {
				continue
			}
			lit.r += l.color.r * d
			lit.g += l.color.g * d
			lit.b += l.color.b * d
		}
		return base.mul(lit).rgba()
	case ShadingMatcap:
		n := Normalize(p.n[0].Mul(b0).Add(p.n[1].Mul(b1)).Add(p.n[2].Mul(b2)).Mul(inv))
		u := n.X*0.495 + 0.5
		v := n.Y*0.495 + 0.5
		if mat.Matcap != nil {
			base = base.mul(toColorf(mat.Matcap.Sample(u, v)))
		}
		return base.rgba()
	default:
		return base.rgba()
	}
}

// depthTest reports whether z is nearer than the stored depth and stores it.
// Each band owns its rows, so no locking is needed.
func (r *Renderer) depthTest(w, x, y int, z float32) bool {
	if z < 0 || z > 1 {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depth) {
		return false
	}
	if z >= r.depth[idx] {
		return false
	}
	r.depth[idx] = z
	return true
}

func edgeFn(x0, y0, x1, y1, x, y float32) float32 {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}
