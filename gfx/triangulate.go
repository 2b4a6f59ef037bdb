package gfx

import (
	"sort"

	"github.com/chewxy/math32"
)

func signedArea(pts []Vec2) float32 {
	var a float32
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}

func reversed(pts []Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func cross2(o, a, b Vec2) float32 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func pointInTriangle(p, a, b, c Vec2) bool {
	return cross2(a, b, p) >= 0 && cross2(b, c, p) >= 0 && cross2(c, a, p) >= 0
}

func pointInPolygon(p Vec2, poly []Vec2) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

// triangulate splits a counter-clockwise outer contour with clockwise holes into
// triangles. pts is the outer contour followed by every hole; the returned
// indices refer to it and keep counter-clockwise winding.
func triangulate(outer []Vec2, holes [][]Vec2) (pts []Vec2, tris []int) {
	pts = append(pts, outer...)
	ring := make([]int, len(outer))
	for i := range ring {
		ring[i] = i
	}

	type hole struct {
		start, n int
		right    int // index of the rightmost vertex
	}
	hs := make([]hole, 0, len(holes))
	for _, h := range holes {
		if len(h) < 3 {
			continue
		}
		start := len(pts)
		pts = append(pts, h...)
		right := start
		for i := start; i < len(pts); i++ {
			if pts[i].X > pts[right].X {
				right = i
			}
		}
		hs = append(hs, hole{start: start, n: len(h), right: right})
	}
	sort.Slice(hs, func(i, j int) bool { return pts[hs[i].right].X > pts[hs[j].right].X })

	for _, h := range hs {
		at := findBridge(pts, ring, pts[h.right])
		if at < 0 {
			continue
		}
		spliced := make([]int, 0, len(ring)+h.n+2)
		spliced = append(spliced, ring[:at+1]...)
		for k := 0; k <= h.n; k++ {
			spliced = append(spliced, h.start+(h.right-h.start+k)%h.n)
		}
		spliced = append(spliced, ring[at:]...)
		ring = spliced
	}

	return pts, earClip(pts, ring)
}

// findBridge returns the position in ring of a vertex visible from m along +X.
func findBridge(pts []Vec2, ring []int, m Vec2) int {
	best := -1
	bestX := math32.Inf(1)
	for i := range ring {
		a := pts[ring[i]]
		b := pts[ring[(i+1)%len(ring)]]
		if a.Y == b.Y || math32.Min(a.Y, b.Y) > m.Y || math32.Max(a.Y, b.Y) < m.Y {
			continue
		}
		x := a.X + (m.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x < m.X || x >= bestX {
			continue
		}
		bestX = x
		if a.X > b.X {
			best = i
		} else {
			best = (i + 1) % len(ring)
		}
	}
	if best < 0 {
		return -1
	}

	// A reflex vertex inside the triangle (m, hit, candidate) would block the
	// bridge; pick the one closest in angle to the ray instead.
	hit := Vec2{X: bestX, Y: m.Y}
	cand := pts[ring[best]]
	minTan := math32.Inf(1)
	for i, idx := range ring {
		p := pts[idx]
		if p == cand || p.X < m.X {
			continue
		}
		if !pointInTriangle(p, m, hit, cand) && !pointInTriangle(p, m, cand, hit) {
			continue
		}
		dx := p.X - m.X
		if dx == 0 {
			continue
		}
		tan := math32.Abs(m.Y-p.Y) / dx
		if tan < minTan {
			minTan = tan
			best = i
		}
	}
	return best
}

func earClip(pts []Vec2, ring []int) []int {
	if len(ring) < 3 {
		return nil
	}
	idx := append([]int(nil), ring...)
	tris := make([]int, 0, (len(idx)-2)*3)

	for guard := 0; len(idx) > 3 && guard < len(ring)*len(ring); guard++ {
		n := len(idx)
		clipped := false
		for i := 0; i < n; i++ {
			a, b, c := idx[(i+n-1)%n], idx[i], idx[(i+1)%n]
			if !isEar(pts, idx, a, b, c) {
				continue
			}
			tris = append(tris, a, b, c)
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// Degenerate input: drop the flattest vertex and keep going.
			i := flattest(pts, idx)
			n := len(idx)
			tris = append(tris, idx[(i+n-1)%n], idx[i], idx[(i+1)%n])
			idx = append(idx[:i], idx[i+1:]...)
		}
	}
	if len(idx) == 3 {
		tris = append(tris, idx[0], idx[1], idx[2])
	}
	return tris
}

func isEar(pts []Vec2, idx []int, a, b, c int) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]
	if cross2(pa, pb, pc) <= 0 {
		return false
	}
	for _, k := range idx {
		if k == a || k == b || k == c {
			continue
		}
		p := pts[k]
		if p == pa || p == pb || p == pc {
			continue
		}
		if pointInTriangle(p, pa, pb, pc) {
			return false
		}
	}
	return true
}

func flattest(pts []Vec2, idx []int) int {
	best, bestArea := 0, math32.Inf(1)
	n := len(idx)
	for i := 0; i < n; i++ {
		a := math32.Abs(cross2(pts[idx[(i+n-1)%n]], pts[idx[i]], pts[idx[(i+1)%n]]))
		if a < bestArea {
			best, bestArea = i, a
		}
	}
	return best
}
