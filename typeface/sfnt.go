package typeface

import (
	"fmt"

	"earthscene/gfx"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ParseSFNT parses a TrueType or OpenType font. Glyph outlines are read in
// font units on first use.
func ParseSFNT(data []byte) (*Font, error) {
	src, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	f := &Font{
		src:        src,
		resolution: float32(src.UnitsPerEm()),
		glyphs:     make(map[rune]gfx.Glyph),
	}
	if name, err := src.Name(&f.buf, sfnt.NameIDFamily); err == nil {
		f.Family = name
	}

	ppem := f.ppem()
	m, err := src.Metrics(&f.buf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%w: metrics: %v", ErrInvalidFont, err)
	}
	f.Ascender = fromFixed(m.Ascent)
	f.Descender = -fromFixed(m.Descent)

	bounds, err := src.Bounds(&f.buf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%w: bounds: %v", ErrInvalidFont, err)
	}
	// sfnt reports Y down.
	f.BoundingBox = Bounds{
		XMin: fromFixed(bounds.Min.X),
		YMin: -fromFixed(bounds.Max.Y),
		XMax: fromFixed(bounds.Max.X),
		YMax: -fromFixed(bounds.Min.Y),
	}
	if post := src.PostTable(); post != nil {
		f.UnderlinePosition = float32(post.UnderlinePosition)
		f.UnderlineThickness = float32(post.UnderlineThickness)
	}
	return f, nil
}

// Goregular returns the Go Regular font bundled with golang.org/x/image.
func Goregular() (*Font, error) {
	f, err := ParseSFNT(goregular.TTF)
	if err != nil {
		return nil, err
	}
	if f.Family == "" {
		f.Family = "Go"
	}
	return f, nil
}

// ppem scales outlines so one pixel is one font unit.
func (f *Font) ppem() fixed.Int26_6 {
	return fixed.Int26_6(f.src.UnitsPerEm()) << 6
}

// loadSFNT reads one glyph. The caller holds f.mu.
func (f *Font) loadSFNT(r rune) (gfx.Glyph, bool) {
	idx, err := f.src.GlyphIndex(&f.buf, r)
	if err != nil || idx == 0 {
		return gfx.Glyph{}, false
	}
	ppem := f.ppem()
	adv, err := f.src.GlyphAdvance(&f.buf, idx, ppem, font.HintingNone)
	if err != nil {
		return gfx.Glyph{}, false
	}
	segs, err := f.src.LoadGlyph(&f.buf, idx, ppem, nil)
	if err != nil {
		return gfx.Glyph{}, false
	}

	g := gfx.Glyph{Advance: fromFixed(adv), Path: make([]gfx.PathSegment, 0, len(segs))}
	for _, s := range segs {
		var ps gfx.PathSegment
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			ps.Op = gfx.MoveTo
		case sfnt.SegmentOpLineTo:
			ps.Op = gfx.LineTo
		case sfnt.SegmentOpQuadTo:
			ps.Op = gfx.QuadTo
		case sfnt.SegmentOpCubeTo:
			ps.Op = gfx.CubeTo
		default:
			continue
		}
		for i := 0; i < pointsOf(ps.Op); i++ {
			ps.P[i] = gfx.Vec2{X: fromFixed(s.Args[i].X), Y: -fromFixed(s.Args[i].Y)}
		}
		g.Path = append(g.Path, ps)
	}
	return g, true
}

func fromFixed(v fixed.Int26_6) float32 { return float32(v) / 64 }
