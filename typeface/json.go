package typeface

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"earthscene/gfx"
)

type fileJSON struct {
	Glyphs             map[string]glyphJSON `json:"glyphs"`
	FamilyName         string               `json:"familyName"`
	Ascender           float32              `json:"ascender"`
	Descender          float32              `json:"descender"`
	UnderlinePosition  float32              `json:"underlinePosition"`
	UnderlineThickness float32              `json:"underlineThickness"`
	BoundingBox        Bounds               `json:"boundingBox"`
	Resolution         float32              `json:"resolution"`
	CSSFontWeight      string               `json:"cssFontWeight"`
	CSSFontStyle       string               `json:"cssFontStyle"`
}

type glyphJSON struct {
	Advance float32 `json:"ha"`
	XMin    float32 `json:"x_min"`
	XMax    float32 `json:"x_max"`
	Outline string  `json:"o,omitempty"`
}

// ParseJSON decodes a typeface JSON description.
//
// Outline strings hold space-separated commands: "m x y", "l x y",
// "q x y cx cy" (end point first, then control) and "b x y c1x c1y c2x c2y".
// A "z" closes the current contour and is otherwise ignored.
func ParseJSON(data []byte) (*Font, error) {
	var file fileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	if file.Resolution <= 0 {
		return nil, fmt.Errorf("%w: resolution %v", ErrInvalidFont, file.Resolution)
	}
	if len(file.Glyphs) == 0 {
		return nil, fmt.Errorf("%w: no glyphs", ErrInvalidFont)
	}

	f := &Font{
		Family:             file.FamilyName,
		Ascender:           file.Ascender,
		Descender:          file.Descender,
		UnderlinePosition:  file.UnderlinePosition,
		UnderlineThickness: file.UnderlineThickness,
		BoundingBox:        file.BoundingBox,
		resolution:         file.Resolution,
		glyphs:             make(map[rune]gfx.Glyph, len(file.Glyphs)),
	}
	for key, g := range file.Glyphs {
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || size != len(key) {
			continue
		}
		path, err := parseOutline(g.Outline)
		if err != nil {
			return nil, fmt.Errorf("%w: glyph %q: %v", ErrInvalidFont, key, err)
		}
		f.glyphs[r] = gfx.Glyph{Advance: g.Advance, Path: path}
	}
	return f, nil
}

func parseOutline(o string) ([]gfx.PathSegment, error) {
	tok := strings.Fields(o)
	var path []gfx.PathSegment
	num := func(i int) (float32, error) {
		if i >= len(tok) {
			return 0, fmt.Errorf("truncated outline")
		}
		v, err := strconv.ParseFloat(tok[i], 32)
		if err != nil {
			return 0, err
		}
		return float32(v), nil
	}
	points := func(i, n int) ([]gfx.Vec2, error) {
		pts := make([]gfx.Vec2, n)
		for k := range pts {
			x, err := num(i + 2*k)
			if err != nil {
				return nil, err
			}
			y, err := num(i + 2*k + 1)
			if err != nil {
				return nil, err
			}
			pts[k] = gfx.Vec2{X: x, Y: y}
		}
		return pts, nil
	}

	for i := 0; i < len(tok); {
		cmd := tok[i]
		i++
		switch cmd {
		case "m", "l":
			p, err := points(i, 1)
			if err != nil {
				return nil, err
			}
			op := gfx.LineTo
			if cmd == "m" {
				op = gfx.MoveTo
			}
			path = append(path, gfx.PathSegment{Op: op, P: [3]gfx.Vec2{p[0]}})
			i += 2
		case "q":
			p, err := points(i, 2)
			if err != nil {
				return nil, err
			}
			path = append(path, gfx.PathSegment{Op: gfx.QuadTo, P: [3]gfx.Vec2{p[1], p[0]}})
			i += 4
		case "b":
			p, err := points(i, 3)
			if err != nil {
				return nil, err
			}
			path = append(path, gfx.PathSegment{Op: gfx.CubeTo, P: [3]gfx.Vec2{p[1], p[2], p[0]}})
			i += 6
		case "z":
		default:
			return nil, fmt.Errorf("unknown command %q", cmd)
		}
	}
	return path, nil
}

// WriteJSON encodes the glyphs for runes as a typeface JSON description.
// Runes the font lacks are skipped.
func (f *Font) WriteJSON(w io.Writer, runes []rune) error {
	file := fileJSON{
		Glyphs:             make(map[string]glyphJSON, len(runes)),
		FamilyName:         f.Family,
		Ascender:           f.Ascender,
		Descender:          f.Descender,
		UnderlinePosition:  f.UnderlinePosition,
		UnderlineThickness: f.UnderlineThickness,
		BoundingBox:        f.BoundingBox,
		Resolution:         f.Resolution(),
		CSSFontWeight:      "normal",
		CSSFontStyle:       "normal",
	}

	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	for _, r := range runes {
		g, ok := f.Glyph(r)
		if !ok {
			continue
		}
		gj := glyphJSON{Advance: round(g.Advance), Outline: formatOutline(g.Path)}
		if len(g.Path) > 0 {
			gj.XMin, gj.XMax = float32(math.Inf(1)), float32(math.Inf(-1))
			for _, s := range g.Path {
				for _, p := range s.P[:pointsOf(s.Op)] {
					gj.XMin = min(gj.XMin, round(p.X))
					gj.XMax = max(gj.XMax, round(p.X))
				}
			}
		}
		file.Glyphs[string(r)] = gj
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(&file); err != nil {
		return fmt.Errorf("typeface: encode: %w", err)
	}
	return nil
}

func pointsOf(op gfx.PathOp) int {
	switch op {
	case gfx.QuadTo:
		return 2
	case gfx.CubeTo:
		return 3
	default:
		return 1
	}
}

func formatOutline(path []gfx.PathSegment) string {
	var b strings.Builder
	pt := func(p gfx.Vec2) {
		b.WriteString(strconv.Itoa(int(round(p.X))))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(int(round(p.Y))))
		b.WriteByte(' ')
	}
	for _, s := range path {
		switch s.Op {
		case gfx.MoveTo:
			b.WriteString("m ")
			pt(s.P[0])
		case gfx.LineTo:
			b.WriteString("l ")
			pt(s.P[0])
		case gfx.QuadTo:
			b.WriteString("q ")
			pt(s.P[1])
			pt(s.P[0])
		case gfx.CubeTo:
			b.WriteString("b ")
			pt(s.P[2])
			pt(s.P[0])
			pt(s.P[1])
		}
	}
	return strings.TrimSpace(b.String())
}

func round(v float32) float32 { return float32(math.Round(float64(v))) }
