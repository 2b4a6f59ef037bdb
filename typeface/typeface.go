// Package typeface reads font outlines for extruded text.
//
// Two sources are supported: typeface JSON descriptions (glyph outlines as
// compact command strings, the format produced by cmd/mktypeface) and
// TrueType/OpenType files. Both yield a *Font usable by gfx.NewTextGeometry.
package typeface

import (
	"errors"
	"sync"

	"earthscene/gfx"

	"golang.org/x/image/font/sfnt"
)

var ErrInvalidFont = errors.New("typeface: invalid font")

// Bounds is a box in font units, Y up.
type Bounds struct {
	XMin float32 `json:"xMin"`
	YMin float32 `json:"yMin"`
	XMax float32 `json:"xMax"`
	YMax float32 `json:"yMax"`
}

// Font is a set of glyph outlines in font units.
//
// Glyph is safe for concurrent use.
type Font struct {
	Family string

	Ascender           float32
	Descender          float32
	UnderlinePosition  float32
	UnderlineThickness float32
	BoundingBox        Bounds

	resolution float32

	mu     sync.Mutex
	glyphs map[rune]gfx.Glyph

	// src backs fonts parsed from TrueType/OpenType; glyphs load on first use.
	src *sfnt.Font
	buf sfnt.Buffer
}

// Resolution returns font units per em.
func (f *Font) Resolution() float32 {
	if f == nil {
		return 0
	}
	return f.resolution
}

// LineHeight returns the distance between baselines in font units.
func (f *Font) LineHeight() float32 {
	if f == nil {
		return 0
	}
	return f.BoundingBox.YMax - f.BoundingBox.YMin + f.UnderlineThickness
}

// Glyph returns the outline for r.
func (f *Font) Glyph(r rune) (gfx.Glyph, bool) {
	if f == nil {
		return gfx.Glyph{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if g, ok := f.glyphs[r]; ok {
		return g, true
	}
	if f.src == nil {
		return gfx.Glyph{}, false
	}
	g, ok := f.loadSFNT(r)
	if !ok {
		return gfx.Glyph{}, false
	}
	f.glyphs[r] = g
	return g, true
}

// Len returns the number of glyphs loaded so far.
func (f *Font) Len() int {
	if f == nil {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.glyphs)
}
