package panel

import (
	"image"
	"image/color"
	"strconv"

	"earthscene/gfx"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	colBackground = color.RGBA{R: 0x1f, G: 0x1f, B: 0x1f, A: 0xff}
	colTitle      = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	colWidget     = color.RGBA{R: 0x42, G: 0x42, B: 0x42, A: 0xff}
	colAccent     = color.RGBA{R: 0x2c, G: 0xc9, B: 0xff, A: 0xff}
	colText       = color.RGBA{R: 0xeb, G: 0xeb, B: 0xeb, A: 0xff}
	colDim        = color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff}
)

var font tinyfont.Fonter = &proggy.TinySZ8pt7b

// textBaseline is the baseline offset inside a row, in unscaled pixels.
const textBaseline = 13

// Draw paints the panel into dst. Values are read from the bound getters.
func (p *Panel) Draw(dst *image.RGBA) {
	if p == nil || dst == nil || p.hidden {
		return
	}
	if b := dst.Bounds(); b.Dx() != p.fbW || b.Dy() != p.fbH {
		p.fbW, p.fbH = b.Dx(), b.Dy()
	}
	fill(dst, p.bounds(), colBackground)

	pad := p.px(basePad)
	for _, rw := range p.rows() {
		switch rw.kind {
		case rowTitle:
			fill(dst, rw.r, colTitle)
			marker := "- "
			if p.collapsed {
				marker = "+ "
			}
			p.text(dst, rw.r.Min.X+pad, rw.r.Min.Y, marker+p.Title, colText)
		case rowControl:
			p.drawControl(dst, rw)
		case rowPalette:
			for i, c := range Palette {
				fill(dst, p.swatchRect(rw.r, i), rgba(c))
			}
			line := (len(Palette) + swatchCols - 1) / swatchCols
			y := rw.r.Min.Y + line*p.px(baseRow)
			hex := "#" + trimHash(p.edit)
			p.text(dst, rw.r.Min.X+pad, y, "hex "+hex+"_", colText)
		}
	}
}

func (p *Panel) drawControl(dst *image.RGBA, rw row) {
	c := rw.c
	pad := p.px(basePad)
	w := p.widget(rw.r)

	if c.Kind == KindButton {
		fill(dst, image.Rect(rw.r.Min.X+pad, w.Min.Y, w.Max.X, w.Max.Y), colWidget)
		p.text(dst, rw.r.Min.X+2*pad, rw.r.Min.Y, c.Label, colText)
		return
	}
	p.text(dst, rw.r.Min.X+pad, rw.r.Min.Y, c.Label, colText)

	switch c.Kind {
	case KindSlider:
		fill(dst, w, colWidget)
		if span := c.max - c.min; span > 0 {
			f := (c.Value() - c.min) / span
			f = max(0, min(1, f))
			fill(dst, image.Rect(w.Min.X, w.Min.Y, w.Min.X+int(f*float64(w.Dx())), w.Max.Y), colAccent)
		}
		p.text(dst, w.Min.X+pad, rw.r.Min.Y, strconv.FormatFloat(c.Value(), 'f', 2, 64), colText)
	case KindBool:
		box := image.Rect(w.Min.X, w.Min.Y, w.Min.X+w.Dy(), w.Max.Y)
		fill(dst, box, colWidget)
		if c.getB != nil && c.getB() {
			fill(dst, box.Inset(max(1, pad/2)), colAccent)
		}
	case KindColor:
		var col gfx.Color
		if c.getC != nil {
			col = c.getC()
		}
		sw := image.Rect(w.Min.X, w.Min.Y, w.Min.X+w.Dx()*2/5, w.Max.Y)
		fill(dst, sw, rgba(col))
		tc := colText
		if p.open == c {
			tc = colAccent
		}
		p.text(dst, sw.Max.X+pad, rw.r.Min.Y, col.String(), tc)
	}
}

func trimHash(s string) string {
	if len(s) > 0 && s[0] == '#' {
		return s[1:]
	}
	return s
}

func rgba(c gfx.Color) color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

func fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Pix[off+0] = c.R
			dst.Pix[off+1] = c.G
			dst.Pix[off+2] = c.B
			dst.Pix[off+3] = c.A
			off += 4
		}
	}
}

// text writes s with its row top at (x, top).
func (p *Panel) text(dst *image.RGBA, x, top int, s string, c color.RGBA) {
	DrawText(dst, x, top, p.scale, s, c)
}

// DrawText writes one line of s in the panel font with its row top at
// (x, top), each font pixel magnified to scale×scale.
func DrawText(dst *image.RGBA, x, top, scale int, s string, c color.RGBA) {
	if dst == nil {
		return
	}
	if scale < 1 {
		scale = 1
	}
	cv := &canvas{img: dst, ox: x, oy: top, scale: scale}
	tinyfont.WriteLine(cv, font, 0, textBaseline, s, c)
}

// LineHeight is the height of one text row at scale 1.
const LineHeight = baseRow

// canvas adapts an RGBA image to the displayer interface tinyfont draws on,
// magnifying each font pixel to scale×scale device pixels.
type canvas struct {
	img    *image.RGBA
	ox, oy int
	scale  int
}

var _ drivers.Displayer = (*canvas)(nil)

func (d *canvas) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx() / d.scale), int16(b.Dy() / d.scale)
}

func (d *canvas) SetPixel(x, y int16, c color.RGBA) {
	px := d.ox + int(x)*d.scale
	py := d.oy + int(y)*d.scale
	fill(d.img, image.Rect(px, py, px+d.scale, py+d.scale), c)
}

func (d *canvas) Display() error { return nil }
