// Package panel is a small parameter panel drawn over the rendered frame.
//
// Controls bind to values through getter and setter closures and read them
// every frame, so changes made elsewhere show up immediately.
package panel

import (
	"image"
	"math"
	"strings"

	"earthscene/gfx"
	"earthscene/hal"
)

type Kind uint8

const (
	KindSlider Kind = iota
	KindBool
	KindButton
	KindColor
)

// Control is one row of the panel.
type Control struct {
	Label string
	Kind  Kind

	min, max, step float64
	getF           func() float64
	setF           func(float64)

	getB func() bool
	setB func(bool)

	getC func() gfx.Color
	setC func(gfx.Color)

	action   func()
	onChange func()
}

// OnChange registers fn to run after the control changes its value.
func (c *Control) OnChange(fn func()) *Control {
	c.onChange = fn
	return c
}

func (c *Control) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// Value returns the slider value.
func (c *Control) Value() float64 {
	if c.getF == nil {
		return 0
	}
	return c.getF()
}

// SetValue snaps v to the slider range and step and stores it.
func (c *Control) SetValue(v float64) {
	if c.setF == nil {
		return
	}
	v = math.Max(c.min, math.Min(c.max, v))
	if c.step > 0 {
		v = c.min + math.Round((v-c.min)/c.step)*c.step
		v = math.Max(c.min, math.Min(c.max, v))
	}
	c.setF(v)
	c.changed()
}

// Palette is offered by color controls.
var Palette = []gfx.Color{
	gfx.Hex(0xffffff), gfx.Hex(0x000000), gfx.Hex(0xff0000), gfx.Hex(0xff8800),
	gfx.Hex(0xffff00), gfx.Hex(0x00ff00), gfx.Hex(0x00ffff), gfx.Hex(0x0000ff),
	gfx.Hex(0x8800ff), gfx.Hex(0xff00ff), gfx.Hex(0x808080), gfx.Hex(0x1f3a5f),
}

const (
	baseWidth  = 245
	baseRow    = 18
	baseMargin = 15
	basePad    = 4
	swatchCols = 6
)

// Panel holds controls and their interaction state.
type Panel struct {
	Title string

	controls []*Control

	collapsed bool
	hidden    bool

	fbW, fbH int
	scale    int

	drag *Control // slider being dragged
	open *Control // color control showing its palette
	edit string   // hex typed into the open color control
}

func New(title string) *Panel {
	return &Panel{Title: title, scale: 1}
}

func (p *Panel) add(c *Control) *Control {
	p.controls = append(p.controls, c)
	return c
}

func (p *Panel) AddSlider(label string, min, max, step float64, get func() float64, set func(float64)) *Control {
	return p.add(&Control{Label: label, Kind: KindSlider, min: min, max: max, step: step, getF: get, setF: set})
}

func (p *Panel) AddBool(label string, get func() bool, set func(bool)) *Control {
	return p.add(&Control{Label: label, Kind: KindBool, getB: get, setB: set})
}

func (p *Panel) AddButton(label string, action func()) *Control {
	return p.add(&Control{Label: label, Kind: KindButton, action: action})
}

func (p *Panel) AddColor(label string, get func() gfx.Color, set func(gfx.Color)) *Control {
	return p.add(&Control{Label: label, Kind: KindColor, getC: get, setC: set})
}

// Controls returns the controls in display order.
func (p *Panel) Controls() []*Control { return p.controls }

// Control returns the control with label, or nil.
func (p *Panel) Control(label string) *Control {
	for _, c := range p.controls {
		if c.Label == label {
			return c
		}
	}
	return nil
}

func (p *Panel) Collapsed() bool { return p.collapsed }
func (p *Panel) Hidden() bool    { return p.hidden }

func (p *Panel) SetCollapsed(v bool) { p.collapsed = v }
func (p *Panel) SetHidden(v bool)    { p.hidden = v }

// Layout places the panel at the top right of a framebuffer of w×h device
// pixels. ratio is the device pixel ratio; text and rows scale with it.
func (p *Panel) Layout(w, h int, ratio float64) {
	p.fbW, p.fbH = w, h
	p.scale = max(1, int(math.Round(ratio)))
}

type rowKind uint8

const (
	rowTitle rowKind = iota
	rowControl
	rowPalette
)

type row struct {
	kind rowKind
	c    *Control
	r    image.Rectangle
}

func (p *Panel) px(v int) int { return v * p.scale }

func (p *Panel) bounds() image.Rectangle {
	w := p.px(baseWidth)
	x1 := p.fbW - p.px(baseMargin)
	x0 := max(0, x1-w)
	rows := p.rows()
	if len(rows) == 0 {
		return image.Rectangle{}
	}
	return image.Rect(x0, 0, x1, rows[len(rows)-1].r.Max.Y)
}

func (p *Panel) rows() []row {
	w := p.px(baseWidth)
	x1 := p.fbW - p.px(baseMargin)
	x0 := max(0, x1-w)
	h := p.px(baseRow)

	y := 0
	next := func(height int) image.Rectangle {
		r := image.Rect(x0, y, x1, y+height)
		y += height
		return r
	}
	out := []row{{kind: rowTitle, r: next(h)}}
	if p.collapsed {
		return out
	}
	for _, c := range p.controls {
		out = append(out, row{kind: rowControl, c: c, r: next(h)})
		if c == p.open {
			// Swatch lines plus one line for hex entry.
			lines := (len(Palette)+swatchCols-1)/swatchCols + 1
			out = append(out, row{kind: rowPalette, c: c, r: next(h * lines)})
		}
	}
	return out
}

// ControlRect returns the row rectangle of the control with label.
func (p *Panel) ControlRect(label string) (image.Rectangle, bool) {
	for _, rw := range p.rows() {
		if rw.kind == rowControl && rw.c.Label == label {
			return rw.r, true
		}
	}
	return image.Rectangle{}, false
}

// TitleRect returns the title bar rectangle.
func (p *Panel) TitleRect() image.Rectangle { return p.rows()[0].r }

// widget returns the value area of a control row: the right 60% of it.
func (p *Panel) widget(r image.Rectangle) image.Rectangle {
	pad := p.px(basePad)
	x0 := r.Min.X + r.Dx()*2/5
	return image.Rect(x0, r.Min.Y+pad/2, r.Max.X-pad, r.Max.Y-pad/2)
}

func (p *Panel) swatchRect(r image.Rectangle, i int) image.Rectangle {
	pad := p.px(basePad)
	h := p.px(baseRow)
	cw := (r.Dx() - pad) / swatchCols
	col, line := i%swatchCols, i/swatchCols
	x0 := r.Min.X + pad + col*cw
	y0 := r.Min.Y + line*h
	return image.Rect(x0, y0+pad/2, x0+cw-pad, y0+h-pad/2)
}

// HandlePointer applies a pointer event and reports whether the panel
// consumed it. Presses outside the panel close an open palette and are not
// consumed.
func (p *Panel) HandlePointer(ev hal.PointerEvent) bool {
	if p.hidden {
		return false
	}
	pt := image.Pt(int(ev.X), int(ev.Y))

	switch ev.Kind {
	case hal.PointerMove:
		if p.drag != nil {
			p.dragTo(pt)
			return true
		}
		return false
	case hal.PointerUp:
		if p.drag != nil {
			p.drag = nil
			return true
		}
		return false
	case hal.PointerWheel:
		return pt.In(p.bounds())
	}

	if ev.Kind != hal.PointerDown {
		return false
	}
	if !pt.In(p.bounds()) {
		p.closePalette()
		return false
	}
	for _, rw := range p.rows() {
		if !pt.In(rw.r) {
			continue
		}
		switch rw.kind {
		case rowTitle:
			p.collapsed = !p.collapsed
			p.closePalette()
		case rowControl:
			p.press(rw, pt)
		case rowPalette:
			for i, col := range Palette {
				if pt.In(p.swatchRect(rw.r, i)) && rw.c.setC != nil {
					rw.c.setC(col)
					rw.c.changed()
					p.closePalette()
					break
				}
			}
		}
		break
	}
	return true
}

func (p *Panel) press(rw row, pt image.Point) {
	c := rw.c
	switch c.Kind {
	case KindSlider:
		p.drag = c
		p.dragTo(pt)
	case KindBool:
		if c.getB != nil && c.setB != nil {
			c.setB(!c.getB())
			c.changed()
		}
	case KindButton:
		if c.action != nil {
			c.action()
		}
		c.changed()
	case KindColor:
		if p.open == c {
			p.closePalette()
			return
		}
		p.open = c
		p.edit = ""
	}
}

func (p *Panel) dragTo(pt image.Point) {
	c := p.drag
	var r image.Rectangle
	for _, rw := range p.rows() {
		if rw.kind == rowControl && rw.c == c {
			r = p.widget(rw.r)
			break
		}
	}
	if r.Dx() <= 0 {
		return
	}
	f := float64(pt.X-r.Min.X) / float64(r.Dx())
	c.SetValue(c.min + f*(c.max-c.min))
}

func (p *Panel) closePalette() {
	p.open = nil
	p.edit = ""
}

// HandleKey applies a key event and reports whether the panel consumed it.
// 'h' toggles visibility. While a palette is open, hex digits edit its
// color; Enter applies and Escape cancels.
func (p *Panel) HandleKey(ev hal.KeyEvent) bool {
	if !ev.Press {
		return false
	}
	if p.open != nil && !p.hidden {
		switch {
		case ev.Code == hal.KeyEscape:
			p.closePalette()
			return true
		case ev.Code == hal.KeyBackspace:
			if n := len(p.edit); n > 0 {
				p.edit = p.edit[:n-1]
			}
			return true
		case ev.Code == hal.KeyEnter:
			if col, err := gfx.ParseHex(p.edit); err == nil && p.open.setC != nil {
				p.open.setC(col)
				p.open.changed()
			}
			p.closePalette()
			return true
		case ev.Rune == '#' || strings.ContainsRune("0123456789abcdefABCDEF", ev.Rune):
			if len(strings.TrimPrefix(p.edit, "#")) < 6 {
				p.edit += string(ev.Rune)
			}
			return true
		}
	}
	if ev.Rune == 'h' || ev.Rune == 'H' {
		p.hidden = !p.hidden
		if p.hidden {
			p.drag = nil
			p.closePalette()
		}
		return true
	}
	return false
}
