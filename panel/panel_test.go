package panel

import (
	"image"
	"testing"

	"earthscene/gfx"
	"earthscene/hal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	p       *Panel
	y       float64
	visible bool
	col     gfx.Color
	spins   int
	changes int
}

func newFixture() *fixture {
	f := &fixture{visible: true, col: gfx.Hex(0xffffff)}
	f.p = New("Controls")
	f.p.AddSlider("Elevation", -3, 3, 0.01, func() float64 { return f.y }, func(v float64) { f.y = v })
	f.p.AddBool("visible", func() bool { return f.visible }, func(v bool) { f.visible = v }).
		OnChange(func() { f.changes++ })
	f.p.AddButton("Spin X", func() { f.spins++ })
	f.p.AddColor("Earth Color", func() gfx.Color { return f.col }, func(c gfx.Color) { f.col = c }).
		OnChange(func() { f.changes++ })
	f.p.Layout(1000, 800, 1)
	return f
}

func pointer(kind hal.PointerKind, pt image.Point) hal.PointerEvent {
	return hal.PointerEvent{Kind: kind, X: float64(pt.X), Y: float64(pt.Y)}
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func (f *fixture) click(t *testing.T, label string) {
	t.Helper()
	r, ok := f.p.ControlRect(label)
	require.True(t, ok, label)
	require.True(t, f.p.HandlePointer(pointer(hal.PointerDown, center(r))))
	f.p.HandlePointer(pointer(hal.PointerUp, center(r)))
}

func TestLayoutTopRight(t *testing.T) {
	f := newFixture()
	title := f.p.TitleRect()
	assert.Equal(t, image.Rect(740, 0, 985, 18), title)

	r, ok := f.p.ControlRect("Elevation")
	require.True(t, ok)
	assert.Equal(t, image.Rect(740, 18, 985, 36), r)

	f.p.Layout(2000, 1600, 2)
	r, _ = f.p.ControlRect("Elevation")
	assert.Equal(t, 36, r.Dy())
}

func TestSliderDrag(t *testing.T) {
	f := newFixture()
	r, _ := f.p.ControlRect("Elevation")
	w := f.p.widget(r)

	assert.True(t, f.p.HandlePointer(pointer(hal.PointerDown, image.Pt(w.Min.X, r.Min.Y+2))))
	assert.InDelta(t, -3, f.y, 1e-9)

	assert.True(t, f.p.HandlePointer(pointer(hal.PointerMove, image.Pt(w.Max.X+50, 400))), "drag keeps going outside the row")
	assert.InDelta(t, 3, f.y, 1e-9)

	assert.True(t, f.p.HandlePointer(pointer(hal.PointerMove, image.Pt((w.Min.X+w.Max.X)/2, 400))))
	assert.InDelta(t, 0, f.y, 0.03)

	assert.True(t, f.p.HandlePointer(pointer(hal.PointerUp, image.Pt(0, 0))))
	assert.False(t, f.p.HandlePointer(pointer(hal.PointerMove, image.Pt(w.Min.X, 400))))
}

func TestSliderSnapsToStep(t *testing.T) {
	f := newFixture()
	c := f.p.Control("Elevation")
	c.SetValue(1.23456)
	assert.InDelta(t, 1.23, f.y, 1e-9)
	c.SetValue(99)
	assert.InDelta(t, 3, f.y, 1e-9)
}

func TestBoolAndButton(t *testing.T) {
	f := newFixture()
	f.click(t, "visible")
	assert.False(t, f.visible)
	assert.Equal(t, 1, f.changes)

	f.click(t, "Spin X")
	f.click(t, "Spin X")
	assert.Equal(t, 2, f.spins)
}

func TestColorPalette(t *testing.T) {
	f := newFixture()
	f.click(t, "Earth Color")

	var pal row
	for _, rw := range f.p.rows() {
		if rw.kind == rowPalette {
			pal = rw
		}
	}
	require.NotNil(t, pal.c, "palette row open")

	assert.True(t, f.p.HandlePointer(pointer(hal.PointerDown, center(f.p.swatchRect(pal.r, 2)))))
	assert.Equal(t, Palette[2], f.col)
	assert.Equal(t, 1, f.changes)
	assert.Len(t, f.p.rows(), 5, "palette closes after picking")
}

func TestColorHexEntry(t *testing.T) {
	f := newFixture()
	f.click(t, "Earth Color")

	for _, r := range "#1a2b3c" {
		assert.True(t, f.p.HandleKey(hal.KeyEvent{Press: true, Rune: r}))
	}
	assert.True(t, f.p.HandleKey(hal.KeyEvent{Press: true, Code: hal.KeyBackspace}))
	assert.True(t, f.p.HandleKey(hal.KeyEvent{Press: true, Rune: 'd'}))
	assert.True(t, f.p.HandleKey(hal.KeyEvent{Press: true, Code: hal.KeyEnter}))
	assert.Equal(t, gfx.Hex(0x1a2b3d), f.col)

	f.click(t, "Earth Color")
	f.p.HandleKey(hal.KeyEvent{Press: true, Rune: 'f'})
	f.p.HandleKey(hal.KeyEvent{Press: true, Code: hal.KeyEscape})
	assert.Equal(t, gfx.Hex(0x1a2b3d), f.col, "escape cancels")
}

func TestTitleCollapses(t *testing.T) {
	f := newFixture()
	assert.True(t, f.p.HandlePointer(pointer(hal.PointerDown, center(f.p.TitleRect()))))
	assert.True(t, f.p.Collapsed())
	_, ok := f.p.ControlRect("visible")
	assert.False(t, ok)

	f.p.HandlePointer(pointer(hal.PointerDown, center(f.p.TitleRect())))
	assert.False(t, f.p.Collapsed())
}

func TestPointerOutsideNotConsumed(t *testing.T) {
	f := newFixture()
	assert.False(t, f.p.HandlePointer(pointer(hal.PointerDown, image.Pt(10, 10))))
	assert.False(t, f.p.HandlePointer(pointer(hal.PointerMove, image.Pt(20, 20))))
	assert.False(t, f.p.HandlePointer(pointer(hal.PointerWheel, image.Pt(20, 20))))
	assert.True(t, f.p.HandlePointer(pointer(hal.PointerWheel, center(f.p.TitleRect()))))
}

func TestHideWithH(t *testing.T) {
	f := newFixture()
	assert.True(t, f.p.HandleKey(hal.KeyEvent{Press: true, Rune: 'h'}))
	assert.True(t, f.p.Hidden())
	assert.False(t, f.p.HandlePointer(pointer(hal.PointerDown, center(f.p.TitleRect()))))
	assert.False(t, f.p.HandleKey(hal.KeyEvent{Press: true, Rune: 'x'}))

	img := image.NewRGBA(image.Rect(0, 0, 1000, 800))
	f.p.Draw(img)
	assert.Equal(t, uint8(0), img.Pix[img.PixOffset(800, 5)+3], "hidden panel draws nothing")

	assert.True(t, f.p.HandleKey(hal.KeyEvent{Press: true, Rune: 'H'}))
	assert.False(t, f.p.Hidden())
}

func TestDrawReadsBoundValues(t *testing.T) {
	f := newFixture()
	img := image.NewRGBA(image.Rect(0, 0, 1000, 800))

	f.p.Draw(img)
	assert.Equal(t, uint8(0), img.Pix[img.PixOffset(10, 10)+3], "outside untouched")
	assert.Equal(t, uint8(0xff), img.Pix[img.PixOffset(742, 2)+3])

	r, _ := f.p.ControlRect("Earth Color")
	sw := f.p.widget(r)
	probe := image.Pt(sw.Min.X+2, sw.Min.Y+2)
	assert.Equal(t, rgba(f.col), img.RGBAAt(probe.X, probe.Y))

	f.col = gfx.Hex(0x336699)
	f.p.Draw(img)
	assert.Equal(t, rgba(f.col), img.RGBAAt(probe.X, probe.Y))
}
