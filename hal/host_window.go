//go:build js || cgo

package hal

import (
	"fmt"
	"image"

	"earthscene/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a window (a canvas in the browser) that displays the
// framebuffer and forwards input. It blocks until the window closes.
func RunWindow(cfg WindowConfig, newProgram func(HAL) (Program, error)) error {
	h := New(cfg.Logger)
	prog, err := newProgram(h)
	if err != nil {
		return err
	}

	title := cfg.Title
	if title == "" {
		title = "Earth"
	}
	w, hh := cfg.Width, cfg.Height
	if w <= 0 || hh <= 0 {
		w, hh = 960, 640
	}

	g := &hostGame{h: h.(*hostHAL), prog: prog}
	ebiten.SetWindowTitle(fmt.Sprintf("%s (%s)", title, buildinfo.Short()))
	ebiten.SetWindowSize(w, hh)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	prog  Program
	vp    Viewport
	img   *image.RGBA
	fbImg *ebiten.Image

	cursorX, cursorY int
	touches          map[ebiten.TouchID][2]int
	touchBuf         []ebiten.TouchID
}

func (g *hostGame) Update() error {
	g.pollInput()
	return g.prog.Step()
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	g.img = g.h.fb.snapshot(g.img)
	b := g.img.Bounds()
	if g.fbImg == nil || g.fbImg.Bounds().Size() != b.Size() {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

// Layout reports viewport changes to the program, which sizes the
// framebuffer; the screen then matches the framebuffer one to one.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	if scale <= 0 {
		scale = 1
	}
	vp := Viewport{Width: max(outsideWidth, 1), Height: max(outsideHeight, 1), DeviceScale: scale}
	if vp != g.vp {
		g.vp = vp
		g.prog.Resize(vp)
	}
	return g.h.fb.Width(), g.h.fb.Height()
}
