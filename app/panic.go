package app

import (
	"fmt"
	"image"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"earthscene/panel"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

type crashInfo struct {
	value any
	stack []byte
}

// recoverStep turns a panic inside Step into a crash screen. Later Steps
// only repaint that screen.
func (a *App) recoverStep(err *error) {
	v := recover()
	if v == nil {
		return
	}
	a.crash = &crashInfo{value: v, stack: debug.Stack()}
	a.log.Error("frame panicked", "panic", v, "frame", a.frames)
	for _, line := range strings.Split(string(a.crash.stack), "\n") {
		if line != "" {
			a.log.Debug(line)
		}
	}
	*err = a.drawCrash()
}

func (a *App) drawCrash() error {
	d := a.h.Display()
	if d == nil {
		return nil
	}
	fb := d.Framebuffer()
	if fb == nil {
		return nil
	}
	img := fb.Image()
	fillImage(img, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	lines := []string{
		"Earth crashed:",
		fmt.Sprintf("frame: %d", a.frames),
		fmt.Sprintf("panic: %v", a.crash.value),
	}
	if len(a.crash.stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(a.crash.stack), "\n") {
			if line != "" {
				lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
			}
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	_, cw := tinyfont.LineWidth(&proggy.TinySZ8pt7b, "0")
	if cw == 0 {
		return fb.Present()
	}
	cols := img.Bounds().Dx() / int(cw)
	if cols <= 0 {
		cols = 1
	}

	fg := color.RGBA{A: 0xff}
	y := 0
	maxH := img.Bounds().Dy()
	for _, line := range lines {
		for len(line) > 0 {
			if y+panel.LineHeight > maxH {
				return fb.Present()
			}
			chunk, rest := takeRunes(line, cols)
			panel.DrawText(img, 0, y, 1, chunk, fg)
			y += panel.LineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	return fb.Present()
}

func fillImage(img *image.RGBA, c color.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
