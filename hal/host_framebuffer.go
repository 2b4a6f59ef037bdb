package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu  sync.Mutex
	img *image.RGBA
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	f := &hostFramebuffer{}
	f.Resize(width, height)
	return f
}

func (f *hostFramebuffer) Width() int  { return f.img.Bounds().Dx() }
func (f *hostFramebuffer) Height() int { return f.img.Bounds().Dy() }

func (f *hostFramebuffer) Image() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img
}

func (f *hostFramebuffer) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.img != nil && f.img.Bounds().Dx() == width && f.img.Bounds().Dy() == height {
		return
	}
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (f *hostFramebuffer) Present() error { return nil }

// snapshot copies the pixels into dst, reallocating it when the size differs.
func (f *hostFramebuffer) snapshot(dst *image.RGBA) *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dst == nil || dst.Bounds() != f.img.Bounds() {
		dst = image.NewRGBA(f.img.Bounds())
	}
	copy(dst.Pix, f.img.Pix)
	return dst
}
