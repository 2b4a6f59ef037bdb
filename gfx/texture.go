package gfx

import (
	"image"
	"image/draw"
)

// Texture is a decoded image sampled by materials.
//
// UV (0,0) is the bottom-left corner of the image, (1,1) the top-right. Lookups
// clamp to the edge and use nearest filtering.
type Texture struct {
	Name string

	w, h int
	pix  []uint8 // RGBA, row-major, top row first
}

// NewTexture copies img into a texture.
func NewTexture(name string, img image.Image) *Texture {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Texture{Name: name, w: b.Dx(), h: b.Dy(), pix: rgba.Pix}
}

// Size returns the texture dimensions in texels.
func (t *Texture) Size() (w, h int) {
	if t == nil {
		return 0, 0
	}
	return t.w, t.h
}

// Sample returns the texel at uv.
func (t *Texture) Sample(u, v float32) Color {
	if t == nil || t.w <= 0 || t.h <= 0 {
		return White
	}
	x := int(Clamp01(u)*float32(t.w-1) + 0.5)
	y := int((1-Clamp01(v))*float32(t.h-1) + 0.5)
	i := (y*t.w + x) * 4
	return Color{R: t.pix[i], G: t.pix[i+1], B: t.pix[i+2], A: t.pix[i+3]}
}
