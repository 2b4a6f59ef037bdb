package gfx

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

var (
	White = RGB(0xFF, 0xFF, 0xFF)
	Black = RGB(0, 0, 0)
)

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Hex builds an opaque color from 0xRRGGBB.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// ParseHex parses "#rrggbb", "rrggbb", "0xrrggbb" or the short "#rgb" form.
func ParseHex(s string) (Color, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("gfx: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("gfx: invalid color %q: %w", s, err)
	}
	return Hex(uint32(v)), nil
}

// Uint32 returns the color as 0xRRGGBB.
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) String() string { return fmt.Sprintf("#%06x", c.Uint32()) }

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// colorf is a linear float color used while shading, so intensities above 1 can
// saturate instead of wrapping.
type colorf struct {
	r, g, b float32
}

func toColorf(c Color) colorf {
	return colorf{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

func (c colorf) mul(o colorf) colorf   { return colorf{c.r * o.r, c.g * o.g, c.b * o.b} }
func (c colorf) scale(s float32) colorf { return colorf{c.r * s, c.g * s, c.b * s} }

func (c colorf) rgba() Color {
	return Color{
		R: uint8(clampF32(c.r, 0, 1)*255 + 0.5),
		G: uint8(clampF32(c.g, 0, 1)*255 + 0.5),
		B: uint8(clampF32(c.b, 0, 1)*255 + 0.5),
		A: 0xFF,
	}
}
