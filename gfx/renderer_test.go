package gfx

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(mat *Material) (*Scene, *Mesh, *Camera) {
	s := NewScene()
	s.Background = Hex(0x102030)
	m := NewMesh("ball", NewSphereGeometry(1, 32, 32), mat)
	cam := NewPerspectiveCamera(75, 1, 0.1, 100)
	cam.Position.Z = 3
	s.Add(m, cam)
	return s, m, cam
}

func newTestTarget(w, h int) *RGBATarget {
	return &RGBATarget{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func TestRenderBasicMaterial(t *testing.T) {
	s, _, cam := newTestScene(NewBasicMaterial(RGB(0xFF, 0, 0)))
	tgt := newTestTarget(64, 64)

	r := NewRenderer()
	r.Render(tgt, s, cam)

	assert.Equal(t, RGB(0xFF, 0, 0), tgt.At(32, 32))
	assert.Equal(t, Hex(0x102030), tgt.At(0, 0))
	assert.Equal(t, 1, r.Info().Meshes)
	assert.Positive(t, r.Info().Triangles)
}

func TestRenderSkipsInvisible(t *testing.T) {
	s, m, cam := newTestScene(NewBasicMaterial(White))
	m.Visible = false
	tgt := newTestTarget(32, 32)

	r := NewRenderer()
	r.Render(tgt, s, cam)

	assert.Equal(t, 0, r.Info().Meshes)
	assert.Equal(t, Hex(0x102030), tgt.At(16, 16))
}

func TestRenderStandardNeedsLight(t *testing.T) {
	s, _, cam := newTestScene(NewStandardMaterial(White))
	tgt := newTestTarget(32, 32)
	r := NewRenderer()

	r.Render(tgt, s, cam)
	assert.Equal(t, Black, tgt.At(16, 16), "unlit side is black")

	l := NewDirectionalLight(White, 1)
	l.Position = V3(0, 0, 5)
	s.Add(l)
	r.Render(tgt, s, cam)
	assert.Greater(t, tgt.At(16, 16).R, uint8(200))
}

func TestRenderBandsMatchSerial(t *testing.T) {
	s, m, cam := newTestScene(NewStandardMaterial(RGB(0x40, 0x80, 0xC0)))
	m.Rotation = Euler{X: 0.3, Y: 0.7}
	l := NewDirectionalLight(White, 1.3)
	l.Position = V3(5, 1, 5)
	s.Add(l)

	serial := newTestTarget(48, 40)
	NewRenderer().Render(serial, s, cam)

	banded := newTestTarget(48, 40)
	r := NewRenderer()
	r.Workers = 4
	r.Render(banded, s, cam)

	assert.Equal(t, serial.Img.Pix, banded.Img.Pix)
}

func TestRenderWireframeDrawsFewerPixels(t *testing.T) {
	const size = 128
	lit := func(wire bool) map[[2]int]bool {
		mat := NewBasicMaterial(White)
		mat.Wireframe = wire
		s, m, cam := newTestScene(mat)
		m.Geometry = NewSphereGeometry(1, 8, 6)
		s.Background = Black
		tgt := newTestTarget(size, size)
		NewRenderer().Render(tgt, s, cam)
		px := make(map[[2]int]bool)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if tgt.At(x, y) == White {
					px[[2]int{x, y}] = true
				}
			}
		}
		return px
	}
	solid, wire := lit(false), lit(true)
	assert.NotEmpty(t, wire)
	assert.Less(t, len(wire), len(solid))

	// Edge pixels stay within one pixel of the filled silhouette.
	for p := range wire {
		near := false
		for dy := -1; dy <= 1 && !near; dy++ {
			for dx := -1; dx <= 1 && !near; dx++ {
				near = solid[[2]int{p[0] + dx, p[1] + dy}]
			}
		}
		assert.True(t, near, "wire pixel %v outside the solid sphere", p)
	}
}

func TestDrawingBufferSize(t *testing.T) {
	r := NewRenderer()
	r.SetSize(100, 50)
	r.SetPixelRatio(1.5)
	w, h := r.DrawingBufferSize()
	assert.Equal(t, 150, w)
	assert.Equal(t, 75, h)

	r.SetPixelRatio(0)
	assert.Equal(t, float32(1), r.PixelRatio())
}

func TestClipNear(t *testing.T) {
	in := func(z float32) clipVertex { return clipVertex{pos: Vec4{0, 0, z, 1}} }
	var out [4]clipVertex

	require.Equal(t, 3, clipNear(in(0), in(0), in(0), &out))
	require.Equal(t, 0, clipNear(in(-2), in(-2), in(-2), &out))
	require.Equal(t, 4, clipNear(in(0), in(0), in(-2), &out))
	for _, v := range out {
		assert.GreaterOrEqual(t, v.pos.Z()+v.pos.W(), float32(-1e-6))
	}
	require.Equal(t, 3, clipNear(in(0), in(-2), in(-2), &out))
}
