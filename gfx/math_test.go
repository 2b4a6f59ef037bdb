package gfx

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestObjectMatrixAppliesScaleRotateTranslate(t *testing.T) {
	m := NewMesh("m", nil, nil)
	m.Position = V3(1, 2, 3)
	m.Rotation.Y = math32.Pi / 2
	m.SetScalar(2)

	p := TransformPoint(m.Matrix(), V3(1, 0, 0))
	assert.InDelta(t, 1, p.X, 1e-5)
	assert.InDelta(t, 2, p.Y, 1e-5)
	assert.InDelta(t, 1, p.Z, 1e-5)

	d := TransformDir(m.Matrix(), V3(0, 1, 0))
	assert.InDelta(t, 0, d.X, 1e-5)
	assert.InDelta(t, 2, d.Y, 1e-5)
}

func TestCameraViewPutsTargetInFront(t *testing.T) {
	c := NewPerspectiveCamera(75, 1, 0.1, 100)
	c.Position = V3(0, 0, 3)
	c.LookAt(Vec3{})
	p := TransformPoint(c.View(), V3(0, 0, 0))
	assert.InDelta(t, -3, p.Z, 1e-5, "origin lies 3 units in front of the eye")
}

func TestEulerYRotatesXTowardMinusZ(t *testing.T) {
	p := TransformPoint(Euler{Y: math32.Pi / 2}.Matrix(), V3(1, 0, 0))
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, -1, p.Z, 1e-5)
}

func TestVectorHelpers(t *testing.T) {
	assert.Equal(t, V3(0, 0, 1), Cross(V3(1, 0, 0), V3(0, 1, 0)))
	assert.Equal(t, float32(32), Dot(V3(1, 2, 3), V3(4, 5, 6)))
	assert.Equal(t, Vec3{}, Normalize(Vec3{}))
	assert.InDelta(t, 1, Normalize(V3(3, 4, 0)).Len(), 1e-6)
	assert.Equal(t, V2(4, 6), V2(1, 2).Add(V2(3, 4)))
}

func TestParseHex(t *testing.T) {
	for in, want := range map[string]Color{
		"#ffffff":  White,
		"000000":   Black,
		"0x336699": RGB(0x33, 0x66, 0x99),
		"#f00":     RGB(0xFF, 0, 0),
	} {
		got, err := ParseHex(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseHex("#12345")
	assert.Error(t, err)
	_, err = ParseHex("#zzzzzz")
	assert.Error(t, err)
}

func TestColorTextRoundTrip(t *testing.T) {
	var c Color
	assert.NoError(t, c.UnmarshalText([]byte("#102030")))
	assert.Equal(t, "#102030", c.String())
	assert.Equal(t, uint32(0x102030), c.Uint32())
}
