package gfx

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D vector. Arithmetic goes through mgl32; the named fields keep
// scene code like obj.Position.Y = 1 readable.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a homogeneous clip-space position.
type Vec4 = mgl32.Vec4

// Mat4 is a column-major 4x4 matrix, m[col*4+row].
type Mat4 = mgl32.Mat4

func V2(x, y float32) Vec2    { return Vec2{X: x, Y: y} }
func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec2) gl() mgl32.Vec2     { return mgl32.Vec2{v.X, v.Y} }
func vec2(g mgl32.Vec2) Vec2      { return Vec2{X: g[0], Y: g[1]} }
func (v Vec2) Add(o Vec2) Vec2    { return vec2(v.gl().Add(o.gl())) }
func (v Vec2) Sub(o Vec2) Vec2    { return vec2(v.gl().Sub(o.gl())) }
func (v Vec2) Mul(s float32) Vec2 { return vec2(v.gl().Mul(s)) }
func (v Vec2) Len() float32       { return v.gl().Len() }

// GL returns v as an mgl32 vector.
func (v Vec3) GL() mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

// FromGL converts an mgl32 vector.
func FromGL(g mgl32.Vec3) Vec3 { return Vec3{X: g[0], Y: g[1], Z: g[2]} }

func (v Vec3) Add(o Vec3) Vec3    { return FromGL(v.GL().Add(o.GL())) }
func (v Vec3) Sub(o Vec3) Vec3    { return FromGL(v.GL().Sub(o.GL())) }
func (v Vec3) Mul(s float32) Vec3 { return FromGL(v.GL().Mul(s)) }
func (v Vec3) Len() float32       { return v.GL().Len() }

func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{math32.Min(v.X, o.X), math32.Min(v.Y, o.Y), math32.Min(v.Z, o.Z)}
}

func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{math32.Max(v.X, o.X), math32.Max(v.Y, o.Y), math32.Max(v.Z, o.Z)}
}

func Dot(a, b Vec3) float32 { return a.GL().Dot(b.GL()) }
func Cross(a, b Vec3) Vec3  { return FromGL(a.GL().Cross(b.GL())) }

// Normalize returns v scaled to unit length, or the zero vector for zero v.
func Normalize(v Vec3) Vec3 {
	if v.Len() == 0 {
		return Vec3{}
	}
	return FromGL(v.GL().Normalize())
}

func Clamp01(v float32) float32 { return clampF32(v, 0, 1) }

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TransformPoint applies m to p with w = 1 and drops w.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	return FromGL(m.Mul4x1(p.GL().Vec4(1)).Vec3())
}

// TransformDir applies m to d with w = 0, ignoring translation.
func TransformDir(m Mat4, d Vec3) Vec3 {
	return FromGL(m.Mul4x1(d.GL().Vec4(0)).Vec3())
}

// Euler is a rotation in radians applied in X, Y, Z order.
type Euler struct {
	X, Y, Z float32
}

// Matrix returns Rx·Ry·Rz.
func (e Euler) Matrix() Mat4 {
	return mgl32.HomogRotate3DX(e.X).Mul4(mgl32.HomogRotate3DY(e.Y)).Mul4(mgl32.HomogRotate3DZ(e.Z))
}

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max Vec3
	set      bool
}

// Expand grows the box to include p.
func (b *Box3) Expand(p Vec3) {
	if !b.set {
		b.Min, b.Max, b.set = p, p, true
		return
	}
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

func (b Box3) Empty() bool { return !b.set }
func (b Box3) Center() Vec3 { return b.Min.Add(b.Max).Mul(0.5) }
func (b Box3) Size() Vec3 { return b.Max.Sub(b.Min) }
