package gfx

import "github.com/chewxy/math32"

const orbitEPS = 0.000001

// OrbitController orbits, dollies and pans a camera around a target.
//
// Input methods only accumulate deltas; Update applies them to the camera. With
// damping enabled the deltas decay over several frames, so Update must run every
// frame even when no input arrives.
type OrbitController struct {
	Camera *Camera
	Target Vec3

	EnableDamping bool
	DampingFactor float32

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	MinDistance, MaxDistance     float32
	MinPolarAngle, MaxPolarAngle float32

	// delta.X is theta (around Y), delta.Y is phi (from +Y).
	delta     Vec2
	scale     float32
	panOffset Vec3
}

// NewOrbitController creates a controller targeting the origin with the usual
// defaults (damping off, factor 0.05, unit speeds, unbounded distance).
func NewOrbitController(cam *Camera) *OrbitController {
	return &OrbitController{
		Camera:        cam,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MaxDistance:   math32.Inf(1),
		MaxPolarAngle: math32.Pi,
		scale:         1,
	}
}

// Rotate orbits by a pointer movement of (dx, dy) pixels on a surface of the
// given height; a drag across the full height turns the camera a full circle.
func (c *OrbitController) Rotate(dx, dy float32, height int) {
	if height <= 0 {
		return
	}
	h := float32(height)
	c.delta.X -= 2 * math32.Pi * dx / h * c.RotateSpeed
	c.delta.Y -= 2 * math32.Pi * dy / h * c.RotateSpeed
}

// Dolly moves toward (steps > 0) or away from (steps < 0) the target.
func (c *OrbitController) Dolly(steps float32) {
	if steps == 0 {
		return
	}
	c.scale *= math32.Pow(c.zoomScale(), steps)
}

func (c *OrbitController) zoomScale() float32 {
	return math32.Pow(0.95, c.ZoomSpeed)
}

// DollyScale applies a pinch ratio (distance now / distance before).
func (c *OrbitController) DollyScale(ratio float32) {
	if ratio <= 0 {
		return
	}
	c.scale /= ratio
}

// Pan moves the target in the camera plane by a pointer movement of (dx, dy)
// pixels on a surface of height h.
func (c *OrbitController) Pan(dx, dy float32, height int) {
	if c.Camera == nil || height <= 0 {
		return
	}
	offset := c.Camera.Position.Sub(c.Target)
	dist := offset.Len() * math32.Tan(c.Camera.FOV/2*math32.Pi/180)
	dist = 2 * dist / float32(height) * c.PanSpeed

	view := c.Camera.View()
	// Rows of the view rotation are the camera axes in world space.
	right := V3(view[0], view[4], view[8])
	up := V3(view[1], view[5], view[9])
	c.panOffset = c.panOffset.Add(right.Mul(-dx * dist)).Add(up.Mul(dy * dist))
}

// Update applies pending motion to the camera. It reports whether the camera
// moved.
func (c *OrbitController) Update() bool {
	if c.Camera == nil {
		return false
	}
	cam := c.Camera
	before := cam.Position

	offset := cam.Position.Sub(c.Target)
	radius := offset.Len()
	theta := math32.Atan2(offset.X, offset.Z)
	var phi float32
	if radius > 0 {
		phi = math32.Acos(clampF32(offset.Y/radius, -1, 1))
	}

	if c.EnableDamping {
		theta += c.delta.X * c.DampingFactor
		phi += c.delta.Y * c.DampingFactor
	} else {
		theta += c.delta.X
		phi += c.delta.Y
	}
	phi = clampF32(phi, c.MinPolarAngle, c.MaxPolarAngle)
	phi = clampF32(phi, orbitEPS, math32.Pi-orbitEPS)

	radius *= c.scale
	radius = clampF32(radius, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		c.Target = c.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		c.Target = c.Target.Add(c.panOffset)
	}

	sinPhi := math32.Sin(phi) * radius
	offset = Vec3{
		X: sinPhi * math32.Sin(theta),
		Y: math32.Cos(phi) * radius,
		Z: sinPhi * math32.Cos(theta),
	}
	cam.Position = c.Target.Add(offset)
	cam.LookAt(c.Target)

	if c.EnableDamping {
		c.delta = c.delta.Mul(1 - c.DampingFactor)
		c.panOffset = c.panOffset.Mul(1 - c.DampingFactor)
	} else {
		c.delta = Vec2{}
		c.panOffset = Vec3{}
	}
	c.scale = 1

	return cam.Position.Sub(before).Len() > orbitEPS
}
