package gfx

// Shading selects how a material responds to light.
type Shading uint8

const (
	// ShadingBasic ignores lights and draws Color (times Map if set).
	ShadingBasic Shading = iota
	// ShadingStandard is diffuse lighting from the scene's directional lights.
	ShadingStandard
	// ShadingMatcap looks up the view-space normal in a matcap texture.
	ShadingMatcap
)

// Side selects which triangle faces are drawn.
type Side uint8

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Material is a surface description.
//
// Materials are referenced by pointer and may be shared by many meshes; a change
// is seen by every mesh that uses the material.
type Material struct {
	Shading   Shading
	Color     Color
	Map       *Texture
	Matcap    *Texture
	Wireframe bool
	Side      Side
}

// NewBasicMaterial returns an unlit material.
func NewBasicMaterial(c Color) *Material {
	return &Material{Shading: ShadingBasic, Color: c}
}

// NewStandardMaterial returns a lit material tinted by c.
func NewStandardMaterial(c Color) *Material {
	return &Material{Shading: ShadingStandard, Color: c}
}

// NewMatcapMaterial returns a material shaded by a matcap texture, which may be
// nil until it loads.
func NewMatcapMaterial(matcap *Texture) *Material {
	return &Material{Shading: ShadingMatcap, Color: White, Matcap: matcap}
}
