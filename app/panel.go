package app

import (
	"earthscene/gfx"
	"earthscene/panel"
)

func (a *App) buildPanel() {
	p := panel.New("Debug")
	p.AddSlider("Elevation", -3, 3, 0.01,
		func() float64 { return float64(a.earth.Position.Y) },
		func(v float64) { a.earth.Position.Y = float32(v) })
	p.AddSlider("Horizontal", -3, 3, 0.01,
		func() float64 { return float64(a.earth.Position.X) },
		func(v float64) { a.earth.Position.X = float32(v) })
	p.AddBool("visible",
		func() bool { return a.earth.Visible },
		func(v bool) { a.earth.Visible = v })
	p.AddBool("wireframe",
		func() bool { return a.earthMat.Wireframe },
		func(v bool) { a.earthMat.Wireframe = v })
	p.AddButton("Spin X", a.SpinX)
	p.AddColor("Earth Color",
		func() gfx.Color { return a.Params.Color },
		func(c gfx.Color) { a.Params.Color = c }).
		OnChange(func() { a.earthMat.Color = a.Params.Color })
	p.AddColor("Background Color",
		func() gfx.Color { return a.Params.Background },
		func(c gfx.Color) { a.Params.Background = c }).
		OnChange(func() { a.scene.Background = a.Params.Background })
	p.AddBool("Show Text",
		func() bool { return a.Params.ShowText },
		a.SetShowText)
	a.panel = p
}

// Panel returns the parameter panel.
func (a *App) Panel() *panel.Panel { return a.panel }
