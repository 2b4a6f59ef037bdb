// Package app builds the Earth scene and runs it one frame per Step.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"earthscene/assets"
	"earthscene/gfx"
	"earthscene/hal"
	"earthscene/panel"
	"earthscene/tween"
	"earthscene/typeface"
)

const (
	rotationSpeed = 0.1 // radians per second around Y
	spinDuration  = time.Second
	spinKey       = "earth.rotation.x"
	textLabel     = "Earth"
)

var textOptions = gfx.TextOptions{
	Size:           0.5,
	Height:         0.05,
	CurveSegments:  12,
	BevelEnabled:   true,
	BevelThickness: 0.005,
	BevelSize:      0.01,
	BevelOffset:    0,
	BevelSegments:  3,
}

// App owns the scene and everything that mutates it. All methods run on the
// host's loop goroutine.
type App struct {
	h   hal.HAL
	log *slog.Logger
	cfg Config

	Params Params

	scene    *gfx.Scene
	camera   *gfx.Camera
	renderer *gfx.Renderer
	controls *gfx.OrbitController
	target   gfx.RGBATarget

	earth    *gfx.Mesh
	earthMat *gfx.Material
	light    *gfx.DirectionalLight
	stars    []*gfx.Mesh
	textMat  *gfx.Material
	text     *gfx.Mesh // nil until the font arrives

	assets *assets.Manager
	tweens tween.Scheduler
	panel  *panel.Panel
	input  inputState

	viewport hal.Viewport
	frames   uint64
	crash    *crashInfo
}

// New builds the scene and starts loading assets. Asset failures are logged
// and leave the dependent feature out; they never fail New.
func New(ctx context.Context, h hal.HAL, cfg Config) (*App, error) {
	if h == nil {
		return nil, fmt.Errorf("app: nil HAL")
	}
	if cfg.Stars < 0 {
		return nil, fmt.Errorf("app: invalid star count %d", cfg.Stars)
	}
	a := &App{
		h:      h,
		log:    h.Logger(),
		cfg:    cfg,
		Params: cfg.Params,
	}
	if a.log == nil {
		a.log = slog.Default()
	}

	a.buildScene()
	a.buildPanel()
	a.loadAssets(ctx)
	a.log.Info("scene ready", "stars", len(a.stars), "workers", a.renderer.Workers)
	return a, nil
}

func (a *App) buildScene() {
	a.scene = gfx.NewScene()
	a.scene.Background = a.Params.Background

	a.earthMat = gfx.NewStandardMaterial(a.Params.Color)
	a.earth = gfx.NewMesh("earth", gfx.NewSphereGeometry(1, 99, 99), a.earthMat)
	a.scene.Add(a.earth)

	a.light = gfx.NewDirectionalLight(gfx.White, 1.3)
	a.light.Position = gfx.V3(5, 1, 5)
	a.scene.Add(a.light)

	seed := a.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	starGeo := gfx.NewSphereGeometry(0.05, 8, 8)
	starMat := gfx.NewBasicMaterial(gfx.White)
	a.stars = make([]*gfx.Mesh, 0, a.cfg.Stars)
	for i := 0; i < a.cfg.Stars; i++ {
		star := gfx.NewMesh("star", starGeo, starMat)
		star.Position = gfx.V3(
			(rng.Float32()-0.5)*100,
			(rng.Float32()-0.5)*100,
			(rng.Float32()-0.5)*100,
		)
		star.SetScalar(rng.Float32() * 0.5)
		a.scene.Add(star)
		a.stars = append(a.stars, star)
	}

	a.textMat = gfx.NewMatcapMaterial(nil)

	a.camera = gfx.NewPerspectiveCamera(75, 1, 0.1, 100)
	a.camera.Position.Z = 3
	a.scene.Add(a.camera)

	a.controls = gfx.NewOrbitController(a.camera)
	a.controls.EnableDamping = true

	a.renderer = gfx.NewRenderer()
	a.renderer.Workers = a.cfg.Workers
	if a.renderer.Workers <= 0 {
		a.renderer.Workers = runtime.GOMAXPROCS(0)
	}
}

func (a *App) loadAssets(ctx context.Context) {
	fsys := a.cfg.FS
	if fsys == nil && a.cfg.Assets != "" {
		fsys = os.DirFS(a.cfg.Assets)
	}
	a.assets = assets.NewManager(fsys,
		assets.WithLogger(a.log),
		assets.WithMaxTextureSize(a.cfg.MaxTextureSize),
		assets.WithHooks(assets.Hooks{
			OnStart: func() { a.log.Info("loading started") },
			OnLoad:  func() { a.log.Info("all resources loaded") },
			OnError: func(path string, err error) {
				a.log.Warn("error loading resource", "path", path, "err", err)
			},
		}),
	)

	a.assets.LoadTexture(ctx, a.cfg.EarthTexture, func(tex *gfx.Texture) { a.earthMat.Map = tex })
	a.assets.LoadTexture(ctx, a.cfg.MatcapTexture, func(tex *gfx.Texture) { a.textMat.Matcap = tex })
	a.assets.LoadFont(ctx, a.cfg.Font, a.addText)
}

// addText builds the text mesh once the font has arrived.
func (a *App) addText(f *typeface.Font) {
	if a.text != nil {
		return
	}
	geo, err := gfx.NewTextGeometry(textLabel, f, textOptions)
	if err != nil {
		a.log.Warn("text geometry", "font", f.Family, "err", err)
		return
	}
	geo.Center()

	text := gfx.NewMesh("text", geo, a.textMat)
	text.Position = gfx.V3(0.01, -1.6, 0)
	text.Rotation.Y = a.earth.Rotation.Y
	text.Visible = a.Params.ShowText
	a.scene.Add(text)
	a.text = text
	a.log.Debug("text added", "font", f.Family, "triangles", geo.Triangles())
}

// Resize adapts the camera, the renderer and the framebuffer to a new
// viewport. The pixel ratio is capped at 2.
func (a *App) Resize(v hal.Viewport) {
	if v.Width <= 0 || v.Height <= 0 {
		return
	}
	a.viewport = v
	a.camera.Aspect = float32(v.Width) / float32(v.Height)
	a.camera.UpdateProjectionMatrix()
	a.renderer.SetSize(v.Width, v.Height)
	a.renderer.SetPixelRatio(float32(math.Min(v.DeviceScale, 2)))

	w, h := a.renderer.DrawingBufferSize()
	if d := a.h.Display(); d != nil {
		d.Framebuffer().Resize(w, h)
	}
	a.panel.Layout(w, h, float64(a.renderer.PixelRatio()))
	a.log.Debug("resize", "width", v.Width, "height", v.Height, "ratio", a.renderer.PixelRatio())
}

// Step runs one frame: asset completions, input, animation, controls,
// render, panel, present.
func (a *App) Step() (err error) {
	if a.crash != nil {
		return a.drawCrash()
	}
	defer a.recoverStep(&err)

	a.assets.Poll()
	a.drainInput()

	now := a.h.Clock().Elapsed()
	ry := float32(rotationSpeed * now.Seconds())
	a.earth.Rotation.Y = ry
	if a.text != nil {
		a.text.Rotation.Y = ry
	}
	a.tweens.Step(now)
	a.controls.Update()

	fb := a.h.Display().Framebuffer()
	a.target.Img = fb.Image()
	a.renderer.Render(&a.target, a.scene, a.camera)
	a.panel.Draw(a.target.Img)
	a.frames++
	return fb.Present()
}

// SpinX turns the earth once around X over a second. A spin started while
// another runs replaces it and starts from the current angle.
func (a *App) SpinX() {
	from := float64(a.earth.Rotation.X)
	a.tweens.Start(a.h.Clock().Elapsed(), tween.Tween{
		Key:      spinKey,
		From:     from,
		To:       from + 2*math.Pi,
		Duration: spinDuration,
		Ease:     tween.Power1Out,
		Set:      func(v float64) { a.earth.Rotation.X = float32(v) },
	})
}

// SetShowText toggles the text mesh. Before the font arrives only the
// parameter changes.
func (a *App) SetShowText(v bool) {
	a.Params.ShowText = v
	if a.text != nil {
		a.text.Visible = v
	}
}

// Frames returns the number of frames rendered.
func (a *App) Frames() uint64 { return a.frames }

// Assets exposes the loader, for callers that wait on it.
func (a *App) Assets() *assets.Manager { return a.assets }
