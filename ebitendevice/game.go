package ebitendevice

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sparks"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws FPS, TPS and the live particle count in the corner.
	ShowFPS bool
	// ScreenshotDir receives PNGs for queued screenshots. Empty selects
	// "screenshots".
	ScreenshotDir string
	// ClearColor fills the screen before particles are drawn.
	ClearColor color.Color
}

// KeyBindings maps keys to sandbox commands. The default set is used by
// Run; hosts may edit it before calling.
var KeyBindings = map[ebiten.Key]sparks.Command{
	ebiten.KeySpace:     sparks.CommandTogglePause,
	ebiten.KeyB:         sparks.CommandBurst,
	ebiten.KeyR:         sparks.CommandReset,
	ebiten.KeyC:         sparks.CommandClearForces,
	ebiten.KeyBackspace: sparks.CommandRemoveForce,
	ebiten.KeyU:         sparks.CommandUnpin,
	ebiten.KeyEqual:     sparks.CommandZoomIn,
	ebiten.KeyMinus:     sparks.CommandZoomOut,
	ebiten.Key0:         sparks.CommandResetCamera,
	ebiten.KeyP:         sparks.CommandScreenshot,
}

// panSpeed is viewport heights per second while an arrow key is held.
const panSpeed = 1

// Game adapts a Sandbox to ebiten.Game.
type Game struct {
	sandbox *sparks.Sandbox
	device  *Device
	config  RunConfig

	width, height int

	fps       *ebiten.Image
	fpsTimer  float64
	overlayOp ebiten.DrawImageOptions
}

// NewGame wraps sb, which must have been created with device.
func NewGame(sb *sparks.Sandbox, device *Device, cfg RunConfig) *Game {
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.ClearColor == nil {
		cfg.ClearColor = color.RGBA{25, 25, 25, 255}
	}
	return &Game{sandbox: sb, device: device, config: cfg}
}

// Run opens a window and drives sb until the window closes.
func Run(sb *sparks.Sandbox, device *Device, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(NewGame(sb, device, cfg))
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	for key, cmd := range KeyBindings {
		if inpututil.IsKeyJustPressed(key) {
			g.sandbox.Do(cmd)
		}
	}

	var dx, dy float32
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy++
	}
	if dx != 0 || dy != 0 {
		step := float32(panSpeed * dt)
		g.sandbox.Pan(dx*step, dy*step)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.sandbox.Scroll(float32(wy))
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.sandbox.PointerPress(float32(x), float32(y), g.width, g.height)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.sandbox.Do(sparks.CommandUnpin)
	}

	g.sandbox.Update(sparks.Timestep(dt))
	g.updateFPS(dt)
	return nil
}

// updateFPS redraws the overlay roughly twice a second.
func (g *Game) updateFPS(dt float64) {
	if !g.config.ShowFPS {
		return
	}
	if g.fps == nil {
		g.fps = ebiten.NewImage(140, 48)
	}
	g.fpsTimer += dt
	if g.fpsTimer < 0.5 {
		return
	}
	g.fpsTimer = 0

	g.fps.Clear()
	g.fps.Fill(color.RGBA{0, 0, 0, 128})
	s := g.sandbox.System()
	ebitenutil.DebugPrint(g.fps, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nActive: %d/%d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), s.ActiveCount(), s.Capacity()))
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.config.ClearColor)
	g.device.SetTarget(screen)
	g.sandbox.Render()

	// Capture before the overlay so screenshots hold only particles.
	WriteScreenshots(screen, g.config.ScreenshotDir, g.sandbox.TakeScreenshots())

	if g.fps != nil {
		screen.DrawImage(g.fps, &g.overlayOp)
	}
}

// Layout implements ebiten.Game. The sandbox camera follows the window
// aspect ratio.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.sandbox.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
