package sparks

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// SandboxConfig configures a Sandbox.
type SandboxConfig struct {
	// Template is the initial emission template. A zero LifeTime selects
	// DefaultTemplate.
	Template Template
	// Renderer selects shaders and blend mode. Empty shader paths select
	// DefaultRendererConfig.
	Renderer RendererConfig
	// Aspect is the initial viewport width / height. Zero selects 16:9.
	Aspect float32
	// Random feeds emission variation. nil selects NewEntropyRandom.
	Random Random
	// EmitPerFrame is how many particles are emitted each unpaused frame.
	// Zero selects 1.
	EmitPerFrame int
	// Debug enables per-frame stats on stderr.
	Debug bool
}

// Sandbox is the per-frame host layer: it owns a System, a Renderer and a
// Camera and drives them in the fixed order camera, emit, sum forces,
// update, render. Hosts call Update and Render once per frame (or Step for
// both).
//
// Template is exported so hosts and scripts can edit it between frames; the
// System takes a copy on every emission.
type Sandbox struct {
	Template Template

	system   *System
	renderer *Renderer
	camera   *Camera

	emitPerFrame  int
	emitter       mgl32.Vec2
	emitterPinned bool

	paused bool
	frame  uint64

	script          *Script
	screenshotQueue []string
	injectQueue     []syntheticInput

	debug bool
	stats debugStats
}

// NewSandbox creates a sandbox that renders through device.
func NewSandbox(device Device, cfg SandboxConfig) *Sandbox {
	if cfg.Template.LifeTime == 0 {
		cfg.Template = DefaultTemplate()
	}
	if cfg.Renderer.VertexShaderPath == "" || cfg.Renderer.FragmentShaderPath == "" {
		mode := cfg.Renderer.BlendMode
		cfg.Renderer = DefaultRendererConfig()
		cfg.Renderer.BlendMode = mode
	}
	if cfg.Aspect == 0 {
		cfg.Aspect = 16.0 / 9.0
	}
	if cfg.EmitPerFrame <= 0 {
		cfg.EmitPerFrame = 1
	}
	return &Sandbox{
		Template:     cfg.Template,
		system:       NewSystem(cfg.Random),
		renderer:     NewRenderer(device, cfg.Renderer),
		camera:       NewCamera(cfg.Aspect),
		emitPerFrame: cfg.EmitPerFrame,
		debug:        cfg.Debug,
	}
}

// System returns the particle pool.
func (s *Sandbox) System() *System { return s.system }

// Renderer returns the particle renderer.
func (s *Sandbox) Renderer() *Renderer { return s.renderer }

// Camera returns the sandbox camera.
func (s *Sandbox) Camera() *Camera { return s.camera }

// Frame returns the number of completed Update calls.
func (s *Sandbox) Frame() uint64 { return s.frame }

// SetDebugMode enables or disables per-frame stats on stderr.
func (s *Sandbox) SetDebugMode(enabled bool) { s.debug = enabled }

// Paused reports whether emission and simulation are suspended.
func (s *Sandbox) Paused() bool { return s.paused }

// SetPaused suspends or resumes emission and simulation. Rendering
// continues while paused.
func (s *Sandbox) SetPaused(paused bool) { s.paused = paused }

// TogglePause flips the paused state.
func (s *Sandbox) TogglePause() { s.paused = !s.paused }

// Resize updates the camera aspect ratio for a new viewport size.
func (s *Sandbox) Resize(width, height int) { s.camera.Resize(width, height) }

// EmitterPosition returns the point particles are emitted from.
func (s *Sandbox) EmitterPosition() mgl32.Vec2 {
	if s.emitterPinned {
		return s.emitter
	}
	return s.camera.Bounds().Center()
}

// PinEmitter fixes the emitter at p instead of the camera center.
func (s *Sandbox) PinEmitter(p mgl32.Vec2) {
	s.emitter = p
	s.emitterPinned = true
}

// UnpinEmitter returns the emitter to the camera center.
func (s *Sandbox) UnpinEmitter() {
	s.emitterPinned = false
}

// Burst emits n particles immediately from the current emitter position.
func (s *Sandbox) Burst(n int) {
	s.Template.InitialPosition = s.EmitterPosition()
	for range n {
		s.system.Emit(s.Template)
	}
}

// Screenshot queues a labeled capture. Backends that can read back the
// frame drain the queue with TakeScreenshots after Render.
func (s *Sandbox) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// TakeScreenshots returns and clears the queued screenshot labels.
func (s *Sandbox) TakeScreenshots() []string {
	if len(s.screenshotQueue) == 0 {
		return nil
	}
	labels := s.screenshotQueue
	s.screenshotQueue = nil
	return labels
}

// Update advances one frame: camera animation, one injected input, script
// step, then unless paused: set emitter position, emit, sum external
// forces, integrate.
func (s *Sandbox) Update(ts Timestep) {
	s.camera.Update(ts)
	s.processInjectedInput()

	if s.script != nil {
		s.script.step(s)
	}

	if !s.paused {
		var start time.Time
		if s.debug {
			start = time.Now()
		}

		s.Template.InitialPosition = s.EmitterPosition()
		for range s.emitPerFrame {
			s.system.Emit(s.Template)
		}
		force := s.Template.TotalForce()
		s.system.Update(ts, force)

		if s.debug {
			s.stats.updateTime = time.Since(start)
		}
	}
	s.frame++
}

// Render draws every active particle through the camera.
func (s *Sandbox) Render() {
	var start time.Time
	if s.debug {
		start = time.Now()
	}

	s.renderer.Render(s.system, s.camera)

	if s.debug {
		s.stats.renderTime = time.Since(start)
		s.stats.active = s.system.ActiveCount()
		s.stats.drawCalls = s.renderer.Stats().DrawCalls
		s.stats.forces = len(s.Template.ExternalForces)
		s.debugLog(s.stats)
	}
}

// Step runs Update then Render.
func (s *Sandbox) Step(ts Timestep) {
	s.Update(ts)
	s.Render()
}
