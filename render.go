package sparks

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// quadVertices is a unit quad centered on the origin, xyz per vertex.
var quadVertices = []float32{
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
	0.5, 0.5, 0.0,
	-0.5, 0.5, 0.0,
}

// quadIndices splits the quad into two triangles.
var quadIndices = []uint32{
	0, 1, 2, 2, 3, 0,
}

// RendererConfig selects the shader sources and blend mode for a Renderer.
type RendererConfig struct {
	VertexShaderPath   string
	FragmentShaderPath string
	BlendMode          BlendMode
}

// DefaultRendererConfig returns the GLSL particle program shipped in
// assets/shaders with standard alpha blending.
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		VertexShaderPath:   "assets/shaders/particle.glsl.vert",
		FragmentShaderPath: "assets/shaders/particle.glsl.frag",
		BlendMode:          BlendNormal,
	}
}

// RenderStats reports what the most recent Render call did.
type RenderStats struct {
	// DrawCalls is the number of quads drawn by the last Render.
	DrawCalls int
	// SetupCount is the number of times GPU resources were created. It is
	// 1 after a successful setup and never grows past that.
	SetupCount int
}

// Renderer draws the active particles of a System as colored quads. The quad
// mesh and shader program are created on the first Render (or an explicit
// Setup) and reused for every later frame.
type Renderer struct {
	device Device
	config RendererConfig

	// Lazy GPU state (no sync.Once: rendering is single-threaded).
	ready       bool
	mesh        Mesh
	program     Program
	locViewProj int32
	locTrans    int32
	locColor    int32

	stats RenderStats
}

// NewRenderer creates a Renderer that will draw through device. No GPU work
// happens until Setup or the first Render.
func NewRenderer(device Device, config RendererConfig) *Renderer {
	return &Renderer{
		device: device,
		config: config,
	}
}

// Ready reports whether GPU resources have been created.
func (r *Renderer) Ready() bool {
	return r.ready
}

// Stats returns counters from the most recent Render.
func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// Setup creates the quad mesh and shader program if that has not happened
// yet. Calling it again after success is a no-op.
func (r *Renderer) Setup() error {
	if r.ready {
		return nil
	}

	mesh, err := r.device.CreateMesh(quadVertices, quadIndices)
	if err != nil {
		return fmt.Errorf("sparks: create quad mesh: %w", err)
	}
	program, err := r.device.CreateProgram(r.config.VertexShaderPath, r.config.FragmentShaderPath)
	if err != nil {
		return fmt.Errorf("sparks: load particle shader: %w", err)
	}

	r.mesh = mesh
	r.program = program
	r.locViewProj = r.device.UniformLocation(program, UniformViewProj)
	r.locTrans = r.device.UniformLocation(program, UniformTransform)
	r.locColor = r.device.UniformLocation(program, UniformColor)

	r.ready = true
	r.stats.SetupCount++
	return nil
}

// Render draws one quad per active particle of s, in slot order. If GPU
// resources do not exist yet they are created first; failure to create them
// is fatal and panics.
func (r *Renderer) Render(s *System, cam ViewProjector) {
	if !r.ready {
		if err := r.Setup(); err != nil {
			panic(err.Error())
		}
	}

	r.device.SetBlendMode(r.config.BlendMode)
	r.device.UseProgram(r.program)
	r.device.SetMat4(r.locViewProj, cam.ViewProjection())

	draws := 0
	for i := range s.pool {
		p := &s.pool[i]
		if !p.active {
			continue
		}

		color, size := p.appearance()
		transform := particleTransform(p.position, p.spin, size)

		r.device.SetMat4(r.locTrans, transform)
		r.device.SetVec4(r.locColor, color)
		r.device.DrawIndexed(r.mesh, len(quadIndices))
		draws++
	}
	r.stats.DrawCalls = draws
}

// appearance interpolates color and size by the remaining-life fraction:
// 1 at birth gives the begin values, 0 at death gives the end values. The
// fraction is not clamped.
func (p *particle) appearance() (mgl32.Vec4, float32) {
	life := p.life / p.props.LifeTime
	color := mixVec4(p.props.ColorEnd, p.props.ColorBegin, life)
	size := mix(p.props.SizeEnd, p.props.SizeBegin, life)
	return color, size
}

// particleTransform builds T(position) * Rz(spin) * S(size, size, 1).
func particleTransform(position mgl32.Vec2, spin, size float32) mgl32.Mat4 {
	return mgl32.Translate3D(position[0], position[1], 0).
		Mul4(mgl32.HomogRotate3DZ(spin)).
		Mul4(mgl32.Scale3D(size, size, 1))
}
