// Package ebitendevice implements sparks.Device on Ebitengine.
//
// Ebitengine has no programmable vertex stage, so the particle vertex
// shader runs on the CPU (see internal/vertexstage) and only the fragment
// program is compiled, from Kage source. The GLSL vertex file named in the
// renderer config is read for its uniform declarations only.
package ebitendevice

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sparks"
	"github.com/phanxgames/sparks/internal/vertexstage"
)

// program is a compiled Kage fragment shader plus its reflected uniforms.
type program struct {
	shader   *ebiten.Shader
	declared map[string]bool
	uniforms map[string]any
	color    []float32 // persistent backing for uniforms["Color"]
}

// Device draws particles into an ebiten.Image. Set the target with
// SetTarget before each Render, typically from the game's Draw method.
type Device struct {
	fsys   fs.FS
	target *ebiten.Image

	meshes   []vertexstage.Mesh
	programs []*program
	bound    *program

	state vertexstage.State
	blend ebiten.Blend

	// Per-draw scratch, reused across frames.
	points []mgl32.Vec2
	verts  []ebiten.Vertex
	op     ebiten.DrawTrianglesShaderOptions
}

var _ sparks.Device = (*Device)(nil)

// New returns a Device that reads shader files from the working directory.
func New() *Device {
	return NewFS(os.DirFS("."))
}

// NewFS returns a Device that reads shader files from fsys, for example an
// embed.FS.
func NewFS(fsys fs.FS) *Device {
	return &Device{
		fsys:  fsys,
		blend: ebiten.BlendSourceOver,
	}
}

// SetTarget selects the image subsequent draws render into.
func (d *Device) SetTarget(img *ebiten.Image) {
	d.target = img
}

// CreateMesh implements sparks.Device.
func (d *Device) CreateMesh(vertices []float32, indices []uint32) (sparks.Mesh, error) {
	m, err := vertexstage.NewMesh(vertices, indices)
	if err != nil {
		return 0, fmt.Errorf("ebitendevice: %w", err)
	}
	d.meshes = append(d.meshes, m)
	return sparks.Mesh(len(d.meshes)), nil
}

// CreateProgram implements sparks.Device. fragmentPath must be Kage source.
func (d *Device) CreateProgram(vertexPath, fragmentPath string) (sparks.Program, error) {
	vs, err := fs.ReadFile(d.fsys, vertexPath)
	if err != nil {
		return 0, fmt.Errorf("ebitendevice: read vertex shader: %w", err)
	}
	fsrc, err := fs.ReadFile(d.fsys, fragmentPath)
	if err != nil {
		return 0, fmt.Errorf("ebitendevice: read fragment shader: %w", err)
	}
	shader, err := ebiten.NewShader(fsrc)
	if err != nil {
		return 0, fmt.Errorf("ebitendevice: compile %s: %w", fragmentPath, err)
	}

	declared := vertexstage.GLSLUniforms(vs)
	for name := range vertexstage.KageUniforms(fsrc) {
		declared[name] = true
	}
	p := &program{
		shader:   shader,
		declared: declared,
		uniforms: make(map[string]any, 1),
		color:    make([]float32, 4),
	}
	if declared["Color"] {
		p.uniforms["Color"] = p.color
	}
	d.programs = append(d.programs, p)
	return sparks.Program(len(d.programs)), nil
}

// UniformLocation implements sparks.Device.
func (d *Device) UniformLocation(p sparks.Program, name string) int32 {
	prog := d.program(p)
	if prog == nil {
		return -1
	}
	return vertexstage.Location(prog.declared, name)
}

// UseProgram implements sparks.Device.
func (d *Device) UseProgram(p sparks.Program) {
	d.bound = d.program(p)
}

// SetBlendMode implements sparks.Device.
func (d *Device) SetBlendMode(mode sparks.BlendMode) {
	d.blend = Blend(mode)
}

// SetMat4 implements sparks.Device.
func (d *Device) SetMat4(loc int32, m mgl32.Mat4) {
	d.state.SetMat4(loc, m)
}

// SetVec4 implements sparks.Device.
func (d *Device) SetVec4(loc int32, v mgl32.Vec4) {
	d.state.SetVec4(loc, v)
}

// DrawIndexed implements sparks.Device. Draws are dropped while no target
// or program is bound.
func (d *Device) DrawIndexed(m sparks.Mesh, count int) {
	if d.target == nil || d.bound == nil || m == 0 || int(m) > len(d.meshes) {
		return
	}
	mesh := &d.meshes[m-1]
	count = min(count, len(mesh.Indices))

	b := d.target.Bounds()
	d.points = d.state.Project(mesh, float32(b.Dx()), float32(b.Dy()), d.points)

	c := d.state.Color
	d.verts = d.verts[:0]
	for _, p := range d.points {
		d.verts = append(d.verts, ebiten.Vertex{
			DstX:   p[0] + float32(b.Min.X),
			DstY:   p[1] + float32(b.Min.Y),
			ColorR: c[0] * c[3],
			ColorG: c[1] * c[3],
			ColorB: c[2] * c[3],
			ColorA: c[3],
		})
	}
	if d.bound.declared["Color"] {
		copy(d.bound.color, c[:])
	}

	d.op.Blend = d.blend
	d.op.Uniforms = d.bound.uniforms
	d.target.DrawTrianglesShader32(d.verts, mesh.Indices[:count], d.bound.shader, &d.op)
}

func (d *Device) program(p sparks.Program) *program {
	if p == 0 || int(p) > len(d.programs) {
		return nil
	}
	return d.programs[p-1]
}

// Blend returns the ebiten.Blend corresponding to mode.
func Blend(mode sparks.BlendMode) ebiten.Blend {
	switch mode {
	case sparks.BlendNormal:
		return ebiten.BlendSourceOver
	case sparks.BlendAdd:
		return ebiten.BlendLighter
	case sparks.BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case sparks.BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case sparks.BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}
