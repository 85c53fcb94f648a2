// Package termdevice implements sparks.Device by rasterizing particles in
// software and presenting them on a tcell screen.
//
// Each terminal cell holds two vertically stacked pixels drawn with the
// upper half block: the foreground is the top pixel and the background the
// bottom one, which keeps pixels roughly square on common fonts.
package termdevice

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/phanxgames/sparks"
	"github.com/phanxgames/sparks/internal/vertexstage"
)

const halfBlock = '▀'

// Device rasterizes into an RGBA framebuffer sized to the screen and
// copies it to the screen on Present.
type Device struct {
	screen tcell.Screen

	width, height int // framebuffer size in pixels
	pixels        []mgl32.Vec4

	// Background is the color Clear fills the framebuffer with.
	Background mgl32.Vec4

	meshes   []vertexstage.Mesh
	programs []map[string]bool
	bound    map[string]bool

	state  vertexstage.State
	blend  sparks.BlendMode
	points []mgl32.Vec2
}

var _ sparks.Device = (*Device)(nil)

// New returns a Device that presents to screen. The screen must already be
// initialized.
func New(screen tcell.Screen) *Device {
	d := &Device{
		screen:     screen,
		Background: mgl32.Vec4{0, 0, 0, 1},
	}
	d.Resize()
	return d
}

// Resize reallocates the framebuffer to match the current screen size.
// Call it after a tcell.EventResize.
func (d *Device) Resize() {
	cols, rows := d.screen.Size()
	d.width, d.height = cols, rows*2
	if n := d.width * d.height; cap(d.pixels) >= n {
		d.pixels = d.pixels[:n]
	} else {
		d.pixels = make([]mgl32.Vec4, n)
	}
	d.Clear()
}

// Size returns the framebuffer size in pixels.
func (d *Device) Size() (width, height int) {
	return d.width, d.height
}

// Clear fills the framebuffer with Background.
func (d *Device) Clear() {
	for i := range d.pixels {
		d.pixels[i] = d.Background
	}
}

// Pixel returns the framebuffer color at (x, y), origin top-left.
func (d *Device) Pixel(x, y int) mgl32.Vec4 {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return mgl32.Vec4{}
	}
	return d.pixels[y*d.width+x]
}

// Present copies the framebuffer to the screen and shows it.
func (d *Device) Present() {
	cols := d.width
	for row := 0; row < d.height/2; row++ {
		for col := 0; col < cols; col++ {
			top := d.pixels[(row*2)*d.width+col]
			bottom := d.pixels[(row*2+1)*d.width+col]
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			d.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	d.screen.Show()
}

// CreateMesh implements sparks.Device.
func (d *Device) CreateMesh(vertices []float32, indices []uint32) (sparks.Mesh, error) {
	m, err := vertexstage.NewMesh(vertices, indices)
	if err != nil {
		return 0, fmt.Errorf("termdevice: %w", err)
	}
	d.meshes = append(d.meshes, m)
	return sparks.Mesh(len(d.meshes)), nil
}

// CreateProgram implements sparks.Device. The GLSL sources are not
// compiled; the fixed particle pipeline runs in software and only the
// declared uniforms are honored.
func (d *Device) CreateProgram(vertexPath, fragmentPath string) (sparks.Program, error) {
	declared := make(map[string]bool)
	for _, path := range []string{vertexPath, fragmentPath} {
		src, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("termdevice: read shader: %w", err)
		}
		for name := range vertexstage.GLSLUniforms(src) {
			declared[name] = true
		}
	}
	d.programs = append(d.programs, declared)
	return sparks.Program(len(d.programs)), nil
}

// UniformLocation implements sparks.Device.
func (d *Device) UniformLocation(p sparks.Program, name string) int32 {
	if p == 0 || int(p) > len(d.programs) {
		return -1
	}
	return vertexstage.Location(d.programs[p-1], name)
}

// UseProgram implements sparks.Device.
func (d *Device) UseProgram(p sparks.Program) {
	if p == 0 || int(p) > len(d.programs) {
		d.bound = nil
		return
	}
	d.bound = d.programs[p-1]
}

// SetBlendMode implements sparks.Device.
func (d *Device) SetBlendMode(mode sparks.BlendMode) { d.blend = mode }

// SetMat4 implements sparks.Device.
func (d *Device) SetMat4(loc int32, m mgl32.Mat4) { d.state.SetMat4(loc, m) }

// SetVec4 implements sparks.Device.
func (d *Device) SetVec4(loc int32, v mgl32.Vec4) { d.state.SetVec4(loc, v) }

// DrawIndexed implements sparks.Device.
func (d *Device) DrawIndexed(m sparks.Mesh, count int) {
	if d.bound == nil || m == 0 || int(m) > len(d.meshes) {
		return
	}
	mesh := &d.meshes[m-1]
	count = min(count, len(mesh.Indices))
	d.points = d.state.Project(mesh, float32(d.width), float32(d.height), d.points)

	for i := 0; i+2 < count; i += 3 {
		a := d.points[mesh.Indices[i]]
		b := d.points[mesh.Indices[i+1]]
		c := d.points[mesh.Indices[i+2]]
		d.fillTriangle(a, b, c, d.state.Color)
	}
}

// fillTriangle blends color into every pixel whose center lies inside the
// triangle. Both windings are accepted.
func (d *Device) fillTriangle(a, b, c mgl32.Vec2, color mgl32.Vec4) {
	area := edge(a, b, c)
	if area == 0 {
		return
	}

	minX := max(int(min(a[0], b[0], c[0])), 0)
	maxX := min(int(max(a[0], b[0], c[0]))+1, d.width-1)
	minY := max(int(min(a[1], b[1], c[1])), 0)
	maxY := min(int(max(a[1], b[1], c[1]))+1, d.height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}
			w0 := edge(b, c, p)
			w1 := edge(c, a, p)
			w2 := edge(a, b, p)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			i := y*d.width + x
			d.pixels[i] = blendPixel(d.pixels[i], color, d.blend)
		}
	}
}

// edge is twice the signed area of triangle (a, b, p).
func edge(a, b, p mgl32.Vec2) float32 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// blendPixel composites straight-alpha src over dst.
func blendPixel(dst, src mgl32.Vec4, mode sparks.BlendMode) mgl32.Vec4 {
	a := clamp01(src[3])
	var out mgl32.Vec4
	switch mode {
	case sparks.BlendNone:
		return src
	case sparks.BlendAdd:
		for i := range 3 {
			out[i] = dst[i] + src[i]*a
		}
		out[3] = dst[3] + a
	case sparks.BlendMultiply:
		for i := range 3 {
			out[i] = src[i]*a*dst[i] + dst[i]*(1-a)
		}
		out[3] = dst[3]
	case sparks.BlendScreen:
		for i := range 3 {
			s := src[i] * a
			out[i] = s + dst[i]*(1-s)
		}
		out[3] = a + dst[3]*(1-a)
	default:
		for i := range 3 {
			out[i] = src[i]*a + dst[i]*(1-a)
		}
		out[3] = a + dst[3]*(1-a)
	}
	for i := range out {
		out[i] = clamp01(out[i])
	}
	return out
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

func toColor(c mgl32.Vec4) tcell.Color {
	return tcell.NewRGBColor(
		int32(clamp01(c[0])*255+0.5),
		int32(clamp01(c[1])*255+0.5),
		int32(clamp01(c[2])*255+0.5),
	)
}
