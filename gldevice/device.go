// Package gldevice implements sparks.Device on OpenGL 4.1 core.
//
// All methods must run on the goroutine that owns the current GL context,
// after gl.Init. Hosts usually call runtime.LockOSThread in init.
package gldevice

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/phanxgames/sparks"
)

// positionAttrib is the vertex attribute location of a_Position.
const positionAttrib = 0

// Device is a sparks.Device backed by the current OpenGL context.
type Device struct {
	blend sparks.BlendMode
	// Cleared by Clear. Defaults to opaque black.
	ClearColor mgl32.Vec4
}

var _ sparks.Device = (*Device)(nil)

// New returns a Device for the current context. It enables blending with
// the standard alpha function.
func New() *Device {
	d := &Device{ClearColor: mgl32.Vec4{0, 0, 0, 1}}
	d.SetBlendMode(sparks.BlendNormal)
	return d
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Clear fills the color buffer with ClearColor.
func (d *Device) Clear() {
	c := d.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Resize sets the viewport to the framebuffer size.
func (d *Device) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// CreateMesh implements sparks.Device. The returned handle is the vertex
// array object name.
func (d *Device) CreateMesh(vertices []float32, indices []uint32) (sparks.Mesh, error) {
	if len(vertices) == 0 || len(vertices)%3 != 0 {
		return 0, fmt.Errorf("gldevice: vertex data length %d is not a positive multiple of 3", len(vertices))
	}
	if len(indices) == 0 {
		return 0, fmt.Errorf("gldevice: mesh has no indices")
	}

	var vao, vbo, ibo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(positionAttrib)
	gl.VertexAttribPointer(positionAttrib, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))

	gl.GenBuffers(1, &ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return sparks.Mesh(vao), nil
}

// CreateProgram implements sparks.Device. Both paths are GLSL sources.
func (d *Device) CreateProgram(vertexPath, fragmentPath string) (sparks.Program, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return 0, fmt.Errorf("gldevice: read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return 0, fmt.Errorf("gldevice: read fragment shader: %w", err)
	}
	prog, err := newProgram(string(vs), string(fs))
	if err != nil {
		return 0, fmt.Errorf("gldevice: %s + %s: %w", vertexPath, fragmentPath, err)
	}
	return sparks.Program(prog), nil
}

// BlendMode returns the mode last set with SetBlendMode.
func (d *Device) BlendMode() sparks.BlendMode {
	return d.blend
}

// UniformLocation implements sparks.Device.
func (d *Device) UniformLocation(p sparks.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

// UseProgram implements sparks.Device.
func (d *Device) UseProgram(p sparks.Program) {
	gl.UseProgram(uint32(p))
}

// SetBlendMode implements sparks.Device.
func (d *Device) SetBlendMode(mode sparks.BlendMode) {
	d.blend = mode
	f := blendFuncFor(mode)
	if !f.enabled {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFuncSeparate(f.srcRGB, f.dstRGB, f.srcAlpha, f.dstAlpha)
}

// SetMat4 implements sparks.Device.
func (d *Device) SetMat4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// SetVec4 implements sparks.Device.
func (d *Device) SetVec4(loc int32, v mgl32.Vec4) {
	gl.Uniform4fv(loc, 1, &v[0])
}

// DrawIndexed implements sparks.Device.
func (d *Device) DrawIndexed(m sparks.Mesh, count int) {
	gl.BindVertexArray(uint32(m))
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

// blendFunc is a glBlendFuncSeparate argument set.
type blendFunc struct {
	enabled                            bool
	srcRGB, dstRGB, srcAlpha, dstAlpha uint32
}

func blendFuncFor(mode sparks.BlendMode) blendFunc {
	switch mode {
	case sparks.BlendAdd:
		return blendFunc{true, gl.SRC_ALPHA, gl.ONE, gl.ONE, gl.ONE}
	case sparks.BlendMultiply:
		return blendFunc{true, gl.DST_COLOR, gl.ONE_MINUS_SRC_ALPHA, gl.DST_ALPHA, gl.ONE_MINUS_SRC_ALPHA}
	case sparks.BlendScreen:
		return blendFunc{true, gl.ONE, gl.ONE_MINUS_SRC_COLOR, gl.ONE, gl.ONE_MINUS_SRC_ALPHA}
	case sparks.BlendNone:
		return blendFunc{}
	default:
		return blendFunc{true, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA}
	}
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(terminate(src))
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logBuf := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &logBuf[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile %s shader: %s", shaderKind(shaderType), trimLog(logBuf))
	}
	return shader, nil
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.BindAttribLocation(prog, positionAttrib, gl.Str("a_Position\x00"))
	gl.LinkProgram(prog)

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
		logBuf := make([]byte, logLength+1)
		gl.GetProgramInfoLog(prog, logLength, nil, &logBuf[0])
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("failed to link program: %s", trimLog(logBuf))
	}
	return prog, nil
}

// terminate appends the NUL gl.Strs requires, unless already present.
func terminate(src string) string {
	if strings.HasSuffix(src, "\x00") {
		return src
	}
	return src + "\x00"
}

func trimLog(buf []byte) string {
	return strings.TrimRight(string(buf), "\x00\n ")
}

func shaderKind(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return "unknown"
	}
}
