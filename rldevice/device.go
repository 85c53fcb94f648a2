// Package rldevice implements sparks.Device on raylib.
//
// Call it between rl.InitWindow and rl.CloseWindow, from the main thread.
package rldevice

import (
	"fmt"
	"os"
	"runtime"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/phanxgames/sparks"
)

// GL blend factors for the custom blend modes raylib has no preset for.
const (
	glZero             = 0
	glOne              = 1
	glOneMinusSrcColor = 0x0301
	glFuncAdd          = 0x8006
)

// mesh keeps the CPU copies raylib points at alive and pinned.
type mesh struct {
	rl       rl.Mesh
	vertices []float32
	indices  []uint16
	pinner   runtime.Pinner
}

// Device is a sparks.Device that draws with raylib's DrawMesh.
type Device struct {
	meshes   []*mesh
	shaders  []rl.Shader
	material rl.Material
	hasMat   bool
	bound    int // index into shaders, -1 when none
	blend    sparks.BlendMode
}

var _ sparks.Device = (*Device)(nil)

// New returns a Device for the current raylib window.
func New() *Device {
	return &Device{bound: -1}
}

// CreateMesh implements sparks.Device. raylib meshes index with 16 bits, so
// meshes are limited to 65536 vertices.
func (d *Device) CreateMesh(vertices []float32, indices []uint32) (sparks.Mesh, error) {
	idx, err := narrowIndices(vertices, indices)
	if err != nil {
		return 0, err
	}

	m := &mesh{
		vertices: append([]float32(nil), vertices...),
		indices:  idx,
	}
	m.pinner.Pin(&m.vertices[0])
	m.pinner.Pin(&m.indices[0])
	m.rl.VertexCount = int32(len(vertices) / 3)
	m.rl.TriangleCount = int32(len(idx) / 3)
	m.rl.Vertices = unsafe.SliceData(m.vertices)
	m.rl.Indices = unsafe.SliceData(m.indices)
	rl.UploadMesh(&m.rl, false)

	d.meshes = append(d.meshes, m)
	return sparks.Mesh(len(d.meshes)), nil
}

// CreateProgram implements sparks.Device. Both paths are GLSL sources.
func (d *Device) CreateProgram(vertexPath, fragmentPath string) (sparks.Program, error) {
	for _, p := range []string{vertexPath, fragmentPath} {
		if _, err := os.Stat(p); err != nil {
			return 0, fmt.Errorf("rldevice: %w", err)
		}
	}

	shader, err := loadShader(vertexPath, fragmentPath)
	if err != nil {
		return 0, err
	}
	shader.UpdateLocation(int32(rl.ShaderLocVertexPosition), rl.GetShaderLocationAttrib(shader, "a_Position"))

	d.shaders = append(d.shaders, shader)
	return sparks.Program(len(d.shaders)), nil
}

// loadShader compiles the pair, turning both raylib failure modes (a panic
// in the binding, or silently falling back to the default shader) into an
// error.
func loadShader(vertexPath, fragmentPath string) (shader rl.Shader, err error) {
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("rldevice: compile %s + %s: %v", vertexPath, fragmentPath, r)
			}
		}()
		shader = rl.LoadShader(vertexPath, fragmentPath)
	}()
	if err != nil {
		return rl.Shader{}, err
	}
	if shader.ID == 0 || !rl.IsShaderValid(shader) {
		return rl.Shader{}, fmt.Errorf("rldevice: compile %s + %s: see raylib log", vertexPath, fragmentPath)
	}
	return shader, nil
}

// UniformLocation implements sparks.Device.
func (d *Device) UniformLocation(p sparks.Program, name string) int32 {
	i := int(p) - 1
	if i < 0 || i >= len(d.shaders) {
		return -1
	}
	return rl.GetShaderLocation(d.shaders[i], name)
}

// UseProgram implements sparks.Device.
func (d *Device) UseProgram(p sparks.Program) {
	i := int(p) - 1
	if i < 0 || i >= len(d.shaders) {
		d.bound = -1
		return
	}
	d.bound = i
	if !d.hasMat {
		d.material = rl.LoadMaterialDefault()
		d.hasMat = true
	}
	d.material.Shader = d.shaders[i]
}

// SetBlendMode implements sparks.Device.
func (d *Device) SetBlendMode(mode sparks.BlendMode) {
	d.blend = mode
	preset, factors := blendFor(mode)
	if factors != nil {
		rl.SetBlendFactors(factors[0], factors[1], factors[2])
	}
	rl.BeginBlendMode(preset)
}

// SetMat4 implements sparks.Device.
func (d *Device) SetMat4(loc int32, m mgl32.Mat4) {
	if d.bound < 0 || loc < 0 {
		return
	}
	rl.SetShaderValueMatrix(d.shaders[d.bound], loc, toMatrix(m))
}

// SetVec4 implements sparks.Device.
func (d *Device) SetVec4(loc int32, v mgl32.Vec4) {
	if d.bound < 0 || loc < 0 {
		return
	}
	rl.SetShaderValue(d.shaders[d.bound], loc, v[:], rl.ShaderUniformVec4)
}

// DrawIndexed implements sparks.Device. raylib always draws the whole
// mesh, so count only guards against empty draws.
func (d *Device) DrawIndexed(m sparks.Mesh, count int) {
	i := int(m) - 1
	if d.bound < 0 || count <= 0 || i < 0 || i >= len(d.meshes) {
		return
	}
	rl.DrawMesh(d.meshes[i].rl, d.material, rl.MatrixIdentity())
}

// Close ends the blend mode and releases the pinned mesh data. GPU objects
// are left to rl.CloseWindow.
func (d *Device) Close() {
	rl.EndBlendMode()
	for _, m := range d.meshes {
		m.pinner.Unpin()
	}
	d.meshes = nil
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout, whose
// fields M0..M15 are numbered column-major as well.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// blendFor maps mode to a raylib preset. Modes raylib has no preset for use
// rl.BlendCustom with the returned glBlendFunc factors and equation.
func blendFor(mode sparks.BlendMode) (rl.BlendMode, *[3]int32) {
	switch mode {
	case sparks.BlendAdd:
		return rl.BlendAdditive, nil
	case sparks.BlendMultiply:
		return rl.BlendMultiplied, nil
	case sparks.BlendScreen:
		return rl.BlendCustom, &[3]int32{glOne, glOneMinusSrcColor, glFuncAdd}
	case sparks.BlendNone:
		return rl.BlendCustom, &[3]int32{glOne, glZero, glFuncAdd}
	default:
		return rl.BlendAlpha, nil
	}
}

func narrowIndices(vertices []float32, indices []uint32) ([]uint16, error) {
	if len(vertices) == 0 || len(vertices)%3 != 0 {
		return nil, fmt.Errorf("rldevice: vertex data length %d is not a positive multiple of 3", len(vertices))
	}
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("rldevice: index count %d is not a positive multiple of 3", len(indices))
	}
	n := len(vertices) / 3
	if n > 1<<16 {
		return nil, fmt.Errorf("rldevice: %d vertices exceed the 16-bit index range", n)
	}
	out := make([]uint16, len(indices))
	for i, v := range indices {
		if int(v) >= n {
			return nil, fmt.Errorf("rldevice: index %d out of range (%d vertices)", v, n)
		}
		out[i] = uint16(v)
	}
	return out, nil
}
