package sparks

import "github.com/go-gl/mathgl/mgl32"

// Mesh is an opaque handle to an indexed triangle mesh owned by a Device.
type Mesh uint32

// Program is an opaque handle to a compiled and linked shader program owned
// by a Device.
type Program uint32

// Device is the graphics service the Renderer draws through. Handles it
// returns stay valid for the lifetime of the Device. All methods are called
// from the goroutine that owns the graphics context.
type Device interface {
	// CreateMesh uploads xyz vertex positions and triangle indices.
	CreateMesh(vertices []float32, indices []uint32) (Mesh, error)
	// CreateProgram loads, compiles and links a program from the two shader
	// source files.
	CreateProgram(vertexPath, fragmentPath string) (Program, error)
	// UniformLocation looks up a uniform by name. -1 means not found.
	UniformLocation(p Program, name string) int32
	// UseProgram binds p for subsequent uniform uploads and draws.
	UseProgram(p Program)
	// SetBlendMode selects how subsequent draws composite.
	SetBlendMode(mode BlendMode)
	// SetMat4 uploads a 4x4 matrix to the bound program.
	SetMat4(location int32, m mgl32.Mat4)
	// SetVec4 uploads a 4-component vector to the bound program.
	SetVec4(location int32, v mgl32.Vec4)
	// DrawIndexed draws the first count indices of m as triangles.
	DrawIndexed(m Mesh, count int)
}

// ViewProjector supplies the camera matrix for a Render call.
type ViewProjector interface {
	ViewProjection() mgl32.Mat4
}

// Uniform names every particle program must declare.
const (
	UniformViewProj  = "u_ViewProj"
	UniformTransform = "u_Transform"
	UniformColor     = "u_Color"
)
