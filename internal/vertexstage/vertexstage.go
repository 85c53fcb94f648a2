// Package vertexstage runs the particle vertex shader on the CPU for
// backends that cannot execute GLSL: it holds the uniform state the
// renderer uploads and projects mesh vertices into pixel space.
package vertexstage

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

// Fixed uniform locations. Every software backend hands these out so that a
// State can route SetMat4/SetVec4 without a per-program table.
const (
	LocViewProj  int32 = 0
	LocTransform int32 = 1
	LocColor     int32 = 2
)

var errMeshShape = errors.New("vertexstage: vertex data is not a multiple of 3")

// Mesh is an indexed triangle list kept in CPU memory.
type Mesh struct {
	Positions []mgl32.Vec3
	Indices   []uint32
}

// NewMesh copies xyz vertex data and indices, rejecting indices that point
// past the vertex list.
func NewMesh(vertices []float32, indices []uint32) (Mesh, error) {
	if len(vertices)%3 != 0 {
		return Mesh{}, errMeshShape
	}
	m := Mesh{
		Positions: make([]mgl32.Vec3, len(vertices)/3),
		Indices:   append([]uint32(nil), indices...),
	}
	for i := range m.Positions {
		m.Positions[i] = mgl32.Vec3{vertices[i*3], vertices[i*3+1], vertices[i*3+2]}
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return Mesh{}, fmt.Errorf("vertexstage: index %d out of range (%d vertices)", idx, len(m.Positions))
		}
	}
	return m, nil
}

// State is the uniform block of the particle program.
type State struct {
	ViewProj  mgl32.Mat4
	Transform mgl32.Mat4
	Color     mgl32.Vec4
}

// SetMat4 stores m at loc. Unknown locations are ignored, matching how GL
// treats location -1.
func (s *State) SetMat4(loc int32, m mgl32.Mat4) {
	switch loc {
	case LocViewProj:
		s.ViewProj = m
	case LocTransform:
		s.Transform = m
	}
}

// SetVec4 stores v at loc. Unknown locations are ignored.
func (s *State) SetVec4(loc int32, v mgl32.Vec4) {
	if loc == LocColor {
		s.Color = v
	}
}

// Project transforms every vertex of m by ViewProj * Transform and maps the
// result from normalized device coordinates to a width x height viewport
// with the origin at the top-left and Y pointing down. dst is reused when it
// has enough capacity.
func (s *State) Project(m *Mesh, width, height float32, dst []mgl32.Vec2) []mgl32.Vec2 {
	mvp := s.ViewProj.Mul4(s.Transform)
	dst = dst[:0]
	for _, p := range m.Positions {
		clip := mvp.Mul4x1(p.Vec4(1))
		if clip[3] != 0 && clip[3] != 1 {
			clip = clip.Mul(1 / clip[3])
		}
		dst = append(dst, mgl32.Vec2{
			(clip[0] + 1) / 2 * width,
			(1 - clip[1]) / 2 * height,
		})
	}
	return dst
}

// Location maps a uniform name to its fixed location when the program
// declares it, or -1. Names may carry the GLSL "u_" prefix or not, so
// "u_Color" finds a Kage "Color" declaration.
func Location(declared map[string]bool, name string) int32 {
	if !declared[name] && !declared[KageName(name)] {
		return -1
	}
	switch KageName(name) {
	case "ViewProj":
		return LocViewProj
	case "Transform":
		return LocTransform
	case "Color":
		return LocColor
	default:
		return -1
	}
}

// KageName strips the "u_" prefix used by the GLSL programs. Kage exports
// uniforms as capitalized top-level variables with no prefix.
func KageName(name string) string {
	if len(name) > 2 && name[:2] == "u_" {
		return name[2:]
	}
	return name
}

var (
	glslUniform = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)
	kageUniform = regexp.MustCompile(`(?m)^var\s+([A-Z]\w*)\s+`)
)

// GLSLUniforms returns the set of uniform names declared at the start of a
// line in a GLSL source.
func GLSLUniforms(src []byte) map[string]bool {
	return collect(glslUniform, src)
}

// KageUniforms returns the set of exported top-level variables in a Kage
// source. Kage treats each one as a uniform.
func KageUniforms(src []byte) map[string]bool {
	return collect(kageUniform, src)
}

func collect(re *regexp.Regexp, src []byte) map[string]bool {
	out := make(map[string]bool)
	for _, m := range re.FindAllSubmatch(src, -1) {
		out[string(m[1])] = true
	}
	return out
}
