package rldevice

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/phanxgames/sparks"
)

// Only the pure helpers are tested here; the rest needs a raylib window.

func TestToMatrix(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(4, 5, 6))
	got := toMatrix(m)
	// Translation lives in M12..M14 in both layouts.
	if got.M12 != 1 || got.M13 != 2 || got.M14 != 3 {
		t.Errorf("translation = %v %v %v", got.M12, got.M13, got.M14)
	}
	if got.M0 != 4 || got.M5 != 5 || got.M10 != 6 || got.M15 != 1 {
		t.Errorf("diagonal = %v %v %v %v", got.M0, got.M5, got.M10, got.M15)
	}
}

func TestBlendFor(t *testing.T) {
	tests := []struct {
		mode       sparks.BlendMode
		want       rl.BlendMode
		hasFactors bool
	}{
		{sparks.BlendNormal, rl.BlendAlpha, false},
		{sparks.BlendAdd, rl.BlendAdditive, false},
		{sparks.BlendMultiply, rl.BlendMultiplied, false},
		{sparks.BlendScreen, rl.BlendCustom, true},
		{sparks.BlendNone, rl.BlendCustom, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, factors := blendFor(tt.mode)
			if got != tt.want || (factors != nil) != tt.hasFactors {
				t.Errorf("blendFor(%s) = %v, %v", tt.mode, got, factors)
			}
		})
	}
}

func TestNarrowIndices(t *testing.T) {
	quad := []float32{-0.5, -0.5, 0, 0.5, -0.5, 0, 0.5, 0.5, 0, -0.5, 0.5, 0}
	got, err := narrowIndices(quad, []uint32{0, 1, 2, 2, 3, 0})
	if err != nil {
		t.Fatalf("narrowIndices: %v", err)
	}
	want := []uint16{0, 1, 2, 2, 3, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	bad := []struct {
		name     string
		vertices []float32
		indices  []uint32
	}{
		{"no vertices", nil, []uint32{0, 1, 2}},
		{"ragged vertices", quad[:4], []uint32{0, 1, 2}},
		{"ragged indices", quad, []uint32{0, 1}},
		{"out of range", quad, []uint32{0, 1, 4}},
		{"too many vertices", make([]float32, 3*(1<<16+1)), []uint32{0, 1, 2}},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := narrowIndices(tt.vertices, tt.indices); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestUnknownHandles(t *testing.T) {
	d := New()
	if d.UniformLocation(5, sparks.UniformColor) != -1 {
		t.Error("unknown program should report -1")
	}
	d.UseProgram(5)
	// Nothing bound: these must be no-ops rather than touching raylib.
	d.SetMat4(0, mgl32.Ident4())
	d.SetVec4(0, mgl32.Vec4{})
	d.DrawIndexed(1, 6)
}
