package gldevice

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/phanxgames/sparks"
)

// These tests cover the pure helpers; everything else needs a live context.

func TestBlendFuncFor(t *testing.T) {
	tests := []struct {
		mode sparks.BlendMode
		want blendFunc
	}{
		{sparks.BlendNormal, blendFunc{true, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA}},
		{sparks.BlendAdd, blendFunc{true, gl.SRC_ALPHA, gl.ONE, gl.ONE, gl.ONE}},
		{sparks.BlendNone, blendFunc{}},
		{sparks.BlendMode(77), blendFunc{true, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := blendFuncFor(tt.mode); got != tt.want {
				t.Errorf("blendFuncFor(%s) = %+v, want %+v", tt.mode, got, tt.want)
			}
		})
	}
	for _, mode := range []sparks.BlendMode{sparks.BlendMultiply, sparks.BlendScreen} {
		if !blendFuncFor(mode).enabled {
			t.Errorf("%s should enable blending", mode)
		}
	}
}

func TestTerminate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"void main(){}", "void main(){}\x00"},
		{"void main(){}\x00", "void main(){}\x00"},
		{"", "\x00"},
	}
	for _, tt := range tests {
		if got := terminate(tt.in); got != tt.want {
			t.Errorf("terminate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTrimLog(t *testing.T) {
	if got := trimLog([]byte("0:3: error\n\x00")); got != "0:3: error" {
		t.Errorf("trimLog = %q", got)
	}
}

func TestShaderKind(t *testing.T) {
	if shaderKind(gl.VERTEX_SHADER) != "vertex" || shaderKind(gl.FRAGMENT_SHADER) != "fragment" {
		t.Error("shader kinds mislabeled")
	}
}
