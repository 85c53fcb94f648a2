package sparks

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTimestep(t *testing.T) {
	ts := TimestepOf(250 * time.Millisecond)
	assertNear(t, "seconds", ts.Seconds(), 0.25)
	assertNear(t, "milliseconds", ts.Milliseconds(), 250)
}

func TestMixEndpoints(t *testing.T) {
	tests := []struct {
		a, b, t, want float32
	}{
		{0.6, 0.01, 0, 0.6},
		{0.6, 0.01, 1, 0.01},
		{-3, 7, 0.5, 2},
		{2, 4, 2, 6}, // unclamped
	}
	for _, tt := range tests {
		if got := mix(tt.a, tt.b, tt.t); got != tt.want {
			t.Errorf("mix(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}

	a := mgl32.Vec4{61 / 255.0, 158 / 255.0, 219 / 255.0, 1}
	b := mgl32.Vec4{197 / 255.0, 219 / 255.0, 233 / 255.0, 1}
	if mixVec4(a, b, 0) != a || mixVec4(a, b, 1) != b {
		t.Error("mixVec4 endpoints not exact")
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{BlendNormal.String(), "normal"},
		{BlendAdd.String(), "add"},
		{BlendMultiply.String(), "multiply"},
		{BlendScreen.String(), "screen"},
		{BlendNone.String(), "none"},
		{BlendMode(99).String(), "unknown"},
		{EventEmitted.String(), "emitted"},
		{EventCollided.String(), "collided"},
		{EventExpired.String(), "expired"},
		{EventType(99).String(), "unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestNewRandomDeterministic(t *testing.T) {
	a, b := NewRandom(7), NewRandom(7)
	for range 100 {
		x, y := a.Float32(), b.Float32()
		if x != y {
			t.Fatalf("streams diverged: %v != %v", x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("sample %v out of [0, 1)", x)
		}
	}
}
