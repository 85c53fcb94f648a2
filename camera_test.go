package sparks

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

func project(c *Camera, p mgl32.Vec2) mgl32.Vec2 {
	v := c.ViewProjection().Mul4x1(mgl32.Vec4{p[0], p[1], 0, 1})
	return mgl32.Vec2{v[0], v[1]}
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera(2)
	assertNear(t, "zoom", c.Zoom(), 1)
	assertNear(t, "aspect", c.Aspect(), 2)
	b := c.Bounds()
	if b != (Bounds{Left: -2, Right: 2, Bottom: -1, Top: 1}) {
		t.Errorf("Bounds = %+v", b)
	}
	assertNear(t, "width", b.Width(), 4)
	assertNear(t, "height", b.Height(), 2)
	assertVec2Near(t, "center", b.Center(), mgl32.Vec2{})
}

func TestCameraProjection(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Camera)
		world mgl32.Vec2
		ndc   mgl32.Vec2
	}{
		{"corner", func(c *Camera) {}, mgl32.Vec2{2, 1}, mgl32.Vec2{1, 1}},
		{"origin", func(c *Camera) {}, mgl32.Vec2{}, mgl32.Vec2{}},
		{"panned", func(c *Camera) { c.SetPosition(mgl32.Vec2{3, -1}) }, mgl32.Vec2{3, -1}, mgl32.Vec2{}},
		{"zoomed out", func(c *Camera) { c.SetZoom(2) }, mgl32.Vec2{2, 1}, mgl32.Vec2{0.5, 0.5}},
		{"rotated", func(c *Camera) { c.SetRotation(math.Pi / 2) }, mgl32.Vec2{0, 1}, mgl32.Vec2{0.5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(2)
			tt.setup(c)
			assertVec2Near(t, "ndc", project(c, tt.world), tt.ndc)
		})
	}
}

func TestCameraViewProjectionRecomputesWhenDirty(t *testing.T) {
	c := NewCamera(1)
	before := c.ViewProjection()
	if c.ViewProjection() != before {
		t.Error("cached matrix changed without edits")
	}
	c.SetPosition(mgl32.Vec2{1, 0})
	if c.ViewProjection() == before {
		t.Error("matrix not recomputed after SetPosition")
	}
}

func TestCameraZoomClamp(t *testing.T) {
	c := NewCamera(1)
	c.ZoomBy(1)
	assertNear(t, "zoom after scroll", c.Zoom(), 0.75)
	c.SetZoom(0)
	assertNear(t, "clamped zoom", c.Zoom(), minZoom)
	c.ZoomBy(10)
	assertNear(t, "clamped scroll", c.Zoom(), minZoom)
}

func TestCameraResize(t *testing.T) {
	c := NewCamera(1)
	c.Resize(1600, 900)
	assertNear(t, "aspect", c.Aspect(), 16.0/9.0)
	c.Resize(0, 900)
	assertNear(t, "aspect unchanged", c.Aspect(), 16.0/9.0)
}

func TestCameraScreenWorldRoundTrip(t *testing.T) {
	c := NewCamera(16.0 / 9.0)
	c.SetPosition(mgl32.Vec2{4, -2})
	c.SetZoom(3)

	center := c.ScreenToWorld(800, 450, 1600, 900)
	assertVec2Near(t, "center", center, mgl32.Vec2{4, -2})

	topLeft := c.ScreenToWorld(0, 0, 1600, 900)
	b := c.Bounds()
	assertVec2Near(t, "top left", topLeft, mgl32.Vec2{b.Left, b.Top})

	sx, sy := c.WorldToScreen(mgl32.Vec2{5, -1}, 1600, 900)
	back := c.ScreenToWorld(sx, sy, 1600, 900)
	assertVec2Near(t, "round trip", back, mgl32.Vec2{5, -1})
}

func TestCameraZoomTween(t *testing.T) {
	c := NewCamera(1)
	c.ZoomTo(3, 1, ease.Linear)
	if !c.Animating() {
		t.Fatal("expected animation")
	}
	c.Update(0.5)
	assertNear(t, "mid zoom", c.Zoom(), 2)
	c.Update(0.5)
	assertNear(t, "final zoom", c.Zoom(), 3)
	if c.Animating() {
		t.Error("animation should be finished")
	}
}

func TestCameraScrollTween(t *testing.T) {
	c := NewCamera(1)
	c.ScrollTo(mgl32.Vec2{4, -8}, 2, ease.Linear)
	c.Update(1)
	assertVec2Near(t, "mid", c.Position(), mgl32.Vec2{2, -4})
	c.Update(1.5)
	assertVec2Near(t, "end", c.Position(), mgl32.Vec2{4, -8})
	if c.Animating() {
		t.Error("animation should be finished")
	}
}

func TestCameraSetCancelsTween(t *testing.T) {
	c := NewCamera(1)
	c.ScrollTo(mgl32.Vec2{4, 4}, 1, ease.Linear)
	c.ZoomTo(5, 1, ease.Linear)
	c.SetPosition(mgl32.Vec2{1, 1})
	c.SetZoom(2)
	c.Update(1)
	assertVec2Near(t, "position", c.Position(), mgl32.Vec2{1, 1})
	assertNear(t, "zoom", c.Zoom(), 2)
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Left: -1, Right: 1, Bottom: -1, Top: 1}
	tests := []struct {
		p    mgl32.Vec2
		want bool
	}{
		{mgl32.Vec2{0, 0}, true},
		{mgl32.Vec2{1, 1}, true},
		{mgl32.Vec2{1.5, 0}, false},
		{mgl32.Vec2{0, -2}, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
