package sparks

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// minZoom is the closest the camera may zoom in (half-height in world units).
const minZoom = 0.25

// Bounds is an axis-aligned rectangle in world space. Y increases upward.
type Bounds struct {
	Left, Right, Bottom, Top float32
}

// Width returns Right - Left.
func (b Bounds) Width() float32 { return b.Right - b.Left }

// Height returns Top - Bottom.
func (b Bounds) Height() float32 { return b.Top - b.Bottom }

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() mgl32.Vec2 {
	return mgl32.Vec2{(b.Left + b.Right) / 2, (b.Bottom + b.Top) / 2}
}

// Contains reports whether p lies inside b. Points on the edge are inside.
func (b Bounds) Contains(p mgl32.Vec2) bool {
	return p[0] >= b.Left && p[0] <= b.Right && p[1] >= b.Bottom && p[1] <= b.Top
}

// tweenAnim holds an in-flight camera animation. Finished tweens are
// dropped from Update.
type tweenAnim struct {
	x, y, zoom          *gween.Tween
	doneX, doneY, doneZ bool
}

// Camera is an orthographic 2D camera. The visible area is Zoom world units
// from the center to the top and bottom edges, scaled by the aspect ratio
// horizontally.
type Camera struct {
	position mgl32.Vec2
	rotation float32 // radians, counter-clockwise
	zoom     float32
	aspect   float32

	viewProj mgl32.Mat4
	dirty    bool

	scroll *tweenAnim
	zoomTw *tweenAnim
}

// NewCamera creates a camera centered on the origin with zoom 1.
func NewCamera(aspect float32) *Camera {
	return &Camera{
		zoom:   1,
		aspect: aspect,
		dirty:  true,
	}
}

// Position returns the world-space point the camera centers on.
func (c *Camera) Position() mgl32.Vec2 { return c.position }

// SetPosition moves the camera center and cancels any scroll animation.
func (c *Camera) SetPosition(p mgl32.Vec2) {
	c.position = p
	c.scroll = nil
	c.dirty = true
}

// Rotation returns the camera rotation in radians.
func (c *Camera) Rotation() float32 { return c.rotation }

// SetRotation sets the camera rotation in radians.
func (c *Camera) SetRotation(r float32) {
	c.rotation = r
	c.dirty = true
}

// Zoom returns the current zoom level.
func (c *Camera) Zoom() float32 { return c.zoom }

// SetZoom sets the zoom level, clamped to minZoom, and cancels any zoom
// animation.
func (c *Camera) SetZoom(z float32) {
	c.zoom = max(z, minZoom)
	c.zoomTw = nil
	c.dirty = true
}

// ZoomBy adjusts the zoom by a scroll-wheel style delta. Positive deltas zoom
// in.
func (c *Camera) ZoomBy(delta float32) {
	c.SetZoom(c.zoom - delta*0.25)
}

// Resize recomputes the aspect ratio for a new viewport size in pixels.
// Zero sizes are ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
	c.dirty = true
}

// Aspect returns the width / height ratio of the viewport.
func (c *Camera) Aspect() float32 { return c.aspect }

// ScrollTo animates the camera center to p over duration seconds.
func (c *Camera) ScrollTo(p mgl32.Vec2, duration float32, easeFn ease.TweenFunc) {
	c.scroll = &tweenAnim{
		x: gween.New(c.position[0], p[0], duration, easeFn),
		y: gween.New(c.position[1], p[1], duration, easeFn),
	}
}

// ZoomTo animates the zoom level to z over duration seconds.
func (c *Camera) ZoomTo(z float32, duration float32, easeFn ease.TweenFunc) {
	c.zoomTw = &tweenAnim{
		zoom: gween.New(c.zoom, max(z, minZoom), duration, easeFn),
	}
}

// Animating reports whether a scroll or zoom animation is in flight.
func (c *Camera) Animating() bool {
	return c.scroll != nil || c.zoomTw != nil
}

// Update advances camera animations by ts.
func (c *Camera) Update(ts Timestep) {
	dt := ts.Seconds()

	if a := c.scroll; a != nil {
		if !a.doneX {
			c.position[0], a.doneX = a.x.Update(dt)
		}
		if !a.doneY {
			c.position[1], a.doneY = a.y.Update(dt)
		}
		if a.doneX && a.doneY {
			c.scroll = nil
		}
		c.dirty = true
	}

	if a := c.zoomTw; a != nil {
		c.zoom, a.doneZ = a.zoom.Update(dt)
		if a.doneZ {
			c.zoomTw = nil
		}
		c.dirty = true
	}
}

// Bounds returns the visible world-space rectangle, ignoring rotation.
func (c *Camera) Bounds() Bounds {
	hw := c.aspect * c.zoom
	hh := c.zoom
	return Bounds{
		Left:   c.position[0] - hw,
		Right:  c.position[0] + hw,
		Bottom: c.position[1] - hh,
		Top:    c.position[1] + hh,
	}
}

// ViewProjection returns projection * view, recomputing it only when the
// camera changed.
//
// projection = Ortho(-aspect*zoom, aspect*zoom, -zoom, zoom, -1, 1)
// view       = inverse(Translate(position) * RotateZ(rotation))
func (c *Camera) ViewProjection() mgl32.Mat4 {
	if !c.dirty {
		return c.viewProj
	}
	c.dirty = false

	hw := c.aspect * c.zoom
	proj := mgl32.Ortho(-hw, hw, -c.zoom, c.zoom, -1, 1)
	world := mgl32.Translate3D(c.position[0], c.position[1], 0).Mul4(mgl32.HomogRotate3DZ(c.rotation))
	c.viewProj = proj.Mul4(world.Inv())
	return c.viewProj
}

// ScreenToWorld converts a pixel coordinate (origin top-left, Y down) in a
// viewport of the given size to world space.
func (c *Camera) ScreenToWorld(sx, sy float32, width, height int) mgl32.Vec2 {
	ndc := mgl32.Vec4{
		2*sx/float32(width) - 1,
		1 - 2*sy/float32(height),
		0,
		1,
	}
	w := c.ViewProjection().Inv().Mul4x1(ndc)
	return mgl32.Vec2{w[0], w[1]}
}

// WorldToScreen converts a world-space point to a pixel coordinate (origin
// top-left, Y down) in a viewport of the given size.
func (c *Camera) WorldToScreen(p mgl32.Vec2, width, height int) (sx, sy float32) {
	ndc := c.ViewProjection().Mul4x1(mgl32.Vec4{p[0], p[1], 0, 1})
	sx = (ndc[0] + 1) / 2 * float32(width)
	sy = (1 - ndc[1]) / 2 * float32(height)
	return sx, sy
}
