package sparks

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// PoolSize is the fixed number of particle slots in every System.
const PoolSize = 1000

// Timestep is the elapsed time of one frame, in seconds.
type Timestep float32

// TimestepOf converts a wall-clock duration into a Timestep.
func TimestepOf(d time.Duration) Timestep {
	return Timestep(d.Seconds())
}

// Seconds returns the timestep in seconds.
func (ts Timestep) Seconds() float32 {
	return float32(ts)
}

// Milliseconds returns the timestep in milliseconds.
func (ts Timestep) Milliseconds() float32 {
	return float32(ts) * 1000
}

// BlendMode selects a compositing operation. Each backend maps it to its
// native blend state.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (SRC_ALPHA, ONE_MINUS_SRC_ALPHA)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendNone                      // opaque copy (skip blending)
)

// String returns the lowercase name of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendAdd:
		return "add"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendNone:
		return "none"
	default:
		return "unknown"
	}
}

// mix linearly interpolates between a and b by t. Written as a*(1-t) + b*t
// so that t == 0 yields exactly a and t == 1 yields exactly b.
func mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// mixVec4 is mix applied per component.
func mixVec4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return mgl32.Vec4{
		mix(a[0], b[0], t),
		mix(a[1], b[1], t),
		mix(a[2], b[2], t),
		mix(a[3], b[3], t),
	}
}

// b2f returns 1 for true and 0 for false.
func b2f(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
