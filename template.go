package sparks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrZeroCollisionNormal reports a collision-enabled template whose
	// collision normal cannot be normalized.
	ErrZeroCollisionNormal = errors.New("sparks: collision normal has zero length")
	// ErrNonPositiveLifeTime reports a template whose particles would expire
	// before they are ever drawn.
	ErrNonPositiveLifeTime = errors.New("sparks: life time must be positive")
)

// Template describes how a newly emitted particle is initialized. The
// System copies it on every Emit, so editing a Template never affects
// particles that are already alive.
//
// Preconditions the System does not check (see Validate):
//   - CollisionNormal must be non-zero while SimulateCollision is set.
//   - LifeTime must be positive.
type Template struct {
	SimulateCollision bool `json:"simulateCollision"`
	SimulateGravity   bool `json:"simulateGravity"`

	// LifeTime is the particle lifetime in seconds.
	LifeTime float32 `json:"lifeTime"`
	// SizeBegin and SizeEnd are the quad sizes at birth and death. Each is
	// randomized at emission toward the matching SizeVariation component.
	SizeBegin float32 `json:"sizeBegin"`
	SizeEnd   float32 `json:"sizeEnd"`
	// GravityScalar is the vertical acceleration; negative pulls down.
	GravityScalar float32 `json:"gravityScalar"`
	// Drag is the first-order velocity decay per second.
	Drag float32 `json:"drag"`
	// Restitution scales the reflected velocity after a collision.
	Restitution float32 `json:"restitution"`

	InitialPosition mgl32.Vec2 `json:"initialPosition"`
	// InitialVelocity is carried for tooling; emission draws the velocity
	// from the variation range only.
	InitialVelocity mgl32.Vec2 `json:"initialVelocity"`
	// SizeVariation holds the second interpolation endpoint for SizeBegin
	// (X) and SizeEnd (Y). It is an absolute size, not a delta.
	SizeVariation        mgl32.Vec2 `json:"sizeVariation"`
	MinVelocityVariation mgl32.Vec2 `json:"minVelocityVariation"`
	MaxVelocityVariation mgl32.Vec2 `json:"maxVelocityVariation"`
	CollisionNormal      mgl32.Vec2 `json:"collisionNormal"`
	SurfacePoint         mgl32.Vec2 `json:"surfacePoint"`

	ColorBegin mgl32.Vec4 `json:"colorBegin"`
	ColorEnd   mgl32.Vec4 `json:"colorEnd"`

	// ExternalForces are summed by the caller each frame (TotalForce) and
	// passed to System.Update.
	ExternalForces []mgl32.Vec2 `json:"externalForces"`
}

// NewTemplate returns a Template holding the baseline defaults.
func NewTemplate() Template {
	return Template{
		SimulateCollision:    true,
		SimulateGravity:      true,
		LifeTime:             1,
		SizeBegin:            0.5,
		SizeEnd:              10,
		GravityScalar:        -9,
		Drag:                 0.25,
		Restitution:          1,
		SizeVariation:        mgl32.Vec2{0, 1},
		MaxVelocityVariation: mgl32.Vec2{1, 1},
	}
}

// DefaultTemplate returns the blue fountain the sandbox starts with.
func DefaultTemplate() Template {
	t := NewTemplate()
	t.ColorBegin = mgl32.Vec4{61 / 255.0, 158 / 255.0, 219 / 255.0, 1}
	t.ColorEnd = mgl32.Vec4{197 / 255.0, 219 / 255.0, 233 / 255.0, 1}
	t.LifeTime = 10
	t.SizeBegin = 0.6
	t.SizeEnd = 0.01
	t.GravityScalar = -6
	t.Drag = 0
	t.Restitution = 0.1
	t.InitialVelocity = mgl32.Vec2{5, 5}
	t.SizeVariation = mgl32.Vec2{0, 0}
	t.MinVelocityVariation = mgl32.Vec2{2, 4}
	t.MaxVelocityVariation = mgl32.Vec2{2, 4}
	// Floor one unit below the emitter.
	t.CollisionNormal = mgl32.Vec2{0, 1}
	t.SurfacePoint = mgl32.Vec2{0, -1}
	return t
}

// Clone returns a deep copy of t. The ExternalForces slice is copied so the
// clone shares no memory with t.
func (t Template) Clone() Template {
	c := t
	if t.ExternalForces != nil {
		c.ExternalForces = make([]mgl32.Vec2, len(t.ExternalForces))
		copy(c.ExternalForces, t.ExternalForces)
	}
	return c
}

// TotalForce returns the sum of all external forces, in list order.
func (t *Template) TotalForce() mgl32.Vec2 {
	var total mgl32.Vec2
	for _, f := range t.ExternalForces {
		total = total.Add(f)
	}
	return total
}

// AddForce appends an external force.
func (t *Template) AddForce(f mgl32.Vec2) {
	t.ExternalForces = append(t.ExternalForces, f)
}

// RemoveLastForce drops the most recently added external force. It reports
// whether a force was removed.
func (t *Template) RemoveLastForce() bool {
	if len(t.ExternalForces) == 0 {
		return false
	}
	t.ExternalForces = t.ExternalForces[:len(t.ExternalForces)-1]
	return true
}

// Validate reports violations of the emission preconditions. A nil result
// means the template is safe to emit; the System itself never calls this.
func (t *Template) Validate() error {
	var errs []error
	if t.LifeTime <= 0 {
		errs = append(errs, fmt.Errorf("%w (got %v)", ErrNonPositiveLifeTime, t.LifeTime))
	}
	if t.SimulateCollision && t.CollisionNormal.Len() == 0 {
		errs = append(errs, ErrZeroCollisionNormal)
	}
	return errors.Join(errs...)
}

// ParseTemplate decodes a JSON template. Fields missing from the document
// keep the values from NewTemplate.
func ParseTemplate(data []byte) (Template, error) {
	t := NewTemplate()
	if err := json.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("sparks: failed to parse template JSON: %w", err)
	}
	return t, nil
}

// LoadTemplate reads and decodes a JSON template file.
func LoadTemplate(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("sparks: read template %s: %w", path, err)
	}
	return ParseTemplate(data)
}

// SaveTemplate writes t as indented JSON.
func SaveTemplate(path string, t Template) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("sparks: encode template: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("sparks: write template %s: %w", path, err)
	}
	return nil
}
