package sparks

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// spinRate is the constant angular speed, in radians per second.
const spinRate = 0.01

// particle holds per-slot simulation state. Unexported; managed by System.
// Fields other than active are stale while active is false.
type particle struct {
	position mgl32.Vec2
	velocity mgl32.Vec2
	spin     float32
	life     float32 // remaining lifetime in seconds
	props    Template
	active   bool
}

// ParticleView is a read-only snapshot of an active slot.
type ParticleView struct {
	Position      mgl32.Vec2
	Velocity      mgl32.Vec2
	Spin          float32
	LifeRemaining float32
	// Template is the private copy captured at emission, with SizeBegin and
	// SizeEnd already randomized.
	Template Template
}

// System owns a fixed pool of PoolSize particle slots. Emit recycles slots
// oldest-first; Update integrates every active slot.
//
// A System is not safe for concurrent use.
type System struct {
	pool   [PoolSize]particle
	cursor int
	alive  int
	rng    Random
	sink   EventSink
}

// NewSystem creates a System with every slot inactive. rng supplies the
// emission variation; nil selects NewEntropyRandom.
func NewSystem(rng Random) *System {
	if rng == nil {
		rng = NewEntropyRandom()
	}
	return &System{
		cursor: PoolSize - 1,
		rng:    rng,
	}
}

// SetEventSink attaches an observer for lifecycle events. nil detaches.
func (s *System) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Capacity returns the pool size.
func (s *System) Capacity() int {
	return len(s.pool)
}

// ActiveCount returns the number of active slots.
func (s *System) ActiveCount() int {
	return s.alive
}

// NextSlot returns the slot the next Emit will claim.
func (s *System) NextSlot() int {
	return s.cursor
}

// Emit claims the next slot and initializes it from a copy of t. The slot is
// overwritten even if its particle is still alive. Emit never fails.
func (s *System) Emit(t Template) {
	slot := s.cursor
	p := &s.pool[slot]

	if !p.active {
		s.alive++
	}
	p.active = true
	p.props = t.Clone()
	p.position = t.InitialPosition

	tx := s.rng.Float32()
	ty := s.rng.Float32()
	p.velocity = mgl32.Vec2{
		mix(t.MinVelocityVariation[0], t.MaxVelocityVariation[0], tx),
		mix(t.MinVelocityVariation[1], t.MaxVelocityVariation[1], ty),
	}

	p.spin = s.rng.Float32() * 2 * math.Pi
	p.life = t.LifeTime

	tBegin := s.rng.Float32()
	tEnd := s.rng.Float32()
	p.props.SizeBegin = mix(t.SizeBegin, t.SizeVariation[0], tBegin)
	p.props.SizeEnd = mix(t.SizeEnd, t.SizeVariation[1], tEnd)

	// Walk the cursor backwards, wrapping from 0 to the last slot.
	if s.cursor == 0 {
		s.cursor = len(s.pool) - 1
	} else {
		s.cursor--
	}

	s.emit(EventEmitted, slot, p)
}

// Update advances every active slot by ts. force is the frame's summed
// external force (see Template.TotalForce) and is added to every velocity
// as-is.
func (s *System) Update(ts Timestep, force mgl32.Vec2) {
	dt := ts.Seconds()
	for i := range s.pool {
		p := &s.pool[i]
		if !p.active {
			continue
		}

		p.velocity = p.velocity.Add(force)

		p.velocity[1] += p.props.GravityScalar * dt * b2f(p.props.SimulateGravity)

		// First-order drag; large drag*dt overshoots and flips the velocity.
		p.velocity = p.velocity.Sub(p.velocity.Mul(p.props.Drag).Mul(dt))

		if p.props.SimulateCollision && s.collide(p) {
			s.emit(EventCollided, i, p)
		}

		p.position = p.position.Add(p.velocity.Mul(dt))

		p.life -= dt
		if p.life <= 0 {
			p.active = false
			s.alive--
			s.emit(EventExpired, i, p)
		}

		p.spin += spinRate * dt
	}
}

// collide reflects p's velocity off the template's plane when p is behind
// the plane and still moving into it. It reports whether it did.
func (s *System) collide(p *particle) bool {
	normal := p.props.CollisionNormal.Normalize()
	toSurface := p.position.Sub(p.props.SurfacePoint)

	d := p.velocity.Dot(normal)
	if !(toSurface.Dot(normal) < 0 && d < 0) {
		return false
	}
	reflected := p.velocity.Sub(normal.Mul(2 * d))
	p.velocity = reflected.Mul(p.props.Restitution)
	return true
}

// Particle returns a snapshot of slot. ok is false when the slot is out of
// range or inactive.
func (s *System) Particle(slot int) (view ParticleView, ok bool) {
	if slot < 0 || slot >= len(s.pool) || !s.pool[slot].active {
		return ParticleView{}, false
	}
	return s.pool[slot].view(), true
}

// Each calls fn for every active slot in slot order.
func (s *System) Each(fn func(slot int, p ParticleView)) {
	for i := range s.pool {
		if s.pool[i].active {
			fn(i, s.pool[i].view())
		}
	}
}

// Reset deactivates every slot and rewinds the cursor.
func (s *System) Reset() {
	for i := range s.pool {
		s.pool[i].active = false
	}
	s.alive = 0
	s.cursor = len(s.pool) - 1
}

func (p *particle) view() ParticleView {
	return ParticleView{
		Position:      p.position,
		Velocity:      p.velocity,
		Spin:          p.spin,
		LifeRemaining: p.life,
		Template:      p.props.Clone(),
	}
}

func (s *System) emit(typ EventType, slot int, p *particle) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(LifecycleEvent{
		Type:     typ,
		Slot:     slot,
		Position: p.position,
		Velocity: p.velocity,
	})
}
