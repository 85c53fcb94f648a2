package sparks

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewSandboxDefaults(t *testing.T) {
	sb := NewSandbox(&CountingDevice{}, SandboxConfig{})
	if sb.Template.LifeTime != DefaultTemplate().LifeTime {
		t.Errorf("LifeTime = %v, want default template", sb.Template.LifeTime)
	}
	assertNear(t, "aspect", sb.Camera().Aspect(), 16.0/9.0)
	if sb.Paused() {
		t.Error("new sandbox is paused")
	}
}

func TestSandboxStepOrder(t *testing.T) {
	sb, dev := newTestSandbox()
	sb.Template.AddForce(mgl32.Vec2{1, 0})
	sb.Template.AddForce(mgl32.Vec2{0, 1})

	sb.Step(0.5)

	if sb.System().ActiveCount() != 1 {
		t.Fatalf("ActiveCount = %d, want 1", sb.System().ActiveCount())
	}
	// The particle emitted this frame is integrated in the same frame.
	p := mustParticle(t, sb.System(), PoolSize-1)
	assertVec2Near(t, "velocity", p.Velocity, mgl32.Vec2{1, 1})
	assertVec2Near(t, "position", p.Position, mgl32.Vec2{0.5, 0.5})
	if dev.Draws != 1 {
		t.Errorf("draws = %d, want 1", dev.Draws)
	}
	if sb.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", sb.Frame())
	}
}

func TestSandboxEmitPerFrame(t *testing.T) {
	sb := NewSandbox(&CountingDevice{}, SandboxConfig{
		Template:     physicsTemplate(mgl32.Vec2{}, mgl32.Vec2{}),
		Random:       zeroRandom(),
		EmitPerFrame: 5,
	})
	for range 3 {
		sb.Update(0.01)
	}
	if got := sb.System().ActiveCount(); got != 15 {
		t.Errorf("ActiveCount = %d, want 15", got)
	}
}

func TestSandboxPauseStillRenders(t *testing.T) {
	sb, dev := newTestSandbox()
	sb.Step(0.1)
	sb.SetPaused(true)
	before := mustParticle(t, sb.System(), PoolSize-1)

	sb.Step(0.1)
	sb.Step(0.1)

	after := mustParticle(t, sb.System(), PoolSize-1)
	if before.LifeRemaining != after.LifeRemaining {
		t.Error("simulation advanced while paused")
	}
	if sb.System().ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, want 1", sb.System().ActiveCount())
	}
	if dev.Draws != 3 {
		t.Errorf("draws = %d, want 3", dev.Draws)
	}

	sb.TogglePause()
	if sb.Paused() {
		t.Error("TogglePause did not resume")
	}
}

func TestSandboxEmitterFollowsCamera(t *testing.T) {
	sb, _ := newTestSandbox()
	sb.Camera().SetPosition(mgl32.Vec2{3, 4})
	assertVec2Near(t, "emitter", sb.EmitterPosition(), mgl32.Vec2{3, 4})

	sb.Update(0.01)
	p := mustParticle(t, sb.System(), PoolSize-1)
	assertVec2Near(t, "emitted at", p.Position, mgl32.Vec2{3, 4})

	sb.PinEmitter(mgl32.Vec2{-1, -1})
	assertVec2Near(t, "pinned", sb.EmitterPosition(), mgl32.Vec2{-1, -1})
	sb.UnpinEmitter()
	assertVec2Near(t, "unpinned", sb.EmitterPosition(), mgl32.Vec2{3, 4})
}

func TestSandboxBurst(t *testing.T) {
	sb, _ := newTestSandbox()
	sb.PinEmitter(mgl32.Vec2{2, 2})
	sb.Burst(40)
	if sb.System().ActiveCount() != 40 {
		t.Errorf("ActiveCount = %d, want 40", sb.System().ActiveCount())
	}
	sb.System().Each(func(slot int, p ParticleView) {
		if p.Position != (mgl32.Vec2{2, 2}) {
			t.Fatalf("slot %d at %v, want [2 2]", slot, p.Position)
		}
	})
}

func TestSandboxTemplateEditsAffectOnlyNewParticles(t *testing.T) {
	sb, _ := newTestSandbox()
	sb.Template.ColorBegin = mgl32.Vec4{1, 0, 0, 1}
	sb.Update(0.01)
	sb.Template.ColorBegin = mgl32.Vec4{0, 1, 0, 1}
	sb.Update(0.01)

	first := mustParticle(t, sb.System(), PoolSize-1)
	second := mustParticle(t, sb.System(), PoolSize-2)
	if first.Template.ColorBegin != (mgl32.Vec4{1, 0, 0, 1}) {
		t.Errorf("first ColorBegin = %v", first.Template.ColorBegin)
	}
	if second.Template.ColorBegin != (mgl32.Vec4{0, 1, 0, 1}) {
		t.Errorf("second ColorBegin = %v", second.Template.ColorBegin)
	}
}

func TestSandboxScreenshotQueue(t *testing.T) {
	sb, _ := newTestSandbox()
	if sb.TakeScreenshots() != nil {
		t.Error("empty queue should return nil")
	}
	sb.Screenshot("a")
	sb.Screenshot("b")
	labels := sb.TakeScreenshots()
	if len(labels) != 2 || labels[0] != "a" || labels[1] != "b" {
		t.Errorf("labels = %v", labels)
	}
	if sb.TakeScreenshots() != nil {
		t.Error("queue not cleared")
	}
}
