package sparks

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestInjectConsumesOnePerFrame(t *testing.T) {
	sb, _ := newTestSandbox()
	sb.InjectCommand(CommandTogglePause)
	sb.InjectCommand(CommandTogglePause)
	if sb.PendingInput() != 2 {
		t.Fatalf("expected 2 queued inputs, got %d", sb.PendingInput())
	}

	// Frame 1: pause applies before emission, so nothing is emitted.
	sb.Update(0.01)
	if !sb.Paused() {
		t.Fatal("expected paused after frame 1")
	}
	if sb.PendingInput() != 1 {
		t.Fatalf("expected 1 remaining input, got %d", sb.PendingInput())
	}
	if sb.System().ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", sb.System().ActiveCount())
	}

	// Frame 2: resume, then the frame's emission runs.
	sb.Update(0.01)
	if sb.Paused() {
		t.Fatal("expected resumed after frame 2")
	}
	if sb.System().ActiveCount() != 1 {
		t.Errorf("ActiveCount = %d, want 1", sb.System().ActiveCount())
	}
	if sb.PendingInput() != 0 {
		t.Errorf("queue not drained: %d", sb.PendingInput())
	}
}

func TestInjectPress(t *testing.T) {
	sb, _ := newTestSandbox()
	sb.Camera().Resize(100, 100)
	sb.InjectPress(50, 0, 100, 100)

	sb.Update(0.01)

	// The press lands before emission, so this frame's particle spawns there.
	p := mustParticle(t, sb.System(), PoolSize-1)
	assertVec2Near(t, "emitted at", p.Position, mgl32.Vec2{0, 1})
}
