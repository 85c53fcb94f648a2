package sparks

import "github.com/go-gl/mathgl/mgl32"

// BurstSize is the number of particles CommandBurst emits.
const BurstSize = 100

// Command is a sandbox control. Hosts bind keys and buttons to commands
// and pass them to Sandbox.Do, so every backend shares the same controls.
type Command uint8

const (
	CommandTogglePause Command = iota // suspend or resume simulation
	CommandBurst                      // emit BurstSize particles at once
	CommandReset                      // deactivate every slot
	CommandClearForces                // drop all external forces
	CommandRemoveForce                // drop the most recently added force
	CommandUnpin                      // return the emitter to the camera center
	CommandZoomIn                     // zoom in one scroll step
	CommandZoomOut                    // zoom out one scroll step
	CommandResetCamera                // recenter, unrotate and reset zoom
	CommandScreenshot                 // queue a screenshot labeled "manual"
)

// String returns the lowercase name of the command.
func (c Command) String() string {
	switch c {
	case CommandTogglePause:
		return "pause"
	case CommandBurst:
		return "burst"
	case CommandReset:
		return "reset"
	case CommandClearForces:
		return "clearforces"
	case CommandRemoveForce:
		return "removeforce"
	case CommandUnpin:
		return "unpin"
	case CommandZoomIn:
		return "zoomin"
	case CommandZoomOut:
		return "zoomout"
	case CommandResetCamera:
		return "resetcamera"
	case CommandScreenshot:
		return "screenshot"
	default:
		return "unknown"
	}
}

// Do applies cmd immediately.
func (s *Sandbox) Do(cmd Command) {
	switch cmd {
	case CommandTogglePause:
		s.TogglePause()
	case CommandBurst:
		s.Burst(BurstSize)
	case CommandReset:
		s.system.Reset()
	case CommandClearForces:
		s.Template.ExternalForces = nil
	case CommandRemoveForce:
		s.Template.RemoveLastForce()
	case CommandUnpin:
		s.UnpinEmitter()
	case CommandZoomIn:
		s.camera.ZoomBy(1)
	case CommandZoomOut:
		s.camera.ZoomBy(-1)
	case CommandResetCamera:
		s.camera.SetPosition(mgl32.Vec2{})
		s.camera.SetRotation(0)
		s.camera.SetZoom(1)
	case CommandScreenshot:
		s.Screenshot("manual")
	}
}

// PointerPress pins the emitter under the pointer. x and y are in screen
// pixels, origin top-left, on a viewport of width by height.
func (s *Sandbox) PointerPress(x, y float32, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.PinEmitter(s.camera.ScreenToWorld(x, y, width, height))
}

// Scroll zooms the camera by a mouse wheel delta; positive zooms in.
func (s *Sandbox) Scroll(delta float32) {
	if delta != 0 {
		s.camera.ZoomBy(delta)
	}
}

// Pan moves the camera by (dx, dy) viewport heights, so panning speed is
// the same at every zoom level.
func (s *Sandbox) Pan(dx, dy float32) {
	z := s.camera.Zoom()
	s.camera.SetPosition(s.camera.Position().Add(mgl32.Vec2{dx * z, dy * z}))
}
