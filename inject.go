package sparks

// syntheticInput is one queued command or pointer press. Pointer
// coordinates are screen pixels, identical to real mouse input.
type syntheticInput struct {
	pointer       bool
	cmd           Command
	x, y          float32
	width, height int
}

// InjectCommand queues cmd. It is applied at the start of the next Update,
// one queued input per frame.
func (s *Sandbox) InjectCommand(cmd Command) {
	s.injectQueue = append(s.injectQueue, syntheticInput{cmd: cmd})
}

// InjectPress queues a pointer press at screen coordinates (x, y) on a
// viewport of width by height. Consumes one frame.
func (s *Sandbox) InjectPress(x, y float32, width, height int) {
	s.injectQueue = append(s.injectQueue, syntheticInput{
		pointer: true,
		x:       x, y: y,
		width: width, height: height,
	})
}

// PendingInput returns the number of queued synthetic inputs.
func (s *Sandbox) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops and applies one queued input. Returns true if
// one was consumed.
func (s *Sandbox) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	in := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if in.pointer {
		s.PointerPress(in.x, in.y, in.width, in.height)
	} else {
		s.Do(in.cmd)
	}
	return true
}
