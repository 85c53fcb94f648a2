package sparks

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Sandbox.debug is true.
type debugStats struct {
	updateTime time.Duration
	renderTime time.Duration
	active     int
	drawCalls  int
	forces     int
}

// debugLog prints timing and draw-call stats to stderr.
func (s *Sandbox) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[sparks] frame %d | update: %v | render: %v | total: %v\n",
		s.frame, stats.updateTime, stats.renderTime, stats.updateTime+stats.renderTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[sparks] active: %d/%d | draw calls: %d | forces: %d\n",
		stats.active, s.system.Capacity(), stats.drawCalls, stats.forces)
	if err := s.Template.Validate(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[sparks] warning: %v\n", err)
	}
}
