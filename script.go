package sparks

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// scriptStep is a single action in a frame script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float32 `json:"x,omitempty"`
	Y      float32 `json:"y,omitempty"`
	Count  int     `json:"count,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a frame script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"wait":        true,
	"burst":       true,
	"pause":       true,
	"resume":      true,
	"force":       true,
	"clearforces": true,
	"screenshot":  true,
}

// Script sequences sandbox actions across frames: bursts, pauses, force
// edits and screenshots. Attach it to a Sandbox with SetScript.
//
// Actions:
//
//	{"action": "wait", "frames": 30}
//	{"action": "burst", "count": 50}
//	{"action": "pause"} / {"action": "resume"}
//	{"action": "force", "x": 1, "y": 0}
//	{"action": "clearforces"}
//	{"action": "screenshot", "label": "fountain"}
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// ParseScript decodes a JSON frame script.
func ParseScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sparks: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("sparks: parse script: no steps")
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("sparks: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// LoadScript reads and decodes a JSON frame script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sparks: read script %s: %w", path, err)
	}
	return ParseScript(data)
}

// SetScript attaches a script. Its next step runs at the start of the next
// Update, before emission. nil detaches.
func (s *Sandbox) SetScript(script *Script) {
	s.script = script
}

// Done reports whether every step has run.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Sandbox.Update.
func (r *Script) step(s *Sandbox) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "burst":
		s.Burst(max(st.Count, 1))
	case "pause":
		s.SetPaused(true)
	case "resume":
		s.SetPaused(false)
	case "force":
		s.Template.AddForce(mgl32.Vec2{st.X, st.Y})
	case "clearforces":
		s.Template.ExternalForces = nil
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
