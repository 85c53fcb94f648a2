package sparks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// Hz is the frame rate. Zero selects 60.
	Hz int
	// Ticks stops the run after this many frames. Zero runs until ctx ends.
	Ticks uint64
	// Fixed feeds every frame a timestep of exactly 1/Hz instead of the
	// measured wall-clock interval.
	Fixed bool
}

// RunHeadless steps sb on a ticker without opening a window. It returns nil
// after cfg.Ticks frames, or ctx.Err() when ctx is cancelled first.
func RunHeadless(ctx context.Context, sb *Sandbox, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("sparks: invalid headless hz: %d", cfg.Hz)
	}

	t := time.NewTicker(d)
	defer t.Stop()

	last := time.Now()
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			ts := TimestepOf(d)
			if !cfg.Fixed {
				ts = TimestepOf(now.Sub(last))
			}
			last = now

			sb.Step(ts)

			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// CountingDevice is a Device that draws nothing. It hands out sequential
// handles and counts the calls it receives, which makes it useful for
// headless runs and tests.
type CountingDevice struct {
	Meshes    int
	Programs  int
	Draws     int
	Uniforms  int
	BlendMode BlendMode

	// ProgramErr, when set, is returned from CreateProgram.
	ProgramErr error
	// MeshErr, when set, is returned from CreateMesh.
	MeshErr error

	bound Program
}

// CreateMesh implements Device.
func (d *CountingDevice) CreateMesh(vertices []float32, indices []uint32) (Mesh, error) {
	if d.MeshErr != nil {
		return 0, d.MeshErr
	}
	d.Meshes++
	return Mesh(d.Meshes), nil
}

// CreateProgram implements Device.
func (d *CountingDevice) CreateProgram(vertexPath, fragmentPath string) (Program, error) {
	if d.ProgramErr != nil {
		return 0, d.ProgramErr
	}
	d.Programs++
	return Program(d.Programs), nil
}

// UniformLocation implements Device. Every known uniform gets a stable
// location; unknown names return -1.
func (d *CountingDevice) UniformLocation(p Program, name string) int32 {
	switch name {
	case UniformViewProj:
		return 0
	case UniformTransform:
		return 1
	case UniformColor:
		return 2
	default:
		return -1
	}
}

// UseProgram implements Device.
func (d *CountingDevice) UseProgram(p Program) { d.bound = p }

// SetBlendMode implements Device.
func (d *CountingDevice) SetBlendMode(mode BlendMode) { d.BlendMode = mode }

// SetMat4 implements Device.
func (d *CountingDevice) SetMat4(location int32, m mgl32.Mat4) { d.Uniforms++ }

// SetVec4 implements Device.
func (d *CountingDevice) SetVec4(location int32, v mgl32.Vec4) { d.Uniforms++ }

// DrawIndexed implements Device.
func (d *CountingDevice) DrawIndexed(m Mesh, count int) { d.Draws++ }
