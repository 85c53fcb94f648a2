// Package sparks is a fixed-capacity 2D particle simulation and renderer.
//
// A [System] owns exactly [PoolSize] particle slots. [System.Emit] claims the
// next slot in a circular walk and overwrites it from a copy of a
// [Template]; [System.Update] integrates external force, gravity, drag,
// plane collision, position, lifetime and spin for every active slot; and
// [Renderer.Render] draws one colored quad per active slot through a
// [Device].
//
// # Quick start
//
// The simplest way to get started is [Sandbox], which wires a System, a
// Renderer and an orthographic [Camera] together and runs them in the
// per-frame order camera, emit, sum forces, update, render:
//
//	sb := sparks.NewSandbox(device, sparks.SandboxConfig{})
//	for {
//		sb.Step(sparks.TimestepOf(frameTime))
//	}
//
// For full control, drive the pieces yourself:
//
//	sys := sparks.NewSystem(sparks.NewRandom(1))
//	r := sparks.NewRenderer(device, sparks.DefaultRendererConfig())
//	tmpl := sparks.DefaultTemplate()
//
//	sys.Emit(tmpl)
//	sys.Update(ts, tmpl.TotalForce())
//	r.Render(sys, camera)
//
// # Backends
//
// The [Device] interface is the only thing a graphics backend implements.
// Backends live in sub-packages: ebitendevice (Ebitengine, Kage shaders),
// gldevice (OpenGL 4.1 core), rldevice (raylib) and termdevice (tcell,
// software rasterized). [CountingDevice] draws nothing and is used for
// headless runs ([RunHeadless]) and tests.
//
// # Controls
//
// Hosts translate their own key and mouse events into [Command] values for
// [Sandbox.Do], and pointer presses into [Sandbox.PointerPress], so every
// backend shares one control scheme. [Sandbox.InjectCommand] and
// [Sandbox.InjectPress] queue the same inputs for automated runs; one
// queued input is applied per frame. Frame scripts ([LoadScript]) drive
// longer scenarios: bursts, forces, pauses and screenshots.
//
// # Events
//
// An [EventSink] attached with [System.SetEventSink] observes emissions,
// collisions and expirations. The ecs sub-module bridges these events into
// a [Donburi] world.
//
// [Donburi]: https://github.com/yohamta/donburi
package sparks
