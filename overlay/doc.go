// Package overlay is the aggregation and lifecycle engine behind the
// immediate-mode debug overlay.
//
// Client code calls Router.Text and Router.Graph every frame. Calls made
// while the host is running a simulation step are tagged TickSlow, all
// others TickFast. The Engine buffers both kinds, folds them into per
// category state and tears down categories and graphs that went silent.
//
// Two entry points drive the engine:
//
//	engine.SlowPhase()          // once per fixed simulation step, 0..N per frame
//	frame := engine.FastPhase() // once per rendered frame
//
// Slow-origin graph points are pushed as soon as SlowPhase drains them, so
// a burst of simulation steps between two frames keeps every sample. Removal
// is only evaluated in FastPhase, and Slow-origin references stay live until
// the next SlowPhase starts a new window. A graph fed only from simulation
// steps therefore never flickers when frames outpace steps.
//
// Entries logged during cycle N become visible in the FastPhase that closes
// cycle N. Display state is exposed through Categories and pushed to the
// widget layer through the Host lifecycle callbacks.
package overlay
