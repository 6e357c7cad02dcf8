// Package field implements the particle field: a fixed population of drifting
// nodes joined by proximity links, emitting short-lived numeric particles.
//
// The model is split in two layers:
//
//   - [Step] is a pure transition from one [State] to the next. It returns the
//     new state and a [Frame] describing what must be drawn.
//   - [Field] owns a State and binds it to a [Surface], a [Scheduler] and a
//     [Viewport]. Hosts (terminal, window, headless runner) supply those.
//
// # Frame Order
//
// Every frame clears the surface, draws links between nodes closer than
// [Params.LinkDistance] using their pre-move positions, moves and draws nodes
// (emitting particles at random), then moves, fades and draws particles.
//
// # Randomness
//
// All random draws go through [Source]. A *math/rand.Rand satisfies it; tests
// use scripted sources for deterministic frames.
//
// # Thread Safety
//
// Field is NOT thread-safe. Frame callbacks and resize notifications must be
// delivered on the same goroutine, which is what every host in this module does.
package field
