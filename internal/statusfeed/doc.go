// Package statusfeed maintains the set of connected status observers and
// pushes queue snapshots to them on a fixed cadence.
//
// The feed re-broadcasts unconditionally on every tick; there is no
// diffing against the previous snapshot. A new observer receives the
// current snapshot immediately on subscribe so it never waits out a full
// tick for its first update. Delivery is non-blocking per observer: one
// stalled or abandoned observer is removed rather than delaying the
// broadcast to the others or the next tick.
//
// When filesystem watching is enabled, changes to the queue directories
// trigger an immediate extra broadcast between ticks.
package statusfeed
