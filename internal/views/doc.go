// Package views derives read-only summaries, previews, and history over
// the queue store.
//
// Every operation degrades to an empty result when the underlying
// directories fail to read; the status feed favors availability over
// strict correctness, and a vanished directory mid-read must never take
// the dashboard down. Results are point-in-time snapshots and may be stale
// the moment they return.
package views
