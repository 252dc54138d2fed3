// Package daemon coordinates the long-running murmur process.
//
// It wires configuration, the queue store, the mutator, and the status
// feed into a single lifecycle with flock-based locking to prevent
// multiple instances, and serves the HTTP API plus the WebSocket status
// feed. Keep orchestration logic here: queue semantics live in their own
// packages while the daemon focuses on startup, shutdown, and transport.
package daemon
