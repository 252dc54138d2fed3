// Package api defines the JSON payloads served by the daemon and the
// HTTP client the CLI uses to reach a running daemon.
//
// Payload field names are part of the wire contract consumed by dashboard
// clients; change them only with a matching client update.
package api
