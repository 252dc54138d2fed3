// Package notifications delivers queue lifecycle events to an ntfy topic.
//
// The service is optional: without a configured topic a noop
// implementation is returned and callers never need to check. Delivery
// failures are surfaced as errors but callers treat them as best-effort;
// a dropped notification never fails a queue operation.
package notifications
