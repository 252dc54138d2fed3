// Package control encodes the queue state machine. It is the only
// component permitted to invoke store moves.
//
// Transitions: enqueue creates in todo; promote moves todo to working;
// complete and cancel move working to done; replay moves done back to
// todo. Cancel is an operator emergency stop treated as an early
// completion, never a deletion. Every operation is safe to retry: the
// store's rename-based moves are failure-atomic, so a retried move either
// fails with a soft NotFound or finds the item already transitioned.
package control
