// Package modules defines the contract every mirror adapter implements and
// the run context threaded through them.
//
// A module answers four questions about one tool:
//
//   - IsApplicable: is the tool present on this host (for this scope)?
//   - IsOnline: is it currently configured to use the mirror?
//   - Activate: switch it to the mirror.
//   - Deactivate: switch it back to its upstream.
//
// Queries never mutate and never prompt. Detection problems make a module
// not applicable; unreadable or malformed configuration makes it offline.
// Activate and Deactivate ask the run's confirmation gate before changing
// anything and return false, nil when the operator declines. An operation
// a module cannot perform returns an ErrNotImplemented error.
//
// Callers must only Activate an offline module and only Deactivate an
// online one; the dispatcher enforces this.
package modules
