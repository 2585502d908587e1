// Package service provides the session registry for sesskv.
//
// The registry owns session records and drives the shared store through
// the bridge so the user-key to session-id association tracks the session
// lifecycle. Consistency between the two is best-effort by design: a
// failed store update is logged and reported in the result, never rolled
// back.
package service
