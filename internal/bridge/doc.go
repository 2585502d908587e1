// Package bridge gives the session module a single handle onto the store
// module's logic, regardless of how it can be reached.
//
// The handle is a strategy: the resolver binds the store module's exported
// in-process symbols when they are present (direct path, no serialization)
// and otherwise relays the equivalent CUSTOM.* commands through the host's
// generic dispatch interface (fallback path). The two implementations
// produce identical observable results; only latency and diagnostics
// differ. The decision is made once on first use and cached for the life
// of the process, with a manual re-resolve for recovery after the store
// module becomes available.
package bridge
