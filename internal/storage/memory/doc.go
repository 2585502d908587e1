// Package memory provides the in-memory shared store for sesskv.
//
// The store is a single namespaced key/value map guarded by one
// reader/writer lock. It is the ground truth for user-key to session-id
// associations and is intentionally per-process: no persistence, no
// replication, no expiry.
package memory
