// Package respserver exposes the host command runtime over the Redis
// RESP2 wire protocol.
//
// The server owns the socket concerns only: accept loop, per-connection
// read/write/idle deadlines, protocol limits, per-IP rate limiting and
// reply encoding. Every command that is not connection-level (PING,
// QUIT) is dispatched to the host runtime, so the command surface is
// whatever modules have been loaded.
package respserver
