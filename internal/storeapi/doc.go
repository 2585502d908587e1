// Package storeapi is the published contract of the store module's
// exported in-process API.
//
// The surface is deliberately primitive: byte slices and int32 status codes
// cross the boundary, nothing else. String outputs are owned buffers that
// the caller must hand back through the exported release function. The
// symbol names, argument order, and signatures here are frozen: a consumer
// resolved against an older revision must keep working, so additions get
// new symbols and a bumped Version rather than changed signatures.
package storeapi
