// Package host models the boundary to the host database process.
//
// It provides the generic command registration/dispatch runtime that loaded
// modules register their commands on, the host's native reply kinds, and the
// process-local shared-symbol table through which one module can publish an
// in-process API for another module to bind against.
//
// Everything behind this boundary (wire protocol, process lifecycle) lives
// in the server packages; everything in front of it is module code.
package host
