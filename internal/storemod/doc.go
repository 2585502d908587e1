// Package storemod is the store module: it registers the CUSTOM.* command
// surface over the shared in-memory store and exports the store API symbols
// that the session module binds for the direct in-process path.
package storemod
