// Package sessmod is the session module: it registers the SESSION.*
// command surface over the session registry and translates registry
// results and errors into the host's reply conventions.
//
// The module must be loaded after the store module for the bridge's
// direct path to be resolvable; loaded alone it still works through the
// command fallback as long as the CUSTOM.* commands exist.
package sessmod
