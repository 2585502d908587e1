// Package httpserver provides the admin/diagnostics HTTP server.
//
// It serves liveness, Prometheus metrics and the bridge diagnostics
// endpoints. It carries no business API; sessions and store entries are
// reachable only through the command surface.
package httpserver
