// Package metric provides Prometheus metrics for sesskv.
//
// It exposes command throughput, session and store population, and
// bridge-path counters on a dedicated registry served by the admin
// HTTP server.
package metric
