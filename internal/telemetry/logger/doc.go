// Package logger provides structured logging for sesskv.
//
// This package wraps log/slog:
//
//   - logger.go: handler configuration, level parsing, the global default
//   - context.go: context-aware logging with request/trace IDs
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering with runtime adjustment
//   - Context propagation for request tracing
package logger
