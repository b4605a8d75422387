// Package telemetry provides the tiler's logger and Prometheus metrics.
//
// Loggers are charmbracelet/log loggers; components derive prefixed children
// from the root logger built by the command layer. Metrics live in a private
// registry so tests can build as many instances as they like.
package telemetry
