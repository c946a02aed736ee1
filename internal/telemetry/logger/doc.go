// Package logger provides structured logging for linearcli.
//
//   - logger.go: slog-backed Logger, level control, process default
//   - context.go: logger and request id propagation through context
//   - redact.go: masking of Linear API keys and sensitive attributes
//
// Diagnostics go to stderr so stdout stays reserved for command output
// consumed by launchers and scripts.
package logger
