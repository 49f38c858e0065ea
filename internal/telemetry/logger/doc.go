// Package logger provides structured logging for hashgen.
//
// It wraps log/slog:
//
//   - logger.go: handler construction, level control and the default logger
//   - context.go: context propagation of the logger and the run ID
//   - attrs.go: attribute rendering (byte slices as hex)
//
// Pipeline stages log start and finish at debug level and every run logs a
// summary at info level, tagged with its run_id.
package logger
