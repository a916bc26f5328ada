// Package logger builds configured slog.Logger instances with environment
// presets, static attributes, and context-driven attribute injection.
//
// The factory returns a standard *slog.Logger, so callers depend only on
// log/slog. Context extractors are applied per log call through a handler
// decorator, which keeps request-scoped values fresh without rebuilding
// handlers.
package logger
