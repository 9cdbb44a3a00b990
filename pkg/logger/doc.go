// Package logger builds configured log/slog loggers.
//
// New assembles a slog.Logger from options: output format (JSON or text),
// level, static attributes, and context extractors that pull request-scoped
// values (request ID, user ID) into every record. attr.go carries small
// helpers for the attribute keys used across the codebase so field names stay
// consistent in aggregated logs.
package logger
