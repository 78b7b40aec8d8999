// Package logger builds configured slog.Logger instances.
//
// The factory defaults to JSON output at INFO level, which is what log
// aggregation expects in production; development setups switch to the text
// handler at DEBUG. Typed attribute helpers (Error, IdentityID, Component)
// keep field names consistent across the codebase.
package logger
