package vectorai

import "github.com/yezz123/vectorai/pkg/vlog"

// Logger is the structured logging interface the store depends on.
type Logger = vlog.Logger

// NewLogger builds a Logger writing to stdout at minLevel.
func NewLogger(minLevel vlog.Level) Logger { return vlog.NewStd(minLevel) }

// NopLogger discards every log line; used when no logger is configured.
func NopLogger() Logger { return vlog.Nop() }

// Re-exported log levels, for callers that don't want to import
// pkg/vlog directly.
const (
	LevelDebug = vlog.LevelDebug
	LevelInfo  = vlog.LevelInfo
	LevelWarn  = vlog.LevelWarn
	LevelError = vlog.LevelError
)
