package tui

import "go.uber.org/zap"

// LogSink carries structured diagnostics about the runtime's own behavior
// (scheduler decisions, coalescer regime changes, recovered panics) to a
// zap logger; they never touch the screen. It holds no terminal-bound
// bytes: a line a Model prints above the live region with the Println Cmd
// is written by TerminalWriter.WriteLog directly, not through LogSink.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wraps logger. A nil logger is replaced with zap.NewNop() so
// callers that don't care about diagnostics don't need a nil check.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Diagnostics returns the structured logger for runtime-internal events.
func (s *LogSink) Diagnostics() *zap.Logger { return s.logger }

// Sugar returns a SugaredLogger, for call sites that prefer printf-style
// logging over strongly-typed fields.
func (s *LogSink) Sugar() *zap.SugaredLogger { return s.logger.Sugar() }

// RegimeChange logs a resize-coalescer regime transition (steady <-> burst).
func (s *LogSink) RegimeChange(from, to string) {
	s.logger.Info("coalescer regime change", zap.String("from", from), zap.String("to", to))
}

// RecoveredPanic logs a panic caught at the runtime boundary before it is
// re-raised.
func (s *LogSink) RecoveredPanic(v interface{}) {
	s.logger.Error("recovered panic at runtime boundary", zap.Any("panic", v))
}
