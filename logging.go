package compose

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Logger is the narrow logging boundary the resolution engine talks to.
// Logging itself sits outside the engine's invariants (spec §1 out-of-scope
// boundary); this interface is that boundary, with the zap-backed zapLogger
// (built by newDefaultLogger) as the concrete implementation a Container
// uses unless WithLogger overrides it.
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

// zapLogger adapts *zap.SugaredLogger to Logger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Debugw(msg string, keysAndValues ...any) { l.sugar.Debugw(msg, keysAndValues...) }
func (l *zapLogger) Warnw(msg string, keysAndValues ...any)  { l.sugar.Warnw(msg, keysAndValues...) }
func (l *zapLogger) Errorw(msg string, keysAndValues ...any) { l.sugar.Errorw(msg, keysAndValues...) }

func newDefaultLogger() Logger {
	z, err := zap.NewProduction()
	if err != nil {
		z = zap.NewNop()
	}
	return &zapLogger{sugar: z.Sugar()}
}

// noopLogger discards everything; used when a caller opts out via
// WithLogger(nil) rather than paying for a real zap core in tests.
type noopLogger struct{}

func (noopLogger) Debugw(string, ...any) {}
func (noopLogger) Warnw(string, ...any)  {}
func (noopLogger) Errorw(string, ...any) {}

// newTraceID mints a random UUID string that Load and LoadNamed attach to
// the opening "load" log line of each top-level call. The log lines emitted
// further down during that call's resolution do not carry it.
func newTraceID() string {
	return uuid.NewString()
}
