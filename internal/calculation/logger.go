package calculation

import (
	"github.com/rs/zerolog"
)

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// ZerologAdapter bridges the engine Logger to a zerolog.Logger, used by the
// CLI and the HTTP server.
type ZerologAdapter struct {
	Log zerolog.Logger
}

// NewZerologAdapter wraps a zerolog logger tagged with the engine component.
func NewZerologAdapter(log zerolog.Logger) ZerologAdapter {
	return ZerologAdapter{Log: log.With().Str("component", "engine").Logger()}
}

func (z ZerologAdapter) Debugf(format string, args ...any) { z.Log.Debug().Msgf(format, args...) }
func (z ZerologAdapter) Infof(format string, args ...any)  { z.Log.Info().Msgf(format, args...) }
func (z ZerologAdapter) Warnf(format string, args ...any)  { z.Log.Warn().Msgf(format, args...) }
func (z ZerologAdapter) Errorf(format string, args ...any) { z.Log.Error().Msgf(format, args...) }
