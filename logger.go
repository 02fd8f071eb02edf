package areq

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Logger handles structured logging for the client. Printf matches the worker
// pool's own logger contract, so a single Logger feeds both the client and the
// pool it owns. Request-level errors are never logged; only lifecycle and
// executor events are.
type Logger interface {
	Print(v ...any)                 // Info level
	Printf(format string, v ...any) // Info level formatted
	Infof(format string, v ...any)  // Info level with formatting
	Warnf(format string, v ...any)  // Warning level
	Errorf(format string, v ...any) // Error level
}

// NoopLogger provides a default no-op logger.
type NoopLogger struct{}

func (l *NoopLogger) Print(_ ...any)            {}
func (l *NoopLogger) Printf(_ string, _ ...any) {}
func (l *NoopLogger) Infof(_ string, _ ...any)  {}
func (l *NoopLogger) Warnf(_ string, _ ...any)  {}
func (l *NoopLogger) Errorf(_ string, _ ...any) {}

// ZeroLogger adapts a zerolog.Logger to the Logger interface.
type ZeroLogger struct {
	L zerolog.Logger
}

func (z *ZeroLogger) Print(v ...any)                 { z.L.Info().Msg(fmt.Sprint(v...)) }
func (z *ZeroLogger) Printf(format string, v ...any) { z.L.Info().Msgf(format, v...) }
func (z *ZeroLogger) Infof(format string, v ...any)  { z.L.Info().Msgf(format, v...) }
func (z *ZeroLogger) Warnf(format string, v ...any)  { z.L.Warn().Msgf(format, v...) }
func (z *ZeroLogger) Errorf(format string, v ...any) { z.L.Error().Msgf(format, v...) }
