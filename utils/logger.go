package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process logger. It discards everything until InitLogger runs,
// which keeps tests quiet.
var Logger = zerolog.Nop()

// InitLogger initializes the process logger. format "json" writes one JSON
// object per line, anything else writes human-readable console output.
func InitLogger(level, format string) error {
	return InitLoggerWithWriter(os.Stderr, level, format)
}

// InitLoggerWithWriter is InitLogger with an explicit destination
func InitLoggerWithWriter(w io.Writer, level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	Logger = zerolog.New(out).Level(lvl).With().Timestamp().Str("app", AppName).Logger()
	return nil
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	Logger.Info().Msgf(format, v...)
}

// LogWarn logs a warning
func LogWarn(format string, v ...interface{}) {
	Logger.Warn().Msgf(format, v...)
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	Logger.Error().Msgf(format, v...)
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	Logger.Debug().Msgf(format, v...)
}

// LogRequest logs HTTP request details
func LogRequest(requestID, method, path, ip string, status int, duration time.Duration) {
	Logger.Info().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Str("client_ip", ip).
		Int("status", status).
		Dur("duration", duration).
		Msg("Request completed")
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	Logger.Error().Err(err).Bytes("stack", stack).Msg("Panic recovered")
}
