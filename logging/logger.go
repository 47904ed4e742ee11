// Package logging provides structured logging for scantop.
//
// Before the dashboard takes over the terminal, records go to stderr in
// console format. Once a display is active the entry point swaps the
// logger for one built on the display's log-panel core, so records land
// inside the dashboard instead of corrupting the screen.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// LogLevelEnvVar controls verbosity when no level flag is given. When
// unset, logging is silent.
const LogLevelEnvVar = "SCANTOP_LOG_LEVEL"

// Initialize creates the stderr logger at the given level. An empty
// level falls back to SCANTOP_LOG_LEVEL; if that is also unset, logging
// stays silent.
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// Use swaps the active logger. The entry point calls this with a logger
// built on the dashboard's log-panel core once the display is up.
func Use(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// L returns the active logger.
func L() *zap.Logger {
	return logger
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = logger.Sync()
}
