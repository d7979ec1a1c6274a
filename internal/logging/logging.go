// Package logging provides the shared structured logger. The calculation
// packages stay silent; only the data-loading edge logs.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init builds the process logger. Development mode switches to the
// human-readable console encoder.
func Init(development bool, level zapcore.Level) error {
	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)

	built, err := config.Build()
	if err != nil {
		return err
	}
	log = built
	return nil
}

// L returns the current logger. Before Init it is a no-op logger, so library
// code can log unconditionally.
func L() *zap.Logger {
	return log
}

// Sync flushes buffered entries.
func Sync() error {
	return log.Sync()
}
