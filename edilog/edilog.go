// Package edilog wires the package-level structured logger used for
// non-fatal diagnostics across the pipeline: assembler deviations, skipped
// malformed mapping files, and condition-evaluator info notes.
package edilog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// logger is the package-level sink. It defaults to a no-op logger so
// library code can log unconditionally without a caller having configured
// anything; CLI entry points call Init to attach real output.
var logger *zap.Logger = zap.NewNop()

// Init builds the package logger. When filePath is non-empty, output is
// written to a lumberjack-rotated file instead of stderr — the shape
// long-running batch jobs (interchange migration, fixture regeneration)
// need so one run doesn't grow a single log file unbounded.
func Init(verbose bool, filePath string) error {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	var core zapcore.Core
	if filePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		core = zapcore.NewCore(encoder, zapcore.AddSync(rotator), level)
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		built, err := cfg.Build()
		if err != nil {
			return err
		}
		logger = built
		return nil
	}

	logger = zap.New(core)
	return nil
}

// L returns the package logger.
func L() *zap.Logger { return logger }

// Sync flushes any buffered log entries. Call on process exit.
func Sync() {
	_ = logger.Sync()
}

// Warn logs a non-fatal deviation with structured fields.
func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

// Info logs an informational note.
func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}
