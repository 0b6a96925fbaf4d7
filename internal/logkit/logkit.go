// Package logkit builds the zap loggers used across umbra. It wires a
// JSON file core with rotation (lumberjack) and an optional console core,
// so callers only deal with *zap.Logger.
package logkit

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction. The zero value produces a
// console-only development logger.
type Options struct {
	// Path is the log file to write JSON entries to. Empty disables the
	// file core entirely.
	Path string

	// MaxSizeMB, MaxBackups and MaxAgeDays are handed to the rotator.
	// Zero values fall back to lumberjack's defaults.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Console tees human-readable output to stdout alongside the file.
	Console bool

	// Development lowers the level to Debug and uses the console
	// encoder for the stdout core.
	Development bool
}

// New constructs a logger from opts. It never fails; with no file path
// and Console false it returns zap.NewNop().
func New(opts Options) *zap.Logger {
	level := zap.InfoLevel
	if opts.Development {
		level = zap.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)

	var cores []zapcore.Core

	if opts.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.AddSync(rotator), level))
	}

	if opts.Console {
		var consoleEncoder zapcore.Encoder
		if opts.Development {
			consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		} else {
			consoleEncoder = jsonEncoder
		}
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), level))
	}

	if len(cores) == 0 {
		return zap.NewNop()
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
