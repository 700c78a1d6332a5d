// Package logger builds the process-wide zap logger: JSON to stdout, plus an
// optional rotating file sink.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// File, when set, receives the same JSON lines, rotated by size.
	File string

	// Stdout overrides the console sink. Nil means os.Stdout.
	Stdout io.Writer
}

// New returns a JSON logger with ISO-8601 timestamps and lowercase levels,
// and installs it as the zap global so zap.L() works after startup.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("logger: level %q: %w", opts.Level, err)
		}
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	enc := zapcore.NewJSONEncoder(encoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.AddSync(stdout), level),
	}

	if opts.File != "" {
		sink := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // MB
			MaxBackups: 7,
			MaxAge:     14, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(sink), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.ErrorOutput(zapcore.AddSync(os.Stderr)))
	zap.ReplaceGlobals(l)
	return l, nil
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
