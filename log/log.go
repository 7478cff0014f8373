// Package log provides the shared zap logger, optionally teed into a rotating file.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.SugaredLogger
var baseLogger *zap.Logger

type Options struct {
	Debug bool
	Level string // debug, info, warn or error; overrides Debug when set
	File  string // rotating log file, empty for stderr only
}

// Init initializes the package-level logger
func Init(opts Options) (err error) {
	var (
		zapLogger *zap.Logger
		cfg       zap.Config
		level     zapcore.Level
	)
	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	if len(opts.Level) != 0 {
		if level, err = zapcore.ParseLevel(opts.Level); err != nil {
			return fmt.Errorf("can't initialize zap logger: %v", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
	if zapLogger, err = cfg.Build(); err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}
	if len(opts.File) != 0 {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    32, // MB
			MaxBackups: 3,
			Compress:   true,
		})
		fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), w, cfg.Level)
		zapLogger = zapLogger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, fileCore)
		}))
	}
	baseLogger = zapLogger
	log = zapLogger.Sugar()
	return nil
}

// GetSugaredLogger returns the sugared logger instance
func GetSugaredLogger() *zap.SugaredLogger {
	if log == nil {
		// Fallback logger if not initialized
		baseLogger, _ = zap.NewProduction()
		if baseLogger == nil {
			fmt.Fprintln(os.Stderr, "falling back to a no-op logger")
			baseLogger = zap.NewNop()
		}
		log = baseLogger.Sugar()
	}
	return log
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
