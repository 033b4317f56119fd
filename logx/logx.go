// Package logx builds the editor's file-only logger. The editor owns the
// terminal, so log output must never reach stdout or stderr.
package logx

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultPath returns the log file location under the user config dir.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sourcetrace.log"
	}
	return filepath.Join(home, ".config", "sourcetrace", "sourcetrace.log")
}

// NewFileLogger creates a zap logger that writes only to the given file,
// rotating it as it grows.
func NewFileLogger(path string) *zap.Logger {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.LevelKey = "level"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)

	return zap.New(core)
}
