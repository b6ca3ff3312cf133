package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log   *zap.Logger        = zap.NewNop()
	Sugar *zap.SugaredLogger = Log.Sugar()
)

// Init configures the global logger. Output always goes to stderr so stdout carries only documents.
func Init(level zapcore.Level, jsonOutput bool) {
	InitWriter(os.Stderr, level, jsonOutput)
}

// InitWriter configures the global logger to write to w.
func InitWriter(w io.Writer, level zapcore.Level, jsonOutput bool) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if jsonOutput {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	Log = zap.New(core)
	Sugar = Log.Sugar()
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Log.Sync()
}
