// Package rlog builds the process-wide zap logger. Level, encoder and sink
// are chosen from environment variables, read once when New is called.
package rlog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger whose level comes from RECLI_LOG_LEVEL (default info),
// whose encoding is JSON in RECLI_ENV=prod and human-readable console
// otherwise, and which always writes to a rotating file plus, outside prod,
// to stdout as well.
func New() (*zap.Logger, error) {
	level := levelFromEnv(os.Getenv("RECLI_LOG_LEVEL"))

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	prod := strings.EqualFold(os.Getenv("RECLI_ENV"), "prod")

	var encoder zapcore.Encoder
	if prod {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	logFile := os.Getenv("RECLI_LOG_FILE")
	if logFile == "" {
		logFile = "recli.log"
	}

	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	var sink zapcore.WriteSyncer
	if prod {
		sink = zapcore.AddSync(rotator)
	} else {
		sink = zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(rotator))
	}

	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

func levelFromEnv(v string) zapcore.Level {
	switch strings.ToLower(v) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "dpanic":
		return zap.DPanicLevel
	case "panic":
		return zap.PanicLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}
