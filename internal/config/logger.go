package config

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger пишет в stderr: stdout занят ответом модели.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	return NewLoggerTo(cfg, zapcore.Lock(os.Stderr)), nil
}

// NewLoggerTo собирает core вручную, чтобы тесты могли подменить sink.
func NewLoggerTo(cfg LogConfig, sink zapcore.WriteSyncer) *zap.Logger {
	level := parseLogLevel(cfg.Level)

	core := zapcore.NewCore(newEncoder(cfg, level), sink, zap.NewAtomicLevelAt(level))

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(sink),
	}
	if level == zapcore.DebugLevel {
		opts = append(opts, zap.Development())
	}

	return zap.New(core, opts...).With(zap.String("app", "chatgpt-plugin"))
}

func newEncoder(cfg LogConfig, level zapcore.Level) zapcore.Encoder {
	if level == zapcore.DebugLevel || strings.EqualFold(cfg.Format, "console") {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc.EncodeCaller = zapcore.ShortCallerEncoder
		return zapcore.NewConsoleEncoder(enc)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.CallerKey = "caller"
	enc.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewJSONEncoder(enc)
}

func parseLogLevel(level string) zapcore.Level {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "warning":
		return zapcore.WarnLevel
	case "debug", "info", "warn", "error":
		lvl, _ := zapcore.ParseLevel(l)
		return lvl
	default:
		return zapcore.InfoLevel
	}
}
