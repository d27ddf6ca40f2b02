// Package logging wraps zap behind the Fields-style API used across the console.
package logging

import (
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields carries structured key/value pairs for a single log entry.
type Fields map[string]interface{}

var (
	baseMu    sync.RWMutex
	base      = zap.NewNop()
	atomLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// Init builds the process-wide zap core on stdout. Loggers created before
// Init keep writing to the previous core.
func Init(level, format string) {
	InitWriter(level, format, zapcore.AddSync(os.Stdout))
}

// InitWriter is Init with an explicit destination.
func InitWriter(level, format string, w zapcore.WriteSyncer) {
	atomLevel.SetLevel(parseLevel(level))

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, w, atomLevel)
	SetBase(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)))
}

// SetBase replaces the process-wide zap logger.
func SetBase(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	baseMu.Lock()
	base = l
	baseMu.Unlock()
}

// Sync flushes the process-wide logger.
func Sync() {
	baseMu.RLock()
	defer baseMu.RUnlock()
	_ = base.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// LoggerV2 is a named structured logger.
type LoggerV2 struct {
	z *zap.Logger
}

// NewLoggerV2 returns a logger tagged with the given service or component name.
func NewLoggerV2(service string) *LoggerV2 {
	baseMu.RLock()
	defer baseMu.RUnlock()
	return &LoggerV2{z: base.With(zap.String("service", service))}
}

// NewWithZap wraps an existing zap logger.
func NewWithZap(z *zap.Logger) *LoggerV2 {
	if z == nil {
		z = zap.NewNop()
	}
	return &LoggerV2{z: z}
}

// With returns a child logger that always carries fields.
func (l *LoggerV2) With(fields Fields) *LoggerV2 {
	return &LoggerV2{z: l.zap().With(toZap(fields)...)}
}

func (l *LoggerV2) Debug(msg string, fields ...Fields) { l.zap().Debug(msg, merge(fields)...) }
func (l *LoggerV2) Info(msg string, fields ...Fields) { l.zap().Info(msg, merge(fields)...) }
func (l *LoggerV2) Warn(msg string, fields ...Fields) { l.zap().Warn(msg, merge(fields)...) }
func (l *LoggerV2) Error(msg string, fields ...Fields) { l.zap().Error(msg, merge(fields)...) }
func (l *LoggerV2) Fatal(msg string, fields ...Fields) { l.zap().Fatal(msg, merge(fields)...) }

func (l *LoggerV2) zap() *zap.Logger {
	if l == nil || l.z == nil {
		return zap.NewNop()
	}
	return l.z
}

func merge(fields []Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0)
	for _, f := range fields {
		out = append(out, toZap(f)...)
	}
	return out
}

// toZap converts fields in key order so output is stable.
func toZap(fields Fields) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		switch v := fields[k].(type) {
		case string:
			out = append(out, zap.String(k, v))
		case int:
			out = append(out, zap.Int(k, v))
		case int64:
			out = append(out, zap.Int64(k, v))
		case float64:
			out = append(out, zap.Float64(k, v))
		case bool:
			out = append(out, zap.Bool(k, v))
		case error:
			out = append(out, zap.NamedError(k, v))
		default:
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}
