package logger

import (
	"time"

	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger реализация LoggerPort поверх zap.
// Модуль и поля по умолчанию копируются при WithModule/WithFields, исходный логгер не меняется.
type ZapLogger struct {
	base          *zap.Logger
	defaultFields out.LogFields
	module        string
}

type Options struct {
	Timezone    string
	Level       string
	Development bool
}

func NewZapLogger(opts Options) (*ZapLogger, error) {
	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		loc = time.UTC
	}

	var cfg zap.Config
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(out.ParseLogLevel(opts.Level)))
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(loc).Format("2006-01-02 15:04:05.000"))
	}

	base, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, err
	}

	return &ZapLogger{
		base:          base,
		defaultFields: make(out.LogFields),
	}, nil
}

// New оборачивает уже настроенный zap.Logger
func New(base *zap.Logger) *ZapLogger {
	return &ZapLogger{
		base:          base.WithOptions(zap.AddCallerSkip(2)),
		defaultFields: make(out.LogFields),
	}
}

// NewNopLogger ничего не пишет, используется в тестах
func NewNopLogger() *ZapLogger {
	return New(zap.NewNop())
}

func (l *ZapLogger) Sync() error {
	return l.base.Sync()
}

func (l *ZapLogger) WithFields(fields out.LogFields) out.LoggerPort {
	merged := make(out.LogFields, len(l.defaultFields)+len(fields))
	for k, v := range l.defaultFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &ZapLogger{
		base:          l.base,
		defaultFields: merged,
		module:        l.module,
	}
}

func (l *ZapLogger) WithModule(module string) out.LoggerPort {
	return &ZapLogger{
		base:          l.base,
		defaultFields: l.defaultFields,
		module:        module,
	}
}

func (l *ZapLogger) Debug(event string, fields out.LogFields) {
	l.log(out.LogLevelDebug, event, fields)
}

func (l *ZapLogger) Info(event string, fields out.LogFields) {
	l.log(out.LogLevelInfo, event, fields)
}

func (l *ZapLogger) Warn(event string, fields out.LogFields) {
	l.log(out.LogLevelWarn, event, fields)
}

func (l *ZapLogger) Error(event string, fields out.LogFields) {
	l.log(out.LogLevelError, event, fields)
}

func (l *ZapLogger) log(level out.LogLevel, event string, fields out.LogFields) {
	module := l.module
	if module == "" {
		module = "unknown"
	}

	zapFields := make([]zap.Field, 0, len(l.defaultFields)+len(fields)+1)
	zapFields = append(zapFields, zap.String("module", module))
	for k, v := range l.defaultFields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	if ce := l.base.Check(zapLevel(level), event); ce != nil {
		ce.Write(zapFields...)
	}
}

func zapLevel(level out.LogLevel) zapcore.Level {
	switch level {
	case out.LogLevelDebug:
		return zapcore.DebugLevel
	case out.LogLevelWarn:
		return zapcore.WarnLevel
	case out.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
