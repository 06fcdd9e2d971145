// Package logger provides the structured logger used across bucketfs.
package logger

import (
	"context"
	"errors"

	"github.com/code19m/errx"
	"go.uber.org/zap"

	"github.com/rise-and-shine/bucketfs/meta"
)

// Logger is the logging interface injected into every component.
type Logger interface {
	Debug(msg any)
	Info(msg any)
	Warn(msg any)
	Error(msg any)
	// Fatal logs at fatal level and then calls os.Exit(1).
	Fatal(msg any)

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)

	// Warnx logs err at warn level, expanding errx code, type, trace and details into fields.
	Warnx(err error)
	// Errorx logs err at error level, expanding errx code, type, trace and details into fields.
	Errorx(err error)
	// Fatalx logs err at fatal level and then calls os.Exit(1).
	Fatalx(err error)

	// With returns a child logger that adds keysAndValues to every entry.
	With(keysAndValues ...any) Logger
	// WithContext returns a child logger carrying the request metadata found in ctx.
	WithContext(ctx context.Context) Logger
	// Named adds a sub-scope to the logger name.
	Named(name string) Logger

	// Sync flushes buffered entries. Call it on shutdown.
	Sync() error
}

type logger struct {
	*zap.SugaredLogger
}

// New creates a Logger from cfg.
func New(cfg Config) (Logger, error) {
	if cfg.Disable {
		return Nop(), nil
	}

	zapCfg, err := cfg.zapConfig()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	if cfg.Encoding == encPretty {
		return &logger{newPrettyLogger(zapCfg).Sugar()}, nil
	}

	zl, err := zapCfg.Build()
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &logger{zl.Sugar()}, nil
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return &logger{zap.NewNop().Sugar()}
}

// errFields expands err into log fields when it is an errx.ErrorX.
func errFields(err error) []any {
	var e errx.ErrorX
	if !errors.As(err, &e) {
		return nil
	}
	return []any{
		"error_code", e.Code(),
		"error_type", e.Type().String(),
		"error_trace", e.Trace(),
		"error_fields", e.Fields(),
		"error_details", e.Details(),
	}
}

func (l *logger) Warnx(err error) {
	l.SugaredLogger.With(errFields(err)...).Warn(err.Error())
}

func (l *logger) Errorx(err error) {
	l.SugaredLogger.With(errFields(err)...).Error(err.Error())
}

func (l *logger) Fatalx(err error) {
	l.SugaredLogger.With(errFields(err)...).Fatal(err.Error())
}

func (l *logger) With(keysAndValues ...any) Logger {
	return &logger{l.SugaredLogger.With(keysAndValues...)}
}

func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	data := meta.ExtractMetaFromContext(ctx)
	if len(data) == 0 {
		return l
	}

	fields := make([]any, 0, len(data)*2)
	for k, v := range data {
		fields = append(fields, string(k), v)
	}
	return l.With(fields...)
}

func (l *logger) Named(name string) Logger {
	return &logger{l.SugaredLogger.Named(name)}
}

func (l *logger) Debug(msg any) { l.SugaredLogger.Debug(msg) }
func (l *logger) Info(msg any)  { l.SugaredLogger.Info(msg) }
func (l *logger) Warn(msg any)  { l.SugaredLogger.Warn(msg) }
func (l *logger) Error(msg any) { l.SugaredLogger.Error(msg) }
func (l *logger) Fatal(msg any) { l.SugaredLogger.Fatal(msg) }
