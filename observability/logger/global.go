package logger

import (
	"context"
	"sync"
	"sync/atomic"
)

//nolint:gochecknoglobals // process wide logger for code without an injected one
var (
	global   atomic.Value
	setOnce  sync.Once
	initOnce sync.Once
)

// SetGlobal configures the process wide logger. It panics when called twice.
func SetGlobal(cfg Config) {
	called := false
	setOnce.Do(func() {
		initOnce.Do(func() {})

		l, err := New(cfg)
		if err != nil {
			panic("[logger]: failed to initialize global logger: " + err.Error())
		}
		global.Store(l)
		called = true
	})
	if !called {
		panic("[logger]: SetGlobal can only be called once")
	}
}

// Global returns the process wide logger, creating a pretty debug logger on first use.
func Global() Logger {
	if l, ok := global.Load().(Logger); ok {
		return l
	}

	initOnce.Do(func() {
		l, err := New(Config{Level: levelDebug, Encoding: encPretty})
		if err != nil {
			panic("[logger]: failed to initialize default logger: " + err.Error())
		}
		global.Store(l)
	})
	return global.Load().(Logger) //nolint:errcheck,forcetypeassert // always a Logger
}

func Info(msg any)                      { Global().Info(msg) }
func Warn(msg any)                      { Global().Warn(msg) }
func Error(msg any)                     { Global().Error(msg) }
func Fatal(msg any)                     { Global().Fatal(msg) }
func Infof(format string, args ...any)  { Global().Infof(format, args...) }
func Warnf(format string, args ...any)  { Global().Warnf(format, args...) }
func Errorf(format string, args ...any) { Global().Errorf(format, args...) }
func Warnx(err error)                   { Global().Warnx(err) }
func Errorx(err error)                  { Global().Errorx(err) }
func Fatalx(err error)                  { Global().Fatalx(err) }

// Named returns a named child of the process wide logger.
func Named(name string) Logger {
	return Global().Named(name)
}

// WithContext returns the process wide logger enriched with request metadata from ctx.
func WithContext(ctx context.Context) Logger {
	return Global().WithContext(ctx)
}

// Sync flushes the process wide logger.
func Sync() error {
	return Global().Sync()
}
