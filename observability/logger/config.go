package logger

import (
	"github.com/code19m/errx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	messageKey = "msg"
	levelKey   = "level"
	nameKey    = "logger"
	timeKey    = "time"

	encJSON    = "json"
	encPretty  = "pretty"
	levelDebug = "debug"
)

// Config defines configuration options for the logger.
type Config struct {
	// Level is the minimum level emitted: debug, info, warn or error.
	Level string `yaml:"level" validate:"oneof=debug info warn error" default:"info"`

	// Encoding is "json" for log shippers or "pretty" for colored terminal output.
	Encoding string `yaml:"encoding" validate:"oneof=json pretty" default:"json"`

	// Disable swaps in a no-op logger. Useful in tests.
	Disable bool `yaml:"disable" default:"false"`
}

func (c Config) zapConfig() (zap.Config, error) {
	level := zap.NewAtomicLevel()
	err := level.UnmarshalText([]byte(c.Level))
	if err != nil {
		return zap.Config{}, errx.Wrap(err, errx.WithDetails(errx.D{"level": c.Level}))
	}

	return zap.Config{
		Level:            level,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		Encoding:         encJSON,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     messageKey,
			LevelKey:       levelKey,
			NameKey:        nameKey,
			TimeKey:        timeKey,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeName:     zapcore.FullNameEncoder,
		},
	}, nil
}
