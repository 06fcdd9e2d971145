package logger

import (
	"strings"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "json", cfg: Config{Level: "info", Encoding: encJSON}},
		{name: "pretty", cfg: Config{Level: "debug", Encoding: encPretty}},
		{name: "disabled ignores level", cfg: Config{Level: "nope", Disable: true}},
		{name: "invalid level", cfg: Config{Level: "loud", Encoding: encJSON}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestErrFields(t *testing.T) {
	err := errx.New("boom", errx.WithCode("STORE_UNAVAILABLE"), errx.WithDetails(errx.D{"key": "a/b"}))

	fields := errFields(err)
	require.Len(t, fields, 10)
	assert.Equal(t, "error_code", fields[0])
	assert.Equal(t, "STORE_UNAVAILABLE", fields[1])
}

func TestPrettyEncoder(t *testing.T) {
	color.NoColor = true

	cfg, err := Config{Level: "debug"}.zapConfig()
	require.NoError(t, err)

	enc := &prettyEncoder{Encoder: zapcore.NewJSONEncoder(cfg.EncoderConfig), pool: buffer.NewPool()}
	buf, err := enc.EncodeEntry(
		zapcore.Entry{
			Level:      zapcore.InfoLevel,
			Time:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			LoggerName: "vfs",
			Message:    "folder renamed",
		},
		[]zapcore.Field{zap.String("from", "a/"), zap.Int("keys", 3)},
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[2024-05-01 10:00:00] INFO  vfs folder renamed\n")
	assert.Contains(t, out, "  from: a/\n")
	assert.Contains(t, out, "  keys: 3\n")
	assert.Less(t, strings.Index(out, "from"), strings.Index(out, "keys"))
}
