package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

//nolint:gochecknoglobals // static palette shared by all encoder clones
var (
	levelColors = map[zapcore.Level]*color.Color{
		zapcore.DebugLevel:  color.New(color.FgBlue, color.Bold),
		zapcore.InfoLevel:   color.New(color.FgGreen, color.Bold),
		zapcore.WarnLevel:   color.New(color.FgYellow, color.Bold),
		zapcore.ErrorLevel:  color.New(color.FgRed, color.Bold),
		zapcore.DPanicLevel: color.New(color.FgRed, color.Bold),
		zapcore.PanicLevel:  color.New(color.FgRed, color.Bold),
		zapcore.FatalLevel:  color.New(color.FgMagenta, color.Bold),
	}
	faint    = color.New(color.Faint)
	keyColor = color.New(color.FgCyan)
	errColor = color.New(color.FgHiRed)
)

// prettyEncoder renders entries as a colored header line followed by indented fields.
// Field order is preserved as logged.
type prettyEncoder struct {
	zapcore.Encoder
	pool buffer.Pool
}

func newPrettyLogger(cfg zap.Config) *zap.Logger {
	enc := &prettyEncoder{
		Encoder: zapcore.NewJSONEncoder(cfg.EncoderConfig),
		pool:    buffer.NewPool(),
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), cfg.Level)
	return zap.New(core, zap.ErrorOutput(zapcore.AddSync(os.Stderr)))
}

func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{Encoder: e.Encoder.Clone(), pool: e.pool}
}

func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	raw, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer raw.Free()

	out := e.pool.Get()
	out.AppendString(header(entry))

	payload, err := decodeOrdered(raw.Bytes())
	if err != nil {
		// Not an object: print the JSON line as is.
		out.AppendString(" " + strings.TrimSpace(raw.String()) + "\n")
		return out, nil
	}
	out.AppendByte('\n')

	isErr := entry.Level >= zapcore.ErrorLevel
	for pair := payload.Oldest(); pair != nil; pair = pair.Next() {
		switch pair.Key {
		case timeKey, levelKey, messageKey, nameKey:
			continue
		}
		out.AppendString(formatField(pair.Key, pair.Value, isErr))
	}
	return out, nil
}

func header(entry zapcore.Entry) string {
	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	lc, ok := levelColors[entry.Level]
	if !ok {
		lc = levelColors[zapcore.InfoLevel]
	}

	var b strings.Builder
	b.WriteString(faint.Sprint("[" + ts.Format(time.DateTime) + "]"))
	b.WriteByte(' ')
	b.WriteString(lc.Sprintf("%-5s", entry.Level.CapitalString()))
	if entry.LoggerName != "" {
		b.WriteString(" " + faint.Sprint(entry.LoggerName))
	}
	b.WriteString(" " + entry.Message)
	return b.String()
}

func formatField(key string, value any, isErr bool) string {
	kc := keyColor
	if isErr {
		kc = errColor
	}

	var rendered string
	switch v := value.(type) {
	case string:
		rendered = v
	default:
		data, err := json.MarshalIndent(v, "    ", "  ")
		if err != nil {
			rendered = "<unprintable>"
		} else {
			rendered = string(data)
		}
	}
	return "  " + kc.Sprint(key) + ": " + rendered + "\n"
}

// decodeOrdered parses a JSON object keeping key order at the top level.
func decodeOrdered(data []byte) (*orderedmap.OrderedMap[string, any], error) {
	om := orderedmap.New[string, any]()
	err := json.Unmarshal(bytes.TrimSpace(data), om)
	if err != nil {
		return nil, err
	}
	return om, nil
}
