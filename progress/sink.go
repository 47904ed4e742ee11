package progress

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// NewLogCore returns a zapcore.Core that forwards every formatted record
// into the log panel. The dashboard renders on a single goroutine, so
// records must be emitted from the goroutine that owns rendering.
func NewLogCore(box *LogBox, enab zapcore.LevelEnabler) zapcore.Core {
	cfg := zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		TimeKey:          "ts",
		NameKey:          "logger",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	return &logCore{
		LevelEnabler: enab,
		enc:          zapcore.NewConsoleEncoder(cfg),
		box:          box,
	}
}

type logCore struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	box *LogBox
}

func (c *logCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &logCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		box:          c.box,
	}
	for i := range fields {
		fields[i].AddTo(clone.enc)
	}
	return clone
}

func (c *logCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *logCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	message := strings.TrimRight(buf.String(), "\n")
	buf.Free()
	c.box.AddMessage(message)
	return nil
}

func (c *logCore) Sync() error {
	return nil
}

// LogWriter adapts the log panel to io.Writer: each written line becomes
// one panel message. Empty lines are dropped.
type LogWriter struct {
	box *LogBox
}

// NewLogWriter wraps the log panel as an io.Writer.
func NewLogWriter(box *LogBox) *LogWriter {
	return &LogWriter{box: box}
}

func (w *LogWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if line != "" {
			w.box.AddMessage(line)
		}
	}
	return len(p), nil
}
