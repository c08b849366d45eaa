// Package logger builds the console zap logger used by the command line tools.
package logger

import (
	"io"
	"time"

	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levelColors matches the palette of the mesh debug output: cyan for
// chatter, red for trouble.
var levelColors = map[zapcore.Level]aurora.Color{
	zapcore.DebugLevel: aurora.CyanFg,
	zapcore.InfoLevel:  aurora.GreenFg,
	zapcore.WarnLevel:  aurora.YellowFg,
	zapcore.ErrorLevel: aurora.RedFg,
}

// New returns a logger writing colored console lines to w, dropping entries
// below level.
func New(w io.Writer, level zapcore.Level) *zap.Logger {
	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     encodeTime,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func encodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(aurora.Faint(t.Format("15:04:05.000")).String())
}

// encodeLevel prints the upper case level name, bold for panics and worse.
func encodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	color, ok := levelColors[level]
	if !ok {
		color = aurora.RedFg | aurora.BoldFm
	}
	enc.AppendString(aurora.Colorize(level.CapitalString(), color).String())
}
