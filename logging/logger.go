// Package logging builds the structured logger used by the command-line tool.
package logging

import (
	"io"

	"github.com/launchdarkly/test-summary-reporter/framework"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a console-encoded logger writing to w. Debug messages are only written if
// debug is true.
func New(w io.Writer, debug bool) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "message",
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

type printfLogger struct {
	sugar *zap.SugaredLogger
}

func (p printfLogger) Printf(message string, args ...interface{}) {
	p.sugar.Debugf(message, args...)
}

// Printf adapts a zap logger to framework.Logger. Messages are logged at debug level.
func Printf(logger *zap.Logger) framework.Logger {
	return printfLogger{sugar: logger.Sugar()}
}
