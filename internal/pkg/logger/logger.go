package logger

import (
	"context"

	"go.uber.org/zap"
)

var global = zap.NewNop().Sugar()

// Init replaces the package-level logger. Called once from main.
func Init(l *zap.Logger) {
	global = l.Sugar()
}

func Info(_ context.Context, args ...interface{}) {
	global.Info(args...)
}

func Infof(_ context.Context, format string, args ...interface{}) {
	global.Infof(format, args...)
}

func Warnf(_ context.Context, format string, args ...interface{}) {
	global.Warnf(format, args...)
}

func Error(_ context.Context, args ...interface{}) {
	global.Error(args...)
}

func Errorf(_ context.Context, format string, args ...interface{}) {
	global.Errorf(format, args...)
}

func Fatal(_ context.Context, args ...interface{}) {
	global.Fatal(args...)
}
