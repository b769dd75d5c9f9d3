package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop().Sugar()

// Init replaces the no-op logger. Development runs get a colored console
// encoder; every other environment logs JSON with ISO8601 timestamps.
func Init(logLevel, appEnv string) {
	development := appEnv == "development"

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(logLevel)),
		Development:      development,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if development {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := config.Build()
	if err != nil {
		log = zap.NewExample().Sugar()
		log.Warnw("Failed to initialize custom logger, using fallback", "error", err)
		return
	}

	log = logger.Sugar()
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(name string) zapcore.Level {
	level, err := zapcore.ParseLevel(name)
	if err != nil || name == "" {
		return zapcore.InfoLevel
	}
	return level
}

func Debug(msg string, keysAndValues ...interface{}) {
	log.Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	log.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	log.Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	log.Errorw(msg, keysAndValues...)
}

func Fatal(msg string, err error) {
	log.Fatalw(msg, "error", err)
}

func Sync() {
	_ = log.Sync()
}
