package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Service   string
	Env       string
	Level     string
	AddSource bool
}

// New builds the process logger and installs it as the zap global.
// Development environments get the console encoder, everything else JSON.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if isDev(opts.Env) {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(opts.Level))
	cfg.DisableCaller = !opts.AddSource

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	base = base.With(
		zap.String("service", opts.Service),
		zap.String("env", opts.Env),
	)

	zap.ReplaceGlobals(base)
	return base, nil
}

func isDev(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
