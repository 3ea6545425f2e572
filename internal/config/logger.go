package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewOperationalLogger builds the structured logger pkg/api and
// cmd/jsforge use for progress output ("parsed N files in Xms", cache
// hits, per-rule timing) — separate from internal/logger's diagnostic
// accumulator, which stays a plain data structure so it can be
// serialized without pulling in a logging framework. Grounded on
// codenerd's zap.NewProductionConfig/AtomicLevel wiring: production
// encoding by default, debug-level output when verbose is requested.
func NewOperationalLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
