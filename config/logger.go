package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger from the log settings.
//
// Parameters:
//   - c: the log configuration
//
// Returns:
//   - *zap.Logger: the logger
//   - error: an error for an unknown level or an unopenable output
func NewLogger(c LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	if c.Encoding != "" {
		zc.Encoding = c.Encoding
	}
	if c.Output != "" {
		zc.OutputPaths = []string{c.Output}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
