// Package logging builds the process-wide zap logger. When debug logging is
// disabled the logger is a nop, so the interactive UI never has log lines
// written over it; when enabled, logs go to .storefront/logs/storefront.log.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storefront/internal/config"
)

// New constructs a logger from config. Callers own Sync.
func New(workspace string, cfg config.LoggingConfig) (*zap.Logger, error) {
	if !cfg.Debug {
		return zap.NewNop(), nil
	}

	logDir := filepath.Join(workspace, ".storefront", "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(cfg.Level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{filepath.Join(logDir, "storefront.log")}
	zapCfg.ErrorOutputPaths = zapCfg.OutputPaths

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
