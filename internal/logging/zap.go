// Package logging provides the zap-backed implementation of the engine's
// Logger interface for the CLI. The engine itself stays logging-agnostic.
package logging

import (
	"go.uber.org/zap"
)

// ZapLogger adapts a zap.SugaredLogger to calculation.Logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a ZapLogger. Debug mode uses zap's development config with
// debug-level output; otherwise the production config applies.
func New(debug bool) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: logger.Sugar()}, nil
}

func (l *ZapLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *ZapLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *ZapLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *ZapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Sync flushes buffered log entries. Call before process exit.
func (l *ZapLogger) Sync() {
	_ = l.sugar.Sync()
}
