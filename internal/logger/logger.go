// Package logger builds the zap logger shared by the server components.
package logger

import (
	"errors"
	"os"

	"go.uber.org/zap"
)

// New returns a production-configured SugaredLogger at the given level.
func New(level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return zl.Sugar(), nil
}

// Sync flushes buffered entries, ignoring the EINVAL stderr returns on some platforms.
func Sync(l *zap.SugaredLogger) error {
	if err := l.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}
	return nil
}
