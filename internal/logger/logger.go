package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger wraps a sugared zap logger
type Logger struct {
	*zap.SugaredLogger
}

// New builds a logger for the given mode ("prod"/"production" gets JSON
// output, everything else the development console encoder).
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// Sync flushes buffered log entries
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}
