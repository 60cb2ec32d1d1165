package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the process logger. The editor owns the terminal, so it
// only logs when a log file is configured.
func newLogger(cfg *Config, editor bool) (*zap.Logger, error) {
	if editor && cfg.LogFile == "" {
		return zap.NewNop(), nil
	}

	logcfg := zap.NewDevelopmentConfig()
	logcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Verbose {
		logcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logcfg.OutputPaths = []string{"stderr"}
	if editor {
		logcfg.OutputPaths = []string{cfg.LogFile}
		logcfg.ErrorOutputPaths = []string{cfg.LogFile}
	}
	return logcfg.Build()
}
