// Copyright (c) 2025 Linka.ai
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zap logger for the agent TUI.
//
// The terminal is owned by the TUI, so logs go to a file under the data
// directory instead of stdout.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a file-backed logger in dataDir. When the file cannot be
// opened the runtime keeps working with a no-op logger; logging is never
// worth crashing the chat over.
func New(dataDir string, debug bool) *zap.Logger {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return zap.NewNop()
	}

	path := filepath.Join(dataDir, "agent-tui.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return zap.NewNop()
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(f),
		level,
	)
	return zap.New(core)
}
