// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Josue Rodriguez.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package log holds the library-wide logger. The library is silent by
// default; SetLevel installs a real logger once at process start.
package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// SetLevel replaces the library logger with one emitting at the given
// verbosity ("debug", "info", "warning", "error"). Intended to be called
// once before any processing.
func SetLevel(level string) error {
	var lvl zapcore.Level
	name := strings.ToLower(level)
	if name == "warning" {
		name = "warn"
	}
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}

	logger = built
	return nil
}

// L returns the library logger.
func L() *zap.Logger {
	return logger
}
